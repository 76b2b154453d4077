package ace

import (
	"context"
	"time"
)

// Run acts as the vsync source: every frame interval in which something
// requested a frame, or a touch is held, it posts FlushVsync to the UI
// thread. It blocks until ctx is done or Close is called.
func (p *PipelineContext) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.frameDuration)
	defer ticker.Stop()
	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.stopCh:
			return nil
		case now := <-ticker.C:
			if !p.needsFrame() {
				continue
			}
			p.RequestVsync(now.Sub(start))
		}
	}
}

// needsFrame consumes the frame request flag.
func (p *PipelineContext) needsFrame() bool {
	requested := p.frameRequested.Swap(false)
	return requested || p.activeTouches.Load() > 0
}

// QueueUpdate runs fn on the logic thread. Safe to call from any goroutine.
func (p *PipelineContext) QueueUpdate(fn func()) {
	p.executor.PostTask(fn, TaskJS)
}
