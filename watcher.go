package ace

import (
	"time"

	"github.com/grindlemire/go-ace/internal/debug"
)

// Watcher is an event source that feeds the logic thread. Start launches
// its goroutine; post queues a handler on the logic thread and stopCh
// closes when the pipeline closes.
type Watcher interface {
	Start(post func(func()), stopCh <-chan struct{})
}

// AddWatcher starts w against this pipeline.
func (p *PipelineContext) AddWatcher(w Watcher) {
	if w == nil {
		return
	}
	w.Start(func(fn func()) { p.executor.PostTask(fn, TaskJS) }, p.stopCh)
}

// ChannelWatcher watches a channel and calls handler for each value.
type ChannelWatcher[T any] struct {
	ch      <-chan T
	handler func(T)
}

// NewChannelWatcher creates a watcher that calls fn on the logic thread for
// each value received on ch.
func NewChannelWatcher[T any](ch <-chan T, fn func(T)) *ChannelWatcher[T] {
	return &ChannelWatcher[T]{ch: ch, handler: fn}
}

// Watch creates a channel watcher.
func Watch[T any](ch <-chan T, handler func(T)) Watcher {
	return NewChannelWatcher(ch, handler)
}

// Start the watcher.
func (w *ChannelWatcher[T]) Start(post func(func()), stopCh <-chan struct{}) {
	go func() {
		for {
			select {
			case <-stopCh:
				return
			case v, ok := <-w.ch:
				if !ok {
					return
				}
				post(func() { w.handler(v) })
			}
		}
	}()
}

// timerWatcher fires at a regular interval.
type timerWatcher struct {
	interval time.Duration
	handler  func()
}

// OnTimer creates a watcher that calls handler on the logic thread every
// interval.
func OnTimer(interval time.Duration, handler func()) Watcher {
	return &timerWatcher{interval: interval, handler: handler}
}

// Start the watcher.
func (w *timerWatcher) Start(post func(func()), stopCh <-chan struct{}) {
	go func() {
		debug.Log("timerWatcher started")
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				post(w.handler)
			}
		}
	}()
}
