package ace

import (
	"github.com/grindlemire/go-ace/internal/gesture"
	"github.com/grindlemire/go-ace/internal/layout"
)

// ScrollPattern shows its children through a viewport that follows drags
// along Axis. The position is owned by the UI thread.
type ScrollPattern struct {
	BasePattern
	Axis layout.Axis

	offset     float32
	scrollable float32
	onScroll   func(offset float32)
}

// NewScrollPattern returns a scroll pattern along axis.
func NewScrollPattern(axis layout.Axis) *ScrollPattern {
	return &ScrollPattern{Axis: axis}
}

// OnAttachToFrameNode registers the drag actuator on the host.
func (p *ScrollPattern) OnAttachToFrameNode(host *FrameNode) {
	p.BasePattern.OnAttachToFrameNode(host)
	host.GestureHub().SetScrollableActuator(gesture.NewScrollableActuator(p.Axis, p.scrollBy, nil))
}

// OnScroll sets a callback fired with the new position after each move.
func (p *ScrollPattern) OnScroll(fn func(offset float32)) { p.onScroll = fn }

// CreateLayoutAlgorithm returns a scroll algorithm bound to the position.
func (p *ScrollPattern) CreateLayoutAlgorithm() layout.Algorithm {
	return &layout.ScrollAlgorithm{Axis: p.Axis, Offset: &p.offset}
}

// CreatePaintMethod paints the background and border.
func (p *ScrollPattern) CreatePaintMethod() PaintMethod { return backgroundPaint }

// OnDirtyLayoutWrapperSwap records how far the content can scroll.
func (p *ScrollPattern) OnDirtyLayoutWrapperSwap(w *layout.Wrapper, _ DirtySwapConfig) bool {
	if alg, ok := w.Algorithm().(*layout.ScrollAlgorithm); ok {
		p.scrollable = alg.ScrollableDistance()
	}
	return false
}

// Offset returns the current scroll position.
func (p *ScrollPattern) Offset() float32 { return p.offset }

// ScrollableDistance returns the scroll range measured by the last layout.
func (p *ScrollPattern) ScrollableDistance() float32 { return p.scrollable }

// ScrollTo moves to pos, clamped to the scrollable range, and schedules a
// relayout.
func (p *ScrollPattern) ScrollTo(pos float32) {
	host, ok := p.Host()
	if !ok {
		return
	}
	if pl := host.tree.pipeline; pl != nil {
		runOn(pl.executor, TaskUI, func() { p.scrollBy(pos - p.offset) })
		return
	}
	p.scrollBy(pos - p.offset)
}

func (p *ScrollPattern) scrollBy(delta float32) {
	next := min(max(p.offset+delta, 0), p.scrollable)
	if layout.NearEqual(next, p.offset) {
		return
	}
	p.offset = next
	if p.onScroll != nil {
		p.onScroll(next)
	}
	if host, ok := p.Host(); ok {
		host.MarkDirtyNode(layout.FlagUpdateLayout)
	}
}
