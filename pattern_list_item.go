package ace

import (
	"github.com/grindlemire/go-ace/internal/gesture"
	"github.com/grindlemire/go-ace/internal/layout"
)

// ListItemPattern is a list row whose content can be swiped left. Releasing
// past the pipeline's swipe delete ratio of the row width calls OnDelete on
// the logic thread; releasing earlier snaps the content back.
type ListItemPattern struct {
	BasePattern
	OnDelete func()

	swipe   float32
	width   float32
	deleted bool
	pan     *gesture.PanEvent
}

// OnAttachToFrameNode registers a horizontal pan on the host.
func (p *ListItemPattern) OnAttachToFrameNode(host *FrameNode) {
	p.BasePattern.OnAttachToFrameNode(host)
	p.pan = &gesture.PanEvent{
		OnStart:  p.onUpdate,
		OnUpdate: p.onUpdate,
		OnEnd:    p.onEnd,
		OnCancel: p.snapBack,
	}
	host.GestureHub().AddPanEvent(p.pan, gesture.PanHorizontal, gesture.DefaultPanDistance)
}

// OnDetachFromFrameNode removes the pan listener.
func (p *ListItemPattern) OnDetachFromFrameNode(host *FrameNode) {
	if host.gestureHub != nil && p.pan != nil {
		host.gestureHub.RemovePanEvent(p.pan)
	}
}

// SwipeOffset returns how far the content is shifted left, as a negative x.
func (p *ListItemPattern) SwipeOffset() float32 { return p.swipe }

// Deleted reports whether a swipe crossed the delete threshold.
func (p *ListItemPattern) Deleted() bool { return p.deleted }

// CreateLayoutAlgorithm lays children out like a box shifted by the swipe.
func (p *ListItemPattern) CreateLayoutAlgorithm() layout.Algorithm {
	swipe := p.swipe
	return &layout.CustomAlgorithm{
		LayoutFunc: func(w *layout.Wrapper) {
			content := layout.ContentBoxSize(w)
			origin := w.Geometry().ContentOffset()
			align := w.Property().Alignment
			for _, child := range w.ActiveChildren() {
				m := child.Property().Margin
				off := align.Offset(content, layout.MarginBoxSize(child))
				off = origin.Add(off).Add(layout.NewOffset(m.Left+swipe, m.Top))
				layout.PlaceChild(w, child, off)
			}
		},
	}
}

// CreatePaintMethod paints the background and border.
func (p *ListItemPattern) CreatePaintMethod() PaintMethod { return backgroundPaint }

// OnDirtyLayoutWrapperSwap records the row width for the threshold.
func (p *ListItemPattern) OnDirtyLayoutWrapperSwap(w *layout.Wrapper, _ DirtySwapConfig) bool {
	p.width = w.Geometry().FrameSize().Width
	return false
}

func (p *ListItemPattern) onUpdate(ev gesture.GestureEvent) {
	if p.deleted {
		return
	}
	p.setSwipe(min(max(p.swipe+ev.DeltaX, -p.width), 0))
}

func (p *ListItemPattern) onEnd(gesture.GestureEvent) {
	if p.deleted {
		return
	}
	host, ok := p.Host()
	if !ok {
		return
	}
	ratio := float32(0.5)
	if pl := host.tree.pipeline; pl != nil {
		ratio = pl.swipeDeleteRatio
	}
	if p.width > 0 && -p.swipe >= p.width*ratio {
		p.deleted = true
		p.setSwipe(-p.width)
		if p.OnDelete != nil {
			if pl := host.tree.pipeline; pl != nil {
				pl.QueueUpdate(p.OnDelete)
			} else {
				p.OnDelete()
			}
		}
		return
	}
	p.snapBack()
}

func (p *ListItemPattern) snapBack() {
	p.setSwipe(0)
}

func (p *ListItemPattern) setSwipe(v float32) {
	if layout.NearEqual(v, p.swipe) {
		return
	}
	p.swipe = v
	if host, ok := p.Host(); ok {
		host.MarkDirtyNode(layout.FlagUpdateLayout)
	}
}
