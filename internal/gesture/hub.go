package gesture

import (
	"time"

	"github.com/grindlemire/go-ace/internal/debug"
	"github.com/grindlemire/go-ace/internal/layout"
)

// HitTestMode controls how a node takes part in touch testing.
type HitTestMode uint8

const (
	// HitTestDefault: the node responds and nodes behind it are not tested
	// once it is hit.
	HitTestDefault HitTestMode = iota
	// HitTestBlock: the node responds and blocks its children and
	// everything behind it.
	HitTestBlock
	// HitTestTransparent: the node and its children respond and nodes
	// behind it are still tested.
	HitTestTransparent
	// HitTestNone: the node itself does not respond; its children do.
	HitTestNone
)

// GestureEventHub holds the gesture registrations of one node and composes
// its recognizers at touch-test time.
type GestureEventHub struct {
	hostAlive func() bool

	hitTestMode HitTestMode
	touchSlop   float32

	scrollable *ScrollableActuator
	touchEvent *TouchEventActuator
	click      *ClickActuator
	longPress  *LongPressActuator
	pan        *PanActuator

	gestures         []Gesture
	gestureHierarchy []Recognizer
}

// NewGestureEventHub creates a hub. hostAlive reports whether the node that
// owns the hub is still in the tree; nil means always.
func NewGestureEventHub(hostAlive func() bool) *GestureEventHub {
	return &GestureEventHub{hostAlive: hostAlive, touchSlop: DefaultTouchSlop}
}

// SetHitTestMode sets how the node takes part in touch testing.
func (h *GestureEventHub) SetHitTestMode(m HitTestMode) { h.hitTestMode = m }

// HitTestMode returns the touch-test mode.
func (h *GestureEventHub) HitTestMode() HitTestMode { return h.hitTestMode }

// SetTouchSlop sets the movement tolerated before a click is cancelled.
func (h *GestureEventHub) SetTouchSlop(slop float32) {
	h.touchSlop = slop
	if h.click != nil {
		h.click.slop = slop
	}
}

// ClickActuator returns the click actuator, creating it on first use.
func (h *GestureEventHub) ClickActuator() *ClickActuator {
	if h.click == nil {
		h.click = &ClickActuator{slop: h.touchSlop}
	}
	return h.click
}

// SetUserOnClick sets the component's click handler.
func (h *GestureEventHub) SetUserOnClick(fn func(GestureEvent)) {
	h.ClickActuator().SetUserCallback(fn)
}

// AddClickEvent adds a click listener.
func (h *GestureEventHub) AddClickEvent(fn func(GestureEvent)) *func(GestureEvent) {
	return h.ClickActuator().AddClickEvent(fn)
}

// AddPanEvent adds a pan listener. The first call fixes direction and
// distance for the node.
func (h *GestureEventHub) AddPanEvent(e *PanEvent, direction PanDirection, distance float32) {
	if h.pan == nil {
		h.pan = NewPanActuator(direction, distance)
	}
	h.pan.AddPanEvent(e)
}

// RemovePanEvent removes a pan listener.
func (h *GestureEventHub) RemovePanEvent(e *PanEvent) {
	if h.pan != nil {
		h.pan.RemovePanEvent(e)
	}
}

// SetLongPressEvent sets the long-press handler.
func (h *GestureEventHub) SetLongPressEvent(duration time.Duration, fn func(GestureEvent)) {
	h.longPress = NewLongPressActuator(duration, fn)
}

// SetScrollableActuator installs the scroll actuator; nil removes it.
func (h *GestureEventHub) SetScrollableActuator(a *ScrollableActuator) { h.scrollable = a }

// AddTouchEvent adds a raw touch listener.
func (h *GestureEventHub) AddTouchEvent(fn func(ev TouchEvent, local layout.OffsetF)) {
	if h.touchEvent == nil {
		h.touchEvent = &TouchEventActuator{}
	}
	h.touchEvent.AddTouchEvent(fn)
}

// AddGesture declares a gesture. Declarations take effect at the next
// UpdateGestureHierarchy.
func (h *GestureEventHub) AddGesture(g Gesture) {
	h.gestures = append(h.gestures, g)
}

// SetGestures replaces the declared gestures.
func (h *GestureEventHub) SetGestures(gs []Gesture) {
	h.gestures = append([]Gesture(nil), gs...)
}

// ClearGestures removes every declared gesture.
func (h *GestureEventHub) ClearGestures() {
	h.gestures = nil
}

// GestureHierarchy returns the recognizers built from the declared gestures.
func (h *GestureEventHub) GestureHierarchy() []Recognizer {
	return h.gestureHierarchy
}

// IsResponsive reports whether the hub would contribute anything to a touch
// test.
func (h *GestureEventHub) IsResponsive() bool {
	return h.scrollable != nil ||
		(h.touchEvent != nil && len(h.touchEvent.listeners) > 0) ||
		(h.click != nil && !h.click.IsEmpty()) ||
		(h.longPress != nil && h.longPress.onAction != nil) ||
		(h.pan != nil && len(h.pan.events) > 0) ||
		len(h.gestureHierarchy) > 0
}

// ProcessTouchTestHit collects the node's targets at offset, merges them with
// the targets its children produced, and composes the recognizers among them
// into finalResult. Plain targets go to finalResult as they are.
func (h *GestureEventHub) ProcessTouchTestHit(offset layout.OffsetF, innerTargets TouchTestResult, finalResult *TouchTestResult) {
	var hits TouchTestResult
	if h.scrollable != nil {
		h.scrollable.OnCollectTouchTarget(offset, &hits)
	}
	if h.touchEvent != nil {
		h.touchEvent.OnCollectTouchTarget(offset, &hits)
	}
	if h.click != nil {
		h.click.OnCollectTouchTarget(offset, &hits)
	}
	if h.longPress != nil {
		h.longPress.OnCollectTouchTarget(offset, &hits)
	}
	if h.pan != nil {
		h.pan.OnCollectTouchTarget(offset, &hits)
	}

	var innerRecognizers []Recognizer
	for _, group := range []TouchTestResult{innerTargets, hits} {
		for _, t := range group {
			if r, ok := t.(Recognizer); ok {
				innerRecognizers = append(innerRecognizers, r)
				continue
			}
			*finalResult = append(*finalResult, t)
		}
	}
	h.ProcessTouchTestHierarchy(offset, innerRecognizers, finalResult)
}

// ProcessTouchTestHierarchy folds the declared gesture hierarchy over the
// inner recognizers and appends the result to finalResult.
//
// Inner recognizers are grouped exclusively when there is more than one.
// Each declared recognizer then either replaces the accumulation
// (MaskIgnoreInternal), runs in parallel with it (PriorityParallel), or
// competes with it exclusively, placed before it for PriorityLow and after
// it otherwise.
func (h *GestureEventHub) ProcessTouchTestHierarchy(offset layout.OffsetF, innerRecognizers []Recognizer, finalResult *TouchTestResult) {
	if h.hostAlive != nil && !h.hostAlive() {
		for _, r := range innerRecognizers {
			*finalResult = append(*finalResult, r)
		}
		return
	}

	var current Recognizer
	switch {
	case len(innerRecognizers) == 1:
		current = innerRecognizers[0]
	case len(innerRecognizers) > 1:
		current = NewExclusiveRecognizer(innerRecognizers, PriorityExclusive)
	}

	for _, r := range h.gestureHierarchy {
		if r == nil {
			continue
		}
		r.SetCoordinateOffset(offset)
		if current == nil || r.Mask() == MaskIgnoreInternal {
			current = r
			continue
		}
		switch p := r.Priority(); p {
		case PriorityParallel:
			current = NewParallelRecognizer([]Recognizer{current, r}, p)
		case PriorityLow:
			current = NewExclusiveRecognizer([]Recognizer{r, current}, p)
		default:
			current = NewExclusiveRecognizer([]Recognizer{current, r}, p)
		}
	}

	if current != nil {
		*finalResult = append(*finalResult, current)
	}
}

// UpdateGestureHierarchy brings the recognizers in line with the declared
// gestures. When the counts match and every existing recognizer reconciles
// with a freshly created one, the existing recognizers are kept. Otherwise
// the hierarchy is rebuilt. It reports whether a rebuild happened.
func (h *GestureEventHub) UpdateGestureHierarchy() bool {
	if len(h.gestures) == len(h.gestureHierarchy) {
		ok := true
		for i, g := range h.gestures {
			if !h.gestureHierarchy[i].ReconcileFrom(g.CreateRecognizer()) {
				ok = false
				break
			}
		}
		if ok {
			return false
		}
	}

	h.gestureHierarchy = h.gestureHierarchy[:0:0]
	for _, g := range h.gestures {
		r := g.CreateRecognizer()
		if r == nil {
			debug.Warn("gesture descriptor created no recognizer", "gesture", g)
			continue
		}
		info := g.Info()
		r.SetGestureInfo(info.Priority, info.Mask)
		h.gestureHierarchy = append(h.gestureHierarchy, r)
	}
	return true
}
