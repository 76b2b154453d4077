package gesture

import "time"

// ClickRecognizer recognizes Count taps that stay within Slop of where they
// went down, each following the previous within Interval.
type ClickRecognizer struct {
	base

	Count    int
	Slop     float32
	Interval time.Duration
	OnAction func(GestureEvent)

	downX, downY float32
	pressed      bool
	taps         int
	lastUp       time.Duration
	last         TouchEvent
}

// NewClickRecognizer creates a recognizer for count taps.
func NewClickRecognizer(count int, onAction func(GestureEvent)) *ClickRecognizer {
	r := &ClickRecognizer{
		Count:    max(count, 1),
		Slop:     DefaultTouchSlop,
		Interval: DefaultTapInterval,
		OnAction: onAction,
	}
	r.self = r
	return r
}

// HandleEvent advances tap detection.
func (r *ClickRecognizer) HandleEvent(ev TouchEvent) bool {
	if r.state != StateReady && r.state != StateDetecting {
		return false
	}
	switch ev.Type {
	case TouchDown:
		if r.taps > 0 && ev.Time-r.lastUp > r.Interval {
			r.reject()
			return false
		}
		r.state = StateDetecting
		r.downX, r.downY = ev.X, ev.Y
		r.pressed = true
	case TouchMove:
		if !r.pressed {
			return false
		}
		if ev.distance(r.downX, r.downY) > r.Slop {
			r.reject()
		}
	case TouchUp:
		if !r.pressed {
			return false
		}
		r.pressed = false
		if ev.distance(r.downX, r.downY) > r.Slop {
			r.reject()
			return true
		}
		r.taps++
		r.lastUp = ev.Time
		r.last = ev
		if r.taps >= r.Count {
			r.accept()
		}
	case TouchCancel:
		r.reject()
	}
	return true
}

// OnAccepted fires OnAction.
func (r *ClickRecognizer) OnAccepted() {
	r.state = StateSucceed
	if r.OnAction != nil {
		ev := newGestureEvent(r.last, r.offset)
		ev.Count = r.taps
		r.OnAction(ev)
	}
}

// OnRejected marks the recognizer failed.
func (r *ClickRecognizer) OnRejected() {
	r.state = StateFail
}

// Reset clears tap progress.
func (r *ClickRecognizer) Reset() {
	r.state = StateReady
	r.pressed = false
	r.taps = 0
}

// ReconcileFrom adopts other's callback when it counts the same taps.
func (r *ClickRecognizer) ReconcileFrom(other Recognizer) bool {
	o, ok := other.(*ClickRecognizer)
	if !ok || o.Count != r.Count {
		return false
	}
	r.OnAction = o.OnAction
	r.Slop = o.Slop
	r.Interval = o.Interval
	r.reconcileInfo(o)
	return true
}
