package gesture

import "time"

// LongPressRecognizer recognizes a touch held in place for Duration. It
// needs Poll, or a later touch event, to notice that the time has passed.
type LongPressRecognizer struct {
	base

	Duration    time.Duration
	Slop        float32
	OnAction    func(GestureEvent)
	OnActionEnd func(GestureEvent)

	pressed  bool
	down     TouchEvent
	lastTime time.Duration
}

// NewLongPressRecognizer creates a long-press recognizer.
func NewLongPressRecognizer(duration time.Duration, onAction func(GestureEvent)) *LongPressRecognizer {
	if duration <= 0 {
		duration = DefaultLongPressDuration
	}
	r := &LongPressRecognizer{Duration: duration, Slop: DefaultTouchSlop, OnAction: onAction}
	r.self = r
	return r
}

// HandleEvent tracks the press.
func (r *LongPressRecognizer) HandleEvent(ev TouchEvent) bool {
	if r.state == StateFail {
		return false
	}
	switch ev.Type {
	case TouchDown:
		r.state = StateDetecting
		r.pressed = true
		r.down = ev
	case TouchMove:
		if !r.pressed {
			return false
		}
		if r.state != StateSucceed && ev.distance(r.down.X, r.down.Y) > r.Slop {
			r.reject()
			return true
		}
		r.Poll(ev.Time)
	case TouchUp:
		if !r.pressed {
			return false
		}
		r.Poll(ev.Time)
		r.pressed = false
		if r.state == StateSucceed {
			if r.OnActionEnd != nil {
				r.OnActionEnd(newGestureEvent(ev, r.offset))
			}
			return true
		}
		r.reject()
	case TouchCancel:
		r.pressed = false
		r.reject()
	}
	return true
}

// Poll accepts the press once it has been held for Duration.
func (r *LongPressRecognizer) Poll(now time.Duration) {
	if r.state != StateDetecting || !r.pressed {
		return
	}
	if now-r.down.Time >= r.Duration {
		r.lastTime = now
		r.accept()
	}
}

// OnAccepted fires OnAction at the press location.
func (r *LongPressRecognizer) OnAccepted() {
	r.state = StateSucceed
	if r.OnAction != nil {
		ev := newGestureEvent(r.down, r.offset)
		ev.Time = r.lastTime
		r.OnAction(ev)
	}
}

// OnRejected marks the recognizer failed.
func (r *LongPressRecognizer) OnRejected() {
	r.state = StateFail
}

// Reset clears press tracking.
func (r *LongPressRecognizer) Reset() {
	r.state = StateReady
	r.pressed = false
}

// ReconcileFrom adopts other's callbacks when the durations match.
func (r *LongPressRecognizer) ReconcileFrom(other Recognizer) bool {
	o, ok := other.(*LongPressRecognizer)
	if !ok || o.Duration != r.Duration {
		return false
	}
	r.OnAction, r.OnActionEnd = o.OnAction, o.OnActionEnd
	r.Slop = o.Slop
	r.reconcileInfo(o)
	return true
}
