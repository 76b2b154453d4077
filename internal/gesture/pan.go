package gesture

import "github.com/chewxy/math32"

// PanDirection is a bit set of the directions a pan may start in.
type PanDirection uint8

const (
	PanLeft PanDirection = 1 << iota
	PanRight
	PanUp
	PanDown

	PanNone       PanDirection = 0
	PanHorizontal              = PanLeft | PanRight
	PanVertical                = PanUp | PanDown
	PanAll                     = PanHorizontal | PanVertical
)

// PanRecognizer recognizes a drag that travels Distance in an allowed
// Direction. After it wins, every move is reported through OnUpdate.
type PanRecognizer struct {
	base

	Direction PanDirection
	Distance  float32

	OnStart  func(GestureEvent)
	OnUpdate func(GestureEvent)
	OnEnd    func(GestureEvent)
	OnCancel func()

	pressed        bool
	startX, startY float32
	lastX, lastY   float32
	last           TouchEvent
}

// NewPanRecognizer creates a pan recognizer.
func NewPanRecognizer(direction PanDirection, distance float32) *PanRecognizer {
	r := &PanRecognizer{Direction: direction, Distance: distance}
	r.self = r
	return r
}

// HandleEvent tracks the drag.
func (r *PanRecognizer) HandleEvent(ev TouchEvent) bool {
	if r.state == StateFail {
		return false
	}
	switch ev.Type {
	case TouchDown:
		r.state = StateDetecting
		r.pressed = true
		r.startX, r.startY = ev.X, ev.Y
		r.lastX, r.lastY = ev.X, ev.Y
	case TouchMove:
		if !r.pressed {
			return false
		}
		r.last = ev
		if r.state == StateSucceed {
			r.report(r.OnUpdate, ev)
			return true
		}
		if r.state == StateDetecting && r.reached(ev) {
			r.accept()
		}
	case TouchUp:
		if !r.pressed {
			return false
		}
		r.pressed = false
		if r.state == StateSucceed {
			r.report(r.OnEnd, ev)
			return true
		}
		r.reject()
	case TouchCancel:
		r.pressed = false
		if r.state == StateSucceed && r.OnCancel != nil {
			r.OnCancel()
		}
		r.reject()
	}
	return true
}

// reached reports whether the drag travelled far enough in an allowed
// direction.
func (r *PanRecognizer) reached(ev TouchEvent) bool {
	dx, dy := ev.X-r.startX, ev.Y-r.startY
	var travel float32
	if r.Direction&PanLeft != 0 && dx < 0 {
		travel = max(travel, -dx)
	}
	if r.Direction&PanRight != 0 && dx > 0 {
		travel = max(travel, dx)
	}
	if r.Direction&PanUp != 0 && dy < 0 {
		travel = max(travel, -dy)
	}
	if r.Direction&PanDown != 0 && dy > 0 {
		travel = max(travel, dy)
	}
	if r.Direction == PanAll {
		travel = math32.Sqrt(dx*dx + dy*dy)
	}
	return travel > 0 && travel >= r.Distance
}

func (r *PanRecognizer) report(fn func(GestureEvent), ev TouchEvent) {
	ge := newGestureEvent(ev, r.offset)
	ge.DeltaX, ge.DeltaY = ev.X-r.lastX, ev.Y-r.lastY
	ge.OffsetX, ge.OffsetY = ev.X-r.startX, ev.Y-r.startY
	r.lastX, r.lastY = ev.X, ev.Y
	if fn != nil {
		fn(ge)
	}
}

// OnAccepted starts the pan at the move that crossed the threshold.
func (r *PanRecognizer) OnAccepted() {
	r.state = StateSucceed
	r.report(r.OnStart, r.last)
}

// OnRejected marks the recognizer failed.
func (r *PanRecognizer) OnRejected() {
	r.state = StateFail
}

// Reset clears drag tracking.
func (r *PanRecognizer) Reset() {
	r.state = StateReady
	r.pressed = false
}

// ReconcileFrom adopts other's callbacks when direction and distance match.
func (r *PanRecognizer) ReconcileFrom(other Recognizer) bool {
	o, ok := other.(*PanRecognizer)
	if !ok || o.Direction != r.Direction || o.Distance != r.Distance {
		return false
	}
	r.OnStart, r.OnUpdate, r.OnEnd, r.OnCancel = o.OnStart, o.OnUpdate, o.OnEnd, o.OnCancel
	r.reconcileInfo(o)
	return true
}
