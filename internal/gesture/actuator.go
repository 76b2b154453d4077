package gesture

import (
	"slices"
	"time"

	"github.com/grindlemire/go-ace/internal/layout"
)

// ClickActuator turns a node's click listeners into one click recognizer.
type ClickActuator struct {
	userCallback func(GestureEvent)
	events       []*func(GestureEvent)
	slop         float32
	recognizer   *ClickRecognizer
}

// SetUserCallback sets the component's own click handler, replacing any
// previous one.
func (a *ClickActuator) SetUserCallback(fn func(GestureEvent)) { a.userCallback = fn }

// AddClickEvent adds a listener and returns a handle for RemoveClickEvent.
func (a *ClickActuator) AddClickEvent(fn func(GestureEvent)) *func(GestureEvent) {
	h := &fn
	a.events = append(a.events, h)
	return h
}

// RemoveClickEvent removes a listener added with AddClickEvent.
func (a *ClickActuator) RemoveClickEvent(h *func(GestureEvent)) {
	a.events = slices.DeleteFunc(a.events, func(e *func(GestureEvent)) bool { return e == h })
}

// IsEmpty reports whether nothing listens for clicks.
func (a *ClickActuator) IsEmpty() bool {
	return a.userCallback == nil && len(a.events) == 0
}

func (a *ClickActuator) fire(ev GestureEvent) {
	for _, e := range slices.Clone(a.events) {
		(*e)(ev)
	}
	if a.userCallback != nil {
		a.userCallback(ev)
	}
}

// OnCollectTouchTarget contributes the click recognizer.
func (a *ClickActuator) OnCollectTouchTarget(offset layout.OffsetF, result *TouchTestResult) {
	if a.IsEmpty() {
		return
	}
	if a.recognizer == nil {
		a.recognizer = NewClickRecognizer(1, a.fire)
	}
	if a.slop > 0 {
		a.recognizer.Slop = a.slop
	}
	a.recognizer.SetCoordinateOffset(offset)
	*result = append(*result, a.recognizer)
}

// PanEvent bundles the callbacks of one pan listener.
type PanEvent struct {
	OnStart  func(GestureEvent)
	OnUpdate func(GestureEvent)
	OnEnd    func(GestureEvent)
	OnCancel func()
}

// PanActuator turns a node's pan listeners into one pan recognizer.
type PanActuator struct {
	direction  PanDirection
	distance   float32
	events     []*PanEvent
	recognizer *PanRecognizer
}

// NewPanActuator creates an actuator for drags in direction.
func NewPanActuator(direction PanDirection, distance float32) *PanActuator {
	return &PanActuator{direction: direction, distance: distance}
}

// AddPanEvent adds a listener.
func (a *PanActuator) AddPanEvent(e *PanEvent) { a.events = append(a.events, e) }

// RemovePanEvent removes a listener.
func (a *PanActuator) RemovePanEvent(e *PanEvent) {
	a.events = slices.DeleteFunc(a.events, func(o *PanEvent) bool { return o == e })
}

func (a *PanActuator) each(pick func(*PanEvent) func(GestureEvent)) func(GestureEvent) {
	return func(ev GestureEvent) {
		for _, e := range slices.Clone(a.events) {
			if fn := pick(e); fn != nil {
				fn(ev)
			}
		}
	}
}

// OnCollectTouchTarget contributes the pan recognizer.
func (a *PanActuator) OnCollectTouchTarget(offset layout.OffsetF, result *TouchTestResult) {
	if len(a.events) == 0 {
		return
	}
	if a.recognizer == nil {
		a.recognizer = NewPanRecognizer(a.direction, a.distance)
		a.recognizer.OnStart = a.each(func(e *PanEvent) func(GestureEvent) { return e.OnStart })
		a.recognizer.OnUpdate = a.each(func(e *PanEvent) func(GestureEvent) { return e.OnUpdate })
		a.recognizer.OnEnd = a.each(func(e *PanEvent) func(GestureEvent) { return e.OnEnd })
		a.recognizer.OnCancel = func() {
			for _, e := range slices.Clone(a.events) {
				if e.OnCancel != nil {
					e.OnCancel()
				}
			}
		}
	}
	a.recognizer.SetCoordinateOffset(offset)
	*result = append(*result, a.recognizer)
}

// LongPressActuator holds a node's long-press handler.
type LongPressActuator struct {
	duration   time.Duration
	onAction   func(GestureEvent)
	recognizer *LongPressRecognizer
}

// NewLongPressActuator creates an actuator firing onAction after duration.
func NewLongPressActuator(duration time.Duration, onAction func(GestureEvent)) *LongPressActuator {
	return &LongPressActuator{duration: duration, onAction: onAction}
}

// OnCollectTouchTarget contributes the long-press recognizer.
func (a *LongPressActuator) OnCollectTouchTarget(offset layout.OffsetF, result *TouchTestResult) {
	if a.onAction == nil {
		return
	}
	if a.recognizer == nil {
		a.recognizer = NewLongPressRecognizer(a.duration, a.onAction)
	}
	a.recognizer.SetCoordinateOffset(offset)
	*result = append(*result, a.recognizer)
}

// ScrollableActuator drives a scroll position from drags along one axis.
type ScrollableActuator struct {
	axis        layout.Axis
	onScroll    func(delta float32)
	onScrollEnd func()
	recognizer  *PanRecognizer
}

// NewScrollableActuator creates an actuator reporting scroll deltas along
// axis. A drag towards the start of the axis scrolls forward, so deltas are
// the negated finger movement.
func NewScrollableActuator(axis layout.Axis, onScroll func(delta float32), onScrollEnd func()) *ScrollableActuator {
	return &ScrollableActuator{axis: axis, onScroll: onScroll, onScrollEnd: onScrollEnd}
}

// Axis returns the scroll axis.
func (a *ScrollableActuator) Axis() layout.Axis { return a.axis }

func (a *ScrollableActuator) update(ev GestureEvent) {
	if a.onScroll == nil {
		return
	}
	if a.axis == layout.AxisHorizontal {
		a.onScroll(-ev.DeltaX)
		return
	}
	a.onScroll(-ev.DeltaY)
}

func (a *ScrollableActuator) end(GestureEvent) {
	if a.onScrollEnd != nil {
		a.onScrollEnd()
	}
}

// OnCollectTouchTarget contributes the scroll recognizer.
func (a *ScrollableActuator) OnCollectTouchTarget(offset layout.OffsetF, result *TouchTestResult) {
	if a.recognizer == nil {
		dir := PanVertical
		if a.axis == layout.AxisHorizontal {
			dir = PanHorizontal
		}
		a.recognizer = NewPanRecognizer(dir, DefaultPanDistance)
		a.recognizer.OnStart = a.update
		a.recognizer.OnUpdate = a.update
		a.recognizer.OnEnd = a.end
		a.recognizer.OnCancel = a.onScrollEnd
	}
	a.recognizer.SetCoordinateOffset(offset)
	*result = append(*result, a.recognizer)
}

// TouchEventActuator forwards raw touch events to listeners. It contributes
// a plain target, not a recognizer, so it never takes part in arbitration.
type TouchEventActuator struct {
	listeners []func(ev TouchEvent, local layout.OffsetF)
}

// AddTouchEvent adds a raw listener. It receives the event and its
// location local to the node.
func (a *TouchEventActuator) AddTouchEvent(fn func(ev TouchEvent, local layout.OffsetF)) {
	a.listeners = append(a.listeners, fn)
}

// OnCollectTouchTarget contributes a listener target.
func (a *TouchEventActuator) OnCollectTouchTarget(offset layout.OffsetF, result *TouchTestResult) {
	if len(a.listeners) == 0 {
		return
	}
	listeners := slices.Clone(a.listeners)
	*result = append(*result, TargetFunc(func(ev TouchEvent) bool {
		local := layout.OffsetF{X: ev.X, Y: ev.Y}.Sub(offset)
		for _, fn := range listeners {
			fn(ev, local)
		}
		return true
	}))
}
