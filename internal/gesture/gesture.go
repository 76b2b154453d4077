package gesture

import "time"

// GestureInfo is the priority and mask a declared gesture combines with.
type GestureInfo struct {
	Priority GesturePriority
	Mask     GestureMask
}

// Info returns the gesture's combination settings.
func (i GestureInfo) Info() GestureInfo { return i }

// Gesture describes a gesture a component declares. Descriptors are cheap
// values recreated on every update; the hub reconciles the recognizers they
// create against the ones it already holds.
type Gesture interface {
	Info() GestureInfo
	CreateRecognizer() Recognizer
}

// TapGesture declares a tap with Count taps.
type TapGesture struct {
	GestureInfo
	Count    int
	OnAction func(GestureEvent)
}

// CreateRecognizer returns a click recognizer.
func (g TapGesture) CreateRecognizer() Recognizer {
	r := NewClickRecognizer(g.Count, g.OnAction)
	r.SetGestureInfo(g.Priority, g.Mask)
	return r
}

// PanGesture declares a pan.
type PanGesture struct {
	GestureInfo
	Direction PanDirection
	Distance  float32
	OnStart   func(GestureEvent)
	OnUpdate  func(GestureEvent)
	OnEnd     func(GestureEvent)
	OnCancel  func()
}

// CreateRecognizer returns a pan recognizer. A zero direction means any.
func (g PanGesture) CreateRecognizer() Recognizer {
	dir := g.Direction
	if dir == PanNone {
		dir = PanAll
	}
	dist := g.Distance
	if dist <= 0 {
		dist = DefaultPanDistance
	}
	r := NewPanRecognizer(dir, dist)
	r.OnStart, r.OnUpdate, r.OnEnd, r.OnCancel = g.OnStart, g.OnUpdate, g.OnEnd, g.OnCancel
	r.SetGestureInfo(g.Priority, g.Mask)
	return r
}

// LongPressGesture declares a long press.
type LongPressGesture struct {
	GestureInfo
	Duration    time.Duration
	OnAction    func(GestureEvent)
	OnActionEnd func(GestureEvent)
}

// CreateRecognizer returns a long-press recognizer.
func (g LongPressGesture) CreateRecognizer() Recognizer {
	r := NewLongPressRecognizer(g.Duration, g.OnAction)
	r.OnActionEnd = g.OnActionEnd
	r.SetGestureInfo(g.Priority, g.Mask)
	return r
}

// GroupMode picks how a GestureGroup combines its members.
type GroupMode uint8

const (
	GroupExclusive GroupMode = iota
	GroupParallel
)

// GestureGroup declares several gestures combined into one.
type GestureGroup struct {
	GestureInfo
	Mode     GroupMode
	Gestures []Gesture
}

// CreateRecognizer returns an exclusive or parallel recognizer over the
// members' recognizers.
func (g GestureGroup) CreateRecognizer() Recognizer {
	children := make([]Recognizer, 0, len(g.Gestures))
	for _, m := range g.Gestures {
		children = append(children, m.CreateRecognizer())
	}
	var r Recognizer
	if g.Mode == GroupParallel {
		r = NewParallelRecognizer(children, g.Priority)
	} else {
		r = NewExclusiveRecognizer(children, g.Priority)
	}
	r.SetGestureInfo(g.Priority, g.Mask)
	return r
}
