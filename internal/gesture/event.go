package gesture

import (
	"time"

	"github.com/chewxy/math32"

	"github.com/grindlemire/go-ace/internal/layout"
)

// TouchType is the phase of a touch point.
type TouchType uint8

const (
	TouchDown TouchType = iota
	TouchMove
	TouchUp
	TouchCancel
)

func (t TouchType) String() string {
	switch t {
	case TouchDown:
		return "down"
	case TouchMove:
		return "move"
	case TouchUp:
		return "up"
	case TouchCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// TouchEvent is one raw touch sample in root coordinates.
type TouchEvent struct {
	ID   int
	Type TouchType
	X, Y float32
	// Time is a monotonic timestamp.
	Time time.Duration
}

// distance returns how far the event is from (x, y).
func (e TouchEvent) distance(x, y float32) float32 {
	dx, dy := e.X-x, e.Y-y
	return math32.Sqrt(dx*dx + dy*dy)
}

// GestureEvent is what recognizers report to callbacks. Locations are local
// to the node the recognizer belongs to.
type GestureEvent struct {
	X, Y             float32
	GlobalX, GlobalY float32
	// DeltaX and DeltaY are the movement since the previous update.
	DeltaX, DeltaY float32
	// OffsetX and OffsetY are the movement since the gesture started.
	OffsetX, OffsetY float32
	Count            int
	Time             time.Duration
}

func newGestureEvent(ev TouchEvent, origin layout.OffsetF) GestureEvent {
	return GestureEvent{
		X:       ev.X - origin.X,
		Y:       ev.Y - origin.Y,
		GlobalX: ev.X,
		GlobalY: ev.Y,
		Time:    ev.Time,
	}
}

// Target receives touch events. Recognizers are targets that also take part
// in arbitration; plain targets just listen.
type Target interface {
	HandleEvent(ev TouchEvent) bool
}

// TargetFunc adapts a function into a plain Target.
type TargetFunc func(ev TouchEvent) bool

// HandleEvent calls f.
func (f TargetFunc) HandleEvent(ev TouchEvent) bool {
	return f(ev)
}

// TouchTestResult is the ordered list of targets a touch test produced.
type TouchTestResult []Target

// Recognizers returns the recognizers in the result, in order.
func (r TouchTestResult) Recognizers() []Recognizer {
	var out []Recognizer
	for _, t := range r {
		if rec, ok := t.(Recognizer); ok {
			out = append(out, rec)
		}
	}
	return out
}
