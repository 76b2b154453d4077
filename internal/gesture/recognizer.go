package gesture

import (
	"time"

	"github.com/grindlemire/go-ace/internal/layout"
)

// Defaults used when a recognizer is created without explicit settings.
const (
	DefaultTouchSlop         float32 = 8
	DefaultTapInterval               = 300 * time.Millisecond
	DefaultLongPressDuration         = 500 * time.Millisecond
	DefaultPanDistance       float32 = 5
)

// RefereeState is where a recognizer stands in arbitration.
type RefereeState uint8

const (
	StateReady RefereeState = iota
	StateDetecting
	// StatePending means the recognizer asked to win and waits for its
	// group to decide.
	StatePending
	StateSucceed
	StateFail
)

func (s RefereeState) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateDetecting:
		return "detecting"
	case StatePending:
		return "pending"
	case StateSucceed:
		return "succeed"
	case StateFail:
		return "fail"
	default:
		return "unknown"
	}
}

// GesturePriority decides how a declared gesture combines with the
// recognizers already collected for its node.
type GesturePriority uint8

const (
	// PriorityExclusive is placed after the recognizers already collected
	// in an exclusive group.
	PriorityExclusive GesturePriority = iota
	// PriorityLow is placed before them in the exclusive group.
	PriorityLow
	// PriorityHigh is placed after them like PriorityExclusive.
	PriorityHigh
	// PriorityParallel fires alongside them.
	PriorityParallel
)

func (p GesturePriority) String() string {
	switch p {
	case PriorityExclusive:
		return "exclusive"
	case PriorityLow:
		return "low"
	case PriorityHigh:
		return "high"
	case PriorityParallel:
		return "parallel"
	default:
		return "unknown"
	}
}

// GestureMask controls whether a declared gesture keeps the recognizers
// collected before it.
type GestureMask uint8

const (
	MaskNormal GestureMask = iota
	// MaskIgnoreInternal drops everything collected before the gesture,
	// including the node's own actuators and its children's recognizers.
	MaskIgnoreInternal
)

type disposal uint8

const (
	accept disposal = iota
	reject
)

// arbiter is a group that decides between the recognizers it holds.
type arbiter interface {
	adjudicate(r Recognizer, d disposal)
}

// Poller is implemented by recognizers that react to the passage of time
// while a touch is held.
type Poller interface {
	Poll(now time.Duration)
}

// Recognizer is a Target that takes part in arbitration. The set of
// implementations is closed to this package.
type Recognizer interface {
	Target

	State() RefereeState
	Priority() GesturePriority
	Mask() GestureMask
	SetGestureInfo(priority GesturePriority, mask GestureMask)
	SetCoordinateOffset(offset layout.OffsetF)

	// ReconcileFrom adopts the callbacks and settings of a freshly created
	// recognizer of the same shape. It reports false when the shapes differ
	// and the receiver must be replaced.
	ReconcileFrom(other Recognizer) bool

	// Reset returns the recognizer to StateReady for a new touch sequence.
	Reset()

	// OnAccepted and OnRejected are called by the owning group once it has
	// decided.
	OnAccepted()
	OnRejected()

	setArbiter(a arbiter)
}

// base carries the arbitration state shared by every recognizer. self points
// back at the embedding recognizer so group callbacks reach its overrides.
type base struct {
	self     Recognizer
	state    RefereeState
	priority GesturePriority
	mask     GestureMask
	offset   layout.OffsetF
	arbiter  arbiter
}

// State returns the arbitration state.
func (b *base) State() RefereeState { return b.state }

// Priority returns the declared priority.
func (b *base) Priority() GesturePriority { return b.priority }

// Mask returns the declared mask.
func (b *base) Mask() GestureMask { return b.mask }

// SetGestureInfo sets priority and mask.
func (b *base) SetGestureInfo(priority GesturePriority, mask GestureMask) {
	b.priority, b.mask = priority, mask
}

// SetCoordinateOffset sets the node origin used for local coordinates.
func (b *base) SetCoordinateOffset(offset layout.OffsetF) { b.offset = offset }

func (b *base) setArbiter(a arbiter) { b.arbiter = a }

// accept asks the owning group to let this recognizer win. A recognizer
// with no group wins immediately.
func (b *base) accept() {
	if b.state == StatePending || b.state == StateSucceed || b.state == StateFail {
		return
	}
	b.state = StatePending
	b.adjudicate(accept)
}

// reject drops out of arbitration.
func (b *base) reject() {
	if b.state == StateFail {
		return
	}
	b.state = StateFail
	b.adjudicate(reject)
}

func (b *base) adjudicate(d disposal) {
	if b.arbiter != nil {
		b.arbiter.adjudicate(b.self, d)
		return
	}
	if d == accept {
		b.self.OnAccepted()
		return
	}
	b.self.OnRejected()
}

func (b *base) reconcileInfo(other Recognizer) {
	b.priority = other.Priority()
	b.mask = other.Mask()
}
