package gesture

import "time"

// ParallelRecognizer lets every child that recognizes its gesture fire.
// The group asks its own arbiter to win on the first child's request.
type ParallelRecognizer struct {
	base

	children []Recognizer
}

// NewParallelRecognizer groups children and takes over their arbitration.
func NewParallelRecognizer(children []Recognizer, priority GesturePriority) *ParallelRecognizer {
	r := &ParallelRecognizer{children: children}
	r.self = r
	r.priority = priority
	for _, c := range children {
		c.setArbiter(r)
	}
	return r
}

// Children returns the grouped recognizers.
func (r *ParallelRecognizer) Children() []Recognizer { return r.children }

// HandleEvent passes the event to every child still in the running.
func (r *ParallelRecognizer) HandleEvent(ev TouchEvent) bool {
	if r.state == StateFail {
		return false
	}
	if r.state == StateReady {
		r.state = StateDetecting
	}
	handled := false
	for _, c := range r.children {
		if c.State() == StateFail {
			continue
		}
		if c.HandleEvent(ev) {
			handled = true
		}
	}
	return handled
}

func (r *ParallelRecognizer) adjudicate(child Recognizer, d disposal) {
	switch d {
	case accept:
		switch r.state {
		case StateSucceed:
			child.OnAccepted()
		case StateFail:
			child.OnRejected()
		default:
			r.accept()
		}
	case reject:
		if r.state == StateSucceed {
			return
		}
		for _, c := range r.children {
			if c.State() != StateFail {
				return
			}
		}
		r.reject()
	}
}

// OnAccepted accepts every child waiting to win.
func (r *ParallelRecognizer) OnAccepted() {
	r.state = StateSucceed
	for _, c := range r.children {
		if c.State() == StatePending {
			c.OnAccepted()
		}
	}
}

// OnRejected rejects every child still in the running.
func (r *ParallelRecognizer) OnRejected() {
	r.state = StateFail
	for _, c := range r.children {
		if c.State() != StateFail {
			c.OnRejected()
		}
	}
}

// Reset resets the group and its children.
func (r *ParallelRecognizer) Reset() {
	r.state = StateReady
	for _, c := range r.children {
		c.Reset()
	}
}

// Poll forwards time to children that need it.
func (r *ParallelRecognizer) Poll(now time.Duration) {
	pollChildren(r.children, nil, now)
}

// ReconcileFrom reconciles child by child.
func (r *ParallelRecognizer) ReconcileFrom(other Recognizer) bool {
	o, ok := other.(*ParallelRecognizer)
	if !ok || !reconcileChildren(r.children, o.children) {
		return false
	}
	r.reconcileInfo(o)
	return true
}
