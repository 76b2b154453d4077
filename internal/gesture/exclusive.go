package gesture

import "time"

// ExclusiveRecognizer lets exactly one child win. Position in the list is
// precedence: a child that asks to win waits while any child before it is
// still detecting.
type ExclusiveRecognizer struct {
	base

	children []Recognizer
	winner   Recognizer
}

// NewExclusiveRecognizer groups children and takes over their arbitration.
func NewExclusiveRecognizer(children []Recognizer, priority GesturePriority) *ExclusiveRecognizer {
	r := &ExclusiveRecognizer{children: children}
	r.self = r
	r.priority = priority
	for _, c := range children {
		c.setArbiter(r)
	}
	return r
}

// Children returns the grouped recognizers in precedence order.
func (r *ExclusiveRecognizer) Children() []Recognizer { return r.children }

// Winner returns the child that won, if any.
func (r *ExclusiveRecognizer) Winner() Recognizer { return r.winner }

// HandleEvent routes the event to the winner once there is one, otherwise
// to every child still in the running.
func (r *ExclusiveRecognizer) HandleEvent(ev TouchEvent) bool {
	if r.state == StateFail {
		return false
	}
	if r.winner != nil {
		return r.winner.HandleEvent(ev)
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
		if r.winner != nil || r.state == StateFail {
			break
		}
	}
	return handled
}

func (r *ExclusiveRecognizer) adjudicate(child Recognizer, d disposal) {
	switch d {
	case accept:
		if r.winner != nil || r.state == StateFail {
			child.OnRejected()
			return
		}
		if r.blocked(child) {
			return
		}
		r.pick(child)
	case reject:
		if child == r.winner {
			r.winner = nil
			r.reject()
			return
		}
		if r.allFailed() {
			r.reject()
			return
		}
		r.promote()
	}
}

// blocked reports whether a child ahead of c is still undecided.
func (r *ExclusiveRecognizer) blocked(c Recognizer) bool {
	for _, other := range r.children {
		if other == c {
			return false
		}
		if s := other.State(); s == StateDetecting || s == StatePending {
			return true
		}
	}
	return false
}

// promote picks the first waiting child once nothing ahead of it is
// undecided.
func (r *ExclusiveRecognizer) promote() {
	if r.winner != nil {
		return
	}
	for _, c := range r.children {
		switch c.State() {
		case StateDetecting:
			return
		case StatePending:
			r.pick(c)
			return
		}
	}
}

func (r *ExclusiveRecognizer) pick(c Recognizer) {
	r.winner = c
	for _, other := range r.children {
		if other != c && other.State() != StateFail {
			other.OnRejected()
		}
	}
	r.accept()
}

func (r *ExclusiveRecognizer) allFailed() bool {
	for _, c := range r.children {
		if c.State() != StateFail {
			return false
		}
	}
	return true
}

// OnAccepted passes the win on to the chosen child.
func (r *ExclusiveRecognizer) OnAccepted() {
	r.state = StateSucceed
	if r.winner != nil {
		r.winner.OnAccepted()
	}
}

// OnRejected rejects every child still in the running.
func (r *ExclusiveRecognizer) OnRejected() {
	r.state = StateFail
	for _, c := range r.children {
		if c.State() != StateFail {
			c.OnRejected()
		}
	}
}

// Reset resets the group and its children.
func (r *ExclusiveRecognizer) Reset() {
	r.state = StateReady
	r.winner = nil
	for _, c := range r.children {
		c.Reset()
	}
}

// Poll forwards time to children that need it.
func (r *ExclusiveRecognizer) Poll(now time.Duration) {
	pollChildren(r.children, r.winner, now)
}

// ReconcileFrom reconciles child by child.
func (r *ExclusiveRecognizer) ReconcileFrom(other Recognizer) bool {
	o, ok := other.(*ExclusiveRecognizer)
	if !ok || !reconcileChildren(r.children, o.children) {
		return false
	}
	r.reconcileInfo(o)
	return true
}

func reconcileChildren(current, next []Recognizer) bool {
	if len(current) != len(next) {
		return false
	}
	for i := range current {
		if !current[i].ReconcileFrom(next[i]) {
			return false
		}
	}
	return true
}

func pollChildren(children []Recognizer, only Recognizer, now time.Duration) {
	for _, c := range children {
		if only != nil && c != only {
			continue
		}
		if c.State() == StateFail {
			continue
		}
		if p, ok := c.(Poller); ok {
			p.Poll(now)
		}
	}
}
