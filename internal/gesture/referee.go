package gesture

import (
	"time"

	"github.com/grindlemire/go-ace/internal/debug"
)

// GestureReferee runs touch sequences against the targets a touch test
// produced. Recognizers for one touch point compete exclusively, in result
// order; plain targets receive every event.
type GestureReferee struct {
	sequences map[int]*sequence
}

type sequence struct {
	root    *ExclusiveRecognizer
	targets []Target
}

// NewGestureReferee creates a referee with no active sequences.
func NewGestureReferee() *GestureReferee {
	return &GestureReferee{sequences: make(map[int]*sequence)}
}

// Begin installs result as the current set for touchID, replacing any
// sequence still running for it.
func (g *GestureReferee) Begin(touchID int, result TouchTestResult) {
	if old, ok := g.sequences[touchID]; ok {
		debug.Log("gesture referee: touch %d restarted before it ended", touchID)
		old.root.OnRejected()
	}
	seq := &sequence{}
	var recognizers []Recognizer
	for _, t := range result {
		if r, ok := t.(Recognizer); ok {
			recognizers = append(recognizers, r)
			continue
		}
		seq.targets = append(seq.targets, t)
	}
	seq.root = NewExclusiveRecognizer(recognizers, PriorityExclusive)
	seq.root.Reset()
	g.sequences[touchID] = seq
}

// Active reports whether touchID has a sequence in progress.
func (g *GestureReferee) Active(touchID int) bool {
	_, ok := g.sequences[touchID]
	return ok
}

// Current returns the composed recognizer for touchID.
func (g *GestureReferee) Current(touchID int) (*ExclusiveRecognizer, bool) {
	seq, ok := g.sequences[touchID]
	if !ok {
		return nil, false
	}
	return seq.root, true
}

// HandleEvent dispatches ev to the sequence of its touch point. The sequence
// ends on up or cancel. It reports whether anything handled the event.
func (g *GestureReferee) HandleEvent(ev TouchEvent) bool {
	seq, ok := g.sequences[ev.ID]
	if !ok {
		return false
	}
	handled := false
	for _, t := range seq.targets {
		if t.HandleEvent(ev) {
			handled = true
		}
	}
	if len(seq.root.Children()) > 0 && seq.root.HandleEvent(ev) {
		handled = true
	}
	if ev.Type == TouchUp || ev.Type == TouchCancel {
		if s := seq.root.State(); s != StateSucceed && s != StateFail {
			seq.root.OnRejected()
		}
		delete(g.sequences, ev.ID)
	}
	return handled
}

// Tick gives time-based recognizers a chance to fire while touches are held.
func (g *GestureReferee) Tick(now time.Duration) {
	for _, seq := range g.sequences {
		seq.root.Poll(now)
	}
}

// CancelAll cancels every running sequence.
func (g *GestureReferee) CancelAll() {
	for id, seq := range g.sequences {
		seq.root.HandleEvent(TouchEvent{ID: id, Type: TouchCancel})
		if seq.root.State() != StateFail {
			seq.root.OnRejected()
		}
		delete(g.sequences, id)
	}
}
