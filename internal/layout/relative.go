package layout

import (
	"errors"
	"fmt"

	"github.com/grindlemire/go-ace/internal/debug"
)

// ErrLayoutCycle is reported by a relative container whose children anchor
// to each other in a loop.
var ErrLayoutCycle = errors.New("relative layout: dependency cycle")

// RelativeAlgorithm positions children by their alignment rules, each of
// which anchors an edge or center line of the child to the container or to
// a sibling. Siblings are resolved in dependency order; a cycle aborts the
// whole container.
type RelativeAlgorithm struct {
	idNodeMap      map[string]*Wrapper
	nodeIDs        []string
	rules          map[string]map[AlignDirection]AlignRule
	reliedOnMap    map[string][]string
	incomingDegree map[string]int
	recordOffset   map[string]OffsetF
	resolved       map[string]bool
	order          []string

	containerSize SizeF
	err           error
}

var _ Algorithm = (*RelativeAlgorithm)(nil)

// Err returns the failure of the latest measure pass, if any.
func (r *RelativeAlgorithm) Err() error {
	return r.err
}

// MeasureContent reports no intrinsic content.
func (r *RelativeAlgorithm) MeasureContent(Constraint, *Wrapper) (SizeF, bool) {
	return SizeF{}, false
}

func (r *RelativeAlgorithm) reset() {
	r.idNodeMap = make(map[string]*Wrapper)
	r.nodeIDs = r.nodeIDs[:0]
	r.rules = make(map[string]map[AlignDirection]AlignRule)
	r.reliedOnMap = make(map[string][]string)
	r.incomingDegree = make(map[string]int)
	r.recordOffset = make(map[string]OffsetF)
	r.resolved = make(map[string]bool)
	r.order = r.order[:0]
	r.err = nil
}

// Measure sizes the container from its own constraint, then resolves and
// measures children in dependency order.
func (r *RelativeAlgorithm) Measure(w *Wrapper) {
	r.reset()
	PerformMeasureSelfFill(w, nil)
	r.containerSize = ContentBoxSize(w)

	free := r.collectNodesByID(w)
	r.getDependencyRelationship()
	if !r.preTopologicalLoopDetection() {
		r.err = fmt.Errorf("%w in container %q", ErrLayoutCycle, w.Tag())
		debug.Error("relative container has a dependency cycle, skipping children", "host", w.HostID(), "tag", w.Tag())
		return
	}

	childConstraint := w.property.CreateChildConstraint()
	for _, id := range free {
		c := childConstraint
		r.idNodeMap[id].Measure(&c)
		r.recordOffset[id] = OffsetF{}
		r.resolved[id] = true
	}

	r.order = r.topologicalSort()
	for _, id := range r.order {
		child := r.idNodeMap[id]
		c := r.calcLayoutParam(id, childConstraint)
		child.Measure(&c)
		size := child.geometry.FrameSize()
		r.recordOffset[id] = OffsetF{
			X: r.calcHorizontalOffset(id, size.Width),
			Y: r.calcVerticalOffset(id, size.Height),
		}
		r.resolved[id] = true
	}
}

// Layout places every resolved child at its recorded offset. Nothing is
// placed after a cycle.
func (r *RelativeAlgorithm) Layout(w *Wrapper) {
	if r.err != nil {
		return
	}
	origin := w.geometry.ContentOffset()
	for _, id := range r.nodeIDs {
		off, ok := r.recordOffset[id]
		if !ok {
			continue
		}
		placeChild(w, r.idNodeMap[id], origin.Add(off))
	}
}

// collectNodesByID indexes active children by id, generating ids for
// anonymous ones, and returns the ids of children without rules. Those sit
// at the top-left and are resolved before the dependency graph is walked.
func (r *RelativeAlgorithm) collectNodesByID(w *Wrapper) (free []string) {
	for i, child := range w.ActiveChildren() {
		id := child.property.ID
		if id == "" || r.idNodeMap[id] != nil {
			if id != "" {
				debug.Warn("duplicate id in relative container", "id", id, "host", child.HostID())
			}
			id = fmt.Sprintf("__relative_child_%d", i)
		}
		r.idNodeMap[id] = child
		r.nodeIDs = append(r.nodeIDs, id)
		if !child.property.HasAlignRules() {
			free = append(free, id)
			continue
		}
		r.rules[id] = child.property.AlignRules
	}
	return free
}

// getDependencyRelationship records, for every sibling anchor, which nodes
// rely on it, and counts each node's distinct unresolved anchors. Rules
// naming unknown anchors are dropped.
func (r *RelativeAlgorithm) getDependencyRelationship() {
	for id := range r.rules {
		r.incomingDegree[id] = 0
	}
	for _, id := range r.nodeIDs {
		rules, ok := r.rules[id]
		if !ok {
			continue
		}
		valid := make(map[AlignDirection]AlignRule, len(rules))
		anchors := make(map[string]bool)
		for dir, rule := range rules {
			if IsContainerAnchor(rule.Anchor) {
				valid[dir] = rule
				continue
			}
			if _, known := r.idNodeMap[rule.Anchor]; !known {
				debug.Warn("alignment rule anchors to unknown id, ignoring", "id", id, "anchor", rule.Anchor, "direction", dir.String())
				continue
			}
			valid[dir] = rule
			if _, inGraph := r.rules[rule.Anchor]; !inGraph || anchors[rule.Anchor] {
				continue
			}
			anchors[rule.Anchor] = true
			r.reliedOnMap[rule.Anchor] = append(r.reliedOnMap[rule.Anchor], id)
			r.incomingDegree[id]++
		}
		r.rules[id] = valid
	}
}

// kahn walks the graph from nodes with no unresolved anchors. Visit order
// follows child order among nodes that become ready together.
func (r *RelativeAlgorithm) kahn() []string {
	degree := make(map[string]int, len(r.incomingDegree))
	var queue []string
	for _, id := range r.nodeIDs {
		d, ok := r.incomingDegree[id]
		if !ok {
			continue
		}
		degree[id] = d
		if d == 0 {
			queue = append(queue, id)
		}
	}
	var visited []string
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited = append(visited, id)
		for _, dependent := range r.reliedOnMap[id] {
			degree[dependent]--
			if degree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}
	return visited
}

// preTopologicalLoopDetection reports whether every ruled node can be
// reached, i.e. the graph is acyclic.
func (r *RelativeAlgorithm) preTopologicalLoopDetection() bool {
	return len(r.kahn()) == len(r.incomingDegree)
}

// topologicalSort returns ruled nodes with every anchor before its
// dependents.
func (r *RelativeAlgorithm) topologicalSort() []string {
	return r.kahn()
}

// anchorLine returns the position of an anchor's start, center or end line
// along one axis, relative to the container's content origin.
func (r *RelativeAlgorithm) anchorLine(anchor string, horizontal bool, line int) float32 {
	var pos, length float32
	if IsContainerAnchor(anchor) {
		if horizontal {
			length = r.containerSize.Width
		} else {
			length = r.containerSize.Height
		}
	} else {
		off := r.recordOffset[anchor]
		size := r.idNodeMap[anchor].geometry.FrameSize()
		if horizontal {
			pos, length = off.X, size.Width
		} else {
			pos, length = off.Y, size.Height
		}
	}
	switch line {
	case 1:
		return pos + length/2
	case 2:
		return pos + length
	default:
		return pos
	}
}

func (r *RelativeAlgorithm) anchorExtent(anchor string, horizontal bool) float32 {
	if IsContainerAnchor(anchor) {
		if horizontal {
			return r.containerSize.Width
		}
		return r.containerSize.Height
	}
	size := r.idNodeMap[anchor].geometry.FrameSize()
	if horizontal {
		return size.Width
	}
	return size.Height
}

func ruleLine(rule AlignRule, horizontal bool) int {
	if horizontal {
		return int(rule.Horizontal)
	}
	return int(rule.Vertical)
}

// axisSize derives an exact size from two rules on one axis. start, middle
// and end are the directions of that axis.
func (r *RelativeAlgorithm) axisSize(rules map[AlignDirection]AlignRule, start, middle, end AlignDirection) (size float32, ok bool) {
	horizontal := start.IsHorizontal()
	line := func(dir AlignDirection) (float32, bool) {
		rule, has := rules[dir]
		if !has {
			return 0, false
		}
		return r.anchorLine(rule.Anchor, horizontal, ruleLine(rule, horizontal)), true
	}
	s, hasStart := line(start)
	m, hasMiddle := line(middle)
	e, hasEnd := line(end)
	switch {
	case hasStart && hasEnd:
		return e - s, true
	case hasStart && hasMiddle:
		return (m - s) * 2, true
	case hasMiddle && hasEnd:
		return (e - m) * 2, true
	}
	return 0, false
}

// calcLayoutParam builds the child's constraint. An axis with two rules gets
// an exact size; a non-positive size collapses the child to zero.
func (r *RelativeAlgorithm) calcLayoutParam(id string, base Constraint) Constraint {
	c := base
	rules := r.rules[id]
	width, hasWidth := r.axisSize(rules, AlignLeft, AlignMiddle, AlignRight)
	height, hasHeight := r.axisSize(rules, AlignTop, AlignCenter, AlignBottom)

	if (hasWidth && width <= 0) || (hasHeight && height <= 0) {
		debug.Warn("alignment rules give a non-positive size, collapsing", "id", id, "width", width, "height", height)
		zero := SizeF{}
		c.MinSize = zero
		c.MaxSize = zero
		c.SelfIdealSize = OptionalSize(0, 0)
		return c
	}
	if hasWidth {
		c.SelfIdealSize.SetWidth(width)
		c.MaxSize.Width = width
		c.MinSize.Width = min(c.MinSize.Width, width)
	}
	if hasHeight {
		c.SelfIdealSize.SetHeight(height)
		c.MaxSize.Height = height
		c.MinSize.Height = min(c.MinSize.Height, height)
	}
	return c
}

// calcHorizontalOffset applies the first of the left, middle and right
// rules present.
func (r *RelativeAlgorithm) calcHorizontalOffset(id string, itemWidth float32) float32 {
	rules := r.rules[id]
	for _, dir := range []AlignDirection{AlignLeft, AlignMiddle, AlignRight} {
		rule, ok := rules[dir]
		if !ok {
			continue
		}
		return r.anchorOrigin(rule.Anchor, true) +
			edgeOffset(dir-AlignLeft, int(rule.Horizontal), r.anchorExtent(rule.Anchor, true), itemWidth)
	}
	return 0
}

// calcVerticalOffset applies the first of the top, center and bottom rules
// present.
func (r *RelativeAlgorithm) calcVerticalOffset(id string, itemHeight float32) float32 {
	rules := r.rules[id]
	for _, dir := range []AlignDirection{AlignTop, AlignCenter, AlignBottom} {
		rule, ok := rules[dir]
		if !ok {
			continue
		}
		return r.anchorOrigin(rule.Anchor, false) +
			edgeOffset(dir-AlignTop, int(rule.Vertical), r.anchorExtent(rule.Anchor, false), itemHeight)
	}
	return 0
}

func (r *RelativeAlgorithm) anchorOrigin(anchor string, horizontal bool) float32 {
	if IsContainerAnchor(anchor) {
		return 0
	}
	off := r.recordOffset[anchor]
	if horizontal {
		return off.X
	}
	return off.Y
}

// edgeOffset is the item's start position relative to the anchor's start
// when the item's edge (0 start, 1 middle, 2 end) sits on the anchor's line
// (0 start, 1 center, 2 end).
func edgeOffset(edge AlignDirection, line int, anchorLen, itemLen float32) float32 {
	target := [3]float32{0, anchorLen / 2, anchorLen}[line%3]
	switch edge {
	case 1:
		return target - itemLen/2
	case 2:
		return target - itemLen
	default:
		return target
	}
}
