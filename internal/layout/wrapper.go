package layout

import "github.com/grindlemire/go-ace/internal/debug"

// Wrapper pairs a node's geometry and property with a layout algorithm for
// one pass. The geometry and property pointers alias the persistent node's
// own instances, so results need no copy-back. A Wrapper must not outlive
// the pass that built it; HostID is its only link back to the tree.
type Wrapper struct {
	hostID    int64
	tag       string
	geometry  *GeometryNode
	property  *Property
	algorithm Algorithm
	children  []*Wrapper
	parent    *Wrapper

	active      bool
	skipMeasure bool

	frameBefore RectF
	measured    bool
	laidOut     bool
}

// NewWrapper creates a wrapper around a node's shared geometry and property.
func NewWrapper(hostID int64, tag string, geometry *GeometryNode, property *Property) *Wrapper {
	w := &Wrapper{
		hostID:   hostID,
		tag:      tag,
		geometry: geometry,
		property: property,
		active:   true,
	}
	if geometry != nil {
		w.frameBefore = geometry.FrameRect()
	}
	return w
}

// SetAlgorithm installs the strategy. With skipMeasure set the wrapper keeps
// its previous geometry as long as the incoming constraint is unchanged.
func (w *Wrapper) SetAlgorithm(a Algorithm, skipMeasure bool) {
	w.algorithm = a
	w.skipMeasure = skipMeasure
}

// Algorithm returns the installed strategy.
func (w *Wrapper) Algorithm() Algorithm { return w.algorithm }

// HostID returns the id of the tree node this wrapper was built from.
func (w *Wrapper) HostID() int64 { return w.hostID }

// Tag returns the host node's component tag.
func (w *Wrapper) Tag() string { return w.tag }

// Geometry returns the shared geometry.
func (w *Wrapper) Geometry() *GeometryNode { return w.geometry }

// Property returns the shared layout property.
func (w *Wrapper) Property() *Property { return w.property }

// Parent returns the wrapper this one was appended to, or nil for the root.
func (w *Wrapper) Parent() *Wrapper { return w.parent }

// AppendChild adds a child wrapper. Child order is paint and hit-test order.
func (w *Wrapper) AppendChild(child *Wrapper) {
	child.parent = w
	w.children = append(w.children, child)
}

// Children returns all child wrappers.
func (w *Wrapper) Children() []*Wrapper { return w.children }

// ChildByIndex returns the i-th child or nil.
func (w *Wrapper) ChildByIndex(i int) *Wrapper {
	if i < 0 || i >= len(w.children) {
		return nil
	}
	return w.children[i]
}

// ActiveChildren returns the children that take part in layout.
func (w *Wrapper) ActiveChildren() []*Wrapper {
	out := make([]*Wrapper, 0, len(w.children))
	for _, c := range w.children {
		if c.IsActive() {
			out = append(out, c)
		}
	}
	return out
}

// IsActive reports whether the wrapper participates in this pass.
func (w *Wrapper) IsActive() bool {
	return w.active && w.property != nil && w.property.Visibility != Gone
}

// SetActive toggles participation.
func (w *Wrapper) SetActive(active bool) { w.active = active }

// Measured reports whether Measure ran (was not skipped) in this pass.
func (w *Wrapper) Measured() bool { return w.measured }

// LaidOut reports whether Layout ran in this pass.
func (w *Wrapper) LaidOut() bool { return w.laidOut }

// FrameChanged reports whether the frame rect differs from before the pass.
func (w *Wrapper) FrameChanged() bool {
	return !w.frameBefore.Equal(w.geometry.FrameRect())
}

// ChildGlobalOffset is the parent global offset handed to children.
func (w *Wrapper) ChildGlobalOffset() OffsetF {
	return w.geometry.GlobalOffset()
}

// Walk visits w and its descendants depth-first, parents first.
func (w *Wrapper) Walk(fn func(*Wrapper)) {
	fn(w)
	for _, c := range w.children {
		c.Walk(fn)
	}
}

func (w *Wrapper) valid() bool {
	if w.property == nil || w.geometry == nil {
		debug.Error("layout wrapper without property or geometry", "host", w.hostID, "tag", w.tag)
		return false
	}
	if w.algorithm == nil {
		debug.Error("layout wrapper without algorithm", "host", w.hostID, "tag", w.tag)
		return false
	}
	return true
}

// Measure merges the parent constraint into the property, derives the
// content constraint, measures content and then delegates to the algorithm.
// A nil parent reuses the constraint of the previous pass.
func (w *Wrapper) Measure(parent *Constraint) {
	if !w.valid() {
		return
	}
	if !w.IsActive() {
		w.geometry.SetFrameSize(SizeF{})
		w.geometry.ResetContent()
		return
	}

	prev, hasPrev := w.geometry.ParentConstraint()
	var c Constraint
	switch {
	case parent != nil:
		c = *parent
	case hasPrev:
		c = prev
	}
	if w.skipMeasure && hasPrev && prev.Equal(c) {
		return
	}

	w.geometry.SetParentConstraint(c)
	w.property.UpdateLayoutConstraint(c)
	w.property.UpdateContentConstraint()
	content, _ := w.property.ContentConstraint()

	w.geometry.ResetContent()
	if size, ok := w.algorithm.MeasureContent(content, w); ok {
		w.geometry.SetContentSize(size)
	}
	w.algorithm.Measure(w)
	w.measured = true
}

// Layout stores the parent's global offset and lets the algorithm position
// children. Wrappers whose measure was skipped keep their layout unless
// their global position moved.
func (w *Wrapper) Layout(parentGlobalOffset *OffsetF) {
	if !w.valid() || !w.IsActive() {
		return
	}
	if w.skipMeasure && !w.measured {
		if parentGlobalOffset == nil || parentGlobalOffset.Equal(w.geometry.ParentGlobalOffset()) {
			return
		}
	}
	if parentGlobalOffset != nil {
		w.geometry.SetParentGlobalOffset(*parentGlobalOffset)
	}
	w.algorithm.Layout(w)
	w.laidOut = true
}

// placeChild writes a child's frame offset and lays it out.
func placeChild(w, child *Wrapper, offset OffsetF) {
	child.geometry.SetFrameOffset(offset)
	global := w.ChildGlobalOffset()
	child.Layout(&global)
}
