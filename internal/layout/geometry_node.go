package layout

// GeometryNode holds the measured and positioned geometry of one node.
// It is written only while its owner is measured or laid out.
type GeometryNode struct {
	frame              RectF
	content            SizeF
	hasContent         bool
	contentOffset      OffsetF
	parentGlobalOffset OffsetF
	parentConstraint   *Constraint
}

// NewGeometryNode returns an empty geometry.
func NewGeometryNode() *GeometryNode {
	return &GeometryNode{}
}

// Clone returns an independent copy.
func (g *GeometryNode) Clone() *GeometryNode {
	out := *g
	if g.parentConstraint != nil {
		c := *g.parentConstraint
		out.parentConstraint = &c
	}
	return &out
}

// Reset clears all geometry.
func (g *GeometryNode) Reset() {
	*g = GeometryNode{}
}

// FrameSize returns the border-box size.
func (g *GeometryNode) FrameSize() SizeF { return g.frame.Size() }

// SetFrameSize sets the border-box size.
func (g *GeometryNode) SetFrameSize(s SizeF) {
	g.frame.Width, g.frame.Height = s.Width, s.Height
}

// FrameOffset returns the position relative to the parent's frame.
func (g *GeometryNode) FrameOffset() OffsetF { return g.frame.Offset() }

// SetFrameOffset sets the position relative to the parent's frame.
func (g *GeometryNode) SetFrameOffset(o OffsetF) {
	g.frame.X, g.frame.Y = o.X, o.Y
}

// FrameRect returns offset and size together.
func (g *GeometryNode) FrameRect() RectF { return g.frame }

// ContentSize returns the content-box size if MeasureContent produced one.
func (g *GeometryNode) ContentSize() (SizeF, bool) {
	return g.content, g.hasContent
}

// SetContentSize records the content-box size.
func (g *GeometryNode) SetContentSize(s SizeF) {
	g.content, g.hasContent = s, true
}

// ResetContent forgets the content size before a new measure.
func (g *GeometryNode) ResetContent() {
	g.content, g.hasContent = SizeF{}, false
}

// ContentOffset returns the content box position inside the frame.
func (g *GeometryNode) ContentOffset() OffsetF { return g.contentOffset }

// SetContentOffset sets the content box position inside the frame.
func (g *GeometryNode) SetContentOffset(o OffsetF) { g.contentOffset = o }

// ParentGlobalOffset returns the parent's position in root coordinates.
func (g *GeometryNode) ParentGlobalOffset() OffsetF { return g.parentGlobalOffset }

// SetParentGlobalOffset records the parent's position in root coordinates.
func (g *GeometryNode) SetParentGlobalOffset(o OffsetF) { g.parentGlobalOffset = o }

// GlobalOffset returns the node's own position in root coordinates.
func (g *GeometryNode) GlobalOffset() OffsetF {
	return g.parentGlobalOffset.Add(g.frame.Offset())
}

// ParentConstraint returns the constraint the node was last measured with.
func (g *GeometryNode) ParentConstraint() (Constraint, bool) {
	if g.parentConstraint == nil {
		return Constraint{}, false
	}
	return *g.parentConstraint, true
}

// SetParentConstraint records the constraint used for the latest measure.
func (g *GeometryNode) SetParentConstraint(c Constraint) {
	g.parentConstraint = &c
}
