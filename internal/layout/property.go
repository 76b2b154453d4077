package layout

// PropertyChangeFlag records which pipeline stages a property change affects.
type PropertyChangeFlag uint32

const (
	FlagNormal               PropertyChangeFlag = 0
	FlagUpdateMeasure        PropertyChangeFlag = 1 << 0
	FlagUpdateLayout         PropertyChangeFlag = 1 << 1
	FlagUpdateRender         PropertyChangeFlag = 1 << 2
	FlagUpdateByChildRequest PropertyChangeFlag = 1 << 3
	FlagUpdateChildren       PropertyChangeFlag = 1 << 4
)

// Has reports whether any bit of o is set in f.
func (f PropertyChangeFlag) Has(o PropertyChangeFlag) bool {
	return f&o != 0
}

// NeedsMeasure reports whether the flag requires a measure pass.
func (f PropertyChangeFlag) NeedsMeasure() bool {
	return f.Has(FlagUpdateMeasure | FlagUpdateByChildRequest | FlagUpdateChildren)
}

// NeedsLayout reports whether the flag requires at least a layout pass.
func (f PropertyChangeFlag) NeedsLayout() bool {
	return f.NeedsMeasure() || f.Has(FlagUpdateLayout)
}

// Visibility controls whether a node takes part in measure and paint.
type Visibility uint8

const (
	Visible   Visibility = iota // Measured and painted
	Invisible                   // Measured, not painted
	Gone                        // Neither measured nor painted
)

// Property holds a node's declared layout configuration and the constraint
// derived for it during the latest measure pass.
type Property struct {
	// ID names the node for sibling anchoring in relative layouts.
	ID string

	Measure     MeasureProperty
	Padding     Edges
	BorderWidth Edges
	Margin      Edges

	// Alignment positions children inside box layouts.
	Alignment Alignment

	// LayoutWeight shares leftover main-axis space in linear layouts.
	LayoutWeight float32

	// AlignRules anchor this node to siblings inside a relative container.
	AlignRules map[AlignDirection]AlignRule

	Visibility Visibility

	changeFlag        PropertyChangeFlag
	constraint        *Constraint
	contentConstraint *Constraint
}

// NewProperty creates a Property with auto sizing and centered alignment.
func NewProperty() *Property {
	return &Property{
		Measure: MeasureProperty{
			SelfIdealSize: CalcSize{Width: Auto(), Height: Auto()},
			MinSize:       CalcSize{Width: Auto(), Height: Auto()},
			MaxSize:       CalcSize{Width: Auto(), Height: Auto()},
		},
		Alignment: AlignmentCenter,
	}
}

// Clone returns a copy that shares no mutable state with p.
func (p *Property) Clone() *Property {
	out := *p
	if p.AlignRules != nil {
		out.AlignRules = make(map[AlignDirection]AlignRule, len(p.AlignRules))
		for k, v := range p.AlignRules {
			out.AlignRules[k] = v
		}
	}
	if p.constraint != nil {
		c := *p.constraint
		out.constraint = &c
	}
	if p.contentConstraint != nil {
		c := *p.contentConstraint
		out.contentConstraint = &c
	}
	return &out
}

// ChangeFlag returns the accumulated change flags.
func (p *Property) ChangeFlag() PropertyChangeFlag {
	return p.changeFlag
}

// AddChangeFlag accumulates flags until the next CleanDirty.
func (p *Property) AddChangeFlag(f PropertyChangeFlag) {
	p.changeFlag |= f
}

// CleanDirty resets the change flags after a pass has consumed them.
func (p *Property) CleanDirty() {
	p.changeFlag = FlagNormal
}

// PaddingAndBorder returns the combined inset of padding and border.
func (p *Property) PaddingAndBorder() Edges {
	return p.Padding.Add(p.BorderWidth)
}

// HasAlignRules reports whether the node declares relative anchors.
func (p *Property) HasAlignRules() bool {
	return len(p.AlignRules) > 0
}

// SetAlignRule declares one directional anchor.
func (p *Property) SetAlignRule(dir AlignDirection, rule AlignRule) {
	if p.AlignRules == nil {
		p.AlignRules = make(map[AlignDirection]AlignRule)
	}
	p.AlignRules[dir] = rule
}

// SetSelfIdealSize declares a fixed size in pixels.
func (p *Property) SetSelfIdealSize(w, h float32) {
	p.Measure.SelfIdealSize = CalcSize{Width: Px(w), Height: Px(h)}
}

// UpdateLayoutConstraint merges the parent's constraint with this node's
// declared size limits. An ideal size already pinned by the parent wins
// over the node's own declaration.
func (p *Property) UpdateLayoutConstraint(parent Constraint) {
	c := parent
	ref := parent.PercentReference
	c.applyLimits(p.Measure.MinSize.Resolve(ref), p.Measure.MaxSize.Resolve(ref))

	ideal := p.Measure.SelfIdealSize.Resolve(ref)
	if !c.SelfIdealSize.HasWidth && ideal.HasWidth {
		c.SelfIdealSize.SetWidth(ideal.Width)
	}
	if !c.SelfIdealSize.HasHeight && ideal.HasHeight {
		c.SelfIdealSize.SetHeight(ideal.Height)
	}
	c.checkSelfIdealSize()
	p.constraint = &c
}

// UpdateContentConstraint derives the content-box constraint from the
// merged layout constraint.
func (p *Property) UpdateContentConstraint() {
	if p.constraint == nil {
		p.contentConstraint = nil
		return
	}
	cc := p.constraint.Deflate(p.PaddingAndBorder())
	p.contentConstraint = &cc
}

// LayoutConstraint returns the merged constraint of the latest pass.
func (p *Property) LayoutConstraint() (Constraint, bool) {
	if p.constraint == nil {
		return Constraint{}, false
	}
	return *p.constraint, true
}

// ContentConstraint returns the content-box constraint of the latest pass.
func (p *Property) ContentConstraint() (Constraint, bool) {
	if p.contentConstraint == nil {
		return Constraint{}, false
	}
	return *p.contentConstraint, true
}

// CreateChildConstraint builds the constraint a container passes to its
// children by default: the content box as both limit and percent reference.
func (p *Property) CreateChildConstraint() Constraint {
	content, ok := p.ContentConstraint()
	if !ok {
		return UnboundedConstraint()
	}
	child := Constraint{
		MaxSize:          content.MaxSize,
		PercentReference: content.MaxSize,
	}
	if content.SelfIdealSize.HasWidth {
		child.MaxSize.Width = content.SelfIdealSize.Width
		child.PercentReference.Width = content.SelfIdealSize.Width
		child.ParentIdealSize.SetWidth(content.SelfIdealSize.Width)
	}
	if content.SelfIdealSize.HasHeight {
		child.MaxSize.Height = content.SelfIdealSize.Height
		child.PercentReference.Height = content.SelfIdealSize.Height
		child.ParentIdealSize.SetHeight(content.SelfIdealSize.Height)
	}
	return child
}

// IsMeasureBoundary reports whether a change inside this node cannot alter
// its own size, so measure requests from children stop here.
func (p *Property) IsMeasureBoundary() bool {
	ideal := p.Measure.SelfIdealSize
	return ideal.Width.Unit == UnitPx && ideal.Height.Unit == UnitPx
}

// contentIdeal returns the pinned content-box size along axis, if any.
func (p *Property) contentIdeal(axis Axis) (float32, bool) {
	if p.contentConstraint == nil {
		return 0, false
	}
	return p.contentConstraint.SelfIdealSize.Main(axis)
}
