package layout

// Constraint is the measuring contract a parent hands to a child.
type Constraint struct {
	MinSize          SizeF
	MaxSize          SizeF
	PercentReference SizeF
	ParentIdealSize  OptionalSizeF
	SelfIdealSize    OptionalSizeF
}

// UnboundedConstraint returns a constraint with no upper limit.
func UnboundedConstraint() Constraint {
	return Constraint{
		MaxSize:          SizeF{Width: Infinity, Height: Infinity},
		PercentReference: SizeF{Width: Infinity, Height: Infinity},
	}
}

// FixedConstraint pins both the ideal and the maximum size, the way a root
// or window surface constrains its content.
func FixedConstraint(size SizeF) Constraint {
	return Constraint{
		MaxSize:          size,
		PercentReference: size,
		SelfIdealSize:    OptionalSize(size.Width, size.Height),
	}
}

// Equal reports whether two constraints would produce the same measurement.
func (c Constraint) Equal(o Constraint) bool {
	return c.MinSize.Equal(o.MinSize) &&
		c.MaxSize.Equal(o.MaxSize) &&
		c.PercentReference.Equal(o.PercentReference) &&
		optionalEqual(c.ParentIdealSize, o.ParentIdealSize) &&
		optionalEqual(c.SelfIdealSize, o.SelfIdealSize)
}

func optionalEqual(a, b OptionalSizeF) bool {
	if a.HasWidth != b.HasWidth || a.HasHeight != b.HasHeight {
		return false
	}
	if a.HasWidth && !NearEqual(a.Width, b.Width) {
		return false
	}
	if a.HasHeight && !NearEqual(a.Height, b.Height) {
		return false
	}
	return true
}

// Constrain clamps size into [MinSize, MaxSize].
func (c Constraint) Constrain(size SizeF) SizeF {
	return size.Constrain(c.MinSize, c.MaxSize)
}

// Deflate shrinks the constraint by the given edges, producing the
// constraint that applies to the content box.
func (c Constraint) Deflate(e Edges) Constraint {
	h, v := e.Horizontal(), e.Vertical()
	out := c
	out.MinSize = SizeF{Width: NonNegative(c.MinSize.Width - h), Height: NonNegative(c.MinSize.Height - v)}
	if !IsInfinite(c.MaxSize.Width) {
		out.MaxSize.Width = NonNegative(c.MaxSize.Width - h)
	}
	if !IsInfinite(c.MaxSize.Height) {
		out.MaxSize.Height = NonNegative(c.MaxSize.Height - v)
	}
	if !IsInfinite(c.PercentReference.Width) {
		out.PercentReference.Width = NonNegative(c.PercentReference.Width - h)
	}
	if !IsInfinite(c.PercentReference.Height) {
		out.PercentReference.Height = NonNegative(c.PercentReference.Height - v)
	}
	if c.SelfIdealSize.HasWidth {
		out.SelfIdealSize.Width = NonNegative(c.SelfIdealSize.Width - h)
	}
	if c.SelfIdealSize.HasHeight {
		out.SelfIdealSize.Height = NonNegative(c.SelfIdealSize.Height - v)
	}
	return out
}

// applyLimits narrows the constraint by a component's declared min/max size,
// keeping a parent-imposed maximum when it is tighter.
func (c *Constraint) applyLimits(minSize, maxSize OptionalSizeF) {
	if maxSize.HasWidth && maxSize.Width < c.MaxSize.Width {
		c.MaxSize.Width = maxSize.Width
	}
	if maxSize.HasHeight && maxSize.Height < c.MaxSize.Height {
		c.MaxSize.Height = maxSize.Height
	}
	if minSize.HasWidth {
		c.MinSize.Width = minSize.Width
	}
	if minSize.HasHeight {
		c.MinSize.Height = minSize.Height
	}
	if c.MinSize.Width > c.MaxSize.Width {
		c.MaxSize.Width = c.MinSize.Width
	}
	if c.MinSize.Height > c.MaxSize.Height {
		c.MaxSize.Height = c.MinSize.Height
	}
}

// checkSelfIdealSize clamps a set ideal size into the min/max range.
func (c *Constraint) checkSelfIdealSize() {
	if c.SelfIdealSize.HasWidth {
		c.SelfIdealSize.Width = clamp(c.SelfIdealSize.Width, c.MinSize.Width, c.MaxSize.Width)
	}
	if c.SelfIdealSize.HasHeight {
		c.SelfIdealSize.Height = clamp(c.SelfIdealSize.Height, c.MinSize.Height, c.MaxSize.Height)
	}
}
