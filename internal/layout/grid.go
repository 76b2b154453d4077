package layout

// GridAlgorithm places children row by row into a fixed number of equal
// columns. Row height is the tallest child in the row.
type GridAlgorithm struct {
	Columns   int
	ColumnGap float32
	RowGap    float32
}

var _ Algorithm = (*GridAlgorithm)(nil)

// MeasureContent reports no intrinsic content.
func (g *GridAlgorithm) MeasureContent(Constraint, *Wrapper) (SizeF, bool) {
	return SizeF{}, false
}

func (g *GridAlgorithm) columns() int {
	if g.Columns < 1 {
		return 1
	}
	return g.Columns
}

// cellWidth returns the width of one column given the content width, or
// Infinity when the grid is horizontally unbounded.
func (g *GridAlgorithm) cellWidth(contentWidth float32) float32 {
	if IsInfinite(contentWidth) {
		return Infinity
	}
	cols := g.columns()
	return NonNegative((contentWidth - g.ColumnGap*float32(cols-1)) / float32(cols))
}

// Measure gives every child a column-wide constraint and sums row heights.
func (g *GridAlgorithm) Measure(w *Wrapper) {
	base := w.property.CreateChildConstraint()
	cell := g.cellWidth(base.MaxSize.Width)
	cols := g.columns()

	children := w.ActiveChildren()
	var rowHeight, height, widest float32
	for i, child := range children {
		c := base
		c.MaxSize.Width = cell
		if !IsInfinite(cell) {
			c.PercentReference.Width = cell
			c.SelfIdealSize.SetWidth(NonNegative(cell - child.property.Margin.Horizontal()))
		}
		child.Measure(&c)
		s := marginBoxSize(child)
		widest = max(widest, s.Width)
		rowHeight = max(rowHeight, s.Height)
		if (i+1)%cols == 0 || i == len(children)-1 {
			height += rowHeight
			if i != len(children)-1 {
				height += g.RowGap
			}
			rowHeight = 0
		}
	}

	n := min(len(children), cols)
	width := widest * float32(n)
	if !IsInfinite(cell) {
		width = cell * float32(n)
	}
	if n > 1 {
		width += g.ColumnGap * float32(n-1)
	}
	extent := SizeF{Width: width, Height: height}
	PerformMeasureSelf(w, &extent)
}

// Layout places children into their cells.
func (g *GridAlgorithm) Layout(w *Wrapper) {
	children := w.ActiveChildren()
	cols := g.columns()
	cell := g.cellWidth(ContentBoxSize(w).Width)
	if IsInfinite(cell) {
		cell = 0
		for _, child := range children {
			cell = max(cell, marginBoxSize(child).Width)
		}
	}
	origin := w.geometry.ContentOffset()

	var y, rowHeight float32
	for i, child := range children {
		col := i % cols
		if col == 0 && i > 0 {
			y += rowHeight + g.RowGap
			rowHeight = 0
		}
		m := child.property.Margin
		x := float32(col) * (cell + g.ColumnGap)
		placeChild(w, child, origin.Add(OffsetF{X: x + m.Left, Y: y + m.Top}))
		rowHeight = max(rowHeight, marginBoxSize(child).Height)
	}
}
