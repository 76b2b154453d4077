package layout

// LinearAlgorithm lays children out in a row or column. Children with a
// LayoutWeight share whatever main-axis space the others leave.
type LinearAlgorithm struct {
	Axis       Axis
	Space      float32
	MainAlign  FlexAlign
	CrossAlign FlexAlign
}

var _ Algorithm = (*LinearAlgorithm)(nil)

// MeasureContent reports no intrinsic content.
func (a *LinearAlgorithm) MeasureContent(Constraint, *Wrapper) (SizeF, bool) {
	return SizeF{}, false
}

// Measure measures unweighted children first, then splits the remaining
// main-axis space between weighted children.
func (a *LinearAlgorithm) Measure(w *Wrapper) {
	base := w.property.CreateChildConstraint()
	content, _ := w.property.ContentConstraint()
	mainLimit, ok := content.SelfIdealSize.Main(a.Axis)
	if !ok {
		mainLimit = content.MaxSize.MainSize(a.Axis)
	}
	crossIdeal, hasCross := content.SelfIdealSize.Main(a.other())

	children := w.ActiveChildren()
	var used, cross, totalWeight float32
	measure := func(child *Wrapper, c Constraint) {
		if a.CrossAlign == FlexStretch && hasCross {
			c.SelfIdealSize.SetMain(a.other(), NonNegative(crossIdeal-a.crossMargin(child)))
		}
		child.Measure(&c)
		s := marginBoxSize(child)
		used += s.MainSize(a.Axis)
		cross = max(cross, s.CrossSize(a.Axis))
	}

	for _, child := range children {
		if child.property.LayoutWeight > 0 {
			totalWeight += child.property.LayoutWeight
			continue
		}
		measure(child, base)
	}
	if n := len(children); n > 1 {
		used += a.Space * float32(n-1)
	}

	remain := NonNegative(mainLimit - used)
	for _, child := range children {
		weight := child.property.LayoutWeight
		if weight <= 0 {
			continue
		}
		c := base
		if !IsInfinite(mainLimit) {
			c.SelfIdealSize.SetMain(a.Axis, NonNegative(remain*weight/totalWeight-a.mainMargin(child)))
		}
		measure(child, c)
	}

	extent := a.toSize(used, cross)
	PerformMeasureSelf(w, &extent)
}

// Layout distributes free space along the main axis and aligns children on
// the cross axis.
func (a *LinearAlgorithm) Layout(w *Wrapper) {
	children := w.ActiveChildren()
	if len(children) == 0 {
		return
	}
	content := ContentBoxSize(w)
	mainSize := content.MainSize(a.Axis)
	crossSize := content.CrossSize(a.Axis)

	var total float32
	for _, child := range children {
		total += marginBoxSize(child).MainSize(a.Axis)
	}
	total += a.Space * float32(len(children)-1)
	free := mainSize - total

	pos := justifyOffset(a.MainAlign, free, len(children))
	spacing := justifySpacing(a.MainAlign, free, len(children))
	origin := w.geometry.ContentOffset()
	for _, child := range children {
		s := marginBoxSize(child)
		crossPos := alignOffset(a.CrossAlign, crossSize, s.CrossSize(a.Axis))
		m := child.property.Margin
		var off OffsetF
		if a.Axis == AxisHorizontal {
			off = OffsetF{X: pos + m.Left, Y: crossPos + m.Top}
		} else {
			off = OffsetF{X: crossPos + m.Left, Y: pos + m.Top}
		}
		placeChild(w, child, origin.Add(off))
		pos += s.MainSize(a.Axis) + a.Space + spacing
	}
}

func (a *LinearAlgorithm) other() Axis {
	return otherAxis(a.Axis)
}

func (a *LinearAlgorithm) toSize(main, cross float32) SizeF {
	if a.Axis == AxisHorizontal {
		return SizeF{Width: main, Height: cross}
	}
	return SizeF{Width: cross, Height: main}
}

func (a *LinearAlgorithm) mainMargin(child *Wrapper) float32 {
	if a.Axis == AxisHorizontal {
		return child.property.Margin.Horizontal()
	}
	return child.property.Margin.Vertical()
}

func (a *LinearAlgorithm) crossMargin(child *Wrapper) float32 {
	if a.Axis == AxisHorizontal {
		return child.property.Margin.Vertical()
	}
	return child.property.Margin.Horizontal()
}

// justifyOffset returns the position of the first child for the given
// main-axis alignment.
func justifyOffset(align FlexAlign, free float32, count int) float32 {
	if free <= 0 || count == 0 {
		return 0
	}
	switch align {
	case FlexEnd:
		return free
	case FlexCenter:
		return free / 2
	case FlexSpaceAround:
		return free / float32(count*2)
	case FlexSpaceEvenly:
		return free / float32(count+1)
	default:
		return 0
	}
}

// justifySpacing returns the extra gap inserted between children.
func justifySpacing(align FlexAlign, free float32, count int) float32 {
	if free <= 0 || count <= 1 {
		return 0
	}
	switch align {
	case FlexSpaceBetween:
		return free / float32(count-1)
	case FlexSpaceAround:
		return free / float32(count)
	case FlexSpaceEvenly:
		return free / float32(count+1)
	default:
		return 0
	}
}

// alignOffset returns the cross-axis position of a child.
func alignOffset(align FlexAlign, crossSize, itemSize float32) float32 {
	switch align {
	case FlexEnd:
		return crossSize - itemSize
	case FlexCenter:
		return (crossSize - itemSize) / 2
	default:
		return 0
	}
}
