package layout

// MeasureFunc measures a custom layout. It receives the wrapper so it can
// measure children with constraints of its choosing and must set the frame
// size, typically through PerformMeasureSelf.
type MeasureFunc func(w *Wrapper)

// LayoutFunc positions the children of a custom layout. Place children with
// PlaceChild.
type LayoutFunc func(w *Wrapper)

// CustomAlgorithm hands measure and layout to caller-supplied closures, the
// way script-driven components lay themselves out. A missing closure falls
// back to box behaviour.
type CustomAlgorithm struct {
	MeasureContentFunc func(c Constraint) (SizeF, bool)
	MeasureFunc        MeasureFunc
	LayoutFunc         LayoutFunc
}

var _ Algorithm = (*CustomAlgorithm)(nil)

// MeasureContent delegates to MeasureContentFunc when set.
func (a *CustomAlgorithm) MeasureContent(c Constraint, _ *Wrapper) (SizeF, bool) {
	if a.MeasureContentFunc == nil {
		return SizeF{}, false
	}
	return a.MeasureContentFunc(c)
}

// Measure delegates to MeasureFunc.
func (a *CustomAlgorithm) Measure(w *Wrapper) {
	if a.MeasureFunc == nil {
		BoxAlgorithm{}.Measure(w)
		return
	}
	a.MeasureFunc(w)
}

// Layout delegates to LayoutFunc.
func (a *CustomAlgorithm) Layout(w *Wrapper) {
	if a.LayoutFunc == nil {
		BoxAlgorithm{}.Layout(w)
		return
	}
	a.LayoutFunc(w)
}

// PlaceChild positions child at offset relative to w's frame and lays it out.
func PlaceChild(w, child *Wrapper, offset OffsetF) {
	placeChild(w, child, offset)
}

// MarginBoxSize returns a child's frame size including its margin.
func MarginBoxSize(child *Wrapper) SizeF {
	return marginBoxSize(child)
}
