package ace

import (
	"github.com/grindlemire/go-ace/internal/layout"
)

// BoxPattern stacks its children and aligns each by the node's Alignment.
type BoxPattern struct {
	BasePattern
}

// CreateLayoutAlgorithm returns a box algorithm.
func (p *BoxPattern) CreateLayoutAlgorithm() layout.Algorithm { return layout.BoxAlgorithm{} }

// CreatePaintMethod paints the background and border.
func (p *BoxPattern) CreatePaintMethod() PaintMethod { return backgroundPaint }

// LinearPattern lays children out in a row or column.
type LinearPattern struct {
	BasePattern
	Axis       layout.Axis
	Space      float32
	MainAlign  layout.FlexAlign
	CrossAlign layout.FlexAlign
}

// NewRow returns a horizontal linear pattern.
func NewRow(space float32) *LinearPattern {
	return &LinearPattern{Axis: layout.AxisHorizontal, Space: space, CrossAlign: layout.FlexCenter}
}

// NewColumn returns a vertical linear pattern.
func NewColumn(space float32) *LinearPattern {
	return &LinearPattern{Axis: layout.AxisVertical, Space: space, CrossAlign: layout.FlexCenter}
}

// CreateLayoutAlgorithm returns a linear algorithm with the pattern's
// settings.
func (p *LinearPattern) CreateLayoutAlgorithm() layout.Algorithm {
	return &layout.LinearAlgorithm{
		Axis:       p.Axis,
		Space:      p.Space,
		MainAlign:  p.MainAlign,
		CrossAlign: p.CrossAlign,
	}
}

// CreatePaintMethod paints the background and border.
func (p *LinearPattern) CreatePaintMethod() PaintMethod { return backgroundPaint }

// GridPattern places children in fixed columns, row by row.
type GridPattern struct {
	BasePattern
	Columns   int
	ColumnGap float32
	RowGap    float32
}

// CreateLayoutAlgorithm returns a grid algorithm.
func (p *GridPattern) CreateLayoutAlgorithm() layout.Algorithm {
	return &layout.GridAlgorithm{Columns: p.Columns, ColumnGap: p.ColumnGap, RowGap: p.RowGap}
}

// CreatePaintMethod paints the background and border.
func (p *GridPattern) CreatePaintMethod() PaintMethod { return backgroundPaint }

// CustomLayoutPattern hands measure and layout to caller closures. Unset
// closures behave like a box.
type CustomLayoutPattern struct {
	BasePattern
	MeasureContent func(c layout.Constraint) (layout.SizeF, bool)
	Measure        layout.MeasureFunc
	Layout         layout.LayoutFunc
	Paint          PaintFunc
}

// CreateLayoutAlgorithm returns a custom algorithm over the closures.
func (p *CustomLayoutPattern) CreateLayoutAlgorithm() layout.Algorithm {
	return &layout.CustomAlgorithm{
		MeasureContentFunc: p.MeasureContent,
		MeasureFunc:        p.Measure,
		LayoutFunc:         p.Layout,
	}
}

// CreatePaintMethod returns Paint, or the background paint when unset.
func (p *CustomLayoutPattern) CreatePaintMethod() PaintMethod {
	if p.Paint == nil {
		return backgroundPaint
	}
	return p.Paint
}

// RelativeContainerPattern positions children by their align rules.
type RelativeContainerPattern struct {
	BasePattern
	last *layout.RelativeAlgorithm
}

// CreateLayoutAlgorithm returns a fresh relative algorithm and keeps it so
// the outcome of the pass can be inspected.
func (p *RelativeContainerPattern) CreateLayoutAlgorithm() layout.Algorithm {
	p.last = &layout.RelativeAlgorithm{}
	return p.last
}

// CreatePaintMethod paints the background and border.
func (p *RelativeContainerPattern) CreatePaintMethod() PaintMethod { return backgroundPaint }

// Err returns the error of the latest pass, such as ErrLayoutCycle.
func (p *RelativeContainerPattern) Err() error {
	if p.last == nil {
		return nil
	}
	return p.last.Err()
}
