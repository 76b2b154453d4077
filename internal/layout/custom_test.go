package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomAlgorithm_Diagonal(t *testing.T) {
	alg := &CustomAlgorithm{
		MeasureFunc: func(w *Wrapper) {
			c := UnboundedConstraint()
			var extent SizeF
			for _, child := range w.ActiveChildren() {
				child.Measure(&c)
				s := MarginBoxSize(child)
				extent = extent.Add(s.Width, s.Height)
			}
			PerformMeasureSelf(w, &extent)
		},
		LayoutFunc: func(w *Wrapper) {
			var pos OffsetF
			for _, child := range w.ActiveChildren() {
				PlaceChild(w, child, pos)
				s := child.Geometry().FrameSize()
				pos = pos.Add(OffsetF{X: s.Width, Y: s.Height})
			}
		},
	}
	root := node(1, alg, nil)
	a, b := leaf(2, 10, 20), leaf(3, 30, 5)
	root.AppendChild(a)
	root.AppendChild(b)

	Run(root, UnboundedConstraint())

	assert.Equal(t, NewSize(40, 25), root.Geometry().FrameSize())
	assertFrame(t, a, rect(0, 0, 10, 20))
	assertFrame(t, b, rect(10, 20, 30, 5))
}

func TestCustomAlgorithm_FallsBackToBox(t *testing.T) {
	root := node(1, &CustomAlgorithm{}, nil)
	child := leaf(2, 10, 10)
	root.AppendChild(child)

	Run(root, FixedConstraint(NewSize(30, 30)))

	assertFrame(t, child, rect(10, 10, 10, 10))
}

func TestCustomAlgorithm_MeasureContent(t *testing.T) {
	var seen Constraint
	root := node(1, &CustomAlgorithm{
		MeasureContentFunc: func(c Constraint) (SizeF, bool) {
			seen = c
			return NewSize(12, 8), true
		},
	}, func(p *Property) { p.Padding = EdgeAll(1) })

	Run(root, FixedConstraint(NewSize(50, 50)))

	assert.Equal(t, float32(48), seen.MaxSize.Width)
	// A pinned ideal size wins over content.
	assert.Equal(t, NewSize(50, 50), root.Geometry().FrameSize())
	size, ok := root.Geometry().ContentSize()
	assert.True(t, ok)
	assert.Equal(t, NewSize(12, 8), size)
}
