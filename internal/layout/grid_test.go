package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridAlgorithm_FixedWidth(t *testing.T) {
	grid := node(1, &GridAlgorithm{Columns: 3, ColumnGap: 10, RowGap: 5}, nil)
	heights := []float32{10, 30, 20, 15, 15}
	for i, h := range heights {
		grid.AppendChild(leaf(int64(i+2), 20, h))
	}

	Run(grid, FixedConstraint(NewSize(320, 200)))

	want := []RectF{
		rect(0, 0, 100, 10),
		rect(110, 0, 100, 30),
		rect(220, 0, 100, 20),
		rect(0, 35, 100, 15),
		rect(110, 35, 100, 15),
	}
	for i, child := range grid.Children() {
		assertFrame(t, child, want[i])
	}
	assertFrame(t, grid, rect(0, 0, 320, 200))
}

func TestGridAlgorithm_Unbounded(t *testing.T) {
	grid := node(1, &GridAlgorithm{Columns: 2, ColumnGap: 4, RowGap: 2}, nil)
	grid.AppendChild(leaf(2, 20, 10))
	grid.AppendChild(leaf(3, 40, 10))
	grid.AppendChild(leaf(4, 30, 10))

	Run(grid, UnboundedConstraint())

	assert.Equal(t, NewSize(84, 22), grid.Geometry().FrameSize())
	assert.Equal(t, NewOffset(44, 0), grid.ChildByIndex(1).Geometry().FrameOffset())
	assert.Equal(t, NewOffset(0, 12), grid.ChildByIndex(2).Geometry().FrameOffset())
}

func TestGridAlgorithm_ZeroColumnsActsAsOne(t *testing.T) {
	grid := node(1, &GridAlgorithm{}, nil)
	grid.AppendChild(leaf(2, 20, 10))
	grid.AppendChild(leaf(3, 20, 10))

	Run(grid, UnboundedConstraint())

	assert.Equal(t, NewOffset(0, 10), grid.ChildByIndex(1).Geometry().FrameOffset())
}
