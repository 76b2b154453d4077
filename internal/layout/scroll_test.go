package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrollAlgorithm(t *testing.T) {
	type tc struct {
		offset     float32
		wantOffset float32
	}

	tests := map[string]tc{
		"top":           {offset: 0, wantOffset: 0},
		"middle":        {offset: 50, wantOffset: 50},
		"past the end":  {offset: 500, wantOffset: 200},
		"before origin": {offset: -20, wantOffset: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			pos := tt.offset
			alg := &ScrollAlgorithm{Axis: AxisVertical, Offset: &pos}
			scroll := node(1, alg, nil)
			content := leaf(2, 100, 300)
			scroll.AppendChild(content)

			Run(scroll, FixedConstraint(NewSize(100, 100)))

			assert.Equal(t, NewSize(100, 100), scroll.Geometry().FrameSize())
			assert.Equal(t, float32(200), alg.ScrollableDistance())
			assert.Equal(t, tt.wantOffset, pos)
			assert.Equal(t, NewOffset(0, -tt.wantOffset), content.Geometry().FrameOffset())
		})
	}
}

func TestScrollAlgorithm_ShortContent(t *testing.T) {
	pos := float32(30)
	alg := &ScrollAlgorithm{Axis: AxisHorizontal, Offset: &pos}
	scroll := node(1, alg, nil)
	scroll.AppendChild(leaf(2, 50, 50))

	Run(scroll, FixedConstraint(NewSize(100, 100)))

	assert.Equal(t, float32(0), alg.ScrollableDistance())
	assert.Equal(t, float32(0), pos)
}
