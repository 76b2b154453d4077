package ace

import (
	"bytes"
	"image/color"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"

	"github.com/grindlemire/go-ace/internal/layout"
)

func TestLinearPattern_Column(t *testing.T) {
	h := newHarness(t)
	col := h.frameNode("column", NewColumn(10), func(lp *LayoutProperty) {
		lp.Measure.SelfIdealSize.Width = Percent(100)
	})
	var items []*FrameNode
	for i := 0; i < 3; i++ {
		n := h.frameNode("item", nil, sized(100, 50))
		h.add(col.ID(), n.ID())
		items = append(items, n)
	}
	h.load(t, col.ID())

	assert.Equal(t, Rect{Width: 1080, Height: 170}, col.GlobalRect())
	for i, n := range items {
		assert.Equal(t, Rect{X: 490, Y: float32(i) * 60, Width: 100, Height: 50}, n.GlobalRect(), "item %d", i)
	}
}

func TestGridPattern(t *testing.T) {
	h := newHarness(t)
	grid := h.frameNode("grid", &GridPattern{Columns: 2, ColumnGap: 20, RowGap: 10}, func(lp *LayoutProperty) {
		lp.SetSelfIdealSize(420, 300)
	})
	var cells []*FrameNode
	for i := 0; i < 3; i++ {
		n := h.frameNode("cell", nil, sized(200, 100))
		h.add(grid.ID(), n.ID())
		cells = append(cells, n)
	}
	h.load(t, grid.ID())

	want := []Offset{{X: 0, Y: 0}, {X: 220, Y: 0}, {X: 0, Y: 110}}
	for i, n := range cells {
		assert.Equal(t, want[i], n.GlobalRect().Offset(), "cell %d", i)
	}
}

func TestScrollPattern(t *testing.T) {
	h := newHarness(t)
	scroll := NewScrollPattern(AxisVertical)
	var positions []float32
	scroll.OnScroll(func(pos float32) { positions = append(positions, pos) })

	view := h.frameNode("scroll", scroll, fill)
	content := h.frameNode("content", nil, sized(1080, 3000))
	h.add(view.ID(), content.ID())
	h.load(t, view.ID())
	require.Equal(t, float32(756), scroll.ScrollableDistance())

	h.touch(TouchDown, 500, 1000)
	h.touch(TouchMove, 500, 900)
	h.touch(TouchMove, 500, 800)
	h.touch(TouchUp, 500, 800)
	assert.Equal(t, []float32{100, 200}, positions)
	h.frame()
	assert.Equal(t, float32(-200), content.GlobalRect().Y)

	t.Run("clamped to the content", func(t *testing.T) {
		h.ui(func() { scroll.ScrollTo(5000) })
		h.frame()
		assert.Equal(t, float32(756), scroll.Offset())
		assert.Equal(t, float32(-756), content.GlobalRect().Y)

		h.ui(func() { scroll.ScrollTo(-10) })
		h.frame()
		assert.Equal(t, float32(0), scroll.Offset())
	})

	t.Run("scroll from another thread is posted", func(t *testing.T) {
		h.js(func() { scroll.ScrollTo(50) })
		assert.Equal(t, float32(0), scroll.Offset())
		h.frame()
		assert.Equal(t, float32(50), scroll.Offset())
	})
}

func TestTextPattern_Wrap(t *testing.T) {
	type tc struct {
		text  string
		width float32
		want  []string
	}

	tests := map[string]tc{
		"empty": {
			text:  "",
			width: 100,
			want:  nil,
		},
		"fits": {
			text:  "hello world",
			width: 100,
			want:  []string{"hello world"},
		},
		"wraps at word": {
			text:  "hello world",
			width: 50,
			want:  []string{"hello", "world"},
		},
		"keeps explicit newlines": {
			text:  "a\nb",
			width: layout.Infinity,
			want:  []string{"a", "b"},
		},
		"long word keeps its line": {
			text:  "extraordinary hi",
			width: 30,
			want:  []string{"extraordinary", "hi"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := wrapText(basicfont.Face7x13, tt.text, tt.width)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("wrapText() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTextPattern_LayoutAndPaint(t *testing.T) {
	h := newHarness(t)
	pattern := NewTextPattern("one two three")
	text := h.frameNode("text", pattern, func(lp *LayoutProperty) {
		lp.Measure.SelfIdealSize.Width = Px(60)
	})
	h.js(func() {
		text.UpdatePaintProperty(func(pp *PaintProperty) {
			pp.Foreground = color.RGBA{R: 255, A: 255}
		})
	})
	h.load(t, text.ID())

	assert.Equal(t, []string{"one two", "three"}, pattern.Lines())
	assert.Equal(t, Size{Width: 60, Height: 26}, text.GlobalRect().Size())

	var texts []DrawCommand
	for _, c := range text.RenderContext().Commands() {
		if c.Op == OpText {
			texts = append(texts, c)
		}
	}
	require.Len(t, texts, 2)
	assert.Equal(t, "one two", texts[0].Text)
	assert.Equal(t, Offset{X: 0, Y: 11}, texts[0].Origin)
	assert.Equal(t, Offset{X: 0, Y: 24}, texts[1].Origin)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, texts[1].Color)
}

func TestBoxPattern_Paint(t *testing.T) {
	h := newHarness(t)
	box := h.frameNode("box", nil, func(lp *LayoutProperty) {
		lp.SetSelfIdealSize(100, 40)
		lp.BorderWidth = layout.EdgeAll(2)
	})
	h.js(func() {
		box.UpdatePaintProperty(func(pp *PaintProperty) {
			pp.Background = color.RGBA{B: 255, A: 255}
			pp.BorderColor = color.RGBA{A: 255}
		})
	})
	h.load(t, box.ID())

	cmds := box.RenderContext().Commands()
	require.NotEmpty(t, cmds)
	assert.Equal(t, OpRect, cmds[0].Op)
	assert.Equal(t, Rect{Width: 100, Height: 40}, cmds[0].Rect)
	assert.Equal(t, color.RGBA{B: 255, A: 255}, cmds[0].Color)
	assert.Len(t, cmds, 5, "background plus one rect per border side")

	paints := box.RenderContext().PaintCount()
	h.js(func() {
		box.SetVisibility(Invisible)
	})
	h.frame()
	assert.Greater(t, box.RenderContext().PaintCount(), paints)
	assert.Empty(t, box.RenderContext().Commands(), "invisible nodes record nothing")
}

func TestRenderContext_Children(t *testing.T) {
	h := newHarness(t)
	row := h.frameNode("row", NewRow(0), nil)
	a := h.frameNode("a", nil, sized(10, 10))
	b := h.frameNode("b", nil, sized(10, 10))
	h.add(row.ID(), a.ID())
	h.add(row.ID(), b.ID())
	h.load(t, row.ID())
	assert.Equal(t, []NodeID{a.ID(), b.ID()}, row.RenderContext().Children())

	h.js(func() { h.p.Tree().AddChild(row.ID(), b.ID(), 0) })
	h.frame()
	assert.Equal(t, []NodeID{b.ID(), a.ID()}, row.RenderContext().Children())
	assert.Equal(t, float32(10), a.GlobalRect().X-b.GlobalRect().X)
}

func TestCustomLayoutPattern(t *testing.T) {
	h := newHarness(t)
	pattern := &CustomLayoutPattern{
		Measure: func(w *layout.Wrapper) {
			for _, c := range w.ActiveChildren() {
				cc := w.Property().CreateChildConstraint()
				c.Measure(&cc)
			}
			layout.PerformMeasureSelf(w, &Size{Width: 300, Height: 300})
		},
		Layout: func(w *layout.Wrapper) {
			for i, c := range w.ActiveChildren() {
				layout.PlaceChild(w, c, Offset{X: float32(i) * 100, Y: float32(i) * 100})
			}
		},
	}
	host := h.frameNode("custom", pattern, nil)
	a := h.frameNode("a", nil, sized(50, 50))
	b := h.frameNode("b", nil, sized(50, 50))
	h.add(host.ID(), a.ID())
	h.add(host.ID(), b.ID())
	h.load(t, host.ID())

	assert.Equal(t, Size{Width: 300, Height: 300}, host.GlobalRect().Size())
	assert.Equal(t, Offset{X: 100, Y: 100}, b.GlobalRect().Offset())
}

func TestListItemPattern_Swipe(t *testing.T) {
	type tc struct {
		moveTo      float32
		wantDeleted bool
		wantX       float32
	}

	tests := map[string]tc{
		"short swipe snaps back": {moveTo: 700, wantX: 0},
		"past the ratio deletes": {moveTo: 300, wantDeleted: true, wantX: -1080},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			deleted := 0
			item := &ListItemPattern{OnDelete: func() { deleted++ }}
			row := h.frameNode("list_item", item, func(lp *LayoutProperty) {
				lp.Measure.SelfIdealSize.Width = Percent(100)
				lp.Measure.SelfIdealSize.Height = Px(100)
			})
			content := h.frameNode("content", nil, sized(1080, 100))
			h.add(row.ID(), content.ID())
			h.load(t, row.ID())

			h.touch(TouchDown, 900, 50)
			h.touch(TouchMove, tt.moveTo, 50)
			h.frame()
			assert.Equal(t, tt.moveTo-900, item.SwipeOffset())
			assert.Equal(t, tt.moveTo-900, content.GlobalRect().X)

			h.touch(TouchUp, tt.moveTo, 50)
			h.frame()
			assert.Equal(t, tt.wantDeleted, item.Deleted())
			assert.Equal(t, tt.wantX, content.GlobalRect().X)
			if tt.wantDeleted {
				assert.Equal(t, 1, deleted)
			} else {
				assert.Equal(t, 0, deleted)
			}
		})
	}
}

func TestListItemPattern_Ratio(t *testing.T) {
	h := newHarness(t, WithSwipeDeleteRatio(0.25))
	item := &ListItemPattern{}
	row := h.frameNode("list_item", item, func(lp *LayoutProperty) {
		lp.SetSelfIdealSize(400, 100)
	})
	h.load(t, row.ID())

	h.touch(TouchDown, 300, 50)
	h.touch(TouchMove, 190, 50)
	h.touch(TouchUp, 190, 50)
	h.frame()
	assert.True(t, item.Deleted())
	assert.Equal(t, float32(-400), item.SwipeOffset())
}

func TestDumpTree(t *testing.T) {
	h := newHarness(t)
	col := h.frameNode("column", NewColumn(0), func(lp *LayoutProperty) {
		lp.ID = "list"
		lp.Alignment = AlignmentTopStart
	})
	a := h.frameNode("box", nil, func(lp *LayoutProperty) {
		lp.ID = "a"
		lp.SetSelfIdealSize(10, 20)
	})
	h.add(col.ID(), a.ID())
	h.load(t, col.ID())

	dump, ok := h.p.Tree().DumpTree(h.p.RootID())
	require.True(t, ok)
	assert.Equal(t, RootTag, dump.Tag)

	found, ok := dump.Find("a")
	require.True(t, ok)
	assert.Equal(t, NodeDump{ID: a.ID(), Tag: "box", Key: "a", Width: 10, Height: 20}, found)

	_, ok = dump.Find("missing")
	assert.False(t, ok)

	list, _ := dump.Find("list")
	var buf bytes.Buffer
	require.NoError(t, list.WriteText(&buf))
	want := "column#list [" + itoa(col.ID()) + "] (0,0 10x20)\n" +
		"  box#a [" + itoa(a.ID()) + "] (0,0 10x20)\n"
	assert.Equal(t, want, buf.String())

	_, ok = h.p.Tree().DumpTree(12345)
	assert.False(t, ok)
}

func itoa(id NodeID) string {
	return strconv.FormatInt(int64(id), 10)
}
