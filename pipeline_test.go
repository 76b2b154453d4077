package ace

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grindlemire/go-ace/internal/layout"
)

func dirtyLayoutIDs(s *UiTaskScheduler) []NodeID {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []NodeID
	s.dirtyLayout.each(func(_, _ NodeID, set dirtySet) {
		ids = append(ids, set.sorted()...)
	})
	return ids
}

func TestNewPipelineContext_Options(t *testing.T) {
	type tc struct {
		opts    []PipelineOption
		wantErr bool
	}

	tests := map[string]tc{
		"defaults":              {},
		"frame rate in range":   {opts: []PipelineOption{WithFrameRate(120)}},
		"frame rate zero":       {opts: []PipelineOption{WithFrameRate(0)}, wantErr: true},
		"frame rate too high":   {opts: []PipelineOption{WithFrameRate(1000)}, wantErr: true},
		"negative root":         {opts: []PipelineOption{WithRootSize(-1, 10)}, wantErr: true},
		"zero touch slop":       {opts: []PipelineOption{WithTouchSlop(0)}, wantErr: true},
		"zero long press":       {opts: []PipelineOption{WithLongPressDuration(0)}, wantErr: true},
		"swipe ratio above one": {opts: []PipelineOption{WithSwipeDeleteRatio(1.5)}, wantErr: true},
		"swipe ratio of one":    {opts: []PipelineOption{WithSwipeDeleteRatio(1)}},
		"long press customised": {opts: []PipelineOption{WithLongPressDuration(time.Second)}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := NewPipelineContext(NewManualExecutor(), nil, tt.opts...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, &HeadlessWindow{}, p.Window())
			assert.Same(t, p, p.Tree().Pipeline())
		})
	}

	_, err := NewPipelineContext(nil, nil)
	assert.Error(t, err, "an executor is required")
}

func TestPipeline_SetupRootElement(t *testing.T) {
	h := newHarness(t)
	root, ok := h.p.Tree().FrameNode(h.p.RootID())
	require.True(t, ok)
	stage, ok := h.p.Tree().FrameNode(h.p.StageID())
	require.True(t, ok)

	assert.Equal(t, RootTag, root.Tag())
	assert.Equal(t, root.ID(), stage.ParentID())
	assert.Equal(t, root.ID(), h.win.Root())
	assert.Equal(t, Rect{Width: 1080, Height: 2244}, root.GlobalRect())
	assert.Equal(t, Rect{Width: 1080, Height: 2244}, stage.GlobalRect())
	assert.Equal(t, StateIdle, h.p.State())

	var again *FrameNode
	h.js(func() { again = h.p.SetupRootElement() })
	assert.Same(t, root, again)
}

func TestPipeline_PhaseOrder(t *testing.T) {
	var phases []PipelineState
	h := newHarness(t, WithPhaseObserver(func(s PipelineState) { phases = append(phases, s) }))

	want := []PipelineState{StateRebuilding, StateLayoutRender, StateMessageFlush, StateIdle}
	if diff := cmp.Diff(want, phases); diff != "" {
		t.Errorf("phase order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []FrameRecord{{Timestamp: 0, Label: "vsync"}}, h.win.Frames())
	assert.Equal(t, uint64(1), h.p.Frame())
}

func TestPipeline_StagesRunInOrder(t *testing.T) {
	h := newHarness(t)
	var events []string

	box := h.frameNode("box", &CustomLayoutPattern{
		Layout: func(w *layout.Wrapper) { events = append(events, "layout") },
		Paint:  func(Canvas, *PaintWrapper) { events = append(events, "paint") },
	}, sized(10, 10))

	var custom *CustomNode
	h.js(func() {
		custom = h.p.Tree().CreateCustomNode("custom", InvalidNodeID, func() NodeID {
			events = append(events, "rebuild")
			return box.ID()
		})
		custom.MarkNeedRebuild()
	})
	h.win.PostMessage(func() { events = append(events, "message") })
	h.load(t, custom.ID())

	require.NotEmpty(t, events)
	assert.Equal(t, "rebuild", events[0])
	assert.Equal(t, "message", events[len(events)-1])
	assert.Less(t, indexOf(events, "layout"), indexOf(events, "paint"))
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

func TestPipeline_RelativeLayout(t *testing.T) {
	type child struct {
		id    string
		w, h  float32
		rules map[AlignDirection]AlignRule
	}
	type tc struct {
		children []child
		want     map[string]Rect
		wantErr  error
	}

	centered := map[AlignDirection]AlignRule{
		AlignMiddle: {Anchor: ContainerAnchor, Horizontal: HorizontalCenter},
		AlignCenter: {Anchor: ContainerAnchor, Vertical: VerticalCenter},
	}

	tests := map[string]tc{
		"centered in container": {
			children: []child{{id: "c", w: 200, h: 200, rules: centered}},
			want:     map[string]Rect{"c": {X: 440, Y: 1022, Width: 200, Height: 200}},
		},
		// Edge rules pin the top-left corner to the center lines.
		"left and top on container center lines": {
			children: []child{{id: "c", w: 200, h: 200, rules: map[AlignDirection]AlignRule{
				AlignLeft: {Anchor: ContainerAnchor, Horizontal: HorizontalCenter},
				AlignTop:  {Anchor: ContainerAnchor, Vertical: VerticalCenter},
			}}},
			want: map[string]Rect{"c": {X: 540, Y: 1122, Width: 200, Height: 200}},
		},
		"no rules sits at origin": {
			children: []child{{id: "c", w: 100, h: 50}},
			want:     map[string]Rect{"c": {Width: 100, Height: 50}},
		},
		"anchored to sibling": {
			children: []child{
				{id: "a", w: 200, h: 200, rules: centered},
				{id: "b", w: 100, h: 100, rules: map[AlignDirection]AlignRule{
					AlignLeft: {Anchor: "a", Horizontal: HorizontalEnd},
					AlignTop:  {Anchor: "a", Vertical: VerticalBottom},
				}},
			},
			want: map[string]Rect{
				"a": {X: 440, Y: 1022, Width: 200, Height: 200},
				"b": {X: 640, Y: 1222, Width: 100, Height: 100},
			},
		},
		"cycle aborts container": {
			children: []child{
				{id: "a", w: 10, h: 10, rules: map[AlignDirection]AlignRule{
					AlignLeft: {Anchor: "b", Horizontal: HorizontalEnd},
				}},
				{id: "b", w: 10, h: 10, rules: map[AlignDirection]AlignRule{
					AlignLeft: {Anchor: "a", Horizontal: HorizontalEnd},
				}},
			},
			wantErr: ErrLayoutCycle,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			pattern := &RelativeContainerPattern{}
			container := h.frameNode("relative", pattern, fill)
			nodes := map[string]*FrameNode{}
			for _, c := range tt.children {
				n := h.frameNode("box", nil, func(lp *LayoutProperty) {
					lp.ID = c.id
					lp.SetSelfIdealSize(c.w, c.h)
					for dir, rule := range c.rules {
						lp.SetAlignRule(dir, rule)
					}
				})
				h.add(container.ID(), n.ID())
				nodes[c.id] = n
			}
			h.load(t, container.ID())

			assert.Equal(t, Rect{Width: 1080, Height: 2244}, container.GlobalRect())
			if tt.wantErr != nil {
				assert.ErrorIs(t, pattern.Err(), tt.wantErr)
				return
			}
			require.NoError(t, pattern.Err())
			for id, want := range tt.want {
				assert.Equal(t, want, nodes[id].GlobalRect(), "node %s", id)
			}
		})
	}
}

func TestPipeline_MeasureClimbsToBoundary(t *testing.T) {
	h := newHarness(t)
	text := h.frameNode("text", NewTextPattern("hello"), nil)
	h.load(t, text.ID())
	assert.Equal(t, Rect{Width: 35, Height: 13}, text.GlobalRect())

	h.js(func() { text.Pattern().(*TextPattern).SetText("hello world") })
	assert.Equal(t, []NodeID{h.p.RootID()}, dirtyLayoutIDs(h.p.Scheduler()),
		"auto-sized content climbs to the fixed-size root")

	h.frame()
	assert.Equal(t, Rect{Width: 77, Height: 13}, text.GlobalRect())
	assert.True(t, h.p.Scheduler().IsEmpty())
}

func TestPipeline_MeasureBoundaryStops(t *testing.T) {
	h := newHarness(t)
	box := h.frameNode("box", nil, sized(100, 100))
	h.load(t, box.ID())

	h.js(func() { box.UpdateLayoutProperty(func(lp *LayoutProperty) { lp.Padding = layout.EdgeAll(5) }) })
	assert.Equal(t, []NodeID{box.ID()}, dirtyLayoutIDs(h.p.Scheduler()))
	h.frame()
	assert.Equal(t, Rect{Width: 100, Height: 100}, box.GlobalRect())
}

func TestPipeline_MarkOffThreadIsForwarded(t *testing.T) {
	h := newHarness(t)
	box := h.frameNode("box", nil, sized(100, 100))
	h.load(t, box.ID())

	requests := h.win.FrameRequests()
	h.ui(func() { box.MarkDirtyNode(FlagUpdateRender) })
	assert.True(t, h.p.Scheduler().IsEmpty(), "nothing is marked until the logic thread runs")
	h.exec.RunPending()
	assert.Equal(t, 1, h.p.Scheduler().DirtyRenderCount())
	assert.Greater(t, h.win.FrameRequests(), requests)
}

func TestPipeline_RebuildDedup(t *testing.T) {
	h := newHarness(t)
	box := h.frameNode("box", nil, sized(100, 100))
	renders := 0
	var custom *CustomNode
	h.js(func() {
		custom = h.p.Tree().CreateCustomNode("custom", InvalidNodeID, func() NodeID {
			renders++
			return box.ID()
		})
		custom.MarkNeedRebuild()
		custom.MarkNeedRebuild()
	})
	assert.True(t, h.p.HasIdleTasks())
	assert.Len(t, h.p.dirtyComposed, 1)

	h.load(t, custom.ID())
	assert.Equal(t, 1, renders)
	assert.Equal(t, 1, custom.Rebuilds())
	assert.False(t, custom.NeedRebuild())
	assert.False(t, h.p.HasIdleTasks())
	assert.Equal(t, box.ID(), custom.ChildID())
	assert.Equal(t, custom.ID(), box.ParentID())
	assert.Equal(t, Rect{Width: 100, Height: 100}, box.GlobalRect())

	h.frame()
	assert.Equal(t, 1, renders, "clean nodes are not rebuilt")
}

func TestPipeline_RebuildParentsFirst(t *testing.T) {
	h := newHarness(t)
	var order []string
	var outer, inner *CustomNode
	leaf := h.frameNode("leaf", nil, sized(10, 10))
	h.js(func() {
		tree := h.p.Tree()
		inner = tree.CreateCustomNode("inner", InvalidNodeID, func() NodeID {
			order = append(order, "inner")
			return leaf.ID()
		})
		outer = tree.CreateCustomNode("outer", InvalidNodeID, func() NodeID {
			order = append(order, "outer")
			return inner.ID()
		})
	})
	h.load(t, outer.ID())
	h.js(func() {
		outer.MarkNeedRebuild()
	})
	h.frame()
	h.js(func() {
		inner.MarkNeedRebuild()
		outer.MarkNeedRebuild()
	})
	order = nil
	h.frame()
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestPipeline_RebuildReplacesChild(t *testing.T) {
	h := newHarness(t)
	first := h.frameNode("first", nil, sized(10, 10))
	second := h.frameNode("second", nil, sized(20, 20))
	current := first
	var custom *CustomNode
	h.js(func() {
		custom = h.p.Tree().CreateCustomNode("custom", InvalidNodeID, func() NodeID { return current.ID() })
		custom.MarkNeedRebuild()
	})
	h.load(t, custom.ID())
	require.Equal(t, first.ID(), custom.ChildID())

	current = second
	h.js(custom.MarkNeedRebuild)
	h.frame()

	assert.Equal(t, second.ID(), custom.ChildID())
	_, ok := h.p.Tree().Node(first.ID())
	assert.False(t, ok, "replaced child is released by the sweep")
	assert.Equal(t, Rect{Width: 20, Height: 20}, second.GlobalRect())
}

func TestPipeline_Deactivation(t *testing.T) {
	t.Run("pop releases the page", func(t *testing.T) {
		h := newHarness(t)
		box := h.frameNode("box", nil, sized(10, 10))
		page := h.load(t, box.ID())
		require.Equal(t, []NodeID{page}, h.p.Pages())

		var popped bool
		h.js(func() { popped = h.p.PopPage() })
		assert.True(t, popped)
		_, ok := h.p.Tree().Node(page)
		assert.True(t, ok, "still in the arena until the sweep")

		h.frame()
		_, ok = h.p.Tree().Node(page)
		assert.False(t, ok)
		_, ok = h.p.Tree().Node(box.ID())
		assert.False(t, ok)
		assert.Empty(t, h.p.Pages())

		h.js(func() { popped = h.p.PopPage() })
		assert.False(t, popped)
	})

	t.Run("reattached before the sweep survives", func(t *testing.T) {
		h := newHarness(t)
		holder := h.frameNode("holder", nil, fill)
		box := h.frameNode("box", nil, sized(10, 10))
		h.add(holder.ID(), box.ID())
		h.load(t, holder.ID())

		h.js(func() {
			h.p.Tree().RemoveChild(holder.ID(), box.ID())
			h.p.Tree().AddChild(holder.ID(), box.ID(), -1)
		})
		h.frame()
		_, ok := h.p.Tree().Node(box.ID())
		assert.True(t, ok)
	})

	t.Run("deactivated custom node is not rebuilt", func(t *testing.T) {
		h := newHarness(t)
		leaf := h.frameNode("leaf", nil, sized(10, 10))
		renders := 0
		var custom *CustomNode
		h.js(func() {
			custom = h.p.Tree().CreateCustomNode("custom", InvalidNodeID, func() NodeID {
				renders++
				return leaf.ID()
			})
			custom.MarkNeedRebuild()
		})
		h.load(t, custom.ID())
		require.Equal(t, 1, renders)

		cleaned := false
		custom.OnCleanup(func() { cleaned = true })
		h.js(func() {
			h.p.PopPage()
			custom.MarkNeedRebuild()
		})
		h.frame()
		assert.Equal(t, 1, renders)
		assert.True(t, cleaned)
	})
}

func TestPipeline_SetRootRect(t *testing.T) {
	h := newHarness(t)
	box := h.frameNode("box", nil, fill)
	page := h.load(t, box.ID())

	h.js(func() { h.p.SetRootRect(500, 800, Offset{X: 10, Y: 20}) })
	h.frame()

	pageNode, ok := h.p.Tree().FrameNode(page)
	require.True(t, ok)
	assert.Equal(t, Rect{X: 10, Y: 20, Width: 500, Height: 800}, pageNode.GlobalRect())
	assert.Equal(t, Rect{X: 10, Y: 20, Width: 500, Height: 800}, box.GlobalRect())
	assert.Equal(t, box.GlobalRect(), box.RenderContext().FrameRect())
}

func TestPipeline_LoadPageErrors(t *testing.T) {
	errBoom := errors.New("boom")

	type tc struct {
		frontend Frontend
		is       error
	}

	tests := map[string]tc{
		"nil frontend": {frontend: nil},
		"frontend fails": {
			frontend: FrontendFunc(func(*PipelineContext) (NodeID, error) { return 0, errBoom }),
			is:       errBoom,
		},
		"unknown content": {
			frontend: FrontendFunc(func(*PipelineContext) (NodeID, error) { return 999, nil }),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			var err error
			h.js(func() { _, err = h.p.LoadPage(tt.frontend) })
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestPipeline_LoadPageFromOtherThread(t *testing.T) {
	h := newHarness(t)
	box := h.frameNode("box", nil, sized(10, 10))
	var onJS bool
	page, err := h.p.LoadPage(FrontendFunc(func(p *PipelineContext) (NodeID, error) {
		onJS = p.Executor().IsOnThread(TaskJS)
		return box.ID(), nil
	}))
	require.NoError(t, err)
	assert.True(t, onJS)
	assert.Equal(t, page, box.ParentID())
}

func TestPipeline_ThreadGates(t *testing.T) {
	h := newHarness(t)
	frames := len(h.win.Frames())

	h.js(func() { h.p.FlushVsync(0, 99) })
	assert.Len(t, h.win.Frames(), frames, "vsync off the UI thread is ignored")
	assert.NotEqual(t, uint64(99), h.p.Frame())

	box := h.frameNode("box", nil, nil)
	h.js(func() { h.p.AddDirtyRenderTree(box) })
	assert.Empty(t, h.p.dirtyRenderTree)
}

func TestPipeline_Run(t *testing.T) {
	t.Run("posts vsync only when requested", func(t *testing.T) {
		h := newHarness(t, WithFrameRate(240))
		h.p.frameRequested.Store(false)
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, h.p.Run(ctx), context.DeadlineExceeded)
		assert.Equal(t, 0, h.exec.Pending())

		box := h.frameNode("box", nil, nil)
		h.js(func() { box.MarkDirtyNode(FlagUpdateRender) })

		ctx2, cancel2 := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel2()
		h.p.Run(ctx2)
		h.exec.RunPending()
		assert.Greater(t, len(h.win.Frames()), 1)
	})

	t.Run("close stops the loop", func(t *testing.T) {
		h := newHarness(t)
		done := make(chan error, 1)
		go func() { done <- h.p.Run(context.Background()) }()
		require.NoError(t, h.p.Close())
		require.NoError(t, h.p.Close())
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("Run did not return after Close")
		}
	})
}

func TestPipelineState_String(t *testing.T) {
	tests := map[PipelineState]string{
		StateIdle:         "idle",
		StateRebuilding:   "rebuilding",
		StateLayoutRender: "layout-render",
		StateMessageFlush: "message-flush",
		PipelineState(42): "unknown",
	}
	for s, want := range tests {
		assert.Equal(t, want, s.String())
	}
}
