package ace

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirtySet_Sorted(t *testing.T) {
	type tc struct {
		set  dirtySet
		want []NodeID
	}

	tests := map[string]tc{
		"empty": {
			set:  dirtySet{},
			want: []NodeID{},
		},
		"parents before children": {
			set:  dirtySet{7: 3, 3: 1, 5: 2},
			want: []NodeID{3, 5, 7},
		},
		"ties broken by id": {
			set:  dirtySet{9: 2, 4: 2, 6: 1},
			want: []NodeID{6, 4, 9},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.set.sorted()); diff != "" {
				t.Errorf("sorted() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDirtyBuckets_Each(t *testing.T) {
	b := make(dirtyBuckets)
	b.add(10, 12, 100, 2)
	b.add(1, 3, 30, 1)
	b.add(1, 2, 20, 1)
	b.add(1, 2, 21, 1)

	type visit struct{ Root, Page NodeID }
	var got []visit
	b.each(func(root, page NodeID, set dirtySet) {
		got = append(got, visit{root, page})
	})

	want := []visit{{1, 2}, {1, 3}, {10, 12}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("bucket order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 4, b.len())
}

func TestScheduler_DepthOrder(t *testing.T) {
	exec := NewManualExecutor()
	tree := NewTree()
	s := NewUiTaskScheduler(exec, tree)

	var painted []string
	mk := func(tag string) *FrameNode {
		return tree.CreateFrameNode(tag, InvalidNodeID, &CustomLayoutPattern{
			Paint: func(Canvas, *PaintWrapper) { painted = append(painted, tag) },
		})
	}
	root := mk("root")
	mid := mk("mid")
	leaf := mk("leaf")
	tree.AddChild(root.ID(), mid.ID(), -1)
	tree.AddChild(mid.ID(), leaf.ID(), -1)

	exec.Run(TaskJS, func() {
		s.AddDirtyRenderNode(leaf)
		s.AddDirtyRenderNode(root)
		s.AddDirtyRenderNode(mid)
		s.AddDirtyRenderNode(mid)
	})
	assert.Equal(t, 3, s.DirtyRenderCount(), "a node marked twice is queued once")

	exec.Run(TaskJS, s.FlushRenderTask)
	assert.Equal(t, 0, s.DirtyRenderCount())
	assert.Equal(t, 1, exec.Pending(), "one batch per page")
	exec.RunPending()
	assert.Equal(t, []string{"root", "mid", "leaf"}, painted)
}

func TestScheduler_FlushIsAtomic(t *testing.T) {
	exec := NewManualExecutor()
	tree := NewTree()
	s := NewUiTaskScheduler(exec, tree)
	a := tree.CreateFrameNode("a", InvalidNodeID, nil)
	b := tree.CreateFrameNode("b", InvalidNodeID, nil)

	exec.Run(TaskJS, func() {
		s.AddDirtyRenderNode(a)
		s.FlushRenderTask()
		s.AddDirtyRenderNode(b)
	})

	assert.Equal(t, 1, s.DirtyRenderCount(), "marks after the swap wait for the next flush")
	assert.Equal(t, 1, exec.Pending())
	exec.RunPending()
	assert.Equal(t, 1, a.RenderContext().PaintCount())
	assert.Equal(t, 0, b.RenderContext().PaintCount())
}

func TestScheduler_MarkDuringPaintWaitsForNextFlush(t *testing.T) {
	h := newHarness(t)
	s := h.p.Scheduler()

	var n *FrameNode
	remarks := 1
	n = h.frameNode("box", &CustomLayoutPattern{
		Paint: func(Canvas, *PaintWrapper) {
			if remarks > 0 {
				remarks--
				n.MarkDirtyNode(FlagUpdateRender)
			}
		},
	}, nil)

	h.js(func() {
		h.p.AddDirtyRenderNode(n)
		s.FlushRenderTask()
	})
	require.Equal(t, 1, h.exec.Pending())

	require.True(t, h.exec.RunOne(), "render batch")
	assert.Equal(t, 1, n.RenderContext().PaintCount())
	assert.Equal(t, 0, s.DirtyRenderCount(), "a mark from the UI thread is forwarded, not applied")
	assert.Equal(t, 1, h.exec.Pending())

	require.True(t, h.exec.RunOne(), "forwarded mark")
	assert.Equal(t, 1, s.DirtyRenderCount(), "the mark lands after the batch that painted")
	assert.Equal(t, 1, n.RenderContext().PaintCount())

	h.js(s.FlushRenderTask)
	h.exec.RunPending()
	assert.Equal(t, 2, n.RenderContext().PaintCount())
	assert.True(t, s.IsEmpty())
}

func TestScheduler_FlushRenderTaskInUiThread(t *testing.T) {
	exec := NewManualExecutor()
	tree := NewTree()
	s := NewUiTaskScheduler(exec, tree)

	var painted []string
	mk := func(tag string) *FrameNode {
		return tree.CreateFrameNode(tag, InvalidNodeID, &CustomLayoutPattern{
			Paint: func(Canvas, *PaintWrapper) { painted = append(painted, tag) },
		})
	}
	root := mk("root")
	leaf := mk("leaf")
	tree.AddChild(root.ID(), leaf.ID(), -1)

	exec.Run(TaskJS, func() {
		s.AddDirtyRenderNode(leaf)
		s.AddDirtyRenderNode(root)
	})

	t.Run("rejected on the logic thread", func(t *testing.T) {
		exec.Run(TaskJS, s.FlushRenderTaskInUiThread)
		assert.Empty(t, painted)
		assert.Equal(t, 2, s.DirtyRenderCount())
		assert.Equal(t, 0, exec.Pending())
	})

	t.Run("paints in the caller on the UI thread", func(t *testing.T) {
		exec.Run(TaskUI, s.FlushRenderTaskInUiThread)
		assert.Equal(t, []string{"root", "leaf"}, painted)
		assert.Equal(t, 0, s.DirtyRenderCount())
		assert.Equal(t, 0, exec.Pending(), "nothing is posted")
	})
}

func TestScheduler_OrdersByDepthAtFlush(t *testing.T) {
	exec := NewManualExecutor()
	tree := NewTree()
	s := NewUiTaskScheduler(exec, tree)

	var painted []string
	mk := func(tag string) *FrameNode {
		return tree.CreateFrameNode(tag, InvalidNodeID, &CustomLayoutPattern{
			Paint: func(Canvas, *PaintWrapper) { painted = append(painted, tag) },
		})
	}
	// leaf has the lowest id and is detached when marked.
	leaf := mk("leaf")
	root := mk("root")
	mid := mk("mid")
	tree.AddChild(root.ID(), mid.ID(), -1)

	exec.Run(TaskJS, func() {
		s.AddDirtyRenderNode(leaf)
		s.AddDirtyRenderNode(mid)
	})
	tree.AddChild(mid.ID(), leaf.ID(), -1)

	exec.Run(TaskJS, s.FlushRenderTask)
	assert.Equal(t, 1, exec.Pending(), "a moved node joins its new page's batch")
	exec.RunPending()
	assert.Equal(t, []string{"mid", "leaf"}, painted)
}

func TestScheduler_ThreadGate(t *testing.T) {
	exec := NewManualExecutor()
	tree := NewTree()
	s := NewUiTaskScheduler(exec, tree)
	n := tree.CreateFrameNode("a", InvalidNodeID, nil)

	exec.Run(TaskUI, func() { s.AddDirtyLayoutNode(n) })
	s.AddDirtyLayoutNode(n)
	assert.True(t, s.IsEmpty(), "marks off the logic thread are rejected")

	exec.Run(TaskJS, func() { s.AddDirtyLayoutNode(nil) })
	assert.True(t, s.IsEmpty())

	exec.Run(TaskUI, s.FlushLayoutTask)
	assert.Equal(t, 0, exec.Pending())
}

func TestScheduler_DropsReleasedNodes(t *testing.T) {
	exec := NewManualExecutor()
	tree := NewTree()
	s := NewUiTaskScheduler(exec, tree)
	a := tree.CreateFrameNode("a", InvalidNodeID, nil)

	exec.Run(TaskJS, func() { s.AddDirtyRenderNode(a) })
	tree.destroy(a.ID())
	exec.Run(TaskJS, s.FlushRenderTask)
	assert.Equal(t, 0, exec.Pending(), "empty batches are not posted")
}
