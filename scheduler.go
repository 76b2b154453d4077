package ace

import (
	"cmp"
	"slices"
	"sync"

	"github.com/grindlemire/go-ace/internal/debug"
)

// dirtySet holds node ids with the depth they had when marked. Iteration
// order is (depth, id), parents before children.
type dirtySet map[NodeID]int

func (s dirtySet) sorted() []NodeID {
	ids := make([]NodeID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b NodeID) int {
		if c := cmp.Compare(s[a], s[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return ids
}

// refresh re-reads each node's depth, dropping ids no longer in tree.
func (s dirtySet) refresh(tree *Tree) {
	for id := range s {
		n, ok := tree.Node(id)
		if !ok {
			delete(s, id)
			continue
		}
		s[id] = n.base().Depth()
	}
}

// dirtyBuckets groups dirty sets by root, then by page.
type dirtyBuckets map[NodeID]map[NodeID]dirtySet

func (b dirtyBuckets) add(root, page, id NodeID, depth int) {
	pages, ok := b[root]
	if !ok {
		pages = make(map[NodeID]dirtySet)
		b[root] = pages
	}
	set, ok := pages[page]
	if !ok {
		set = make(dirtySet)
		pages[page] = set
	}
	set[id] = depth
}

func (b dirtyBuckets) len() int {
	n := 0
	for _, pages := range b {
		for _, set := range pages {
			n += len(set)
		}
	}
	return n
}

// rebucket regroups the marked ids by each node's current root, page and
// depth, so nodes moved after they were marked flush where they are now.
// Released nodes are dropped.
func (b dirtyBuckets) rebucket(tree *Tree) dirtyBuckets {
	out := make(dirtyBuckets)
	for _, pages := range b {
		for _, set := range pages {
			for id := range set {
				n, ok := tree.Node(id)
				if !ok {
					continue
				}
				root, page := n.base().location()
				out.add(root, page, id, n.base().Depth())
			}
		}
	}
	return out
}

// each visits every bucket in (root, page) order.
func (b dirtyBuckets) each(fn func(root, page NodeID, set dirtySet)) {
	roots := make([]NodeID, 0, len(b))
	for r := range b {
		roots = append(roots, r)
	}
	slices.Sort(roots)
	for _, r := range roots {
		pages := make([]NodeID, 0, len(b[r]))
		for p := range b[r] {
			pages = append(pages, p)
		}
		slices.Sort(pages)
		for _, p := range pages {
			fn(r, p, b[r][p])
		}
	}
}

// UiTaskScheduler collects nodes that need layout or render and turns them
// into one batch task per page each frame. Marks arrive on the logic
// thread; batches run on the UI thread.
type UiTaskScheduler struct {
	mu          sync.Mutex
	executor    TaskExecutor
	tree        *Tree
	dirtyLayout dirtyBuckets
	dirtyRender dirtyBuckets
}

// NewUiTaskScheduler creates a scheduler posting to exec.
func NewUiTaskScheduler(exec TaskExecutor, tree *Tree) *UiTaskScheduler {
	return &UiTaskScheduler{
		executor:    exec,
		tree:        tree,
		dirtyLayout: make(dirtyBuckets),
		dirtyRender: make(dirtyBuckets),
	}
}

// AddDirtyLayoutNode schedules node for the next layout flush.
func (s *UiTaskScheduler) AddDirtyLayoutNode(node *FrameNode) {
	s.addDirty(node, "AddDirtyLayoutNode", func() dirtyBuckets { return s.dirtyLayout })
}

// AddDirtyRenderNode schedules node for the next render flush.
func (s *UiTaskScheduler) AddDirtyRenderNode(node *FrameNode) {
	s.addDirty(node, "AddDirtyRenderNode", func() dirtyBuckets { return s.dirtyRender })
}

func (s *UiTaskScheduler) addDirty(node *FrameNode, op string, buckets func() dirtyBuckets) {
	if !checkThread(s.executor, TaskJS, op) {
		return
	}
	if node == nil {
		debug.Warn("nil node", "op", op)
		return
	}
	root, page := node.location()
	depth := node.Depth()
	s.mu.Lock()
	buckets().add(root, page, node.id, depth)
	s.mu.Unlock()
}

// FlushLayoutTask swaps out the dirty layout sets and posts one task per
// page that lays its nodes out in depth order.
func (s *UiTaskScheduler) FlushLayoutTask() {
	if !checkThread(s.executor, TaskJS, "FlushLayoutTask") {
		return
	}
	s.mu.Lock()
	buckets := s.dirtyLayout
	s.dirtyLayout = make(dirtyBuckets)
	s.mu.Unlock()

	for _, batch := range s.buildBatches(buckets, (*FrameNode).createLayoutTask) {
		s.executor.PostTask(batch, TaskUI)
	}
}

// FlushRenderTask swaps out the dirty render sets and posts one task per
// page that paints its nodes in depth order.
func (s *UiTaskScheduler) FlushRenderTask() {
	if !checkThread(s.executor, TaskJS, "FlushRenderTask") {
		return
	}
	s.mu.Lock()
	buckets := s.dirtyRender
	s.dirtyRender = make(dirtyBuckets)
	s.mu.Unlock()

	for _, batch := range s.buildBatches(buckets, (*FrameNode).createRenderTask) {
		s.executor.PostTask(batch, TaskUI)
	}
}

// FlushTask flushes layout, then render.
func (s *UiTaskScheduler) FlushTask() {
	s.FlushLayoutTask()
	s.FlushRenderTask()
}

// FlushRenderTaskInUiThread runs the pending render batches in the caller,
// which must already be on the UI thread.
func (s *UiTaskScheduler) FlushRenderTaskInUiThread() {
	if !checkThread(s.executor, TaskUI, "FlushRenderTaskInUiThread") {
		return
	}
	s.mu.Lock()
	buckets := s.dirtyRender
	s.dirtyRender = make(dirtyBuckets)
	s.mu.Unlock()

	for _, batch := range s.buildBatches(buckets, (*FrameNode).createRenderTask) {
		batch()
	}
}

// buildBatches turns each bucket into a single closure. Nodes already gone
// from the arena are dropped here; nodes removed between posting and
// running are dropped by the per-node task.
func (s *UiTaskScheduler) buildBatches(buckets dirtyBuckets, task func(*FrameNode) func()) []func() {
	var batches []func()
	buckets.rebucket(s.tree).each(func(root, page NodeID, set dirtySet) {
		ids := set.sorted()
		tasks := make([]func(), 0, len(ids))
		for _, id := range ids {
			n, ok := s.tree.FrameNode(id)
			if !ok {
				continue
			}
			tasks = append(tasks, task(n))
		}
		if len(tasks) == 0 {
			return
		}
		debug.Log("batch root=%d page=%d nodes=%d", root, page, len(tasks))
		batches = append(batches, func() {
			for _, t := range tasks {
				t()
			}
		})
	})
	return batches
}

// IsEmpty reports whether nothing is waiting for layout or render.
func (s *UiTaskScheduler) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirtyLayout.len() == 0 && s.dirtyRender.len() == 0
}

// DirtyLayoutCount returns the number of nodes waiting for layout.
func (s *UiTaskScheduler) DirtyLayoutCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirtyLayout.len()
}

// DirtyRenderCount returns the number of nodes waiting for render.
func (s *UiTaskScheduler) DirtyRenderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirtyRender.len()
}
