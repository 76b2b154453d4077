package ace

import "github.com/grindlemire/go-ace/internal/debug"

// RenderFunc builds a custom node's content and returns the id of its root.
// Returning the same id as last time keeps the existing subtree; node
// factories like GetOrCreateFrameNode make that the common case.
type RenderFunc func() NodeID

// CustomNode is a non-rendering node that owns a render function. Its
// produced subtree is laid out as if attached directly to the nearest
// frame node ancestor.
type CustomNode struct {
	nodeBase

	render      RenderFunc
	needRebuild bool
	child       NodeID
	rebuilds    int
	cleanups    []func()
}

// CreateCustomNode registers a detached custom node. A zero id is replaced
// by a fresh one.
func (t *Tree) CreateCustomNode(tag string, id NodeID, render RenderFunc) *CustomNode {
	n := &CustomNode{
		nodeBase: nodeBase{id: id, tag: tag},
		render:   render,
	}
	t.insert(n)
	return n
}

// SetRenderFunc replaces the render function. The next rebuild uses it.
func (n *CustomNode) SetRenderFunc(render RenderFunc) { n.render = render }

// NeedRebuild reports whether a rebuild is pending.
func (n *CustomNode) NeedRebuild() bool { return n.needRebuild }

// Rebuilds returns how many times the node has been rebuilt.
func (n *CustomNode) Rebuilds() int { return n.rebuilds }

// ChildID returns the root of the last produced subtree.
func (n *CustomNode) ChildID() NodeID { return n.child }

// OnCleanup registers fn to run when the node leaves the arena.
func (n *CustomNode) OnCleanup(fn func()) {
	if fn != nil {
		n.cleanups = append(n.cleanups, fn)
	}
}

// MarkNeedRebuild schedules a rebuild for the next frame. Repeated calls
// before the rebuild enqueue the node once. Calls from other threads are
// forwarded to the logic thread.
func (n *CustomNode) MarkNeedRebuild() {
	p := n.tree.pipeline
	if p != nil && !p.executor.IsOnThread(TaskJS) {
		tree, id := n.tree, n.id
		p.executor.PostTask(func() {
			if c, ok := tree.CustomNode(id); ok {
				c.MarkNeedRebuild()
			}
		}, TaskJS)
		return
	}
	if n.needRebuild {
		return
	}
	n.needRebuild = true
	if p != nil {
		p.AddDirtyComposedNode(n)
	}
}

// Rebuild runs the render function and swaps in the produced subtree. The
// previous subtree, when replaced, is deactivated and released by the next
// deactivation sweep unless something re-attaches it first.
func (n *CustomNode) Rebuild() {
	n.needRebuild = false
	n.rebuilds++
	if n.render == nil {
		debug.Warn("custom node without render function", "id", int64(n.id), "tag", n.tag)
		return
	}
	child := n.render()
	if child == n.child {
		return
	}
	old := n.child
	n.child = child
	if old != InvalidNodeID {
		n.tree.RemoveChild(n.id, old)
	}
	if child != InvalidNodeID && !n.tree.AddChild(n.id, child, -1) {
		debug.Warn("custom node produced an unknown child", "id", int64(n.id), "child", int64(child))
		n.child = InvalidNodeID
	}
}

func (n *CustomNode) runCleanups() {
	for i := len(n.cleanups) - 1; i >= 0; i-- {
		n.cleanups[i]()
	}
	n.cleanups = nil
}
