package ace

import (
	"slices"
	"sync"
)

// NodeID identifies a node in a Tree. IDs are never reused while the node
// lives, so an id doubles as a weak reference: lookups fail once the node
// has been removed.
type NodeID int64

// InvalidNodeID is the zero id; no node carries it.
const InvalidNodeID NodeID = 0

// PageTag marks nodes that root a page. Dirty nodes are bucketed by the
// page they belong to.
const PageTag = "page"

// Node is implemented by *FrameNode and *CustomNode.
type Node interface {
	ID() NodeID
	Tag() string
	base() *nodeBase
}

// nodeBase holds the structural fields shared by every node kind. The
// parent, children, depth, root and page fields are guarded by the owning
// tree's lock.
type nodeBase struct {
	id       NodeID
	tag      string
	tree     *Tree
	parent   NodeID
	children []NodeID
	depth    int
	root     NodeID
	page     NodeID
}

func (n *nodeBase) base() *nodeBase { return n }

// ID returns the node id.
func (n *nodeBase) ID() NodeID { return n.id }

// Tag returns the component tag the node was created with.
func (n *nodeBase) Tag() string { return n.tag }

// Tree returns the arena the node lives in.
func (n *nodeBase) Tree() *Tree { return n.tree }

// Depth returns the distance from the topmost ancestor.
func (n *nodeBase) Depth() int {
	n.tree.mu.RLock()
	defer n.tree.mu.RUnlock()
	return n.depth
}

// ParentID returns the parent's id, or InvalidNodeID for a detached node.
func (n *nodeBase) ParentID() NodeID {
	n.tree.mu.RLock()
	defer n.tree.mu.RUnlock()
	return n.parent
}

// ChildIDs returns a copy of the child id list.
func (n *nodeBase) ChildIDs() []NodeID {
	n.tree.mu.RLock()
	defer n.tree.mu.RUnlock()
	return slices.Clone(n.children)
}

// location returns the (root, page) bucket key of the node.
func (n *nodeBase) location() (root, page NodeID) {
	n.tree.mu.RLock()
	defer n.tree.mu.RUnlock()
	return n.root, n.page
}

// Tree is the arena owning every node of one pipeline.
type Tree struct {
	mu       sync.RWMutex
	nodes    map[NodeID]Node
	next     NodeID
	pipeline *PipelineContext
}

// NewTree returns an empty arena.
func NewTree() *Tree {
	return &Tree{nodes: make(map[NodeID]Node)}
}

// Pipeline returns the pipeline that owns the tree, or nil.
func (t *Tree) Pipeline() *PipelineContext { return t.pipeline }

// NextID allocates an id not used by any live node.
func (t *Tree) NextID() NodeID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.nextLocked()
}

func (t *Tree) nextLocked() NodeID {
	for {
		t.next++
		if _, taken := t.nodes[t.next]; !taken {
			return t.next
		}
	}
}

// Len returns the number of live nodes.
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.nodes)
}

// Node looks up a node by id.
func (t *Tree) Node(id NodeID) (Node, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, ok := t.nodes[id]
	return n, ok
}

// FrameNode looks up a frame node by id.
func (t *Tree) FrameNode(id NodeID) (*FrameNode, bool) {
	n, ok := t.Node(id)
	if !ok {
		return nil, false
	}
	f, ok := n.(*FrameNode)
	return f, ok
}

// CustomNode looks up a custom node by id.
func (t *Tree) CustomNode(id NodeID) (*CustomNode, bool) {
	n, ok := t.Node(id)
	if !ok {
		return nil, false
	}
	c, ok := n.(*CustomNode)
	return c, ok
}

// insert registers a detached node. An id of InvalidNodeID is replaced by
// a fresh one.
func (t *Tree) insert(n Node) {
	b := n.base()
	t.mu.Lock()
	defer t.mu.Unlock()
	if b.id == InvalidNodeID {
		b.id = t.nextLocked()
	}
	b.tree = t
	b.root = b.id
	b.page = b.id
	t.nodes[b.id] = n
}

// AddChild attaches child under parent at index; a negative or out of range
// index appends. A child attached elsewhere is moved. It reports false when
// either node is missing or the move would create a cycle.
func (t *Tree) AddChild(parent, child NodeID, index int) bool {
	t.mu.Lock()
	p, okP := t.nodes[parent]
	c, okC := t.nodes[child]
	if !okP || !okC || t.isAncestorLocked(child, parent) {
		t.mu.Unlock()
		return false
	}
	cb := c.base()
	if cb.parent != InvalidNodeID {
		t.detachLocked(cb)
	}
	pb := p.base()
	if index < 0 || index > len(pb.children) {
		index = len(pb.children)
	}
	pb.children = slices.Insert(pb.children, index, child)
	cb.parent = parent
	t.relocateLocked(cb, pb)
	t.mu.Unlock()

	t.childrenChanged(parent)
	return true
}

// RemoveChild detaches child from parent. The detached subtree stays in the
// arena until the pipeline's next deactivation sweep, so it can still be
// re-attached within the same frame.
func (t *Tree) RemoveChild(parent, child NodeID) bool {
	t.mu.Lock()
	c, ok := t.nodes[child]
	if !ok || c.base().parent != parent {
		t.mu.Unlock()
		return false
	}
	t.detachLocked(c.base())
	t.mu.Unlock()

	if t.pipeline != nil {
		t.pipeline.MarkNodeDeactivated(child)
	}
	t.childrenChanged(parent)
	return true
}

// Parent returns the parent node, if any.
func (t *Tree) Parent(id NodeID) (Node, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, ok := t.nodes[id]
	if !ok {
		return nil, false
	}
	p, ok := t.nodes[n.base().parent]
	return p, ok
}

// Walk visits id and its descendants depth first in child order. Returning
// false from fn skips the node's children.
func (t *Tree) Walk(id NodeID, fn func(Node) bool) {
	n, ok := t.Node(id)
	if !ok {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.base().ChildIDs() {
		t.Walk(c, fn)
	}
}

// remove deletes id and its subtree from the arena and returns the removed
// nodes, leaves first.
func (t *Tree) remove(id NodeID) []Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}
	if n.base().parent != InvalidNodeID {
		t.detachLocked(n.base())
	}
	var out []Node
	var collect func(Node)
	collect = func(n Node) {
		for _, c := range n.base().children {
			if cn, ok := t.nodes[c]; ok {
				collect(cn)
			}
		}
		delete(t.nodes, n.base().id)
		out = append(out, n)
	}
	collect(n)
	return out
}

func (t *Tree) detachLocked(b *nodeBase) {
	if p, ok := t.nodes[b.parent]; ok {
		pb := p.base()
		if i := slices.Index(pb.children, b.id); i >= 0 {
			pb.children = slices.Delete(pb.children, i, i+1)
		}
	}
	b.parent = InvalidNodeID
	t.relocateLocked(b, nil)
}

// relocateLocked recomputes depth, root and page for b's subtree after b
// moved under parent (nil when detached).
func (t *Tree) relocateLocked(b *nodeBase, parent *nodeBase) {
	if parent == nil {
		b.depth, b.root, b.page = 0, b.id, b.id
	} else {
		b.depth, b.root, b.page = parent.depth+1, parent.root, parent.page
	}
	if b.tag == PageTag {
		b.page = b.id
	}
	for _, c := range b.children {
		if cn, ok := t.nodes[c]; ok {
			t.relocateLocked(cn.base(), b)
		}
	}
}

func (t *Tree) isAncestorLocked(ancestor, id NodeID) bool {
	for cur := id; cur != InvalidNodeID; {
		if cur == ancestor {
			return true
		}
		n, ok := t.nodes[cur]
		if !ok {
			return false
		}
		cur = n.base().parent
	}
	return false
}

// nearestFrameNode returns id itself when it is a frame node, otherwise its
// closest frame node ancestor.
func (t *Tree) nearestFrameNode(id NodeID) (*FrameNode, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for cur := id; cur != InvalidNodeID; {
		n, ok := t.nodes[cur]
		if !ok {
			return nil, false
		}
		if f, ok := n.(*FrameNode); ok {
			return f, true
		}
		cur = n.base().parent
	}
	return nil, false
}

// frameChildren returns the frame nodes laid out directly under id. Custom
// nodes draw nothing, so their children are flattened into the list.
func (t *Tree) frameChildren(id NodeID) []*FrameNode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}
	var out []*FrameNode
	var collect func(ids []NodeID)
	collect = func(ids []NodeID) {
		for _, c := range ids {
			switch cn := t.nodes[c].(type) {
			case *FrameNode:
				out = append(out, cn)
			case *CustomNode:
				collect(cn.children)
			}
		}
	}
	collect(n.base().children)
	return out
}

// childrenChanged marks the frame node that lays out parent's children.
func (t *Tree) childrenChanged(parent NodeID) {
	if f, ok := t.nearestFrameNode(parent); ok {
		f.markChildrenChanged()
	}
}

// destroy removes id's subtree from the arena and runs detach hooks. It
// returns the number of nodes released.
func (t *Tree) destroy(id NodeID) int {
	removed := t.remove(id)
	for _, n := range removed {
		switch v := n.(type) {
		case *FrameNode:
			v.pattern.OnDetachFromFrameNode(v)
		case *CustomNode:
			v.runCleanups()
		}
	}
	return len(removed)
}

// Release detaches id from its parent and drops its subtree from the arena
// immediately, without waiting for a deactivation sweep. It returns the
// number of nodes released.
func (t *Tree) Release(id NodeID) int {
	if parent, ok := t.Parent(id); ok {
		t.RemoveChild(parent.ID(), id)
	}
	return t.destroy(id)
}
