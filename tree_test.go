package ace

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_AddChild(t *testing.T) {
	tree := NewTree()
	a := tree.CreateFrameNode("a", InvalidNodeID, nil)
	b := tree.CreateFrameNode("b", InvalidNodeID, nil)
	c := tree.CreateFrameNode("c", InvalidNodeID, nil)

	require.True(t, tree.AddChild(a.ID(), b.ID(), -1))
	require.True(t, tree.AddChild(b.ID(), c.ID(), -1))

	assert.Equal(t, 0, a.Depth())
	assert.Equal(t, 1, b.Depth())
	assert.Equal(t, 2, c.Depth())
	root, _ := c.location()
	assert.Equal(t, a.ID(), root)

	type tc struct {
		parent, child NodeID
		want          bool
	}

	tests := map[string]tc{
		"cycle through grandchild": {parent: c.ID(), child: a.ID(), want: false},
		"self":                     {parent: a.ID(), child: a.ID(), want: false},
		"missing parent":           {parent: 999, child: c.ID(), want: false},
		"missing child":            {parent: a.ID(), child: 999, want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, tree.AddChild(tt.parent, tt.child, -1))
		})
	}
}

func TestTree_AddChildMoves(t *testing.T) {
	tree := NewTree()
	a := tree.CreateFrameNode("a", InvalidNodeID, nil)
	b := tree.CreateFrameNode("b", InvalidNodeID, nil)
	x := tree.CreateFrameNode("x", InvalidNodeID, nil)
	y := tree.CreateFrameNode("y", InvalidNodeID, nil)

	tree.AddChild(a.ID(), x.ID(), -1)
	tree.AddChild(a.ID(), y.ID(), 0)
	if diff := cmp.Diff([]NodeID{y.ID(), x.ID()}, a.ChildIDs()); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}

	tree.AddChild(b.ID(), x.ID(), -1)
	assert.Equal(t, []NodeID{y.ID()}, a.ChildIDs())
	assert.Equal(t, []NodeID{x.ID()}, b.ChildIDs())
	assert.Equal(t, b.ID(), x.ParentID())
}

func TestTree_PageLocation(t *testing.T) {
	tree := NewTree()
	root := tree.CreateFrameNode(RootTag, InvalidNodeID, nil)
	page := tree.CreateFrameNode(PageTag, InvalidNodeID, nil)
	leaf := tree.CreateFrameNode("leaf", InvalidNodeID, nil)
	tree.AddChild(page.ID(), leaf.ID(), -1)
	tree.AddChild(root.ID(), page.ID(), -1)

	r, p := leaf.location()
	assert.Equal(t, root.ID(), r)
	assert.Equal(t, page.ID(), p)

	tree.RemoveChild(root.ID(), page.ID())
	r, p = leaf.location()
	assert.Equal(t, page.ID(), r, "detached subtree is its own root")
	assert.Equal(t, page.ID(), p)
}

func TestTree_GetOrCreateFrameNode(t *testing.T) {
	tree := NewTree()
	created := 0
	create := func() Pattern {
		created++
		return &BoxPattern{}
	}

	first := tree.GetOrCreateFrameNode("box", 42, create)
	again := tree.GetOrCreateFrameNode("box", 42, create)
	assert.Same(t, first, again)
	assert.Equal(t, 1, created)

	replaced := tree.GetOrCreateFrameNode("text", 42, func() Pattern { return NewTextPattern("hi") })
	assert.NotSame(t, first, replaced)
	assert.Equal(t, "text", replaced.Tag())
	assert.Equal(t, NodeID(42), replaced.ID())

	fresh := tree.GetOrCreateFrameNode("box", InvalidNodeID, nil)
	assert.NotEqual(t, InvalidNodeID, fresh.ID())
	assert.IsType(t, &BoxPattern{}, fresh.Pattern())
}

func TestTree_Destroy(t *testing.T) {
	tree := NewTree()
	parent := tree.CreateCustomNode("custom", InvalidNodeID, nil)
	child := tree.CreateFrameNode("box", InvalidNodeID, nil)
	tree.AddChild(parent.ID(), child.ID(), -1)

	var order []string
	parent.OnCleanup(func() { order = append(order, "first") })
	parent.OnCleanup(func() { order = append(order, "second") })

	assert.Equal(t, 2, tree.destroy(parent.ID()))
	assert.Equal(t, 0, tree.Len())
	assert.Equal(t, []string{"second", "first"}, order)

	_, ok := tree.Node(child.ID())
	assert.False(t, ok, "lookups of released ids fail")
}

func TestTree_FrameChildrenFlattensCustomNodes(t *testing.T) {
	tree := NewTree()
	row := tree.CreateFrameNode("row", InvalidNodeID, nil)
	a := tree.CreateFrameNode("a", InvalidNodeID, nil)
	custom := tree.CreateCustomNode("custom", InvalidNodeID, nil)
	b := tree.CreateFrameNode("b", InvalidNodeID, nil)
	c := tree.CreateFrameNode("c", InvalidNodeID, nil)

	tree.AddChild(row.ID(), a.ID(), -1)
	tree.AddChild(row.ID(), custom.ID(), -1)
	tree.AddChild(custom.ID(), b.ID(), -1)
	tree.AddChild(row.ID(), c.ID(), -1)

	var got []string
	for _, f := range tree.frameChildren(row.ID()) {
		got = append(got, f.Tag())
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)

	nearest, ok := tree.nearestFrameNode(custom.ID())
	require.True(t, ok)
	assert.Same(t, row, nearest)
}

func TestTree_Walk(t *testing.T) {
	tree := NewTree()
	a := tree.CreateFrameNode("a", InvalidNodeID, nil)
	b := tree.CreateFrameNode("b", InvalidNodeID, nil)
	c := tree.CreateFrameNode("c", InvalidNodeID, nil)
	d := tree.CreateFrameNode("d", InvalidNodeID, nil)
	tree.AddChild(a.ID(), b.ID(), -1)
	tree.AddChild(b.ID(), c.ID(), -1)
	tree.AddChild(a.ID(), d.ID(), -1)

	var got []string
	tree.Walk(a.ID(), func(n Node) bool {
		got = append(got, n.Tag())
		return n.Tag() != "b"
	})
	assert.Equal(t, []string{"a", "b", "d"}, got)
}
