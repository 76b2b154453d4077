package ace

import "github.com/grindlemire/go-ace/internal/layout"

// Pattern supplies a FrameNode's behavior: how it lays out its children,
// how it paints and how it reacts to new geometry.
type Pattern interface {
	// OnAttachToFrameNode is called once when the node is created.
	OnAttachToFrameNode(host *FrameNode)
	// OnDetachFromFrameNode is called when the node leaves the arena.
	OnDetachFromFrameNode(host *FrameNode)
	// CreateLayoutAlgorithm returns the algorithm for one layout pass.
	CreateLayoutAlgorithm() layout.Algorithm
	// CreatePaintMethod returns nil when the node draws nothing.
	CreatePaintMethod() PaintMethod
	// OnDirtyLayoutWrapperSwap sees the finished pass and reports whether
	// the node needs repainting even if its frame did not change.
	OnDirtyLayoutWrapperSwap(w *layout.Wrapper, cfg DirtySwapConfig) bool
}

// DirtySwapConfig summarizes what a layout pass did to a node.
type DirtySwapConfig struct {
	FrameChanged bool
	Measured     bool
	LaidOut      bool
}

// BasePattern provides no-op hooks and a weak link to the host. Patterns
// embed it and override what they need.
type BasePattern struct {
	host NodeID
	tree *Tree
}

// OnAttachToFrameNode records the host.
func (p *BasePattern) OnAttachToFrameNode(host *FrameNode) {
	p.host = host.ID()
	p.tree = host.Tree()
}

// OnDetachFromFrameNode does nothing.
func (p *BasePattern) OnDetachFromFrameNode(*FrameNode) {}

// CreatePaintMethod returns nil.
func (p *BasePattern) CreatePaintMethod() PaintMethod { return nil }

// OnDirtyLayoutWrapperSwap requests no extra repaint.
func (p *BasePattern) OnDirtyLayoutWrapperSwap(*layout.Wrapper, DirtySwapConfig) bool {
	return false
}

// Host returns the host node while it is alive.
func (p *BasePattern) Host() (*FrameNode, bool) {
	if p.tree == nil {
		return nil, false
	}
	return p.tree.FrameNode(p.host)
}
