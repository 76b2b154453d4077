package ace

import (
	"github.com/grindlemire/go-ace/internal/debug"
	"github.com/grindlemire/go-ace/internal/gesture"
	"github.com/grindlemire/go-ace/internal/layout"
)

// RootTag and StageTag name the nodes the pipeline creates itself.
const (
	RootTag  = "root"
	StageTag = "stage"
)

// FrameNode is a persistent node that takes part in layout and paint. Its
// identity is the (tag, id) pair: GetOrCreateFrameNode hands back the same
// node for the same pair across rebuilds.
type FrameNode struct {
	nodeBase

	pattern        Pattern
	geometry       *layout.GeometryNode
	layoutProperty *layout.Property
	paintProperty  *PaintProperty
	renderContext  *RenderContext
	gestureHub     *gesture.GestureEventHub
}

// CreateFrameNode registers a new detached frame node. A zero id is
// replaced by a fresh one; a nil pattern becomes a BoxPattern.
func (t *Tree) CreateFrameNode(tag string, id NodeID, p Pattern) *FrameNode {
	if p == nil {
		p = &BoxPattern{}
	}
	n := &FrameNode{
		nodeBase:       nodeBase{id: id, tag: tag},
		pattern:        p,
		geometry:       layout.NewGeometryNode(),
		layoutProperty: layout.NewProperty(),
		paintProperty:  &PaintProperty{},
		renderContext:  &RenderContext{},
	}
	n.layoutProperty.AddChangeFlag(layout.FlagUpdateMeasure)
	t.insert(n)
	p.OnAttachToFrameNode(n)
	return n
}

// GetOrCreateFrameNode returns the live node with this (tag, id), creating
// it with create() when there is none. A live node with the same id but a
// different tag is destroyed and replaced.
func (t *Tree) GetOrCreateFrameNode(tag string, id NodeID, create func() Pattern) *FrameNode {
	if id != InvalidNodeID {
		if existing, ok := t.Node(id); ok {
			if f, ok := existing.(*FrameNode); ok && f.tag == tag {
				return f
			}
			debug.Warn("node id reused with a different tag", "id", int64(id), "old", existing.Tag(), "new", tag)
			t.destroy(id)
		}
	}
	var p Pattern
	if create != nil {
		p = create()
	}
	return t.CreateFrameNode(tag, id, p)
}

// Pattern returns the node's pattern.
func (n *FrameNode) Pattern() Pattern { return n.pattern }

// Geometry returns the node's geometry. Only the layout pass writes it.
func (n *FrameNode) Geometry() *layout.GeometryNode { return n.geometry }

// LayoutProperty returns the node's layout property. Mutate it through
// UpdateLayoutProperty so the change is scheduled.
func (n *FrameNode) LayoutProperty() *layout.Property { return n.layoutProperty }

// PaintProperty returns the node's paint property.
func (n *FrameNode) PaintProperty() *PaintProperty { return n.paintProperty }

// RenderContext returns the node's retained drawing state.
func (n *FrameNode) RenderContext() *RenderContext { return n.renderContext }

// GestureHub returns the node's gesture hub, creating it on first use.
func (n *FrameNode) GestureHub() *gesture.GestureEventHub {
	if n.gestureHub == nil {
		tree, id := n.tree, n.id
		n.gestureHub = gesture.NewGestureEventHub(func() bool {
			_, ok := tree.FrameNode(id)
			return ok
		})
		if p := tree.pipeline; p != nil {
			n.gestureHub.SetTouchSlop(p.touchSlop)
		}
	}
	return n.gestureHub
}

// SetGestures replaces the node's declared gestures and reconciles the
// recognizer hierarchy against them.
func (n *FrameNode) SetGestures(gs ...Gesture) {
	hub := n.GestureHub()
	hub.SetGestures(gs)
	hub.UpdateGestureHierarchy()
}

// FrameRect returns the node's frame relative to its parent.
func (n *FrameNode) FrameRect() Rect { return n.geometry.FrameRect() }

// GlobalRect returns the node's frame in root coordinates.
func (n *FrameNode) GlobalRect() Rect {
	return layout.NewRect(n.geometry.GlobalOffset(), n.geometry.FrameSize())
}

// UpdateLayoutProperty applies fn and schedules a measure pass.
func (n *FrameNode) UpdateLayoutProperty(fn func(p *layout.Property)) {
	fn(n.layoutProperty)
	n.MarkDirtyNode(layout.FlagUpdateMeasure)
}

// SetVisibility changes whether the node is measured and painted.
func (n *FrameNode) SetVisibility(v layout.Visibility) {
	if n.layoutProperty.Visibility == v {
		return
	}
	n.layoutProperty.Visibility = v
	n.MarkDirtyNode(layout.FlagUpdateMeasure | layout.FlagUpdateRender)
}

// UpdatePaintProperty applies fn and schedules a render pass.
func (n *FrameNode) UpdatePaintProperty(fn func(p *PaintProperty)) {
	fn(n.paintProperty)
	n.MarkDirtyNode(layout.FlagUpdateRender)
}

// MarkDirtyNode records that the node needs the stages named by flag. A
// measure request on a node whose size depends on its content climbs to
// the nearest measure boundary, which is then scheduled instead. Calls from
// other threads are forwarded to the logic thread.
func (n *FrameNode) MarkDirtyNode(flag layout.PropertyChangeFlag) {
	p := n.tree.pipeline
	if p != nil && !p.executor.IsOnThread(TaskJS) {
		tree, id := n.tree, n.id
		p.executor.PostTask(func() {
			if f, ok := tree.FrameNode(id); ok {
				f.markDirty(flag)
			}
		}, TaskJS)
		return
	}
	n.markDirty(flag)
}

func (n *FrameNode) markDirty(flag layout.PropertyChangeFlag) {
	p := n.tree.pipeline
	if flag.Has(layout.FlagUpdateRender) && p != nil {
		p.AddDirtyRenderNode(n)
	}
	if !flag.NeedsLayout() {
		return
	}
	n.layoutProperty.AddChangeFlag(flag)
	if flag.NeedsMeasure() && !n.layoutProperty.IsMeasureBoundary() {
		if parent, ok := n.parentFrame(); ok {
			parent.markDirty(layout.FlagUpdateByChildRequest)
			return
		}
	}
	if p != nil {
		p.AddDirtyLayoutNode(n)
	}
}

func (n *FrameNode) markChildrenChanged() {
	n.MarkDirtyNode(layout.FlagUpdateChildren | layout.FlagUpdateRender)
}

func (n *FrameNode) parentFrame() (*FrameNode, bool) {
	parent := n.ParentID()
	if parent == InvalidNodeID {
		return nil, false
	}
	return n.tree.nearestFrameNode(parent)
}

// CreateLayoutWrapper builds the wrapper tree for one pass over the node's
// subtree. Descendants whose properties are clean are set to skip measure
// when their constraint is unchanged.
func (n *FrameNode) CreateLayoutWrapper(forceMeasure bool) *layout.Wrapper {
	w := layout.NewWrapper(int64(n.id), n.tag, n.geometry, n.layoutProperty)
	alg := n.pattern.CreateLayoutAlgorithm()
	if alg == nil {
		alg = layout.BoxAlgorithm{}
	}
	w.SetAlgorithm(alg, !forceMeasure && !n.layoutProperty.ChangeFlag().NeedsLayout())
	for _, c := range n.tree.frameChildren(n.id) {
		w.AppendChild(c.CreateLayoutWrapper(false))
	}
	return w
}

// layoutConstraint returns the constraint a layout task measures the node
// with: the root constraint for the root, otherwise the one its parent
// used last.
func (n *FrameNode) layoutConstraint() (layout.Constraint, bool) {
	if p := n.tree.pipeline; p != nil && p.rootID == n.id {
		return p.rootConstraint(), true
	}
	return n.geometry.ParentConstraint()
}

func (n *FrameNode) createLayoutTask() func() {
	tree, id := n.tree, n.id
	return func() {
		if f, ok := tree.FrameNode(id); ok {
			f.performLayout()
		}
	}
}

// performLayout runs measure and layout for the node's subtree. Nodes
// already laid out by an ancestor earlier in the batch are clean and skip.
func (n *FrameNode) performLayout() {
	if !n.layoutProperty.ChangeFlag().NeedsLayout() {
		return
	}
	c, ok := n.layoutConstraint()
	if !ok {
		debug.Log("layout skipped for unmeasured node %d (%s)", n.id, n.tag)
		return
	}
	w := n.CreateLayoutWrapper(true)
	w.Measure(&c)
	offset := n.geometry.ParentGlobalOffset()
	if p := n.tree.pipeline; p != nil && p.rootID == n.id {
		offset = p.rootOrigin()
	}
	w.Layout(&offset)
	n.swapDirtyLayoutWrapper(w)
}

// swapDirtyLayoutWrapper finishes a pass. Geometry is already in place
// through the shared pointers, so this only clears flags, syncs render
// contexts and lets patterns react.
func (n *FrameNode) swapDirtyLayoutWrapper(w *layout.Wrapper) {
	w.Walk(func(cw *layout.Wrapper) {
		f, ok := n.tree.FrameNode(NodeID(cw.HostID()))
		if !ok {
			return
		}
		f.onLayoutSwap(cw)
	})
}

func (n *FrameNode) onLayoutSwap(w *layout.Wrapper) {
	cfg := DirtySwapConfig{
		FrameChanged: w.FrameChanged(),
		Measured:     w.Measured(),
		LaidOut:      w.LaidOut(),
	}
	reordered := n.layoutProperty.ChangeFlag().Has(layout.FlagUpdateChildren)
	n.layoutProperty.CleanDirty()
	n.renderContext.syncFrame(n.GlobalRect())
	needRender := n.pattern.OnDirtyLayoutWrapperSwap(w, cfg)
	if (cfg.FrameChanged || reordered || needRender) && n.tree.pipeline != nil {
		n.tree.pipeline.AddDirtyRenderTree(n)
	}
}

func (n *FrameNode) createRenderTask() func() {
	tree, id := n.tree, n.id
	return func() {
		if f, ok := tree.FrameNode(id); ok {
			f.performRender()
		}
	}
}

// performRender records the node's display list.
func (n *FrameNode) performRender() {
	if n.layoutProperty.Visibility != layout.Visible {
		n.renderContext.record(nil, nil)
		return
	}
	n.renderContext.record(n.pattern.CreatePaintMethod(), &PaintWrapper{
		Geometry:       n.geometry,
		LayoutProperty: n.layoutProperty,
		Property:       n.paintProperty,
	})
}

// syncRenderTree repaints the node and pushes its children's paint order.
func (n *FrameNode) syncRenderTree() {
	n.performRender()
	children := n.tree.frameChildren(n.id)
	ids := make([]NodeID, 0, len(children))
	for _, c := range children {
		ids = append(ids, c.id)
	}
	n.renderContext.setChildren(ids)
}
