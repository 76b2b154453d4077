package ace

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/grindlemire/go-ace/internal/debug"
	"github.com/grindlemire/go-ace/internal/gesture"
	"github.com/grindlemire/go-ace/internal/layout"
)

// PipelineState is the phase a frame is in.
type PipelineState int32

const (
	StateIdle PipelineState = iota
	StateRebuilding
	StateLayoutRender
	StateMessageFlush
)

func (s PipelineState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRebuilding:
		return "rebuilding"
	case StateLayoutRender:
		return "layout-render"
	case StateMessageFlush:
		return "message-flush"
	default:
		return "unknown"
	}
}

// PipelineContext drives frames for one window: rebuild of dirty custom
// nodes on the logic thread, then layout and render batches on the UI
// thread, then platform messages. It owns the node arena and the
// scheduler.
type PipelineContext struct {
	executor  TaskExecutor
	window    Window
	tree      *Tree
	scheduler *UiTaskScheduler
	referee   *gesture.GestureReferee

	mu              sync.Mutex
	dirtyComposed   dirtySet
	dirtyRenderTree dirtySet
	deactivated     map[NodeID]struct{}
	rootSize        layout.SizeF
	rootOffset      layout.OffsetF

	hasIdleTasks   atomic.Bool
	frameRequested atomic.Bool
	activeTouches  atomic.Int32
	state          atomic.Int32
	frameCount     atomic.Uint64
	vsyncCount     atomic.Uint64

	rootID  NodeID
	stageID NodeID
	pages   []NodeID

	frameDuration     time.Duration
	touchSlop         float32
	longPressDuration time.Duration
	swipeDeleteRatio  float32
	phaseObserver     func(PipelineState)

	batch    batchContext
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewPipelineContext creates a pipeline posting to exec and presenting into
// win. A nil window is replaced by a HeadlessWindow.
func NewPipelineContext(exec TaskExecutor, win Window, opts ...PipelineOption) (*PipelineContext, error) {
	if exec == nil {
		return nil, errors.New("ace: pipeline needs a task executor")
	}
	if win == nil {
		win = NewHeadlessWindow()
	}
	p := &PipelineContext{
		executor:          exec,
		window:            win,
		tree:              NewTree(),
		referee:           gesture.NewGestureReferee(),
		dirtyComposed:     make(dirtySet),
		dirtyRenderTree:   make(dirtySet),
		deactivated:       make(map[NodeID]struct{}),
		frameDuration:     time.Second / 60,
		touchSlop:         gesture.DefaultTouchSlop,
		longPressDuration: gesture.DefaultLongPressDuration,
		swipeDeleteRatio:  0.5,
		stopCh:            make(chan struct{}),
	}
	p.batch.pending = make(map[uint64]func())
	p.tree.pipeline = p
	p.scheduler = NewUiTaskScheduler(exec, p.tree)

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("apply pipeline option: %w", err)
		}
	}
	return p, nil
}

// Tree returns the node arena.
func (p *PipelineContext) Tree() *Tree { return p.tree }

// Scheduler returns the layout and render scheduler.
func (p *PipelineContext) Scheduler() *UiTaskScheduler { return p.scheduler }

// Executor returns the task executor.
func (p *PipelineContext) Executor() TaskExecutor { return p.executor }

// Window returns the presenting window.
func (p *PipelineContext) Window() Window { return p.window }

// State returns the current frame phase.
func (p *PipelineContext) State() PipelineState { return PipelineState(p.state.Load()) }

// Frame returns the frame count passed to the latest FlushVsync.
func (p *PipelineContext) Frame() uint64 { return p.frameCount.Load() }

// RootID returns the root node id, or InvalidNodeID before SetupRootElement.
func (p *PipelineContext) RootID() NodeID { return p.rootID }

// StageID returns the node pages are attached under.
func (p *PipelineContext) StageID() NodeID { return p.stageID }

// HasIdleTasks reports whether composed nodes wait for a rebuild.
func (p *PipelineContext) HasIdleTasks() bool { return p.hasIdleTasks.Load() }

// SwipeDeleteRatio returns the share of an item's width a swipe must travel
// to delete it.
func (p *PipelineContext) SwipeDeleteRatio() float32 { return p.swipeDeleteRatio }

// LongPressDuration returns the configured long press hold time.
func (p *PipelineContext) LongPressDuration() time.Duration { return p.longPressDuration }

func (p *PipelineContext) setState(s PipelineState) {
	p.state.Store(int32(s))
	if p.phaseObserver != nil {
		p.phaseObserver(s)
	}
}

func (p *PipelineContext) requestFrame() {
	p.frameRequested.Store(true)
	p.window.RequestFrame()
}

// AddDirtyLayoutNode forwards to the scheduler and requests a frame.
func (p *PipelineContext) AddDirtyLayoutNode(n *FrameNode) {
	p.scheduler.AddDirtyLayoutNode(n)
	p.requestFrame()
}

// AddDirtyRenderNode forwards to the scheduler and requests a frame.
func (p *PipelineContext) AddDirtyRenderNode(n *FrameNode) {
	p.scheduler.AddDirtyRenderNode(n)
	p.requestFrame()
}

// AddDirtyComposedNode queues a custom node for the next rebuild.
func (p *PipelineContext) AddDirtyComposedNode(n *CustomNode) {
	if !checkThread(p.executor, TaskJS, "AddDirtyComposedNode") {
		return
	}
	if n == nil {
		debug.Warn("nil node", "op", "AddDirtyComposedNode")
		return
	}
	depth := n.Depth()
	p.mu.Lock()
	p.dirtyComposed[n.id] = depth
	p.mu.Unlock()
	p.hasIdleTasks.Store(true)
	p.requestFrame()
}

// AddDirtyRenderTree queues a node whose paint or child order must be
// synced after this frame's render tasks.
func (p *PipelineContext) AddDirtyRenderTree(n *FrameNode) {
	if !checkThread(p.executor, TaskUI, "AddDirtyRenderTree") {
		return
	}
	if n == nil {
		debug.Warn("nil node", "op", "AddDirtyRenderTree")
		return
	}
	depth := n.Depth()
	p.mu.Lock()
	p.dirtyRenderTree[n.id] = depth
	p.mu.Unlock()
}

// MarkNodeDeactivated queues a detached subtree for the next deactivation
// sweep.
func (p *PipelineContext) MarkNodeDeactivated(id NodeID) {
	p.mu.Lock()
	p.deactivated[id] = struct{}{}
	p.mu.Unlock()
	p.requestFrame()
}

// BuildDirtyElement posts the rebuild phase to the logic thread: every
// queued custom node still attached is rebuilt, parents first, and the
// scheduler is then flushed so layout and render batches follow on the UI
// thread.
func (p *PipelineContext) BuildDirtyElement() {
	p.executor.PostTask(p.buildDirtyElement, TaskJS)
}

func (p *PipelineContext) buildDirtyElement() {
	p.setState(StateRebuilding)

	p.mu.Lock()
	composed := p.dirtyComposed
	p.dirtyComposed = make(dirtySet)
	p.mu.Unlock()
	p.hasIdleTasks.Store(false)

	composed.refresh(p.tree)
	for _, id := range composed.sorted() {
		n, ok := p.tree.CustomNode(id)
		if !ok || !n.needRebuild {
			continue
		}
		if p.isDeactivated(n) {
			n.needRebuild = false
			continue
		}
		n.Rebuild()
	}

	p.setState(StateLayoutRender)
	p.scheduler.FlushTask()
	p.executor.PostTask(p.FlushRenderTree, TaskUI)
}

// isDeactivated reports whether n sits in a subtree waiting for the sweep.
func (p *PipelineContext) isDeactivated(n Node) bool {
	root, _ := n.base().location()
	if root == p.rootID && p.rootID != InvalidNodeID {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.deactivated[root]
	return ok
}

// FlushRenderTree repaints nodes whose frame changed during layout and
// pushes their children's paint order.
func (p *PipelineContext) FlushRenderTree() {
	if !checkThread(p.executor, TaskUI, "FlushRenderTree") {
		return
	}
	p.mu.Lock()
	dirty := p.dirtyRenderTree
	p.dirtyRenderTree = make(dirtySet)
	p.mu.Unlock()

	dirty.refresh(p.tree)
	for _, id := range dirty.sorted() {
		if n, ok := p.tree.FrameNode(id); ok {
			n.syncRenderTree()
		}
	}
}

// FlushVsync runs one frame. It must be called on the UI thread.
func (p *PipelineContext) FlushVsync(timestamp time.Duration, frameCount uint64) {
	if !checkThread(p.executor, TaskUI, "FlushVsync") {
		return
	}
	p.frameCount.Store(frameCount)
	p.window.RecordFrameTime(timestamp, "vsync")
	p.referee.Tick(timestamp)
	p.FlushPipelineWithoutAnimation()
}

// FlushPipelineWithoutAnimation sequences rebuild, deactivation sweep and
// message flush. The phases run as chained tasks so each sees the previous
// one's results.
func (p *PipelineContext) FlushPipelineWithoutAnimation() {
	p.BuildDirtyElement()
	p.ClearDeactivateElements()
	p.FlushMessages()
}

// ClearDeactivateElements releases detached subtrees that were not
// re-attached since they were deactivated.
func (p *PipelineContext) ClearDeactivateElements() {
	runOn(p.executor, TaskJS, p.clearDeactivateElements)
}

func (p *PipelineContext) clearDeactivateElements() {
	p.mu.Lock()
	ids := p.deactivated
	p.deactivated = make(map[NodeID]struct{})
	p.mu.Unlock()

	for id := range ids {
		n, ok := p.tree.Node(id)
		if !ok || id == p.rootID || n.base().ParentID() != InvalidNodeID {
			continue
		}
		released := p.tree.destroy(id)
		debug.Log("released %d nodes under %d", released, id)
	}
}

// FlushMessages runs the window's platform messages once the frame's UI
// work has been queued ahead of them.
func (p *PipelineContext) FlushMessages() {
	p.executor.PostTask(func() {
		p.executor.PostTask(func() {
			p.setState(StateMessageFlush)
			p.window.FlushTasks()
			p.setState(StateIdle)
		}, TaskUI)
	}, TaskJS)
}

// RequestVsync posts a frame to the UI thread as a vsync source would.
func (p *PipelineContext) RequestVsync(timestamp time.Duration) {
	n := p.vsyncCount.Add(1)
	p.executor.PostTask(func() { p.FlushVsync(timestamp, n) }, TaskUI)
}

// SetupRootElement creates the root and the stage under it. Call it once,
// before any page is loaded.
func (p *PipelineContext) SetupRootElement() *FrameNode {
	if root, ok := p.tree.FrameNode(p.rootID); ok {
		return root
	}
	root := p.tree.CreateFrameNode(RootTag, InvalidNodeID, &BoxPattern{})
	root.layoutProperty.Alignment = layout.AlignmentTopStart
	stage := p.tree.CreateFrameNode(StageTag, InvalidNodeID, &BoxPattern{})
	stage.layoutProperty.Alignment = layout.AlignmentTopStart
	stage.layoutProperty.Measure.SelfIdealSize = layout.CalcSize{Width: layout.Percent(100), Height: layout.Percent(100)}
	p.rootID, p.stageID = root.id, stage.id

	p.tree.AddChild(root.id, stage.id, -1)
	p.window.SetRootFrameNode(root.id)
	p.postRootMeasure()
	return root
}

// SetRootRect resizes the root surface and schedules a relayout.
func (p *PipelineContext) SetRootRect(width, height float32, offset Offset) {
	p.mu.Lock()
	p.rootSize = layout.NewSize(width, height)
	p.rootOffset = offset
	p.mu.Unlock()
	p.postRootMeasure()
}

func (p *PipelineContext) postRootMeasure() {
	tree, id := p.tree, p.rootID
	runOn(p.executor, TaskJS, func() {
		root, ok := tree.FrameNode(id)
		if !ok {
			return
		}
		size := p.rootConstraint().MaxSize
		root.layoutProperty.SetSelfIdealSize(size.Width, size.Height)
		root.markDirty(layout.FlagUpdateMeasure)
	})
}

func (p *PipelineContext) rootConstraint() layout.Constraint {
	p.mu.Lock()
	defer p.mu.Unlock()
	return layout.FixedConstraint(p.rootSize)
}

func (p *PipelineContext) rootOrigin() layout.OffsetF {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rootOffset
}

// SetupPage returns the page node with id, creating it under the stage if
// needed. A zero id creates a new page.
func (p *PipelineContext) SetupPage(id NodeID) *FrameNode {
	page := p.tree.GetOrCreateFrameNode(PageTag, id, func() Pattern { return &BoxPattern{} })
	if page.ParentID() == p.stageID {
		return page
	}
	page.layoutProperty.Alignment = layout.AlignmentTopStart
	page.layoutProperty.Measure.SelfIdealSize = layout.CalcSize{Width: layout.Percent(100), Height: layout.Percent(100)}
	p.tree.AddChild(p.stageID, page.id, -1)
	p.pages = append(p.pages, page.id)
	return page
}

// LoadPage asks f for content and mounts it on a new page. It runs on the
// logic thread and waits for the result.
func (p *PipelineContext) LoadPage(f Frontend) (NodeID, error) {
	if f == nil {
		return InvalidNodeID, errors.New("ace: nil frontend")
	}
	var (
		pageID NodeID
		err    error
	)
	load := func() {
		content, lerr := f.LoadPage(p)
		if lerr != nil {
			err = fmt.Errorf("load page: %w", lerr)
			return
		}
		page := p.SetupPage(InvalidNodeID)
		if !p.tree.AddChild(page.id, content, -1) {
			err = fmt.Errorf("load page: content node %d not found", content)
			return
		}
		pageID = page.id
	}
	if p.executor.IsOnThread(TaskJS) {
		load()
	} else {
		p.executor.PostSyncTask(load, TaskJS)
	}
	return pageID, err
}

// PopPage detaches the most recent page. Its nodes are released by the
// next deactivation sweep.
func (p *PipelineContext) PopPage() bool {
	if len(p.pages) == 0 {
		return false
	}
	id := p.pages[len(p.pages)-1]
	p.pages = p.pages[:len(p.pages)-1]
	return p.tree.RemoveChild(p.stageID, id)
}

// Pages returns the page stack, bottom first.
func (p *PipelineContext) Pages() []NodeID {
	return append([]NodeID(nil), p.pages...)
}

// OnTouchEvent dispatches a touch sample on the UI thread. A down sample
// starts a touch test from the root; later samples go to the recognizers
// that test collected.
func (p *PipelineContext) OnTouchEvent(ev TouchEvent) bool {
	if !checkThread(p.executor, TaskUI, "OnTouchEvent") {
		return false
	}
	if ev.Type == gesture.TouchDown {
		root, ok := p.tree.FrameNode(p.rootID)
		if !ok {
			return false
		}
		var result gesture.TouchTestResult
		root.TouchTest(ev.X, ev.Y, &result)
		if len(result) == 0 {
			return false
		}
		p.referee.Begin(ev.ID, result)
		p.activeTouches.Add(1)
	}
	active := p.referee.Active(ev.ID)
	handled := p.referee.HandleEvent(ev)
	if active && !p.referee.Active(ev.ID) {
		p.activeTouches.Add(-1)
	}
	return handled
}

// Close stops watchers and the Run loop. It is safe to call more than once.
func (p *PipelineContext) Close() error {
	p.stopOnce.Do(func() {
		close(p.stopCh)
	})
	return nil
}
