package ace

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grindlemire/go-ace/internal/debug"
)

func TestMain(m *testing.M) {
	debug.Discard()
	os.Exit(m.Run())
}

// harness is a pipeline on a ManualExecutor with a root and stage already
// laid out at 1080x2244.
type harness struct {
	exec *ManualExecutor
	win  *HeadlessWindow
	p    *PipelineContext
	now  int64
}

func newHarness(t *testing.T, opts ...PipelineOption) *harness {
	t.Helper()
	exec := NewManualExecutor()
	win := NewHeadlessWindow()
	opts = append([]PipelineOption{WithRootSize(1080, 2244)}, opts...)
	p, err := NewPipelineContext(exec, win, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })

	h := &harness{exec: exec, win: win, p: p}
	h.js(func() { p.SetupRootElement() })
	h.frame()
	return h
}

func (h *harness) js(fn func()) { h.exec.Run(TaskJS, fn) }

func (h *harness) ui(fn func()) { h.exec.Run(TaskUI, fn) }

// frame runs one vsync and everything it chains.
func (h *harness) frame() {
	h.now++
	h.p.RequestVsync(0)
	h.exec.RunPending()
}

// frameNode creates a frame node on the logic thread.
func (h *harness) frameNode(tag string, p Pattern, fn func(lp *LayoutProperty)) *FrameNode {
	var n *FrameNode
	h.js(func() {
		n = h.p.Tree().CreateFrameNode(tag, InvalidNodeID, p)
		if fn != nil {
			fn(n.LayoutProperty())
		}
	})
	return n
}

// load mounts content on a new page and runs a frame.
func (h *harness) load(t *testing.T, content NodeID) NodeID {
	t.Helper()
	var page NodeID
	var err error
	h.js(func() {
		page, err = h.p.LoadPage(FrontendFunc(func(*PipelineContext) (NodeID, error) {
			return content, nil
		}))
	})
	require.NoError(t, err)
	h.frame()
	return page
}

func (h *harness) add(parent, child NodeID) {
	h.js(func() { h.p.Tree().AddChild(parent, child, -1) })
}

func sized(w, h float32) func(lp *LayoutProperty) {
	return func(lp *LayoutProperty) { lp.SetSelfIdealSize(w, h) }
}

func fill(lp *LayoutProperty) {
	lp.Measure.SelfIdealSize.Width = Percent(100)
	lp.Measure.SelfIdealSize.Height = Percent(100)
}
