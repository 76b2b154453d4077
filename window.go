package ace

import (
	"sync"
	"time"
)

// Window is the host surface the pipeline renders into.
type Window interface {
	// RequestFrame asks for a vsync callback.
	RequestFrame()
	// RecordFrameTime notes the start of a frame.
	RecordFrameTime(timestamp time.Duration, label string)
	// FlushTasks runs pending platform messages.
	FlushTasks()
	// SetRootFrameNode tells the window which node it presents.
	SetRootFrameNode(id NodeID)
}

// Frontend produces page content.
type Frontend interface {
	// LoadPage builds the page's node tree and returns its root.
	LoadPage(ctx *PipelineContext) (NodeID, error)
}

// FrontendFunc adapts a function to Frontend.
type FrontendFunc func(ctx *PipelineContext) (NodeID, error)

// LoadPage calls f.
func (f FrontendFunc) LoadPage(ctx *PipelineContext) (NodeID, error) { return f(ctx) }

// FrameRecord is one RecordFrameTime call.
type FrameRecord struct {
	Timestamp time.Duration
	Label     string
}

// HeadlessWindow is a Window with no display. It counts frame requests,
// records frame times and queues platform messages until FlushTasks.
type HeadlessWindow struct {
	mu       sync.Mutex
	requests int
	pending  bool
	frames   []FrameRecord
	messages []func()
	root     NodeID
}

var _ Window = (*HeadlessWindow)(nil)

// NewHeadlessWindow returns an idle window.
func NewHeadlessWindow() *HeadlessWindow {
	return &HeadlessWindow{}
}

func (w *HeadlessWindow) RequestFrame() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.requests++
	w.pending = true
}

func (w *HeadlessWindow) RecordFrameTime(timestamp time.Duration, label string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.frames = append(w.frames, FrameRecord{Timestamp: timestamp, Label: label})
	w.pending = false
}

func (w *HeadlessWindow) FlushTasks() {
	w.mu.Lock()
	msgs := w.messages
	w.messages = nil
	w.mu.Unlock()
	for _, m := range msgs {
		m()
	}
}

func (w *HeadlessWindow) SetRootFrameNode(id NodeID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.root = id
}

// PostMessage queues a platform message for the next FlushTasks.
func (w *HeadlessWindow) PostMessage(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.messages = append(w.messages, fn)
}

// FrameRequests returns how many times a frame was requested.
func (w *HeadlessWindow) FrameRequests() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.requests
}

// FramePending reports whether a frame was requested since the last one
// started.
func (w *HeadlessWindow) FramePending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending
}

// Frames returns the recorded frame times.
func (w *HeadlessWindow) Frames() []FrameRecord {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]FrameRecord(nil), w.frames...)
}

// Root returns the node set by SetRootFrameNode.
func (w *HeadlessWindow) Root() NodeID {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.root
}
