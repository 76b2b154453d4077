package ace

import (
	"sync"

	"github.com/grindlemire/go-ace/internal/debug"
)

type manualTask struct {
	fn  func()
	typ TaskType
}

// ManualExecutor queues tasks until they are drained explicitly. All task
// types share one goroutine, the caller's, which makes frame execution
// deterministic for tests and one-shot tools. While a task runs, IsOnThread
// reports true only for that task's type.
type ManualExecutor struct {
	mu      sync.Mutex
	queue   []manualTask
	current TaskType
	running bool
	closed  bool
}

var _ TaskExecutor = (*ManualExecutor)(nil)

// NewManualExecutor returns an empty executor.
func NewManualExecutor() *ManualExecutor {
	return &ManualExecutor{}
}

// PostTask appends fn to the queue.
func (e *ManualExecutor) PostTask(fn func(), t TaskType) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		debug.Warn("task dropped", "type", t.String(), "err", ErrExecutorClosed)
		return
	}
	e.queue = append(e.queue, manualTask{fn: fn, typ: t})
}

// PostSyncTask runs fn immediately as type t, restoring the previous thread
// identity afterwards.
func (e *ManualExecutor) PostSyncTask(fn func(), t TaskType) {
	if fn == nil {
		return
	}
	if e.IsOnThread(t) {
		debug.Error("sync task posted to the current thread", "type", t.String())
	}
	e.Run(t, fn)
}

// IsOnThread reports whether a task of type t is currently running.
func (e *ManualExecutor) IsOnThread(t TaskType) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running && e.current == t
}

// Run executes fn as if on thread t.
func (e *ManualExecutor) Run(t TaskType, fn func()) {
	e.mu.Lock()
	prev, prevRunning := e.current, e.running
	e.current, e.running = t, true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.current, e.running = prev, prevRunning
		e.mu.Unlock()
	}()
	fn()
}

// RunOne runs the oldest queued task and reports whether there was one.
func (e *ManualExecutor) RunOne() bool {
	e.mu.Lock()
	if len(e.queue) == 0 {
		e.mu.Unlock()
		return false
	}
	task := e.queue[0]
	e.queue[0] = manualTask{}
	e.queue = e.queue[1:]
	e.mu.Unlock()

	e.Run(task.typ, task.fn)
	return true
}

// RunPending drains the queue, including tasks posted while draining, and
// returns how many ran.
func (e *ManualExecutor) RunPending() int {
	n := 0
	for e.RunOne() {
		n++
	}
	return n
}

// Pending returns the number of queued tasks.
func (e *ManualExecutor) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

// Close drops queued tasks and rejects new ones.
func (e *ManualExecutor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.queue = nil
	return nil
}
