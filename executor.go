package ace

import (
	"errors"

	"github.com/grindlemire/go-ace/internal/debug"
)

// ErrExecutorClosed is reported when a task is posted after Close.
var ErrExecutorClosed = errors.New("ace: executor closed")

// TaskType names the logical thread a task runs on.
type TaskType uint8

const (
	// TaskPlatform runs host platform messages.
	TaskPlatform TaskType = iota
	// TaskUI runs layout, paint and input dispatch.
	TaskUI
	// TaskJS runs application logic: rebuilds and state updates.
	TaskJS

	numTaskTypes
)

func (t TaskType) String() string {
	switch t {
	case TaskPlatform:
		return "platform"
	case TaskUI:
		return "ui"
	case TaskJS:
		return "js"
	default:
		return "unknown"
	}
}

// TaskExecutor posts closures to logical threads. Tasks of one type run in
// FIFO order. PostSyncTask blocks until the task has run and must not be
// issued from the thread it targets.
type TaskExecutor interface {
	PostTask(fn func(), t TaskType)
	PostSyncTask(fn func(), t TaskType)
	IsOnThread(t TaskType) bool
}

// checkThread is the single thread-affinity gate. It logs and reports false
// when the caller is not on the expected thread.
func checkThread(exec TaskExecutor, t TaskType, op string) bool {
	if exec == nil || exec.IsOnThread(t) {
		return true
	}
	debug.Error("called off its thread", "op", op, "want", t.String())
	return false
}

// runOn runs fn inline when already on thread t and posts it otherwise.
func runOn(exec TaskExecutor, t TaskType, fn func()) {
	if exec.IsOnThread(t) {
		fn()
		return
	}
	exec.PostTask(fn, t)
}
