package ace

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/grindlemire/go-ace/internal/debug"
)

// taskQueue is an unbounded FIFO with a wake signal.
type taskQueue struct {
	mu    sync.Mutex
	items []func()
	wake  chan struct{}
}

func newTaskQueue(capacity int) *taskQueue {
	return &taskQueue{
		items: make([]func(), 0, capacity),
		wake:  make(chan struct{}, 1),
	}
}

func (q *taskQueue) push(fn func()) {
	q.mu.Lock()
	q.items = append(q.items, fn)
	q.mu.Unlock()
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *taskQueue) drain() []func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}

func (q *taskQueue) run(ctx context.Context) error {
	for {
		for _, fn := range q.drain() {
			fn()
		}
		select {
		case <-ctx.Done():
			return nil
		case <-q.wake:
		}
	}
}

// ThreadExecutor runs each task type on its own goroutine locked to an OS
// thread. The goroutines are owned by an errgroup and stop when Close is
// called or the start context is cancelled.
type ThreadExecutor struct {
	queues [numTaskTypes]*taskQueue
	tids   [numTaskTypes]atomic.Int64

	group   *errgroup.Group
	cancel  context.CancelFunc
	started chan struct{}
	closed  atomic.Bool
}

var _ TaskExecutor = (*ThreadExecutor)(nil)

// NewThreadExecutor creates an executor whose queues start with the given
// capacity. Call Start before posting work that must run.
func NewThreadExecutor(queueSize int) *ThreadExecutor {
	if queueSize < 1 {
		queueSize = 1
	}
	e := &ThreadExecutor{started: make(chan struct{})}
	for i := range e.queues {
		e.queues[i] = newTaskQueue(queueSize)
	}
	return e
}

// Start launches one goroutine per task type and returns once every thread
// has recorded its identity.
func (e *ThreadExecutor) Start(ctx context.Context) error {
	if e.closed.Load() {
		return ErrExecutorClosed
	}
	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	e.group, e.cancel = g, cancel

	var ready sync.WaitGroup
	ready.Add(int(numTaskTypes))
	for i := range e.queues {
		t := TaskType(i)
		q := e.queues[i]
		g.Go(func() error {
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			e.tids[t].Store(threadID())
			ready.Done()
			debug.Log("executor thread %s started", t)
			return q.run(ctx)
		})
	}
	ready.Wait()
	close(e.started)
	return nil
}

// PostTask queues fn on thread t.
func (e *ThreadExecutor) PostTask(fn func(), t TaskType) {
	if fn == nil || t >= numTaskTypes {
		return
	}
	if e.closed.Load() {
		debug.Warn("task dropped", "type", t.String(), "err", ErrExecutorClosed)
		return
	}
	e.queues[t].push(fn)
}

// PostSyncTask queues fn on thread t and waits for it. Posting to the
// caller's own thread would deadlock, so that case logs and runs inline.
func (e *ThreadExecutor) PostSyncTask(fn func(), t TaskType) {
	if fn == nil || t >= numTaskTypes {
		return
	}
	if e.IsOnThread(t) {
		debug.Error("sync task posted to the current thread", "type", t.String())
		fn()
		return
	}
	if e.closed.Load() {
		debug.Warn("sync task dropped", "type", t.String(), "err", ErrExecutorClosed)
		return
	}
	done := make(chan struct{})
	e.queues[t].push(func() {
		defer close(done)
		fn()
	})
	<-done
}

// IsOnThread reports whether the caller runs on thread t. Where thread ids
// are unavailable the gate always passes.
func (e *ThreadExecutor) IsOnThread(t TaskType) bool {
	if !threadGateSupported {
		return true
	}
	if t >= numTaskTypes {
		return false
	}
	select {
	case <-e.started:
	default:
		return false
	}
	return e.tids[t].Load() == threadID()
}

// Close stops all threads and waits for them to exit. Queued tasks that
// have not started are dropped.
func (e *ThreadExecutor) Close() error {
	if e.closed.Swap(true) {
		return nil
	}
	if e.cancel == nil {
		return nil
	}
	e.cancel()
	if err := e.group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
