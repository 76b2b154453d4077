// State[T] wraps a value and notifies bindings when it changes. Bindings
// run on the logic thread, so a binding may mark custom nodes for rebuild
// directly.
//
// Thread Safety Rules:
//   - Get() is safe to call from any goroutine
//   - Set() from another goroutine is forwarded to the logic thread
//
// Example usage:
//
//	count := ace.NewState(pipeline, 0)
//	count.BindNode(counterNode) // counterNode rebuilds on change
//	count.Set(count.Get() + 1)
//
// Batching:
//
// Use PipelineContext.Batch() to coalesce multiple Set() calls:
//
//	pipeline.Batch(func() {
//	    firstName.Set("Bob")
//	    lastName.Set("Smith")
//	})  // Bindings fire once here, not twice
package ace

import (
	"sync"
	"sync/atomic"

	"github.com/grindlemire/go-ace/internal/debug"
)

// batchContext tracks batch state for deferring binding execution.
type batchContext struct {
	mu           sync.Mutex
	depth        int               // nesting depth (0 = not batching)
	pending      map[uint64]func() // pending binding callbacks keyed by binding ID
	pendingOrder []uint64          // order in which bindings were first triggered
}

// globalBindingID is a global counter for generating unique binding IDs.
var globalBindingID atomic.Uint64

// State wraps a value and notifies bindings when it changes.
type State[T any] struct {
	mu       sync.RWMutex
	value    T
	bindings []*binding[T]
	pipeline *PipelineContext
}

type binding[T any] struct {
	id     uint64
	fn     func(T)
	active bool
}

// Unbind is a handle to remove a binding.
type Unbind func()

// NewState creates a state whose bindings run on p's logic thread.
func NewState[T any](p *PipelineContext, initial T) *State[T] {
	return &State[T]{value: initial, pipeline: p}
}

// Get returns the current value.
func (s *State[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies all bindings. Called off the logic
// thread, the update is posted there. Inside a Batch the bindings are
// deferred until the batch completes.
func (s *State[T]) Set(v T) {
	p := s.pipeline
	if p == nil {
		debug.Error("state without pipeline")
		return
	}
	if !p.executor.IsOnThread(TaskJS) {
		p.executor.PostTask(func() { s.Set(v) }, TaskJS)
		return
	}

	debug.Log("State.Set: setting value to %v", v)
	s.mu.Lock()
	s.value = v
	active := make([]*binding[T], 0, len(s.bindings))
	for _, b := range s.bindings {
		if b.active {
			active = append(active, b)
		}
	}
	s.bindings = active
	s.mu.Unlock()

	batch := &p.batch
	batch.mu.Lock()
	isBatching := batch.depth > 0
	if isBatching {
		// Later Set() calls to the same binding overwrite the value;
		// execution order follows first occurrence.
		for _, b := range active {
			fn := b.fn
			if _, exists := batch.pending[b.id]; !exists {
				batch.pendingOrder = append(batch.pendingOrder, b.id)
			}
			batch.pending[b.id] = func() { fn(v) }
		}
	}
	batch.mu.Unlock()

	if isBatching {
		debug.Log("State.Set: deferred %d bindings (batching)", len(active))
		return
	}
	for _, b := range active {
		b.fn(v)
	}
}

// Update applies fn to the current value and sets the result.
func (s *State[T]) Update(fn func(T) T) {
	s.Set(fn(s.Get()))
}

// Bind registers fn to be called with each new value, in registration
// order. The returned Unbind removes it.
func (s *State[T]) Bind(fn func(T)) Unbind {
	id := globalBindingID.Add(1)

	s.mu.Lock()
	b := &binding[T]{id: id, fn: fn, active: true}
	s.bindings = append(s.bindings, b)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		b.active = false
		s.mu.Unlock()
	}
}

// BindNode rebuilds n whenever the value changes. The binding is removed
// when n leaves the arena.
func (s *State[T]) BindNode(n *CustomNode) Unbind {
	tree, id := n.tree, n.id
	unbind := s.Bind(func(T) {
		if c, ok := tree.CustomNode(id); ok {
			c.MarkNeedRebuild()
		}
	})
	n.OnCleanup(unbind)
	return unbind
}

// Batch runs fn and defers binding callbacks until the outermost Batch
// returns. A binding triggered several times runs once, with the final
// value, in the order bindings were first triggered.
func (p *PipelineContext) Batch(fn func()) {
	batch := &p.batch
	batch.mu.Lock()
	batch.depth++
	batch.mu.Unlock()

	defer func() {
		batch.mu.Lock()
		batch.depth--
		var callbacks []func()
		if batch.depth == 0 && len(batch.pending) > 0 {
			callbacks = make([]func(), 0, len(batch.pendingOrder))
			for _, id := range batch.pendingOrder {
				if cb, ok := batch.pending[id]; ok {
					callbacks = append(callbacks, cb)
				}
			}
			batch.pending = make(map[uint64]func())
			batch.pendingOrder = nil
		}
		batch.mu.Unlock()

		for _, cb := range callbacks {
			cb()
		}
	}()

	fn()
}
