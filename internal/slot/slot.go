// Package slot provides a concurrency-safe cell that is written by a background
// task and read on every render pass.
package slot

import "sync"

// State of a slot
type State int

const (
	// Empty means nothing was written yet, the value is still loading
	Empty State = iota
	// Populated means the value was written
	Populated
	// Failed means the writer gave up, Err holds the reason
	Failed
)

func (s State) String() string {
	switch s {
	case Populated:
		return "populated"
	case Failed:
		return "failed"
	default:
		return "empty"
	}
}

// View is a consistent snapshot of a slot
type View[T any] struct {
	State State
	Value T
	Err   error
}

// Ready reports whether the snapshot holds a value
func (v View[T]) Ready() bool {
	return v.State == Populated
}

// Reader is the read side of a slot handed to presentation code
type Reader[T any] interface {
	Load() View[T]
}

// Slot holds an optional value of type T.
// Readers never block each other, writers hold the lock only to swap the state.
type Slot[T any] struct {
	mu   sync.RWMutex
	view View[T]
}

// New creates an empty slot
func New[T any]() *Slot[T] {
	return &Slot[T]{}
}

// Set populates the slot, replacing any previous value or failure
func (s *Slot[T]) Set(value T) {
	s.mu.Lock()
	s.view = View[T]{State: Populated, Value: value}
	s.mu.Unlock()
}

// Fail marks the slot as failed. A populated slot keeps its value.
func (s *Slot[T]) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view.State == Populated {
		return
	}
	s.view = View[T]{State: Failed, Err: err}
}

// Load returns the current snapshot
func (s *Slot[T]) Load() View[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Get returns the value and true if the slot is populated
func (s *Slot[T]) Get() (T, bool) {
	v := s.Load()
	return v.Value, v.Ready()
}
