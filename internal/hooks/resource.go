// Package hooks bridges the action layer into UI-consumable state
// containers: data plus loading and error flags, with refetch and
// pagination controls. Containers are safe for concurrent use. Every
// issued request carries a monotonic sequence number and only the most
// recently issued request may publish its outcome, so a slow response can
// never overwrite the state of a newer one.
package hooks

import (
	"sync"
	"sync/atomic"

	"github.com/mimiru/mimiru/internal/actions"
)

// Snapshot is a point-in-time copy of a container's state.
type Snapshot[T any] struct {
	Data    T
	Loading bool
	Err     string
}

// Resource wraps a parameterless fetch action.
type Resource[T any] struct {
	fetch func() actions.Result[T]

	mu       sync.Mutex
	seq      atomic.Uint64
	data     T
	loading  bool
	err      string
	onChange func()
}

// NewResource creates a resource over fetch. The resource is empty until
// the first Fetch call.
func NewResource[T any](fetch func() actions.Result[T]) *Resource[T] {
	return &Resource[T]{fetch: fetch}
}

// OnChange registers a callback invoked after every state change. Must be
// set before the first Fetch.
func (r *Resource[T]) OnChange(fn func()) {
	r.onChange = fn
}

// Fetch runs the action and publishes the outcome. If another Fetch was
// issued while this one was in flight, the outcome is discarded.
func (r *Resource[T]) Fetch() {
	// The sequence number is claimed under the same lock that publishes
	// the loading state, so a superseded call can never mark the
	// container loading after a newer call already settled it.
	r.mu.Lock()
	seq := r.seq.Add(1)
	r.loading = true
	r.err = ""
	r.mu.Unlock()
	r.notify()

	result := r.fetch()

	r.mu.Lock()
	if r.seq.Load() != seq {
		r.mu.Unlock()
		return
	}
	if result.Success() {
		r.data = result.Data()
	} else {
		r.err = errOrUnknown(result.Err())
	}
	r.loading = false
	r.mu.Unlock()
	r.notify()
}

// Refetch re-runs the fetch action.
func (r *Resource[T]) Refetch() { r.Fetch() }

// State returns a copy of the current state.
func (r *Resource[T]) State() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot[T]{Data: r.data, Loading: r.loading, Err: r.err}
}

func (r *Resource[T]) notify() {
	if r.onChange != nil {
		r.onChange()
	}
}

func errOrUnknown(msg string) string {
	if msg == "" {
		return "Unknown error"
	}
	return msg
}
