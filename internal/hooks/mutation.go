package hooks

import (
	"sync"

	"github.com/mimiru/mimiru/internal/actions"
)

// Mutation wraps a mutating action, tracking loading and the last error.
// Unlike fetch containers, every invocation's outcome is returned to its
// caller; the sequence guard applies only to the shared state.
type Mutation[In, Out any] struct {
	mutate func(In) actions.Result[Out]

	mu       sync.Mutex
	inFlight int
	err      string
	onChange func()
}

// NewMutation creates a mutation container over the action.
func NewMutation[In, Out any](mutate func(In) actions.Result[Out]) *Mutation[In, Out] {
	return &Mutation[In, Out]{mutate: mutate}
}

// OnChange registers a callback invoked after every state change. Must be
// set before the first Do.
func (m *Mutation[In, Out]) OnChange(fn func()) {
	m.onChange = fn
}

// Do runs the mutation and returns its result.
func (m *Mutation[In, Out]) Do(input In) actions.Result[Out] {
	m.mu.Lock()
	m.inFlight++
	m.err = ""
	m.mu.Unlock()
	m.notify()

	result := m.mutate(input)

	m.mu.Lock()
	m.inFlight--
	if !result.Success() {
		m.err = errOrUnknown(result.Err())
	}
	m.mu.Unlock()
	m.notify()

	return result
}

// Loading reports whether any invocation is in flight.
func (m *Mutation[In, Out]) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inFlight > 0
}

// Err returns the message of the most recent failure, cleared when a new
// invocation starts.
func (m *Mutation[In, Out]) Err() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

func (m *Mutation[In, Out]) notify() {
	if m.onChange != nil {
		m.onChange()
	}
}
