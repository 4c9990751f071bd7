package hooks

import (
	"sync"
	"sync/atomic"

	"github.com/mimiru/mimiru/internal/actions"
)

// Search wraps a query-keyed fetch action. It remembers the last
// submitted query and clears results when the query is emptied.
type Search[T any] struct {
	search func(query string) actions.Result[[]T]

	mu       sync.Mutex
	seq      atomic.Uint64
	results  []T
	loading  bool
	err      string
	query    string
	onChange func()
}

// NewSearch creates a search container over the search action.
func NewSearch[T any](search func(query string) actions.Result[[]T]) *Search[T] {
	return &Search[T]{search: search}
}

// OnChange registers a callback invoked after every state change. Must be
// set before the first Submit.
func (s *Search[T]) OnChange(fn func()) {
	s.onChange = fn
}

// Submit runs a search for query. An empty query clears the results
// without calling the action.
func (s *Search[T]) Submit(query string) {
	// The sequence number is claimed under the lock, so each publish
	// below is ordered against every other submission's publishes and a
	// superseded call can never mark the container loading after a newer
	// one settled it.
	if query == "" {
		s.mu.Lock()
		s.seq.Add(1)
		s.results = nil
		s.query = ""
		s.loading = false
		s.err = ""
		s.mu.Unlock()
		s.notify()
		return
	}

	s.mu.Lock()
	seq := s.seq.Add(1)
	s.loading = true
	s.err = ""
	s.query = query
	s.mu.Unlock()
	s.notify()

	result := s.search(query)

	s.mu.Lock()
	if s.seq.Load() != seq {
		s.mu.Unlock()
		return
	}
	if result.Success() {
		s.results = result.Data()
	} else {
		s.err = errOrUnknown(result.Err())
	}
	s.loading = false
	s.mu.Unlock()
	s.notify()
}

// State returns a copy of the current results.
func (s *Search[T]) State() Snapshot[[]T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot[[]T]{Data: s.results, Loading: s.loading, Err: s.err}
}

// Query returns the last submitted query.
func (s *Search[T]) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *Search[T]) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}
