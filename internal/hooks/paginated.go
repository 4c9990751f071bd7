package hooks

import (
	"sync"
	"sync/atomic"

	"github.com/mimiru/mimiru/internal/actions"
)

// Paginated wraps a page-keyed fetch action and tracks the current page.
type Paginated[T any] struct {
	fetch func(page, limit int) actions.Result[actions.PaginationResult[T]]
	limit int

	mu          sync.Mutex
	seq         atomic.Uint64
	data        actions.PaginationResult[T]
	hasData     bool
	loading     bool
	err         string
	currentPage int
	onChange    func()
}

// NewPaginated creates a paginated container starting at initialPage.
func NewPaginated[T any](fetch func(page, limit int) actions.Result[actions.PaginationResult[T]], initialPage, limit int) *Paginated[T] {
	if initialPage <= 0 {
		initialPage = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return &Paginated[T]{fetch: fetch, limit: limit, currentPage: initialPage}
}

// OnChange registers a callback invoked after every state change. Must be
// set before the first fetch.
func (p *Paginated[T]) OnChange(fn func()) {
	p.onChange = fn
}

// Fetch loads the current page.
func (p *Paginated[T]) Fetch() {
	p.mu.Lock()
	page := p.currentPage
	p.mu.Unlock()
	p.fetchPage(page)
}

// GoToPage loads the given page. The current page only advances when the
// page loads successfully.
func (p *Paginated[T]) GoToPage(page int) {
	if page <= 0 {
		return
	}
	p.fetchPage(page)
}

// NextPage loads the page after the current one, if any.
func (p *Paginated[T]) NextPage() {
	p.mu.Lock()
	page := p.currentPage
	hasNext := !p.hasData || page < p.data.TotalPages
	p.mu.Unlock()
	if hasNext {
		p.fetchPage(page + 1)
	}
}

// PrevPage loads the page before the current one, if any.
func (p *Paginated[T]) PrevPage() {
	p.mu.Lock()
	page := p.currentPage
	p.mu.Unlock()
	if page > 1 {
		p.fetchPage(page - 1)
	}
}

// Refetch reloads the current page.
func (p *Paginated[T]) Refetch() { p.Fetch() }

// State returns a copy of the current state.
func (p *Paginated[T]) State() Snapshot[actions.PaginationResult[T]] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot[actions.PaginationResult[T]]{Data: p.data, Loading: p.loading, Err: p.err}
}

// CurrentPage returns the page of the most recent successful load (or the
// initial page before any load succeeded).
func (p *Paginated[T]) CurrentPage() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentPage
}

func (p *Paginated[T]) fetchPage(page int) {
	// Claim the sequence number under the lock so the loading publish is
	// ordered with every other request's publishes.
	p.mu.Lock()
	seq := p.seq.Add(1)
	p.loading = true
	p.err = ""
	p.mu.Unlock()
	p.notify()

	result := p.fetch(page, p.limit)

	p.mu.Lock()
	if p.seq.Load() != seq {
		p.mu.Unlock()
		return
	}
	if result.Success() {
		p.data = result.Data()
		p.hasData = true
		p.currentPage = page
	} else {
		p.err = errOrUnknown(result.Err())
	}
	p.loading = false
	p.mu.Unlock()
	p.notify()
}

func (p *Paginated[T]) notify() {
	if p.onChange != nil {
		p.onChange()
	}
}
