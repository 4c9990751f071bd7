// Package actions contains the validated entry points the UI consumes.
// Each action checks its input, calls exactly one repository method and
// returns a Result. Validation failures carry specific messages and never
// reach the repository; repository failures are logged and collapsed to a
// generic message so internal detail stays out of responses.
package actions

import "encoding/json"

// Result is a tagged success-or-error value. Exactly one branch is set:
// either Ok with data or Err with a user-safe message.
type Result[T any] struct {
	ok   bool
	data T
	err  string
}

// Ok returns a successful result carrying data.
func Ok[T any](data T) Result[T] {
	return Result[T]{ok: true, data: data}
}

// Err returns a failed result carrying a user-facing message.
func Err[T any](message string) Result[T] {
	return Result[T]{err: message}
}

// Success reports whether the result is the Ok branch.
func (r Result[T]) Success() bool { return r.ok }

// Data returns the carried value; the zero value on the Err branch.
func (r Result[T]) Data() T { return r.data }

// Err returns the error message; empty on the Ok branch.
func (r Result[T]) Err() string { return r.err }

// MarshalJSON renders the envelope shape the hooks and HTTP layer expose:
// {"success": true, "data": ...} or {"success": false, "error": "..."}.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.ok {
		return json.Marshal(struct {
			Success bool `json:"success"`
			Data    T    `json:"data"`
		}{true, r.data})
	}
	return json.Marshal(struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}{false, r.err})
}

// PaginationResult is one page of rows plus paging metadata.
type PaginationResult[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// Revalidator is notified when a mutation makes cached representations of
// the named paths stale.
type Revalidator interface {
	Revalidate(paths ...string)
}

// Auditor records mutations for the dashboard activity log.
type Auditor interface {
	LogMutation(actorID, action, entityType, entityID string, err error)
}

// NopRevalidator satisfies Revalidator and does nothing. Used in tests
// and when caching is disabled.
type NopRevalidator struct{}

func (NopRevalidator) Revalidate(paths ...string) {}
