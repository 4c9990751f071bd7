package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// QueryError is returned by the repository packages for any query failure
// other than a missing row on a single-row fetch. It names the table and
// operation so the failing query can be identified in logs; the action
// layer is responsible for never passing the detail on to callers.
type QueryError struct {
	Table string
	Op    string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: failed to %s: %v", e.Table, e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError wraps err with the table and operation it came from.
func NewQueryError(table, op string, err error) *QueryError {
	return &QueryError{Table: table, Op: op, Err: err}
}

// IsUniqueViolation reports whether err was caused by a unique constraint
// violation. Used by the action layer to translate duplicate usernames
// and emails into their specific messages.
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	// Fallback for errors that lost the driver type through wrapping.
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
