// Package repository defines the record store boundary of the catalog.
package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"bibliobot/internal/catalog"
	"bibliobot/internal/filter"
)

// BookRepository is the external record store holding the catalog.
type BookRepository interface {
	// Select returns every record matching f, in store order.
	Select(ctx context.Context, f filter.Formula) ([]catalog.Book, error)
	// Create stores a new record and returns its id.
	Create(ctx context.Context, b catalog.Book) (string, error)
	// Update applies p to the record with the given id and returns the stored result.
	Update(ctx context.Context, id string, p catalog.Patch) (*catalog.Book, error)
}

// RemoteError wraps any failure reported by, or on the way to, the record store.
type RemoteError struct {
	Op         string // select, create or update
	StatusCode int    // HTTP status when the store answered, 0 otherwise
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("record store %s failed: HTTP %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("record store %s failed: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// IsUnprocessable reports whether the store rejected a payload as unprocessable,
// which for a new book means a value (typically the owner) is not accepted.
func IsUnprocessable(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.StatusCode == http.StatusUnprocessableEntity
}
