// Package repository defines the persistence contracts shared by the
// in-memory and sqlite backends.
package repository

import "errors"

var (
	// ErrNotFound is returned when an id or key resolves to nothing.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when user creation would violate email
	// uniqueness.
	ErrDuplicateEmail = errors.New("email already exists")
)

// Page selects a slice of a listing. A Size of zero or less disables
// slicing and returns the full set.
type Page struct {
	Number int
	Size   int
}

// Bounds resolves the zero-based [start, end) window over a result set of
// the given total size.
func (p Page) Bounds(total int) (int, int) {
	if p.Size <= 0 {
		return 0, total
	}
	number := p.Number
	if number < 1 {
		number = 1
	}
	start := (number - 1) * p.Size
	if start > total {
		start = total
	}
	end := start + p.Size
	if end > total {
		end = total
	}
	return start, end
}

// PostFilter narrows post listings; empty fields match everything and the
// set fields combine with AND.
type PostFilter struct {
	AuthorID string
	Category string
}
