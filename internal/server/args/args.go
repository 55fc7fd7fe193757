// Package args holds the pagination and search arguments shared by every
// collection query.
package args

import (
	"fmt"

	"github.com/dmitrijs2005/listkeeper/internal/common"
)

const (
	DefaultLimit  = 10
	DefaultOffset = 0
)

// Pagination applies offset first, then limit. Result order is stable
// primary-key order unless a query states otherwise.
type Pagination struct {
	Limit  int
	Offset int
}

// Search is an optional case-insensitive substring match against the
// query's designated searchable field.
type Search struct {
	Term string
}

// DefaultPagination returns the pagination applied when the caller sends
// no arguments.
func DefaultPagination() Pagination {
	return Pagination{Limit: DefaultLimit, Offset: DefaultOffset}
}

// Validate rejects non-positive limits and negative offsets.
func (p Pagination) Validate() error {
	if p.Limit <= 0 {
		return fmt.Errorf("%w: limit must be greater than 0", common.ErrValidation)
	}
	if p.Offset < 0 {
		return fmt.Errorf("%w: offset must not be negative", common.ErrValidation)
	}
	return nil
}

// IsEmpty reports whether no search term was provided.
func (s Search) IsEmpty() bool {
	return s.Term == ""
}
