// Package engine derives the visible page of the product table from the
// loaded collection and the caller's ViewState. Compute is pure: no I/O, no
// logging, no shared state.
package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rshade/producttable/internal/pagination"
)

// SortField selects the column the table is ordered by.
type SortField string

// Sortable columns.
const (
	SortNone  SortField = ""
	SortPrice SortField = "price"
	SortTitle SortField = "title"
)

// SortDirection is the ordering direction of the active sort field.
type SortDirection int

// Sort directions.
const (
	Ascending SortDirection = iota
	Descending
)

// ErrInvalidSortField is returned for a column that cannot be sorted.
var ErrInvalidSortField = errors.New("invalid sort field")

// ValidSortFields lists the sortable column names.
func ValidSortFields() []string {
	return []string{string(SortPrice), string(SortTitle)}
}

// ParseSortField maps a column name to a SortField. "" and "none" mean no
// sorting.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case string(SortPrice):
		return SortPrice, nil
	case string(SortTitle):
		return SortTitle, nil
	default:
		return SortNone, fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, s, strings.Join(ValidSortFields(), ", "))
	}
}

// ParseSortDirection maps "asc"/"desc" to a SortDirection; anything else is
// ascending.
func ParseSortDirection(s string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(s), pagination.SortOrderDesc) {
		return Descending
	}
	return Ascending
}

// String returns "asc" or "desc".
func (d SortDirection) String() string {
	if d == Descending {
		return pagination.SortOrderDesc
	}
	return pagination.SortOrderAsc
}

// ViewState is the transient table state driven by user input. The zero value
// is not ready for use; start from NewViewState.
type ViewState struct {
	Query         string
	SortField     SortField
	SortDirection SortDirection
	Page          int
	PageSize      int
}

// NewViewState returns the startup state: no query, unsorted, page 1 of 10.
func NewViewState() ViewState {
	return ViewState{
		SortField:     SortNone,
		SortDirection: Ascending,
		Page:          pagination.DefaultPage,
		PageSize:      pagination.DefaultPageSize,
	}
}

// SetQuery replaces the search text and returns to the first page.
func (s *ViewState) SetQuery(q string) {
	s.Query = q
	s.Page = pagination.DefaultPage
}

// SetPageSize sets the rows per page and returns to the first page. A
// non-positive n falls back to the default size.
func (s *ViewState) SetPageSize(n int) {
	if n <= 0 {
		n = pagination.DefaultPageSize
	}
	s.PageSize = n
	s.Page = pagination.DefaultPage
}

// ToggleSort activates field ascending, or reverses the direction when field
// is already active. The page is left unchanged.
func (s *ViewState) ToggleSort(field SortField) {
	if field == SortNone {
		s.SortField = SortNone
		s.SortDirection = Ascending
		return
	}
	if s.SortField == field {
		if s.SortDirection == Ascending {
			s.SortDirection = Descending
		} else {
			s.SortDirection = Ascending
		}
		return
	}
	s.SortField = field
	s.SortDirection = Ascending
}

// SetSort sets field and direction directly.
func (s *ViewState) SetSort(field SortField, dir SortDirection) {
	s.SortField = field
	s.SortDirection = dir
	if field == SortNone {
		s.SortDirection = Ascending
	}
}

// SetPage moves to page n without any bounds check.
func (s *ViewState) SetPage(n int) {
	s.Page = n
}

// NormalizedQuery is the lowercase, trimmed query used for matching.
func (s ViewState) NormalizedQuery() string {
	return normalizeQuery(s.Query)
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
