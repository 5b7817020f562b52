package pagination

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Pagination defaults and sort orders.
const (
	DefaultPageSize  = 10
	DefaultPage      = 1
	MinPage          = 1
	MaxWindow        = 7
	DefaultSortField = ""
	DefaultSortOrder = "asc"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Common validation errors.
var (
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'price:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
)

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// Examples: "price", "title:desc", "price:ASC".
// An empty string means no sorting and returns the defaults.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if strings.TrimSpace(sortStr) == "" {
		return DefaultSortField, DefaultSortOrder, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}

	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	return strings.ToLower(field), order, nil
}

// ParsePageSize parses the value of a page-size control. Anything that is not
// a positive integer yields DefaultPageSize.
func ParsePageSize(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return DefaultPageSize
	}
	return n
}

// ParsePage parses a page number. Non-numeric input yields DefaultPage; numeric
// input is returned as-is, even when out of range.
func ParsePage(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return DefaultPage
	}
	return n
}
