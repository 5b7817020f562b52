package engine

import (
	"sort"
	"strings"

	"github.com/rshade/producttable/internal/catalog"
	"github.com/rshade/producttable/internal/pagination"
)

// Output is everything a renderer needs for one frame of the table.
type Output struct {
	Rows          []catalog.Product      `json:"rows"`
	TotalFiltered int                    `json:"total_filtered"`
	TotalPages    int                    `json:"total_pages"`
	CurrentPage   int                    `json:"current_page"`
	PageSize      int                    `json:"page_size"`
	Window        []int                  `json:"window"`
	Prev          pagination.PageControl `json:"prev"`
	Next          pagination.PageControl `json:"next"`
}

// Meta returns the pagination metadata of the output.
func (o Output) Meta() pagination.Meta {
	return pagination.Meta{
		CurrentPage: o.CurrentPage,
		PageSize:    o.PageSize,
		TotalPages:  o.TotalPages,
		TotalItems:  o.TotalFiltered,
		Window:      o.Window,
		Prev:        o.Prev,
		Next:        o.Next,
	}
}

// Compute filters, sorts and paginates products according to state.
// products is never modified. Rows is empty, not nil, when nothing is visible.
func Compute(products catalog.Collection, state ViewState) Output {
	pageSize := state.PageSize
	if pageSize <= 0 {
		pageSize = pagination.DefaultPageSize
	}

	filtered := Filter(products, state.NormalizedQuery())
	if state.SortField != SortNone {
		Sort(filtered, state.SortField, state.SortDirection)
	}

	meta := pagination.NewMeta(state.Page, pageSize, len(filtered))
	visible := pagination.Apply(filtered, state.Page, pageSize)

	rows := make([]catalog.Product, len(visible))
	copy(rows, visible)

	return Output{
		Rows:          rows,
		TotalFiltered: meta.TotalItems,
		TotalPages:    meta.TotalPages,
		CurrentPage:   meta.CurrentPage,
		PageSize:      meta.PageSize,
		Window:        meta.Window,
		Prev:          meta.Prev,
		Next:          meta.Next,
	}
}

// Filter returns, in their original order, the products whose title contains
// the trimmed query case-insensitively. Untitled products never match, even
// for an empty query. The result is a new slice.
func Filter(products catalog.Collection, query string) []catalog.Product {
	q := normalizeQuery(query)

	kept := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if !p.HasTitle() {
			continue
		}
		if strings.Contains(strings.ToLower(p.Title), q) {
			kept = append(kept, p)
		}
	}
	return kept
}

// Sort orders products in place by field. The sort is stable in both
// directions: rows with equal keys keep their relative order. A missing price
// sorts below every present price.
func Sort(products []catalog.Product, field SortField, dir SortDirection) {
	var less func(a, b catalog.Product) bool
	switch field {
	case SortPrice:
		less = func(a, b catalog.Product) bool { return comparePrice(a, b) < 0 }
	case SortTitle:
		less = func(a, b catalog.Product) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	default:
		return
	}

	sort.SliceStable(products, func(i, j int) bool {
		// Swapping the operands keeps ties stable in descending order.
		if dir == Descending {
			i, j = j, i
		}
		return less(products[i], products[j])
	})
}

// comparePrice is a three-way comparison where nil is the minimum and two nils
// are equal.
func comparePrice(a, b catalog.Product) int {
	switch {
	case a.Price == nil && b.Price == nil:
		return 0
	case a.Price == nil:
		return -1
	case b.Price == nil:
		return 1
	default:
		return a.Price.Cmp(*b.Price)
	}
}
