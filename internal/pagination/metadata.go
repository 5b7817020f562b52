package pagination

// PageControl is a previous/next pager button.
type PageControl struct {
	Target   int  `json:"target"   yaml:"target"`
	Disabled bool `json:"disabled" yaml:"disabled"`
}

// Meta contains metadata about a rendered page.
type Meta struct {
	CurrentPage int         `json:"current_page" yaml:"current_page"`
	PageSize    int         `json:"page_size"    yaml:"page_size"`
	TotalPages  int         `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int         `json:"total_items"  yaml:"total_items"`
	Window      []int       `json:"window"       yaml:"window"`
	Prev        PageControl `json:"prev"         yaml:"prev"`
	Next        PageControl `json:"next"         yaml:"next"`
}

// NewMeta builds the metadata for page of a result set with totalItems items.
// The current page is echoed as given, not clamped.
func NewMeta(page, pageSize, totalItems int) Meta {
	totalPages := TotalPages(totalItems, pageSize)
	return Meta{
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		Window:      Window(page, totalPages),
		Prev:        Prev(page),
		Next:        Next(page, totalPages),
	}
}

// HasPrevious reports whether the previous control is enabled.
func (m Meta) HasPrevious() bool {
	return !m.Prev.Disabled
}

// HasNext reports whether the next control is enabled.
func (m Meta) HasNext() bool {
	return !m.Next.Disabled
}

// TotalPages returns max(1, ceil(totalItems / pageSize)). A non-positive
// pageSize is treated as DefaultPageSize.
func TotalPages(totalItems, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pages := totalItems / pageSize
	if totalItems%pageSize > 0 {
		pages++
	}
	if pages < 1 {
		return 1
	}
	return pages
}

// Bounds returns the half-open slice range [start, end) of page within a
// result set of totalItems items. The range is empty (start == end) when the
// page starts outside the set, including pages below 1.
//
//nolint:nonamedreturns // Named returns document the pair.
func Bounds(page, pageSize, totalItems int) (start, end int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	// Compare against the last page before multiplying so huge pages or
	// sizes cannot wrap around.
	if page < MinPage || totalItems <= 0 || page > (totalItems-1)/pageSize+1 {
		return 0, 0
	}
	start = (page - 1) * pageSize
	end = totalItems
	if totalItems-start > pageSize {
		end = start + pageSize
	}
	return start, end
}

// Apply returns the items on page. The result aliases items.
func Apply[T any](items []T, page, pageSize int) []T {
	start, end := Bounds(page, pageSize, len(items))
	return items[start:end]
}

// Window returns up to MaxWindow contiguous page numbers centered on page and
// contained in [1, totalPages]. Near either edge the window slides so it stays
// full width when enough pages exist. A page past the end yields the last
// window.
func Window(page, totalPages int) []int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := MinPage
	if page > MinPage+MaxWindow/2 {
		start = page - MaxWindow/2
	}
	end := totalPages
	if totalPages-start >= MaxWindow {
		end = start + MaxWindow - 1
	}
	if end-start+1 < MaxWindow {
		start = MinPage
		if end-MinPage >= MaxWindow {
			start = end - MaxWindow + 1
		}
	}

	window := make([]int, 0, end-start+1)
	for offset := 0; offset <= end-start; offset++ {
		window = append(window, start+offset)
	}
	return window
}

// Prev returns the previous-page control for page.
func Prev(page int) PageControl {
	if page <= MinPage {
		return PageControl{Target: MinPage, Disabled: true}
	}
	return PageControl{Target: page - 1, Disabled: false}
}

// Next returns the next-page control for page.
func Next(page, totalPages int) PageControl {
	if page >= totalPages {
		return PageControl{Target: totalPages, Disabled: true}
	}
	return PageControl{Target: page + 1, Disabled: false}
}
