// Package render turns an engine.Output into HTML, a terminal table, JSON or
// NDJSON. Renderers read only the Frame they are given.
package render

import (
	"time"

	"github.com/rshade/producttable/internal/catalog"
	"github.com/rshade/producttable/internal/engine"
)

// DefaultPlaceholderImage is shown for products without an image and when an
// image fails to load.
const DefaultPlaceholderImage = "https://placehold.co/160x120?text=No+Image"

// CreatedLayout mimics the en-US locale date-time string.
const CreatedLayout = "1/2/2006, 3:04:05 PM"

// DefaultPageSizeOptions are the choices offered by the page-size control.
func DefaultPageSizeOptions() []int {
	return []int{5, 10, 20, 50}
}

// Frame is one renderable state of the table.
type Frame struct {
	State  engine.ViewState
	Output engine.Output

	// PageSizeOptions populates the page-size select. Empty means the defaults.
	PageSizeOptions []int
	// Placeholder replaces missing or broken images. Empty means the default.
	Placeholder string
	// Location is used for creation times. Nil means time.Local.
	Location *time.Location
	// Loading marks a frame rendered before the catalog arrived.
	Loading bool
}

func (f Frame) placeholder() string {
	if f.Placeholder == "" {
		return DefaultPlaceholderImage
	}
	return f.Placeholder
}

func (f Frame) pageSizeOptions() []int {
	opts := f.PageSizeOptions
	if len(opts) == 0 {
		opts = DefaultPageSizeOptions()
	}
	if f.Output.PageSize <= 0 {
		return opts
	}
	for _, o := range opts {
		if o == f.Output.PageSize {
			return opts
		}
	}
	// The current size is always selectable.
	return append(append([]int(nil), opts...), f.Output.PageSize)
}

// Thumbnail returns the first image of p, or placeholder when it has none.
func Thumbnail(p catalog.Product, placeholder string) string {
	if img := p.FirstImage(); img != "" {
		return img
	}
	if placeholder == "" {
		return DefaultPlaceholderImage
	}
	return placeholder
}

// PriceText is "$" followed by the price, or "" when the price is absent.
func PriceText(p catalog.Product) string {
	if p.Price == nil {
		return ""
	}
	return "$" + p.Price.String()
}

// CreatedText formats the creation time in loc, or "" when absent.
func CreatedText(p catalog.Product, loc *time.Location) string {
	if p.CreationAt == nil {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return p.CreationAt.In(loc).Format(CreatedLayout)
}
