// Package catalog holds the product rows behind the table: the row model, the
// tolerant decoder for the catalog API, the once-filled Store, and the loaders
// that fetch the collection with an empty fallback on failure.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category is the product category as embedded by the API.
type Category struct {
	Name string `json:"name"`
}

// Product is one row of the table. Every field is optional in the source
// data; absent values decode to their zero value or nil.
type Product struct {
	Title       string           `json:"title"`
	Category    *Category        `json:"category,omitempty"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Images      []string         `json:"images"`
	CreationAt  *time.Time       `json:"creationAt,omitempty"`
}

// Collection is an ordered, read-only set of products.
type Collection []Product

// timestampLayouts are tried in order when parsing creationAt.
//
//nolint:gochecknoglobals // Read-only lookup table.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var errNotObject = errors.New("product must be a JSON object")

// HasTitle reports whether the product has a non-empty title. Products
// without one never match a search.
func (p Product) HasTitle() bool {
	return p.Title != ""
}

// CategoryName returns the category name, or "".
func (p Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// FirstImage returns the first image URL, which may be blank, or "" when
// there are no images.
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// UnmarshalJSON decodes a product field by field. A field of the wrong type is
// treated as absent rather than failing the whole row; only a non-object
// value is an error.
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return errNotObject
	}

	*p = Product{}
	p.Title = decodeString(raw["title"])
	p.Description = decodeString(raw["description"])
	p.Price = decodePrice(raw["price"])
	p.Images = decodeImages(raw["images"])
	p.CreationAt = decodeTimestamp(raw["creationAt"])

	if catRaw, ok := raw["category"]; ok {
		var cat map[string]json.RawMessage
		if json.Unmarshal(catRaw, &cat) == nil && cat != nil {
			p.Category = &Category{Name: decodeString(cat["name"])}
		}
	}
	return nil
}

// MarshalJSON writes the price as a JSON number instead of decimal's default
// quoted string.
func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	var price *json.Number
	if p.Price != nil {
		n := json.Number(p.Price.String())
		price = &n
	}
	return json.Marshal(&struct {
		alias

		Price *json.Number `json:"price,omitempty"`
	}{
		alias: alias(p),
		Price: price,
	})
}

func decodeString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func decodePrice(raw json.RawMessage) *decimal.Decimal {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(raw); err != nil {
		return nil
	}
	return &d
}

func decodeImages(raw json.RawMessage) []string {
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return nil
	}
	// Entries keep their position; a blank or non-string entry becomes "".
	images := make([]string, len(items))
	for i, item := range items {
		images[i] = decodeString(item)
	}
	return images
}

func decodeTimestamp(raw json.RawMessage) *time.Time {
	s := strings.TrimSpace(decodeString(raw))
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
