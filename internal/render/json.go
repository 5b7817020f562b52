package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rshade/producttable/internal/catalog"
	"github.com/rshade/producttable/internal/pagination"
)

// jsonDocument is the JSON rendering of a frame.
type jsonDocument struct {
	Query     string                 `json:"query"`
	SortField string                 `json:"sort_field,omitempty"`
	SortDir   string                 `json:"sort_dir,omitempty"`
	Rows      []catalog.Product      `json:"rows"`
	Total     int                    `json:"total_filtered"`
	Pages     int                    `json:"total_pages"`
	Page      int                    `json:"current_page"`
	PageSize  int                    `json:"page_size"`
	Window    []int                  `json:"window"`
	Prev      pagination.PageControl `json:"prev"`
	Next      pagination.PageControl `json:"next"`
	HasPrev   bool                   `json:"has_previous"`
	HasNext   bool                   `json:"has_next"`
	Loading   bool                   `json:"loading,omitempty"`
}

// RenderJSON writes frame as one indented JSON object.
func RenderJSON(w io.Writer, frame Frame) error {
	rows := frame.Output.Rows
	if rows == nil {
		rows = []catalog.Product{}
	}
	meta := frame.Output.Meta()
	if meta.Window == nil {
		meta.Window = []int{}
	}

	doc := jsonDocument{
		Query:    frame.State.Query,
		Rows:     rows,
		Total:    meta.TotalItems,
		Pages:    meta.TotalPages,
		Page:     meta.CurrentPage,
		PageSize: meta.PageSize,
		Window:   meta.Window,
		Prev:     meta.Prev,
		Next:     meta.Next,
		HasPrev:  meta.HasPrevious(),
		HasNext:  meta.HasNext(),
		Loading:  frame.Loading,
	}
	if frame.State.SortField != "" {
		doc.SortField = string(frame.State.SortField)
		doc.SortDir = frame.State.SortDirection.String()
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// RenderNDJSON writes each visible row as its own JSON line.
func RenderNDJSON(w io.Writer, frame Frame) error {
	encoder := json.NewEncoder(w)
	for _, p := range frame.Output.Rows {
		if err := encoder.Encode(p); err != nil {
			return fmt.Errorf("encoding row: %w", err)
		}
	}
	return nil
}
