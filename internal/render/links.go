package render

import (
	"net/url"
	"strconv"

	"github.com/rshade/producttable/internal/engine"
)

// Query parameter names shared by the HTML links and the HTTP handlers.
const (
	ParamQuery    = "q"
	ParamPageSize = "size"
	ParamSort     = "sort"
	ParamDir      = "dir"
	ParamPage     = "page"
)

// StateValues encodes state as query parameters. Defaults are omitted.
func StateValues(state engine.ViewState) url.Values {
	v := url.Values{}
	if state.Query != "" {
		v.Set(ParamQuery, state.Query)
	}
	if state.PageSize > 0 {
		v.Set(ParamPageSize, strconv.Itoa(state.PageSize))
	}
	if state.SortField != engine.SortNone {
		v.Set(ParamSort, string(state.SortField))
		v.Set(ParamDir, state.SortDirection.String())
	}
	if state.Page != 1 {
		v.Set(ParamPage, strconv.Itoa(state.Page))
	}
	return v
}

// StateURL returns the relative link that reproduces state.
func StateURL(state engine.ViewState) string {
	return "?" + StateValues(state).Encode()
}

// ToggleSortURL links to state with field toggled.
func ToggleSortURL(state engine.ViewState, field engine.SortField) string {
	state.ToggleSort(field)
	return StateURL(state)
}

// PageURL links to state moved to page.
func PageURL(state engine.ViewState, page int) string {
	state.SetPage(page)
	return StateURL(state)
}
