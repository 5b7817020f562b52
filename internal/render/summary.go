package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/producttable/internal/engine"
)

// printer groups thousands in counts.
var printer = message.NewPrinter(language.English) //nolint:gochecknoglobals // Stateless formatter.

// Summary returns the count and page position line shown next to the pager.
func Summary(out engine.Output) string {
	return printer.Sprintf("Total: %d — Page %d/%d", out.TotalFiltered, out.CurrentPage, out.TotalPages)
}

// SortIndicator returns the arrow marking field as the active sort column,
// or "" when another column is active.
func SortIndicator(state engine.ViewState, field engine.SortField) string {
	if state.SortField != field {
		return ""
	}
	if state.SortDirection == engine.Descending {
		return " ▼"
	}
	return " ▲"
}
