package render

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/rshade/producttable/internal/engine"
)

// DefaultTitle heads the HTML page.
const DefaultTitle = "Products"

// Pager labels.
const (
	prevLabel = "‹"
	nextLabel = "›"
)

//go:embed templates/table.html.tmpl
var tableTemplateContent string

var tableTemplate = template.Must(template.New("table").Parse(tableTemplateContent))

type sizeOption struct {
	Value    int
	Selected bool
}

type htmlRow struct {
	Image       string
	Alt         string
	Title       string
	Category    string
	Description string
	Price       string
	Created     string
}

type pagerItem struct {
	Label    string
	URL      string
	Active   bool
	Disabled bool
}

type htmlPage struct {
	Title          string
	Action         string
	Query          string
	SortField      string
	SortDir        string
	SizeOptions    []sizeOption
	PriceSortURL   string
	TitleSortURL   string
	PriceIndicator string
	TitleIndicator string
	Placeholder    string
	Rows           []htmlRow
	Summary        string
	Pager          []pagerItem
	Loading        bool
}

// RenderHTML writes frame as a complete Bootstrap page. Every control is a
// plain link or GET form that encodes the next ViewState in the query string.
func RenderHTML(w io.Writer, frame Frame) error {
	if err := tableTemplate.Execute(w, buildHTMLPage(frame)); err != nil {
		return fmt.Errorf("rendering HTML table: %w", err)
	}
	return nil
}

func buildHTMLPage(frame Frame) htmlPage {
	state := frame.State
	out := frame.Output
	placeholder := frame.placeholder()

	page := htmlPage{
		Title:          DefaultTitle,
		Action:         "/",
		Query:          state.Query,
		PriceSortURL:   ToggleSortURL(state, engine.SortPrice),
		TitleSortURL:   ToggleSortURL(state, engine.SortTitle),
		PriceIndicator: SortIndicator(state, engine.SortPrice),
		TitleIndicator: SortIndicator(state, engine.SortTitle),
		Placeholder:    placeholder,
		Summary:        Summary(out),
		Loading:        frame.Loading,
	}
	if state.SortField != engine.SortNone {
		page.SortField = string(state.SortField)
		page.SortDir = state.SortDirection.String()
	}

	for _, n := range frame.pageSizeOptions() {
		page.SizeOptions = append(page.SizeOptions, sizeOption{Value: n, Selected: n == out.PageSize})
	}

	for _, p := range out.Rows {
		page.Rows = append(page.Rows, htmlRow{
			Image:       Thumbnail(p, placeholder),
			Alt:         p.Title,
			Title:       p.Title,
			Category:    p.CategoryName(),
			Description: p.Description,
			Price:       PriceText(p),
			Created:     CreatedText(p, frame.Location),
		})
	}

	page.Pager = append(page.Pager, pagerItem{
		Label:    prevLabel,
		URL:      PageURL(state, out.Prev.Target),
		Disabled: out.Prev.Disabled,
	})
	for _, n := range out.Window {
		page.Pager = append(page.Pager, pagerItem{
			Label:  strconv.Itoa(n),
			URL:    PageURL(state, n),
			Active: n == out.CurrentPage,
		})
	}
	page.Pager = append(page.Pager, pagerItem{
		Label:    nextLabel,
		URL:      PageURL(state, out.Next.Target),
		Disabled: out.Next.Disabled,
	})

	return page
}
