package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/rshade/producttable/internal/catalog"
	"github.com/rshade/producttable/internal/engine"
	"github.com/rshade/producttable/internal/render"
)

// Table column widths.
const (
	colWidthTitle    = 34
	colWidthCategory = 14
	colWidthPrice    = 10
	colWidthCreated  = 22
	colGap           = "  "

	detailPadding = 6
	minDetailWrap = 20
)

// View renders the current view.
func (m *BrowseModel) View() string {
	switch m.view {
	case ViewStateQuitting:
		return ""
	case ViewStateDetail:
		if p := m.rows.SelectedItem(); p != nil {
			return RenderProductDetail(*p, m.width, m.location)
		}
		return m.renderTable()
	default:
		return m.renderTable()
	}
}

func (m *BrowseModel) renderTable() string {
	sections := []string{TitleStyle.Render("Products")}

	if !m.loaded {
		sections = append(sections, RenderLoading(m.loading))
	}

	sections = append(sections,
		m.input.View(),
		HeaderStyle.Render(m.headerLine()),
	)
	if rows := m.rows.View(); rows != "" {
		sections = append(sections, rows)
	} else {
		sections = append(sections, DimStyle.Render("  no products"))
	}

	sections = append(sections,
		"",
		render.Summary(m.output)+"   "+RenderPager(m.output)+"   "+DimStyle.Render(fmt.Sprintf("%d / page", m.output.PageSize)),
		HelpStyle.Render(m.helpLine()),
	)
	if m.status != "" {
		sections = append(sections, DimStyle.Render(m.status))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *BrowseModel) headerLine() string {
	return formatRow(
		"Title"+render.SortIndicator(m.state, engine.SortTitle),
		"Category",
		"Price"+render.SortIndicator(m.state, engine.SortPrice),
		"Created",
	)
}

func (m *BrowseModel) helpLine() string {
	if m.searching {
		return "[Enter/Esc] Done"
	}
	return "[/] Search  [p] Price  [t] Title  [←/→] Page  [z] Page size  [↑↓] Select  [Enter] Details  [y] Copy  [q] Quit"
}

// renderRow formats one product as a table line.
func (m *BrowseModel) renderRow(p catalog.Product, selected bool) string {
	line := formatRow(p.Title, p.CategoryName(), render.PriceText(p), render.CreatedText(p, m.location))
	if selected {
		return SelectedStyle.Render(line)
	}
	return line
}

func formatRow(title, category, price, created string) string {
	return fmt.Sprintf("%-*s%s%-*s%s%*s%s%-*s",
		colWidthTitle, render.Cell(title, colWidthTitle), colGap,
		colWidthCategory, render.Cell(category, colWidthCategory), colGap,
		colWidthPrice, render.Cell(price, colWidthPrice), colGap,
		colWidthCreated, render.Cell(created, colWidthCreated),
	)
}

// RenderPager renders the page window with the current page highlighted and
// disabled arrows dimmed.
func RenderPager(out engine.Output) string {
	parts := make([]string, 0, len(out.Window)+2)

	prev := "‹"
	if out.Prev.Disabled {
		prev = DimStyle.Render(prev)
	}
	parts = append(parts, prev)

	for _, n := range out.Window {
		label := strconv.Itoa(n)
		if n == out.CurrentPage {
			label = ActivePageStyle.Render(" " + label + " ")
		}
		parts = append(parts, label)
	}

	next := "›"
	if out.Next.Disabled {
		next = DimStyle.Render(next)
	}
	parts = append(parts, next)

	return strings.Join(parts, " ")
}

// RenderProductDetail renders every field of p in a box.
func RenderProductDetail(p catalog.Product, width int, loc *time.Location) string {
	wrap := width - detailPadding
	if wrap < minDetailWrap {
		wrap = minDetailWrap
	}

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(p.Title))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Category:  %s\n", p.CategoryName())
	fmt.Fprintf(&sb, "Price:     %s\n", PriceStyle.Render(render.PriceText(p)))
	fmt.Fprintf(&sb, "Created:   %s\n", render.CreatedText(p, loc))
	var images []string
	for _, img := range p.Images {
		if img != "" {
			images = append(images, img)
		}
	}
	if len(images) > 0 {
		sb.WriteString("Images:\n")
		for _, img := range images {
			fmt.Fprintf(&sb, "  %s\n", img)
		}
	}
	if p.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(wordwrap.String(p.Description, wrap))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(HelpStyle.Render("[Esc] Back  [q] Quit"))

	return BoxStyle.Render(sb.String())
}
