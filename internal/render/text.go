package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/muesli/reflow/truncate"
)

// Column widths for the text table.
const (
	colWidthTitle       = 36
	colWidthCategory    = 16
	colWidthDescription = 40
	colWidthPrice       = 12
)

// tabwriterPadding is the minimum padding between columns.
const tabwriterPadding = 2

const ellipsis = "..."

// Cell shortens s to width terminal cells, marking the cut with an ellipsis.
func Cell(s string, width int) string {
	if width <= 0 {
		return s
	}
	return truncate.StringWithTail(s, uint(width), ellipsis)
}

// RenderText writes frame as an aligned terminal table followed by the
// summary and pager lines.
func RenderText(w io.Writer, frame Frame) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	if _, err := fmt.Fprintf(tw, "TITLE\tCATEGORY\tDESCRIPTION\tPRICE\tCREATED\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "-----\t--------\t-----------\t-----\t-------\n"); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}

	for _, p := range frame.Output.Rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			Cell(p.Title, colWidthTitle),
			Cell(p.CategoryName(), colWidthCategory),
			Cell(singleLine(p.Description), colWidthDescription),
			Cell(PriceText(p), colWidthPrice),
			CreatedText(p, frame.Location),
		); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	if _, err := fmt.Fprintf(w, "\n%s\n%s\n", Summary(frame.Output), PagerLine(frame.Output.Window, frame.Output.CurrentPage)); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// PagerLine renders the page window as "‹ 1 [2] 3 ›".
func PagerLine(window []int, current int) string {
	line := prevLabel
	for _, n := range window {
		if n == current {
			line += fmt.Sprintf(" [%d]", n)
		} else {
			line += fmt.Sprintf(" %d", n)
		}
	}
	return line + " " + nextLabel
}

func singleLine(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '\n', '\r', '\t':
			out = append(out, ' ')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
