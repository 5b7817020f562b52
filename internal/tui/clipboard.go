package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/rshade/producttable/internal/catalog"
	"github.com/rshade/producttable/internal/render"
)

// PageTSV formats rows as tab-separated values with a header line, ready to
// paste into a spreadsheet.
func PageTSV(rows []catalog.Product, loc *time.Location) string {
	var sb strings.Builder
	sb.WriteString("title\tcategory\tdescription\tprice\tcreated\timage\n")
	for _, p := range rows {
		fields := []string{
			p.Title,
			p.CategoryName(),
			p.Description,
			render.PriceText(p),
			render.CreatedText(p, loc),
			p.FirstImage(),
		}
		for i, f := range fields {
			fields[i] = tsvField(f)
		}
		sb.WriteString(strings.Join(fields, "\t"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// tsvField flattens characters that would break the row structure.
func tsvField(s string) string {
	return strings.NewReplacer("\t", " ", "\r", " ", "\n", " ").Replace(s)
}

func copiedMessage(rows int) string {
	if rows == 1 {
		return "Copied 1 row to the clipboard"
	}
	return "Copied " + strconv.Itoa(rows) + " rows to the clipboard"
}
