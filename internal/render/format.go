package render

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Format is an output encoding for the table.
type Format string

// Supported output formats.
const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatHTML   Format = "html"
)

// ErrUnsupportedFormat is returned for an unknown output format.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// ValidFormats lists the accepted format names.
func ValidFormats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatNDJSON), string(FormatHTML)}
}

// ParseFormat validates a format name. "table" is accepted as text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatText), "table":
		return FormatText, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatNDJSON):
		return FormatNDJSON, nil
	case string(FormatHTML):
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: %s)", ErrUnsupportedFormat, s, strings.Join(ValidFormats(), ", "))
	}
}

// Render writes frame to w in format.
func Render(w io.Writer, format Format, frame Frame) error {
	switch format {
	case FormatText:
		return RenderText(w, frame)
	case FormatJSON:
		return RenderJSON(w, frame)
	case FormatNDJSON:
		return RenderNDJSON(w, frame)
	case FormatHTML:
		return RenderHTML(w, frame)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
