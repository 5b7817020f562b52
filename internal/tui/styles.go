package tui

import "github.com/charmbracelet/lipgloss"

// Palette shared by the browse views.
var (
	ColorAccent   = lipgloss.Color("57")  //nolint:gochecknoglobals // Shared palette.
	ColorSelected = lipgloss.Color("229") //nolint:gochecknoglobals // Shared palette.
	ColorMuted    = lipgloss.Color("240") //nolint:gochecknoglobals // Shared palette.
	ColorSpinner  = lipgloss.Color("205") //nolint:gochecknoglobals // Shared palette.
	ColorPrice    = lipgloss.Color("42")  //nolint:gochecknoglobals // Shared palette.
)

// Styles for the browse views.
var (
	//nolint:gochecknoglobals // Shared style.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)

	//nolint:gochecknoglobals // Shared style.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorMuted).
			BorderBottom(true)

	//nolint:gochecknoglobals // Shared style.
	SelectedStyle = lipgloss.NewStyle().Foreground(ColorSelected).Background(ColorAccent)

	//nolint:gochecknoglobals // Shared style.
	ActivePageStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSelected).Background(ColorAccent)

	//nolint:gochecknoglobals // Shared style.
	DimStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	//nolint:gochecknoglobals // Shared style.
	PriceStyle = lipgloss.NewStyle().Foreground(ColorPrice)

	//nolint:gochecknoglobals // Shared style.
	HelpStyle = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)

	//nolint:gochecknoglobals // Shared style.
	BoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(0, 1)
)
