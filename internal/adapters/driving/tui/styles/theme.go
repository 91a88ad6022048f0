// Package styles provides the colour palette and lipgloss styles of the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/portal-search/internal/core/domain"
)

// Theme is the colour palette. Collections colours the type badge shown
// next to every result.
type Theme struct {
	Accent  lipgloss.Color
	Link    lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Border  lipgloss.Color
	Bar     lipgloss.Color
	OnBadge lipgloss.Color

	Collections map[domain.ContentType]lipgloss.Color
}

// DefaultTheme returns the molten-orange palette.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:  "#EA580C",
		Link:    "#06B6D4",
		Text:    "#CDD6F4",
		Muted:   "#6C7086",
		Success: "#A6E3A1",
		Error:   "#F38BA8",
		Border:  "#45475A",
		Bar:     "#181825",
		OnBadge: "#11111B",
		Collections: map[domain.ContentType]lipgloss.Color{
			domain.ContentNews:     "#89B4FA",
			domain.ContentMaterial: "#94E2D5",
			domain.ContentEbook:    "#CBA6F7",
			domain.ContentEvent:    "#F9E2AF",
			domain.ContentSupplier: "#A6E3A1",
			domain.ContentFoundry:  "#FAB387",
		},
	}
}

// Styles holds the styles derived from a Theme.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Help     lipgloss.Style

	// InputField frames the query box; Border frames the details panel.
	InputField lipgloss.Style
	Border     lipgloss.Style

	StatusBar lipgloss.Style
	Spinner   lipgloss.Style

	badge lipgloss.Style
}

// NewStyles derives styles from theme, or from DefaultTheme when nil.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	framed := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)

	return &Styles{
		theme:      theme,
		Title:      fg(theme.Accent).Bold(true),
		Subtitle:   fg(theme.Link).Bold(true),
		Normal:     fg(theme.Text),
		Muted:      fg(theme.Muted),
		Selected:   fg(theme.Text).Background(theme.Accent).Bold(true),
		Error:      fg(theme.Error),
		Success:    fg(theme.Success),
		Help:       fg(theme.Muted),
		InputField: framed.Padding(0, 1),
		Border:     framed,
		StatusBar:  fg(theme.Muted).Background(theme.Bar).Padding(0, 1),
		Spinner:    fg(theme.Accent),
		badge:      fg(theme.OnBadge).Bold(true).Padding(0, 1),
	}
}

// DefaultStyles returns styles for the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Badge renders the label of ct on the collection's colour. Unknown
// types fall back to the muted colour.
func (s *Styles) Badge(ct domain.ContentType) string {
	colour, ok := s.theme.Collections[ct]
	if !ok {
		colour = s.theme.Muted
	}
	return s.badge.Background(colour).Render(ct.Label())
}
