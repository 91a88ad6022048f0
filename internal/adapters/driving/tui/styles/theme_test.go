package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/portal-search/internal/core/domain"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	for name, c := range map[string]lipgloss.Color{
		"Accent":  theme.Accent,
		"Link":    theme.Link,
		"Text":    theme.Text,
		"Muted":   theme.Muted,
		"Success": theme.Success,
		"Error":   theme.Error,
		"Border":  theme.Border,
		"Bar":     theme.Bar,
		"OnBadge": theme.OnBadge,
	} {
		assert.NotEmpty(t, string(c), name)
	}
}

func TestDefaultTheme_SignalColoursAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	seen := make(map[lipgloss.Color]bool)
	for _, c := range []lipgloss.Color{theme.Accent, theme.Link, theme.Success, theme.Error} {
		assert.False(t, seen[c], "duplicate colour %s", c)
		seen[c] = true
	}
}

func TestDefaultTheme_EveryCollectionHasColour(t *testing.T) {
	theme := DefaultTheme()

	for _, ct := range domain.ContentTypes() {
		assert.NotEmpty(t, string(theme.Collections[ct]), "collection %s", ct)
	}
}

func TestNewStyles(t *testing.T) {
	theme := DefaultTheme()

	assert.Same(t, theme, NewStyles(theme).Theme())
	assert.NotNil(t, NewStyles(nil).Theme())
	assert.NotNil(t, DefaultStyles().Theme())
}

func TestStyles_AllInitialised(t *testing.T) {
	s := DefaultStyles()

	tests := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Title", s.Title},
		{"Subtitle", s.Subtitle},
		{"Normal", s.Normal},
		{"Muted", s.Muted},
		{"Selected", s.Selected},
		{"Error", s.Error},
		{"Success", s.Success},
		{"Help", s.Help},
		{"InputField", s.InputField},
		{"Border", s.Border},
		{"StatusBar", s.StatusBar},
		{"Spinner", s.Spinner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, lipgloss.Style{}, tt.style)
			assert.Contains(t, tt.style.Render("fundição"), "fundição")
		})
	}
}

func TestStyles_Badge(t *testing.T) {
	s := DefaultStyles()

	for _, ct := range domain.ContentTypes() {
		t.Run(string(ct), func(t *testing.T) {
			assert.Contains(t, s.Badge(ct), ct.Label())
		})
	}
}

func TestStyles_BadgeUnknownType(t *testing.T) {
	assert.Contains(t, DefaultStyles().Badge(domain.ContentType("video")), "Unknown")
}
