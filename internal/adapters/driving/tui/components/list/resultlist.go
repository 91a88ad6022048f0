// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/portal-search/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/portal-search/internal/core/domain"
)

// linesPerResult is the height of one rendered result.
const linesPerResult = 3

// ResultList displays search results in a navigable list.
type ResultList struct {
	results  []domain.SearchResult
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(r.results)+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.results))), "")

	visibleCount := (r.height - 2) / linesPerResult
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.results) {
		end = len(r.results)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, &r.results[i]))
	}

	return strings.Join(lines, "\n")
}

// renderResult formats one result as a badge and title line, a metadata
// line and a summary line.
func (r *ResultList) renderResult(index int, result *domain.SearchResult) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	badge := r.styles.Badge(result.Type)
	title := result.Title
	if title == "" {
		title = "(Untitled)"
	}
	title = Truncate(title, r.width-lipgloss.Width(badge)-4)

	var titleLine string
	if index == r.selected {
		titleLine = indicator + badge + " " + r.styles.Selected.Render(title)
	} else {
		titleLine = indicator + badge + " " + r.styles.Normal.Render(title)
	}

	meta := r.styles.Subtitle.Render("    " + Truncate(Meta(result), r.width-6))
	summary := r.styles.Muted.Render("    " + Truncate(result.Summary, r.width-6))

	return titleLine + "\n" + meta + "\n" + summary
}

// Meta joins the type-specific fields of result worth showing under the
// title.
func Meta(result *domain.SearchResult) string {
	parts := make([]string, 0, 4)
	add := func(s string) {
		if s != "" {
			parts = append(parts, s)
		}
	}

	add(result.Category)
	add(result.Author)
	add(result.Specialty)
	add(result.Location)
	add(result.Date)
	add(result.Price)
	if result.Downloads != nil && *result.Downloads > 0 {
		add(fmt.Sprintf("%d downloads", *result.Downloads))
	}

	return strings.Join(parts, " · ")
}

// Truncate shortens s to at most width characters, ending in "...".
func Truncate(s string, width int) string {
	if width < 10 {
		width = 10
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// SetResults replaces the results. The selection follows the previously
// selected result when it is still present, so live updates do not move
// the cursor.
func (r *ResultList) SetResults(results []domain.SearchResult) {
	var key string
	if sel := r.SelectedResult(); sel != nil {
		key = sel.Key()
	}

	r.results = results
	r.selected = 0
	if key == "" {
		return
	}
	for i := range results {
		if results[i].Key() == key {
			r.selected = i
			return
		}
	}
}

// Results returns the current results.
func (r *ResultList) Results() []domain.SearchResult {
	return r.results
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.results) {
		r.selected = index
	}
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *domain.SearchResult {
	if len(r.results) == 0 || r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultList) Height() int {
	return r.height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
