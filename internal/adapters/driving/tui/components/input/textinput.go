// Package input provides the query box of the search screen.
package input

import (
	"fmt"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/portal-search/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/portal-search/internal/core/domain"
)

const (
	placeholder = "Buscar notícias, materiais, e-books, eventos, fornecedores..."
	charLimit   = 256
	labelWidth  = 10
	minWidth    = 20
)

// QueryInput is a single-line query editor. It tracks whether the last
// update edited the text so the live session only hears real changes,
// and hints how many characters are missing before results appear.
type QueryInput struct {
	model   textinput.Model
	styles  *styles.Styles
	changed bool
}

// NewQueryInput creates a focused, empty query input.
func NewQueryInput(s *styles.Styles) *QueryInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	m := textinput.New()
	m.Placeholder = placeholder
	m.CharLimit = charLimit
	m.Width = 50
	m.Focus()

	return &QueryInput{model: m, styles: s}
}

// Init starts the cursor blink.
func (q *QueryInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards msg to the editor and records whether the text changed.
func (q *QueryInput) Update(msg tea.Msg) (*QueryInput, tea.Cmd) {
	before := q.model.Value()
	var cmd tea.Cmd
	q.model, cmd = q.model.Update(msg)
	q.changed = q.model.Value() != before
	return q, cmd
}

// Changed reports whether the last Update edited the text.
func (q *QueryInput) Changed() bool {
	return q.changed
}

// View renders the label, the framed editor and the length hint.
func (q *QueryInput) View() string {
	row := lipgloss.JoinHorizontal(lipgloss.Center,
		q.styles.Title.Render("Search: "),
		q.styles.InputField.Render(q.model.View()),
	)
	if hint := q.hint(); hint != "" {
		row += " " + q.styles.Muted.Render(hint)
	}
	return row
}

// hint is empty for an empty query and once the query is long enough.
func (q *QueryInput) hint() string {
	n := utf8.RuneCountInString(q.model.Value())
	missing := domain.MinQueryLength - n
	if n == 0 || missing <= 0 {
		return ""
	}
	if missing == 1 {
		return "1 more character"
	}
	return fmt.Sprintf("%d more characters", missing)
}

// Value returns the text as typed.
func (q *QueryInput) Value() string {
	return q.model.Value()
}

// SetValue replaces the text without marking it changed.
func (q *QueryInput) SetValue(value string) {
	q.model.SetValue(value)
}

// Focus gives the editor the cursor.
func (q *QueryInput) Focus() tea.Cmd {
	return q.model.Focus()
}

// Blur hands the keyboard to the result list.
func (q *QueryInput) Blur() {
	q.model.Blur()
}

// Focused reports whether the editor has the cursor.
func (q *QueryInput) Focused() bool {
	return q.model.Focused()
}

// SetWidth fits the editor to a screen width, leaving room for the label.
func (q *QueryInput) SetWidth(width int) {
	q.model.Width = max(width-labelWidth, minWidth)
}
