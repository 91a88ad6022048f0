// Package status renders the bottom line of the search screen.
package status

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/portal-search/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/portal-search/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/portal-search/internal/core/domain"
)

// State selects what the left side of the bar shows.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateError   State = "error"
	StateHelp    State = "help"
	StateResults State = "results"
)

// Bar shows the live search status on the left and key hints on the
// right. While a view is loading the previous counts stay visible next
// to the spinner.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	spinner spinner.Model
	width   int

	state   State
	message string
	counts  map[domain.ContentType]int
	total   int
}

// NewBar creates a status bar. Nil arguments use the defaults.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles:  s,
		keymap:  km,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(s.Spinner)),
		width:   80,
		state:   StateReady,
	}
}

// Init starts the spinner.
func (s *Bar) Init() tea.Cmd {
	return s.spinner.Tick
}

// Update advances the spinner and ignores everything else.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); !ok {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// Show takes the state and per-collection counts from a published view.
// browsing selects the result-list key hints.
func (s *Bar) Show(view domain.SearchView, browsing bool) {
	s.message = ""
	if !view.Loading {
		s.counts = make(map[domain.ContentType]int)
		for i := range view.Results {
			s.counts[view.Results[i].Type]++
		}
		s.total = len(view.Results)
	}

	switch {
	case view.Loading:
		s.state = StateLoading
	case s.total == 0 && utf8.RuneCountInString(view.Query) < domain.MinQueryLength:
		s.state = StateReady
		s.message = fmt.Sprintf("Type at least %d characters", domain.MinQueryLength)
	case browsing:
		s.state = StateResults
	default:
		s.state = StateReady
	}
}

// View renders the bar at the configured width.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderHints()

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateLoading:
		line := s.spinner.View() + s.styles.Muted.Render(" Updating results")
		if s.total > 0 {
			line += s.styles.Muted.Render(" (" + s.summary() + ")")
		}
		return line
	case StateError:
		if s.message == "" {
			return s.styles.Error.Render("Error")
		}
		return s.styles.Error.Render("Error: " + s.message)
	case StateHelp:
		return s.styles.Normal.Render("Help")
	}

	switch {
	case s.message != "":
		return s.styles.Normal.Render(s.message)
	case s.total > 0:
		return s.styles.Normal.Render(s.summary())
	default:
		return s.styles.Muted.Render("Ready")
	}
}

// summary reads "5 results: 2 Notícia, 3 Fornecedor" with collections in
// priority order.
func (s *Bar) summary() string {
	parts := make([]string, 0, len(s.counts))
	for _, ct := range domain.ContentTypes() {
		if n := s.counts[ct]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, ct.Label()))
		}
	}
	noun := "results"
	if s.total == 1 {
		noun = "result"
	}
	return fmt.Sprintf("%d %s: %s", s.total, noun, strings.Join(parts, ", "))
}

func (s *Bar) renderHints() string {
	bindings := s.keymap.ShortHelp()
	if s.state == StateResults && s.total > 0 {
		bindings = s.keymap.ResultsHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, h.Key+": "+h.Desc)
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState overrides the state, e.g. for errors.
func (s *Bar) SetState(state State) { s.state = state }

// State returns the current state.
func (s *Bar) State() State { return s.state }

// SetMessage replaces the summary with message.
func (s *Bar) SetMessage(message string) { s.message = message }

// Message returns the current message.
func (s *Bar) Message() string { return s.message }

// ResultCount returns the total of the last non-loading view.
func (s *Bar) ResultCount() int { return s.total }

// Count returns how many results of ct the last non-loading view had.
func (s *Bar) Count(ct domain.ContentType) int { return s.counts[ct] }

// SetWidth sets the bar width.
func (s *Bar) SetWidth(width int) { s.width = width }

// Width returns the bar width.
func (s *Bar) Width() int { return s.width }

// Clear forgets the last view and any message.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.counts = nil
	s.total = 0
}
