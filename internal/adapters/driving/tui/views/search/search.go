// Package search provides the live search view for the TUI.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/portal-search/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/portal-search/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/portal-search/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/portal-search/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/portal-search/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/portal-search/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/portal-search/internal/core/domain"
	"github.com/custodia-labs/portal-search/internal/core/ports/driving"
)

// View is the search screen: a query input feeding one live search
// session, the result list it publishes and a status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.ResultList
	statusbar *status.Bar

	searchService driving.SearchService
	session       driving.SearchSession
	updates       <-chan domain.SearchView
	ctx           context.Context

	width       int
	height      int
	ready       bool
	err         error
	state       domain.SearchState
	focusInput  bool // true = typing the query, false = navigating results
	showDetails bool
}

// NewView creates a new search view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewQueryInput(s),
		list:          list.NewResultList(s),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
		state:         domain.SearchStateIdle,
		focusInput:    true,
	}
}

// WithContext sets the context the live session is bound to.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts the cursor blink and the spinner, and opens the live
// session on first use.
func (v *View) Init() tea.Cmd {
	cmds := []tea.Cmd{v.input.Init(), v.statusbar.Init()}
	if v.session == nil {
		cmds = append(cmds, v.openSession())
	}
	return tea.Batch(cmds...)
}

// openSession returns a command that opens the live session.
func (v *View) openSession() tea.Cmd {
	query := v.input.Value()
	return func() tea.Msg {
		if v.searchService == nil {
			return messages.SessionOpened{Err: ErrNoSearchService}
		}
		session, err := v.searchService.Search(v.ctx, query)
		return messages.SessionOpened{Session: session, Err: err}
	}
}

// waitForView returns a command that delivers the next view from updates.
func waitForView(updates <-chan domain.SearchView) tea.Cmd {
	return func() tea.Msg {
		view, ok := <-updates
		if !ok {
			return messages.SessionClosed{}
		}
		return messages.ViewPublished{View: view}
	}
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SessionOpened:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.session = msg.Session
		v.updates = v.session.Updates()
		// Keys typed while the session was opening.
		if q := v.input.Value(); q != v.session.View().Query {
			v.session.SetQuery(q)
		}
		v.applyView(v.session.View())
		return v, waitForView(v.updates)

	case messages.ViewPublished:
		v.applyView(msg.View)
		if v.updates == nil {
			return v, nil
		}
		return v, waitForView(v.updates)

	case messages.SessionClosed:
		v.session = nil
		v.updates = nil
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.statusbar, cmd = v.statusbar.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		if v.showDetails {
			v.showDetails = false
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		return v.handleInputKey(msg)
	}
	return v.handleResultsKey(msg)
}

// handleInputKey edits the query. Every edit is pushed into the live
// session, which publishes the recomputed view asynchronously.
func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if keymap.Matches(msg.String(), v.keymap.Browse) {
		if !v.list.IsEmpty() {
			v.focusInput = false
			v.input.Blur()
			v.statusbar.SetState(status.StateResults)
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if v.input.Changed() && v.session != nil {
		v.session.SetQuery(v.input.Value())
	}
	return v, cmd
}

// handleResultsKey navigates the result list.
func (v *View) handleResultsKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(key, v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(key, v.keymap.Details):
		if sel := v.list.SelectedResult(); sel != nil {
			v.showDetails = !v.showDetails
			if v.showDetails {
				result := *sel
				return v, func() tea.Msg {
					return messages.ResultSelected{Result: result}
				}
			}
		}
	case keymap.Matches(key, v.keymap.EditQuery):
		v.showDetails = false
		v.focusInput = true
		return v, v.input.Focus()
	}
	return v, nil
}

// applyView shows a view published by the session.
func (v *View) applyView(view domain.SearchView) {
	v.state = view.State
	v.err = nil
	v.list.SetResults(view.Results)
	v.statusbar.Show(view, !v.focusInput)

	if v.list.IsEmpty() && !v.focusInput {
		v.focusInput = true
		v.showDetails = false
		v.input.Focus()
	}
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("Portal Search"), "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.showDetails {
		if sel := v.list.SelectedResult(); sel != nil {
			sections = append(sections, v.renderDetails(sel))
		}
	} else {
		sections = append(sections, v.list.View())
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderDetails renders every populated field of result in a box.
func (v *View) renderDetails(result *domain.SearchResult) string {
	lines := []string{
		v.styles.Badge(result.Type) + " " + v.styles.Title.Render(result.Title),
		"",
	}

	width := v.width - 8
	if width < 20 {
		width = 20
	}
	lines = append(lines, lipgloss.NewStyle().Width(width).Render(result.Summary), "")

	field := func(label, value string) {
		if value != "" {
			lines = append(lines, v.styles.Muted.Render(fmt.Sprintf("%-10s", label))+" "+v.styles.Normal.Render(value))
		}
	}
	field("Category", result.Category)
	field("Author", result.Author)
	field("Specialty", result.Specialty)
	field("Location", result.Location)
	field("Date", result.Date)
	field("Price", result.Price)
	if result.Downloads != nil {
		field("Downloads", fmt.Sprintf("%d", *result.Downloads))
	}
	field("Slug", result.Slug)
	field("Image", result.Image)
	field("ID", result.ID)

	return v.styles.Border.Padding(0, 1).Render(strings.Join(lines, "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10) // header, input and status
	v.statusbar.SetWidth(width)
}

// Close closes the live session.
func (v *View) Close() {
	if v.session != nil {
		v.session.Close()
	}
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery replaces the query and pushes it into the live session.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
	if v.session != nil {
		v.session.SetQuery(query)
	}
}

// Results returns the current search results.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// SelectedResult returns the currently selected result.
func (v *View) SelectedResult() *domain.SearchResult {
	return v.list.SelectedResult()
}

// State returns the state of the last applied view.
func (v *View) State() domain.SearchState {
	return v.state
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// ClearError clears the current error.
func (v *View) ClearError() {
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// Reset returns the view to an empty query in input mode. The live
// session is kept and recomputes for the empty query.
func (v *View) Reset() {
	v.focusInput = true
	v.showDetails = false
	v.input.Focus()
	v.SetQuery("")
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// DetailsVisible returns whether the detail panel is shown.
func (v *View) DetailsVisible() bool {
	return v.showDetails
}

// HasSession returns whether a live session is open.
func (v *View) HasSession() bool {
	return v.session != nil
}
