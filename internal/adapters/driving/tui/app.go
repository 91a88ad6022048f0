package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/portal-search/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/portal-search/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/portal-search/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/portal-search/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/portal-search/internal/adapters/driving/tui/views/sources"
	"github.com/custodia-labs/portal-search/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx bounds the live search session.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// searchView owns the live search session.
	searchView *search.View

	// sourcesView shows the collection sizes.
	sourcesView *sources.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// selected is the last result opened for details.
	selected *domain.SearchResult

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		menuView:    menu.NewView(s),
		searchView:  search.NewView(s, nil, ports.Search),
		sourcesView: sources.NewView(s, ports.Source),
		currentView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.sourcesView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("portal-search"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message router
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.routeKey(msg)

	// The session keeps publishing while other views are active, so its
	// messages always go to the search view.
	case messages.SessionOpened, messages.ViewPublished, messages.SessionClosed, spinner.TickMsg:
		if opened, ok := msg.(messages.SessionOpened); ok && opened.Err != nil {
			a.err = opened.Err
		}
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.ResultSelected:
		result := msg.Result
		a.selected = &result
		return a, nil

	case messages.CountsLoaded, messages.SourcesRefreshed:
		a.sourcesView, cmd = a.sourcesView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewSearch {
			a.searchView, cmd = a.searchView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewSources:
		a.sourcesView, cmd = a.sourcesView.Update(msg)
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewHelp:
	}

	return a, cmd
}

// routeKey forwards a key press to the active view.
func (a *App) routeKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
	case messages.ViewSources:
		a.sourcesView, cmd = a.sourcesView.Update(msg)
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc || msg.String() == "q" {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

// switchTo activates view. The search view keeps its session across
// visits and starts again from an empty query.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view

	switch view {
	case messages.ViewSearch:
		a.searchView.Reset()
		return a.searchView.Init()
	case messages.ViewSources:
		return a.sourcesView.Init()
	case messages.ViewMenu, messages.ViewHelp:
	}
	return nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewSources:
		return a.sourcesView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  s/o/?       Search, Sources, Help
  q           Quit

Search:
  (type)      Results update as you type
  enter, tab  Move to the results
  esc         Back to Menu

Results:
  j/k, ↑/↓    Navigate results
  enter       Show or hide details
  /, n        Edit the query

Sources:
  r           Refresh feeds and catalogue

[esc] back to menu`
}

// Run starts the TUI application and closes the live session on exit.
func (a *App) Run() error {
	defer a.Close()
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Close releases the live search session.
func (a *App) Close() {
	a.searchView.Close()
}

// Query returns the current search query.
func (a *App) Query() string {
	return a.searchView.Query()
}

// Results returns the current search results.
func (a *App) Results() []domain.SearchResult {
	return a.searchView.Results()
}

// SelectedIndex returns the currently selected result index.
func (a *App) SelectedIndex() int {
	return a.searchView.SelectedIndex()
}

// SelectedResult returns the last result opened for details.
func (a *App) SelectedResult() *domain.SearchResult {
	return a.selected
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.sourcesView.SetDimensions(width, height)
}
