package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/portal-search/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/portal-search/internal/core/domain"
)

func newTestApp(t *testing.T) (*App, *MockSearchService) {
	t.Helper()
	search := &MockSearchService{}
	app, err := NewApp(NewPorts(search, &MockSourceService{}))
	require.NoError(t, err)
	app.SetDimensions(80, 24)
	return app, search
}

// openSearch moves the app to the search view and delivers an open session.
func openSearch(t *testing.T, app *App, view domain.SearchView) *MockSession {
	t.Helper()
	app.Update(messages.ViewChanged{View: messages.ViewSearch})
	session := newMockSession(view)
	app.Update(messages.SessionOpened{Session: session})
	return session
}

func readyView(query string, titles ...string) domain.SearchView {
	results := make([]domain.SearchResult, 0, len(titles))
	for i, title := range titles {
		results = append(results, domain.SearchResult{
			ID:    string(rune('a' + i)),
			Title: title,
			Type:  domain.ContentNews,
		})
	}
	return domain.SearchView{Query: query, State: domain.SearchStateReady, Results: results}
}

func typeText(app *App, text string) {
	for _, r := range text {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(NewPorts(&MockSearchService{}, nil))

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.False(t, app.Ready())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{Source: &MockSourceService{}})

	assert.ErrorIs(t, err, ErrMissingSearchService)
	assert.Nil(t, app)

	app, err = NewApp(nil)
	assert.ErrorIs(t, err, ErrInvalidPorts)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, _ := newTestApp(t)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_Init(t *testing.T) {
	app, _ := newTestApp(t)

	assert.NotNil(t, app.Init())
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, err := NewApp(NewPorts(&MockSearchService{}, nil))
	require.NoError(t, err)

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
	assert.Equal(t, 120, app.width)
	assert.Equal(t, 40, app.height)
}

func TestApp_Update_CtrlC(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_Update_Quit(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_Update_MenuKeysRouteToMenu(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewSearch}, cmd())
	assert.Equal(t, messages.ViewMenu, app.CurrentView(), "menu only requests the change")
}

func TestApp_Update_ViewChanged_ToSearch(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewSearch})

	assert.Equal(t, messages.ViewSearch, app.CurrentView())
	assert.NotNil(t, cmd)
}

func TestApp_Update_ViewChanged_ToSources(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewSources})

	assert.Equal(t, messages.ViewSources, app.CurrentView())
	require.NotNil(t, cmd)
	assert.IsType(t, messages.CountsLoaded{}, cmd())
}

func TestApp_Update_ViewChanged_ToHelpAndMenu(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewHelp})
	assert.Nil(t, cmd)
	assert.Equal(t, messages.ViewHelp, app.CurrentView())

	_, cmd = app.Update(messages.ViewChanged{View: messages.ViewMenu})
	assert.Nil(t, cmd)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_Update_HelpEscape(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(messages.ViewChanged{View: messages.ViewHelp})

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.Equal(t, messages.ViewHelp, app.CurrentView())

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_Update_SessionOpened(t *testing.T) {
	app, _ := newTestApp(t)

	openSearch(t, app, readyView("al", "Aluminium casting", "Alloy guide"))

	assert.Len(t, app.Results(), 2)
	assert.Equal(t, "Aluminium casting", app.Results()[0].Title)
	assert.NoError(t, app.Err())
}

func TestApp_Update_SessionOpened_Error(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(messages.ViewChanged{View: messages.ViewSearch})

	app.Update(messages.SessionOpened{Err: errors.New("boom")})

	require.Error(t, app.Err())
	assert.Contains(t, app.View(), "boom")
}

func TestApp_Update_ViewPublished_WhileOnMenu(t *testing.T) {
	app, _ := newTestApp(t)
	openSearch(t, app, readyView(""))
	app.Update(messages.ViewChanged{View: messages.ViewMenu})

	_, cmd := app.Update(messages.ViewPublished{View: readyView("ir", "Iron foundries")})

	assert.NotNil(t, cmd, "search view keeps waiting for the next view")
	require.Len(t, app.Results(), 1)
	assert.Equal(t, "Iron foundries", app.Results()[0].Title)
}

func TestApp_Update_TypingFeedsSession(t *testing.T) {
	app, _ := newTestApp(t)
	session := openSearch(t, app, readyView(""))

	typeText(app, "aço")

	assert.Equal(t, "aço", app.Query())
	assert.Equal(t, []string{"a", "aç", "aço"}, session.Queries())
}

func TestApp_Update_NavigateResults(t *testing.T) {
	app, _ := newTestApp(t)
	openSearch(t, app, readyView("al", "One", "Two", "Three"))

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app.Update(tea.KeyMsg{Type: tea.KeyDown})
	app.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, app.SelectedIndex())

	app.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, app.SelectedIndex())
}

func TestApp_Update_ResultSelected(t *testing.T) {
	app, _ := newTestApp(t)
	openSearch(t, app, readyView("al", "One", "Two"))
	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()
	app.Update(msg)

	require.NotNil(t, app.SelectedResult())
	assert.Equal(t, "Two", app.SelectedResult().Title)
	assert.Contains(t, app.View(), "Two")
}

func TestApp_Update_SearchEscapeReturnsToMenu(t *testing.T) {
	app, _ := newTestApp(t)
	openSearch(t, app, readyView(""))

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_Update_ReturningToSearchKeepsSession(t *testing.T) {
	app, search := newTestApp(t)
	session := openSearch(t, app, readyView(""))
	typeText(app, "fe")
	app.Update(messages.ViewChanged{View: messages.ViewMenu})

	app.Update(messages.ViewChanged{View: messages.ViewSearch})

	assert.Equal(t, "", app.Query())
	assert.Equal(t, "", session.Queries()[len(session.Queries())-1])
	assert.Equal(t, 0, search.opened, "the session was delivered directly")
	assert.False(t, session.Closed())
}

func TestApp_Update_CountsLoaded(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(messages.ViewChanged{View: messages.ViewSources})

	app.Update(messages.CountsLoaded{Counts: map[domain.ContentType]int{
		domain.ContentNews:    3,
		domain.ContentFoundry: 4,
	}})

	assert.Contains(t, app.View(), "7 items in total")
}

func TestApp_Update_ErrorOccurred(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(messages.ErrorOccurred{Err: errors.New("something went wrong")})

	assert.Nil(t, cmd)
	assert.EqualError(t, app.Err(), "something went wrong")
}

func TestApp_View(t *testing.T) {
	app, err := NewApp(NewPorts(&MockSearchService{}, nil))
	require.NoError(t, err)
	assert.Equal(t, "Initialising...", app.View())

	app.SetDimensions(100, 30)
	assert.Contains(t, app.View(), "Portal Search")

	app.Update(messages.ViewChanged{View: messages.ViewHelp})
	assert.Contains(t, app.View(), "Help")
	assert.Contains(t, app.View(), "Refresh feeds and catalogue")

	app.Update(messages.ViewChanged{View: messages.ViewSources})
	assert.Contains(t, app.View(), "Sources")
}

func TestApp_Close(t *testing.T) {
	app, _ := newTestApp(t)
	session := openSearch(t, app, readyView(""))

	app.Close()

	assert.True(t, session.Closed())
}
