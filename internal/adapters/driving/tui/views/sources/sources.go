// Package sources provides the sources view component for the TUI.
package sources

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/portal-search/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/portal-search/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/portal-search/internal/core/domain"
	"github.com/custodia-labs/portal-search/internal/core/ports/driving"
)

// View lists every collection with its current item count.
type View struct {
	styles        *styles.Styles
	sourceService driving.SourceService
	ctx           context.Context

	counts     map[domain.ContentType]int
	selected   int
	width      int
	height     int
	ready      bool
	err        error
	loading    bool
	refreshing bool
	message    string
}

// NewView creates a new sources view.
func NewView(s *styles.Styles, sourceService driving.SourceService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:        s,
		sourceService: sourceService,
		ctx:           context.Background(),
		counts:        map[domain.ContentType]int{},
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view and loads the counts.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadCounts()
}

// loadCounts returns a command that reads the counts from the service.
func (v *View) loadCounts() tea.Cmd {
	return func() tea.Msg {
		if v.sourceService == nil {
			return messages.CountsLoaded{Err: ErrNoSourceService}
		}
		counts, err := v.sourceService.Counts(v.ctx)
		return messages.CountsLoaded{Counts: counts, Err: err}
	}
}

// refresh returns a command that re-reads the external sources.
func (v *View) refresh() tea.Cmd {
	return func() tea.Msg {
		if v.sourceService == nil {
			return messages.SourcesRefreshed{Err: ErrNoSourceService}
		}
		return messages.SourcesRefreshed{Err: v.sourceService.Refresh(v.ctx)}
	}
}

// Update handles messages for the sources view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.CountsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.counts = msg.Counts
		v.err = nil
		return v, nil

	case messages.SourcesRefreshed:
		v.refreshing = false
		if msg.Err != nil {
			v.err = msg.Err
			v.message = ""
		} else {
			v.err = nil
			v.message = "Sources refreshed"
		}
		return v, v.loadCounts()
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(domain.ContentTypes())-1 {
			v.selected++
		}
	case "r":
		if v.refreshing {
			return v, nil
		}
		v.refreshing = true
		v.message = ""
		return v, v.refresh()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	return v, nil
}

// View renders the sources view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Sources"))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading sources..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	total := 0
	for i, ct := range domain.ContentTypes() {
		b.WriteString(v.renderCollection(i, ct))
		b.WriteString("\n")
		total += v.counts[ct]
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%d items in total", total)))
	b.WriteString("\n")

	switch {
	case v.refreshing:
		b.WriteString(v.styles.Muted.Render("Refreshing..."))
		b.WriteString("\n")
	case v.message != "":
		b.WriteString(v.styles.Success.Render(v.message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderCollection renders one collection line.
func (v *View) renderCollection(index int, ct domain.ContentType) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	count := fmt.Sprintf("%6d", v.counts[ct])
	if index == v.selected {
		return indicator + v.styles.Badge(ct) + " " + v.styles.Selected.Render(fmt.Sprintf("%-10s %s", ct, count))
	}
	return indicator + v.styles.Badge(ct) + " " +
		v.styles.Normal.Render(fmt.Sprintf("%-10s ", ct)) + v.styles.Subtitle.Render(count)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[j/k] navigate  [r] refresh  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Counts returns the last loaded counts.
func (v *View) Counts() map[domain.ContentType]int {
	return v.counts
}

// SelectedIndex returns the currently selected collection index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Refreshing returns whether a refresh is in progress.
func (v *View) Refreshing() bool {
	return v.refreshing
}
