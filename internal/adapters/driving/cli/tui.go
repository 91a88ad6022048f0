package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/portal-search/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for portal-search.

The search screen keeps one live search open: results update on every
keystroke and whenever a source changes. The background scheduler keeps
the news feed fresh while the TUI runs.

Controls:
  (type)       - Edit the query
  Enter/Tab    - Move to the results
  ↑/k, ↓/j     - Navigate results
  Enter        - Show details
  /            - Back to the query
  Esc          - Back / Cancel
  Ctrl+C       - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := newTUIApp()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()
	app.WithContext(ctx)
	defer app.Close()

	stopScheduler := startScheduler(ctx)
	defer stopScheduler()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

func newTUIApp() (*tui.App, error) {
	app, err := tui.NewApp(tui.NewPorts(searchService, sourceService))
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}
	return app, nil
}

// startScheduler runs the scheduler in the background when one is
// configured and returns a function that stops it.
func startScheduler(ctx context.Context) func() {
	if scheduler == nil || settingsService == nil || !settingsService.GetSchedulerConfig().Enabled {
		return func() {}
	}

	go func() {
		// Scheduler errors must not take the TUI down.
		if err := scheduler.Start(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "scheduler stopped: %v\n", err)
		}
	}()

	return func() {
		if err := scheduler.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "scheduler stop error: %v\n", err)
		}
	}
}
