package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/portal-search/internal/core/domain"
)

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\033[H\033[2J"

var watchCmd = &cobra.Command{
	Use:   "watch [query]",
	Short: "Keep a search open and print every update",
	Long: `Opens a live search and prints the result list again whenever any
source changes: the catalogue file is edited, the feed is refreshed or an
item is saved by any portal-search process, including 'portal-search item
add' run from another terminal. Local items are checked about once a
second. When the scheduler is enabled it runs while watch is open.

On a terminal the screen is redrawn in place; otherwise each update is
appended to the output. Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	ctx := commandContext(cmd)

	stop := startScheduler(ctx)
	defer stop()

	session, err := searchService.Search(ctx, args[0])
	if err != nil {
		return fmt.Errorf("opening search: %w", err)
	}
	defer session.Close()

	redraw := isTerminal(cmd.OutOrStdout())
	updates := session.Updates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case view, ok := <-updates:
			if !ok {
				return nil
			}
			if view.Loading {
				continue
			}
			printView(cmd, view, redraw)
		}
	}
}

func printView(cmd *cobra.Command, view domain.SearchView, redraw bool) {
	if redraw {
		cmd.Print(clearScreen)
	}
	cmd.Printf("%s  %q: %d results\n\n", time.Now().Format("15:04:05"), view.Query, len(view.Results))
	if len(view.Results) == 0 {
		cmd.Println("No results found.")
		cmd.Println()
		return
	}
	printResults(cmd, view.Results)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
