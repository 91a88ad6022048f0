package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/portal-search/internal/core/domain"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Show the size of every collection",
	RunE:  runSources,
}

var sourcesRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-read the feed, the catalogue and the database",
	Long: `Asks every refreshable source to re-read its backing location.
A source that fails keeps its previous items; all failures are reported
together once every source has been tried.`,
	RunE: runSourcesRefresh,
}

func init() {
	sourcesCmd.AddCommand(sourcesRefreshCmd)
	rootCmd.AddCommand(sourcesCmd)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runSources(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	counts, err := sourceService.Counts(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("reading sources: %w", err)
	}

	cmd.Println("Collections:")
	total := 0
	for _, ct := range domain.ContentTypes() {
		cmd.Printf("  %-10s %-11s %6d\n", ct, ct.Label(), counts[ct])
		total += counts[ct]
	}
	cmd.Printf("\n%d items in total\n", total)
	return nil
}

func runSourcesRefresh(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	cmd.Println("Refreshing sources...")
	start := time.Now()

	if err := sourceService.Refresh(commandContext(cmd)); err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	cmd.Printf("Sources refreshed in %s.\n", time.Since(start).Round(time.Millisecond))
	return nil
}
