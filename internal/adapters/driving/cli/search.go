package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/portal-search/internal/core/domain"
)

var (
	searchJSON  bool
	searchTypes []string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search every collection once",
	Long: `Searches news, materials, e-books, events, suppliers and foundries.

Matching is a case-insensitive substring test on each collection's
searchable fields. Results are grouped by collection in a fixed order:
news, materials, e-books, events, suppliers, foundries. Queries shorter
than two characters return nothing.

Use --type to keep only some collections, e.g. --type news,event.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringSliceVarP(&searchTypes, "type", "t", nil,
		"collections to include (news, material, ebook, event, supplier, foundry)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	opts, err := parseTypes(searchTypes)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)

	results, err := searchService.Find(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

// parseTypes turns --type values into search options. Values may be
// repeated or comma separated.
func parseTypes(values []string) (domain.SearchOptions, error) {
	var opts domain.SearchOptions
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		ct, err := domain.ParseContentType(v)
		if err != nil {
			return opts, fmt.Errorf("invalid --type: %w", err)
		}
		opts.Types = append(opts.Types, ct)
	}
	return opts, nil
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Printf("Results (%d):\n", len(results))
	cmd.Println()
	printResults(cmd, results)
	return nil
}

// printResults writes one block per result:
//
//	[N] Label  Title
//	    meta · data
//	    summary
func printResults(cmd *cobra.Command, results []domain.SearchResult) {
	for i := range results {
		r := &results[i]
		cmd.Printf("  [%d] %-10s %s\n", i+1, r.Type.Label(), r.Title)
		if meta := resultMeta(r); meta != "" {
			cmd.Printf("      %s\n", meta)
		}
		if r.Summary != "" {
			cmd.Printf("      %s\n", r.Summary)
		}
		cmd.Println()
	}
}

func resultMeta(r *domain.SearchResult) string {
	parts := make([]string, 0, 6)
	for _, v := range []string{r.Category, r.Author, r.Specialty, r.Location, r.Date, r.Price} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	if r.Downloads != nil && *r.Downloads > 0 {
		parts = append(parts, fmt.Sprintf("%d downloads", *r.Downloads))
	}
	return strings.Join(parts, " · ")
}
