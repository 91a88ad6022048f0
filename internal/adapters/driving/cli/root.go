// Package cli provides the cobra command tree for portal-search.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/portal-search/internal/core/ports/driving"
	"github.com/custodia-labs/portal-search/internal/logger"
)

// noServices marks commands that run without the bootstrap.
const noServices = "no-services"

var (
	verbose   bool
	configDir string
	version   = "dev"
)

// Services wired by the bootstrap, or set directly by tests.
var (
	searchService   driving.SearchService
	sourceService   driving.SourceService
	itemService     driving.ItemService
	settingsService driving.SettingsService
	scheduler       driving.Scheduler
)

// Options is passed to the bootstrap.
type Options struct {
	ConfigDir string
	Verbose   bool
}

// Services is what the bootstrap wires for the commands. Close releases
// whatever the bootstrap opened and may be nil.
type Services struct {
	Search    driving.SearchService
	Source    driving.SourceService
	Item      driving.ItemService
	Settings  driving.SettingsService
	Scheduler driving.Scheduler
	Close     func() error
}

// Bootstrap builds the services for one command invocation.
type Bootstrap func(ctx context.Context, opts Options) (*Services, error)

var (
	bootstrap Bootstrap
	closeFn   func() error
)

var rootCmd = &cobra.Command{
	Use:   "portal-search",
	Short: "Unified search for the foundry portal",
	Long: `portal-search finds news, technical materials, e-books, events,
suppliers and foundries in one query.

Content comes from a TOML catalogue file, an RSS/Atom news feed and a
local SQLite store. Results stay live: edits to any source show up in an
open search without running it again.

Example usage:
  portal-search search alumínio
  portal-search search fundição --type foundry,supplier --json
  portal-search watch ferro
  portal-search tui`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap installs the function that wires services before each
// command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default is ~/.portal-search)")
}

func setup(cmd *cobra.Command, _ []string) error {
	if verbose {
		logger.SetVerbose(true)
	}
	if bootstrap == nil || cmd.Annotations[noServices] == "true" {
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	services, err := bootstrap(ctx, Options{ConfigDir: configDir, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	applyServices(services)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if closeFn == nil {
		return nil
	}
	err := closeFn()
	closeFn = nil
	return err
}

func applyServices(s *Services) {
	searchService = s.Search
	sourceService = s.Source
	itemService = s.Item
	settingsService = s.Settings
	scheduler = s.Scheduler
	closeFn = s.Close
}

// Close releases the services opened by the bootstrap. It is safe to
// call more than once, including after a command failed.
func Close() error {
	return teardown(nil, nil)
}
