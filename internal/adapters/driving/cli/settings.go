package cli

import (
	"bufio"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/portal-search/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change where portal-search reads its content from.

Settings are stored in config.toml inside the config directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Change one setting. Keys:
  catalog.path           TOML catalogue file ("" disables it)
  catalog.watch          reload the catalogue when it changes (true/false)
  database.dir           directory of the SQLite store
  feed.path              RSS/Atom file or URL for news ("" disables it)
  feed.refresh_minutes   how often the feed is re-read
  log.verbose            verbose logging (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

// settingSetters apply a string value to one settings field.
var settingSetters = map[string]func(s *domain.AppSettings, value string) error{
	"catalog.path": func(s *domain.AppSettings, v string) error {
		s.Catalog.Path = v
		return nil
	},
	"catalog.watch": func(s *domain.AppSettings, v string) error {
		return parseBool(v, &s.Catalog.Watch)
	},
	"database.dir": func(s *domain.AppSettings, v string) error {
		s.Database.Dir = v
		return nil
	},
	"feed.path": func(s *domain.AppSettings, v string) error {
		s.Feed.Path = v
		return nil
	},
	"feed.refresh_minutes": func(s *domain.AppSettings, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("%q is not a positive number of minutes: %w", v, domain.ErrInvalidInput)
		}
		s.Feed.RefreshInterval = time.Duration(n) * time.Minute
		return nil
	},
	"log.verbose": func(s *domain.AppSettings, v string) error {
		return parseBool(v, &s.Log.Verbose)
	},
}

func parseBool(v string, dst *bool) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%q is not true or false: %w", v, domain.ErrInvalidInput)
	}
	*dst = b
	return nil
}

func settingKeys() []string {
	keys := make([]string, 0, len(settingSetters))
	for k := range settingSetters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Catalog]")
	cmd.Printf("  Path: %s\n", orNotSet(settings.Catalog.Path))
	cmd.Printf("  Watch: %s\n", yesNo(settings.Catalog.Watch))
	cmd.Println()

	cmd.Println("[Database]")
	cmd.Printf("  Directory: %s\n", orDefault(settings.Database.Dir, "~/.portal-search/data"))
	cmd.Println()

	cmd.Println("[Feed]")
	cmd.Printf("  Location: %s\n", orNotSet(settings.Feed.Path))
	cmd.Printf("  Refresh every: %s\n", settings.Feed.RefreshInterval)
	cmd.Println()

	cmd.Println("[Scheduler]")
	sched := settingsService.GetSchedulerConfig()
	cmd.Printf("  Enabled: %s\n", yesNo(sched.Enabled))
	refresh := sched.GetTaskConfig(domain.TaskIDSourceRefresh)
	cmd.Printf("  Source refresh: %s, every %s\n", yesNo(refresh.Enabled), refresh.Interval)
	cmd.Println()

	cmd.Println("[Log]")
	cmd.Printf("  Verbose: %s\n", yesNo(settings.Log.Verbose))

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], strings.TrimSpace(args[1])
	set, ok := settingSetters[key]
	if !ok {
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(settingKeys(), ", "))
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := set(settings, value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Set %s = %q\n", key, value)
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Portal Search Settings Wizard")
	cmd.Println("=============================")
	cmd.Println("Press Enter to keep the value in brackets.")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Step 1: Catalogue")
	cmd.Println("-----------------")
	settings.Catalog.Path = prompt(cmd, reader, "Catalogue file", settings.Catalog.Path)
	if settings.Catalog.Path != "" {
		settings.Catalog.Watch = promptYesNo(cmd, reader, "Reload when the file changes?", settings.Catalog.Watch)
	}
	cmd.Println()

	cmd.Println("Step 2: News feed")
	cmd.Println("-----------------")
	settings.Feed.Path = prompt(cmd, reader, "Feed file or URL", settings.Feed.Path)
	if settings.Feed.Path != "" {
		minutes := int(settings.Feed.RefreshInterval / time.Minute)
		input := prompt(cmd, reader, "Refresh every (minutes)", strconv.Itoa(minutes))
		if n, err := strconv.Atoi(input); err == nil && n > 0 {
			settings.Feed.RefreshInterval = time.Duration(n) * time.Minute
		} else {
			cmd.Printf("Keeping %d minutes.\n", minutes)
		}
	}
	cmd.Println()

	cmd.Println("Step 3: Local store")
	cmd.Println("-------------------")
	settings.Database.Dir = prompt(cmd, reader, "Data directory (empty for default)", settings.Database.Dir)
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Settings saved.")
	return nil
}

// Helper functions.

func prompt(cmd *cobra.Command, reader *bufio.Reader, label, current string) string {
	cmd.Printf("%s [%s]: ", label, current)
	if input := readLine(reader); input != "" {
		return input
	}
	return current
}

func promptYesNo(cmd *cobra.Command, reader *bufio.Reader, label string, current bool) bool {
	def := 2
	if current {
		def = 1
	}
	cmd.Printf("%s\n  1. yes\n  2. no\nEnter choice [%d]: ", label, def)
	return parseChoice(readLine(reader), 2, def) == 1
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orNotSet(s string) string {
	return orDefault(s, "(not set)")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
