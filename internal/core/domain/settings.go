package domain

import "time"

const unknownDescription = "Unknown"

// CatalogSettings configures the TOML catalogue file adapter.
type CatalogSettings struct {
	// Path is the catalogue file. Empty disables the adapter.
	Path string

	// Watch reloads the catalogue whenever the file changes.
	Watch bool
}

// IsConfigured returns true if a catalogue file is set.
func (c CatalogSettings) IsConfigured() bool {
	return c.Path != ""
}

// DatabaseSettings configures the SQLite-backed collections.
type DatabaseSettings struct {
	// Dir is the directory holding content.db.
	// Empty means ~/.portal-search/data.
	Dir string
}

// FeedSettings configures the news feed adapter.
type FeedSettings struct {
	// Path is a local RSS/Atom file or an http(s) URL.
	// Empty disables the adapter.
	Path string

	// RefreshInterval is how often the scheduler re-reads the feed.
	RefreshInterval time.Duration
}

// IsConfigured returns true if a feed location is set.
func (f FeedSettings) IsConfigured() bool {
	return f.Path != ""
}

// LogSettings configures the verbose logger.
type LogSettings struct {
	Verbose bool
}

// AppSettings holds all application configuration.
type AppSettings struct {
	Catalog  CatalogSettings
	Database DatabaseSettings
	Feed     FeedSettings
	Log      LogSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Catalog: CatalogSettings{
			Watch: true,
		},
		Feed: FeedSettings{
			RefreshInterval: 30 * time.Minute,
		},
	}
}
