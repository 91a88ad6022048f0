package services

import (
	"time"

	"github.com/custodia-labs/portal-search/internal/core/domain"
	"github.com/custodia-labs/portal-search/internal/core/ports/driven"
	"github.com/custodia-labs/portal-search/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyCatalogPath     = "catalog.path"
	keyCatalogWatch    = "catalog.watch"
	keyDatabaseDir     = "database.dir"
	keyFeedPath        = "feed.path"
	keyFeedRefreshMins = "feed.refresh_minutes"
	keyLogVerbose      = "log.verbose"
	keySchedulerOn     = "scheduler.enabled"
	keyRefreshPrefix   = "scheduler.source_refresh."
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Catalog: domain.CatalogSettings{
			Path:  s.configStore.GetString(keyCatalogPath),
			Watch: s.getBool(keyCatalogWatch, defaults.Catalog.Watch),
		},
		Database: domain.DatabaseSettings{
			Dir: s.configStore.GetString(keyDatabaseDir),
		},
		Feed: domain.FeedSettings{
			Path:            s.configStore.GetString(keyFeedPath),
			RefreshInterval: s.getMinutes(keyFeedRefreshMins, defaults.Feed.RefreshInterval),
		},
		Log: domain.LogSettings{
			Verbose: s.getBool(keyLogVerbose, defaults.Log.Verbose),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}

	values := []struct {
		key   string
		value any
	}{
		{keyCatalogPath, settings.Catalog.Path},
		{keyCatalogWatch, settings.Catalog.Watch},
		{keyDatabaseDir, settings.Database.Dir},
		{keyFeedPath, settings.Feed.Path},
		{keyFeedRefreshMins, int(settings.Feed.RefreshInterval / time.Minute)},
		{keyLogVerbose, settings.Log.Verbose},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return err
		}
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// GetSchedulerConfig returns the scheduler configuration.
// The refresh interval follows feed.refresh_minutes unless
// scheduler.source_refresh.interval overrides it.
func (s *SettingsService) GetSchedulerConfig() domain.SchedulerConfig {
	defaults := domain.DefaultSchedulerConfig()

	if _, exists := s.configStore.Get(keySchedulerOn); exists {
		defaults.Enabled = s.configStore.GetBool(keySchedulerOn)
	}

	taskCfg := defaults.TaskConfigs[domain.TaskIDSourceRefresh]
	taskCfg.Interval = s.getMinutes(keyFeedRefreshMins, taskCfg.Interval)

	if _, exists := s.configStore.Get(keyRefreshPrefix + "enabled"); exists {
		taskCfg.Enabled = s.configStore.GetBool(keyRefreshPrefix + "enabled")
	}
	if interval := s.configStore.GetString(keyRefreshPrefix + "interval"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil && d > 0 {
			taskCfg.Interval = d
		}
	}

	defaults.TaskConfigs[domain.TaskIDSourceRefresh] = taskCfg
	return defaults
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getMinutes(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Minute
}
