package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings(t *testing.T) {
	settings := DefaultAppSettings()

	assert.True(t, settings.Catalog.Watch)
	assert.False(t, settings.Catalog.IsConfigured())
	assert.False(t, settings.Feed.IsConfigured())
	assert.Equal(t, 30*time.Minute, settings.Feed.RefreshInterval)
	assert.Empty(t, settings.Database.Dir)
	assert.False(t, settings.Log.Verbose)
}

func TestCatalogSettings_IsConfigured(t *testing.T) {
	assert.True(t, CatalogSettings{Path: "/srv/portal/catalog.toml"}.IsConfigured())
	assert.False(t, CatalogSettings{Watch: true}.IsConfigured())
}

func TestFeedSettings_IsConfigured(t *testing.T) {
	assert.True(t, FeedSettings{Path: "https://example.com/rss"}.IsConfigured())
	assert.False(t, FeedSettings{}.IsConfigured())
}
