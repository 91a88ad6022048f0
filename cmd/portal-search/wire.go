package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/portal-search/internal/adapters/driven/catalog"
	"github.com/custodia-labs/portal-search/internal/adapters/driven/config/file"
	"github.com/custodia-labs/portal-search/internal/adapters/driven/feed"
	"github.com/custodia-labs/portal-search/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/portal-search/internal/adapters/driving/cli"
	"github.com/custodia-labs/portal-search/internal/core/domain"
	"github.com/custodia-labs/portal-search/internal/core/ports/driven"
	"github.com/custodia-labs/portal-search/internal/core/services"
	"github.com/custodia-labs/portal-search/internal/logger"
)

// wire builds the services from the settings in the config directory.
// A catalogue or feed that cannot be read is logged and served empty, so
// search keeps working on the sources that are available.
func wire(ctx context.Context, opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	settingsSvc := services.NewSettingsService(configStore)

	settings, err := settingsSvc.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	if settings.Log.Verbose || opts.Verbose {
		logger.SetVerbose(true)
	}

	store, err := sqlite.NewStore(settings.Database.Dir)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	if err := store.Watch(ctx, sqlite.DefaultPollInterval); err != nil {
		logger.Warn("store: %v", err)
	}

	var (
		cat        *catalog.Catalog
		news       *feed.Feed
		refreshers []driven.Refresher
	)

	if settings.Feed.Path != "" {
		news = feed.New(settings.Feed.Path)
		if err := news.Load(ctx); err != nil {
			logger.Warn("%v", err)
		}
		refreshers = append(refreshers, news)
	}

	if settings.Catalog.Path != "" {
		cat = catalog.New(settings.Catalog.Path)
		if err := cat.Load(ctx); err != nil {
			logger.Warn("%v", err)
		}
		if settings.Catalog.Watch {
			if err := cat.Watch(ctx); err != nil {
				logger.Warn("catalog: %v", err)
			}
		}
		refreshers = append(refreshers, cat)
	}
	refreshers = append(refreshers, store.Refreshers()...)

	sources := buildSources(cat, news, store)
	sourceSvc := services.NewSourceService(sources, refreshers...)

	return &cli.Services{
		Search:   services.NewSearchService(sources),
		Source:   sourceSvc,
		Settings: settingsSvc,
		Item: services.NewItemService(services.Writers{
			News:      store.News(),
			Materials: store.Materials(),
			Ebooks:    store.Ebooks(),
			Events:    store.Events(),
			Suppliers: store.Suppliers(),
			Foundries: store.Foundries(),
		}),
		Scheduler: services.NewScheduler(settingsSvc.GetSchedulerConfig(), store.SchedulerStore(), sourceSvc),
		Close: func() error {
			var errs []error
			if cat != nil {
				errs = append(errs, cat.Close())
			}
			errs = append(errs, store.Close())
			return errors.Join(errs...)
		},
	}, nil
}

// buildSources merges the catalogue, the feed and the local store into
// one source per collection. cat and news may be nil.
func buildSources(cat *catalog.Catalog, news *feed.Feed, store *sqlite.Store) services.Sources {
	sources := services.Sources{
		News:      store.News(),
		Materials: store.Materials(),
		Ebooks:    store.Ebooks(),
		Events:    store.Events(),
		Suppliers: store.Suppliers(),
		Foundries: store.Foundries(),
	}

	if cat != nil {
		c := cat.Content()
		sources.News = services.Merge[domain.News](c.News, sources.News)
		sources.Materials = services.Merge[domain.Material](c.Materials, sources.Materials)
		sources.Ebooks = services.Merge[domain.Ebook](c.Ebooks, sources.Ebooks)
		sources.Events = services.Merge[domain.Event](c.Events, sources.Events)
		sources.Suppliers = services.Merge[domain.Supplier](c.Suppliers, sources.Suppliers)
		sources.Foundries = services.Merge[domain.Foundry](c.Foundries, sources.Foundries)
	}
	if news != nil {
		sources.News = services.Merge[domain.News](sources.News, news)
	}
	return sources
}
