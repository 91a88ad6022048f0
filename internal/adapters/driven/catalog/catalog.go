package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/portal-search/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/portal-search/internal/core/domain"
	"github.com/custodia-labs/portal-search/internal/core/ports/driven"
	"github.com/custodia-labs/portal-search/internal/logger"
)

// Ensure Catalog implements the interface.
var _ driven.Refresher = (*Catalog)(nil)

// reloadInterval is the minimum time between two reloads triggered by
// file events. Editors typically emit several events per save.
const reloadInterval = 200 * time.Millisecond

// Catalog keeps the contents of a catalogue file in memory collections.
type Catalog struct {
	path    string
	content *memory.Content
	limiter *rate.Limiter

	mu      sync.Mutex
	watcher *fsnotify.Watcher
}

// New creates a catalogue for the file at path. Nothing is read until
// Load is called.
func New(path string) *Catalog {
	return &Catalog{
		path:    path,
		content: memory.NewContent(),
		limiter: rate.NewLimiter(rate.Every(reloadInterval), 1),
	}
}

// Path returns the catalogue file path.
func (c *Catalog) Path() string {
	return c.path
}

// Content returns the collections served by this catalogue.
func (c *Catalog) Content() *memory.Content {
	return c.content
}

// Name identifies the catalogue in logs and refresh errors.
func (c *Catalog) Name() string {
	return "catalog:" + filepath.Base(c.path)
}

// Load reads and parses the file. On failure the previous snapshot is
// kept and the error wraps domain.ErrSourceUnavailable.
func (c *Catalog) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %w", domain.ErrSourceUnavailable, c.path, err)
	}

	snaps, err := Parse(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrSourceUnavailable, c.path, err)
	}

	changed := c.content.Load(snaps)
	logger.Debug("catalog: loaded %s (%d items, %d collections changed)", c.path, snaps.Len(), changed)
	return nil
}

// Refresh re-reads the file.
func (c *Catalog) Refresh(ctx context.Context) error {
	return c.Load(ctx)
}

// Watch re-reads the file whenever it changes until ctx is cancelled or
// Close is called. The parent directory is watched so that editors that
// replace the file on save are followed.
func (c *Catalog) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(c.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", c.path, err)
	}

	c.mu.Lock()
	if c.watcher != nil {
		c.mu.Unlock()
		watcher.Close()
		return nil
	}
	c.watcher = watcher
	c.mu.Unlock()

	go c.watch(ctx, watcher)
	return nil
}

// Close stops watching. It is safe to call without Watch.
func (c *Catalog) Close() error {
	c.mu.Lock()
	watcher := c.watcher
	c.watcher = nil
	c.mu.Unlock()

	if watcher == nil {
		return nil
	}
	return watcher.Close()
}

func (c *Catalog) watch(ctx context.Context, watcher *fsnotify.Watcher) {
	target := filepath.Clean(c.path)
	for {
		select {
		case <-ctx.Done():
			_ = c.Close()
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			if err := c.limiter.Wait(ctx); err != nil {
				return
			}
			drain(watcher.Events)
			if err := c.Load(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("catalog: reload failed, keeping previous contents: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("catalog: watcher error: %v", err)
		}
	}
}

// drain discards queued events; the reload that follows covers them.
func drain(events <-chan fsnotify.Event) {
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

// Parse decodes catalogue data. Unknown keys are rejected so that typos
// do not silently drop fields.
func Parse(data []byte) (domain.Snapshots, error) {
	var doc document
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return domain.Snapshots{}, fmt.Errorf("parsing catalog at line %d column %d: %w", row, col, err)
		}
		return domain.Snapshots{}, fmt.Errorf("parsing catalog: %w", err)
	}
	return doc.snapshots(), nil
}
