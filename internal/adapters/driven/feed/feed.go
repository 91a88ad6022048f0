// Package feed serves industry news from an RSS, Atom or JSON feed.
package feed

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"github.com/custodia-labs/portal-search/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/portal-search/internal/core/domain"
	"github.com/custodia-labs/portal-search/internal/core/ports/driven"
	"github.com/custodia-labs/portal-search/internal/logger"
)

// Ensure Feed implements the interfaces.
var (
	_ driven.NewsSource = (*Feed)(nil)
	_ driven.Refresher  = (*Feed)(nil)
)

const (
	userAgent      = "portal-search/1.0"
	requestTimeout = 30 * time.Second
)

// Feed keeps the items of one feed as a news collection. The location is
// either an http(s) URL or a local file path.
type Feed struct {
	location string
	parser   *gofeed.Parser
	policy   *bluemonday.Policy
	news     *memory.Collection[domain.News]
}

// New creates a feed source for location. Nothing is fetched until Load.
func New(location string) *Feed {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	parser.Client = &http.Client{Timeout: requestTimeout}

	return &Feed{
		location: location,
		parser:   parser,
		policy:   bluemonday.StrictPolicy(),
		news:     memory.NewCollection(func(n domain.News) string { return n.ID }),
	}
}

// Name identifies the feed in logs and refresh errors.
func (f *Feed) Name() string {
	return "feed:" + f.location
}

// Snapshot returns the news items of the last successful load.
func (f *Feed) Snapshot() []domain.News {
	return f.news.Snapshot()
}

// OnChange registers fn to run when a load changes the items.
func (f *Feed) OnChange(fn func()) func() {
	return f.news.OnChange(fn)
}

// Load fetches and parses the feed. On failure the previous items are
// kept and the error wraps domain.ErrSourceUnavailable.
func (f *Feed) Load(ctx context.Context) error {
	parsed, err := f.fetch(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrSourceUnavailable, f.location, err)
	}

	items := make([]domain.News, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		items = append(items, f.toNews(item))
	}

	changed := f.news.ReplaceIfChanged(items)
	logger.Debug("feed: loaded %d items from %s (changed=%t)", len(items), f.location, changed)
	return nil
}

// Refresh re-fetches the feed.
func (f *Feed) Refresh(ctx context.Context) error {
	return f.Load(ctx)
}

func (f *Feed) fetch(ctx context.Context) (*gofeed.Feed, error) {
	if isURL(f.location) {
		return f.parser.ParseURLWithContext(f.location, ctx)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(f.location)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return f.parser.Parse(file)
}

func (f *Feed) toNews(item *gofeed.Item) domain.News {
	news := domain.News{
		ID:      firstNonEmpty(item.GUID, item.Link, item.Title),
		Title:   f.plain(item.Title),
		Slug:    slugFromLink(item.Link),
		Excerpt: f.plain(item.Description),
		Content: f.plain(item.Content),
	}

	if len(item.Categories) > 0 {
		news.Category = strings.TrimSpace(item.Categories[0])
	}

	if len(item.Authors) > 0 && item.Authors[0] != nil {
		news.Author = item.Authors[0].Name
	} else if item.Author != nil {
		news.Author = item.Author.Name
	}

	if item.PublishedParsed != nil {
		news.PublishedAt = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		news.PublishedAt = *item.UpdatedParsed
	}

	if item.Image != nil {
		news.Image = item.Image.URL
	} else {
		for _, enc := range item.Enclosures {
			if enc != nil && strings.HasPrefix(enc.Type, "image/") {
				news.Image = enc.URL
				break
			}
		}
	}

	return news
}

// plain strips markup and collapses whitespace.
func (f *Feed) plain(s string) string {
	if s == "" {
		return ""
	}
	text := html.UnescapeString(f.policy.Sanitize(s))
	return strings.Join(strings.Fields(text), " ")
}

func isURL(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// slugFromLink returns the last path segment of link.
func slugFromLink(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Path == "" || u.Path == "/" {
		return ""
	}
	return path.Base(strings.TrimSuffix(u.Path, "/"))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
