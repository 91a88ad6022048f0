package catalog

import (
	"time"

	"github.com/custodia-labs/portal-search/internal/core/domain"
)

// document is the on-disk layout of a catalogue file.
type document struct {
	News      []newsRecord     `toml:"news"`
	Materials []materialRecord `toml:"materials"`
	Ebooks    []ebookRecord    `toml:"ebooks"`
	Events    []eventRecord    `toml:"events"`
	Suppliers []supplierRecord `toml:"suppliers"`
	Foundries []foundryRecord  `toml:"foundries"`
}

type newsRecord struct {
	ID          string    `toml:"id"`
	Title       string    `toml:"title"`
	Slug        string    `toml:"slug"`
	Excerpt     string    `toml:"excerpt"`
	Content     string    `toml:"content"`
	Category    string    `toml:"category"`
	Author      string    `toml:"author"`
	PublishedAt time.Time `toml:"published_at"`
	Image       string    `toml:"image"`
}

type materialRecord struct {
	ID          string    `toml:"id"`
	Title       string    `toml:"title"`
	Description string    `toml:"description"`
	Category    string    `toml:"category"`
	FileURL     string    `toml:"file_url"`
	Downloads   *int      `toml:"downloads"`
	PublishedAt time.Time `toml:"published_at"`
	Image       string    `toml:"image"`
}

type ebookRecord struct {
	ID          string    `toml:"id"`
	Title       string    `toml:"title"`
	Author      string    `toml:"author"`
	Description string    `toml:"description"`
	Category    string    `toml:"category"`
	Price       *float64  `toml:"price"`
	Downloads   *int      `toml:"downloads"`
	PublishedAt time.Time `toml:"published_at"`
	Image       string    `toml:"image"`
}

type eventRecord struct {
	ID          string    `toml:"id"`
	Title       string    `toml:"title"`
	Slug        string    `toml:"slug"`
	Description string    `toml:"description"`
	Location    string    `toml:"location"`
	City        string    `toml:"city"`
	State       string    `toml:"state"`
	StartsAt    time.Time `toml:"starts_at"`
	Category    string    `toml:"category"`
	Image       string    `toml:"image"`
}

type supplierRecord struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Specialty   string `toml:"specialty"`
	Description string `toml:"description"`
	City        string `toml:"city"`
	State       string `toml:"state"`
	Category    string `toml:"category"`
	Image       string `toml:"image"`
}

type foundryRecord struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Specialty   string `toml:"specialty"`
	Description string `toml:"description"`
	City        string `toml:"city"`
	State       string `toml:"state"`
	Image       string `toml:"image"`
}

// snapshots converts the decoded document into domain items. Records keep
// their file order.
func (d *document) snapshots() domain.Snapshots {
	return domain.Snapshots{
		News:      convert(d.News, func(r newsRecord) domain.News { return domain.News(r) }),
		Materials: convert(d.Materials, func(r materialRecord) domain.Material { return domain.Material(r) }),
		Ebooks:    convert(d.Ebooks, func(r ebookRecord) domain.Ebook { return domain.Ebook(r) }),
		Events:    convert(d.Events, func(r eventRecord) domain.Event { return domain.Event(r) }),
		Suppliers: convert(d.Suppliers, func(r supplierRecord) domain.Supplier { return domain.Supplier(r) }),
		Foundries: convert(d.Foundries, func(r foundryRecord) domain.Foundry { return domain.Foundry(r) }),
	}
}

func convert[R, T any](records []R, fn func(R) T) []T {
	if len(records) == 0 {
		return nil
	}
	out := make([]T, len(records))
	for i := range records {
		out[i] = fn(records[i])
	}
	return out
}
