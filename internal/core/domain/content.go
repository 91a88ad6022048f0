package domain

import (
	"strings"
	"time"
)

// ContentType identifies which portal collection an item or result belongs to.
type ContentType string

// The six portal collections.
const (
	ContentNews     ContentType = "news"
	ContentMaterial ContentType = "material"
	ContentEbook    ContentType = "ebook"
	ContentEvent    ContentType = "event"
	ContentSupplier ContentType = "supplier"
	ContentFoundry  ContentType = "foundry"
)

// ContentTypes returns every collection in result priority order.
// Matches are grouped and concatenated in exactly this order.
func ContentTypes() []ContentType {
	return []ContentType{
		ContentNews,
		ContentMaterial,
		ContentEbook,
		ContentEvent,
		ContentSupplier,
		ContentFoundry,
	}
}

// IsValid returns true if the content type is one of the six collections.
func (t ContentType) IsValid() bool {
	switch t {
	case ContentNews, ContentMaterial, ContentEbook, ContentEvent, ContentSupplier, ContentFoundry:
		return true
	default:
		return false
	}
}

// Priority returns the position of the type in the result ordering,
// or -1 for an unknown type.
func (t ContentType) Priority() int {
	for i, ct := range ContentTypes() {
		if ct == t {
			return i
		}
	}
	return -1
}

// String returns the string representation.
func (t ContentType) String() string {
	return string(t)
}

// Label returns the display label used by the CLI and TUI.
func (t ContentType) Label() string {
	switch t {
	case ContentNews:
		return "Notícia"
	case ContentMaterial:
		return "Material"
	case ContentEbook:
		return "E-book"
	case ContentEvent:
		return "Evento"
	case ContentSupplier:
		return "Fornecedor"
	case ContentFoundry:
		return "Fundição"
	default:
		return unknownDescription
	}
}

// ParseContentType converts a user-supplied name into a ContentType.
// Plural forms ("events", "foundries") are accepted.
func ParseContentType(s string) (ContentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "news":
		return ContentNews, nil
	case "material", "materials":
		return ContentMaterial, nil
	case "ebook", "ebooks":
		return ContentEbook, nil
	case "event", "events":
		return ContentEvent, nil
	case "supplier", "suppliers":
		return ContentSupplier, nil
	case "foundry", "foundries":
		return ContentFoundry, nil
	default:
		return "", ErrUnsupportedType
	}
}

// News is an article from the news collection.
type News struct {
	ID          string
	Title       string
	Slug        string
	Excerpt     string
	Content     string
	Category    string
	Author      string
	PublishedAt time.Time
	Image       string
}

// Material is a downloadable technical material.
type Material struct {
	ID          string
	Title       string
	Description string
	Category    string
	FileURL     string

	// Downloads is nil when the source does not track a count.
	Downloads   *int
	PublishedAt time.Time
	Image       string
}

// Ebook is an entry in the e-book library.
type Ebook struct {
	ID          string
	Title       string
	Author      string
	Description string
	Category    string

	// Price is nil for books that never had a price set.
	Price       *float64
	Downloads   *int
	PublishedAt time.Time
	Image       string
}

// Event is a scheduled industry event.
type Event struct {
	ID          string
	Title       string
	Slug        string
	Description string

	// Location is the venue as typed by the editor; City and State are
	// the structured address used when Location is empty.
	Location string
	City     string
	State    string
	StartsAt time.Time
	Category string
	Image    string
}

// Supplier is a company in the supplier directory.
type Supplier struct {
	ID          string
	Name        string
	Specialty   string
	Description string
	City        string
	State       string
	Category    string
	Image       string
}

// Foundry is a company in the foundry directory.
type Foundry struct {
	ID          string
	Name        string
	Specialty   string
	Description string
	City        string
	State       string
	Image       string
}

// Snapshots holds one point-in-time view of every collection.
// A nil slice means the source is empty or unavailable.
type Snapshots struct {
	News      []News
	Materials []Material
	Ebooks    []Ebook
	Events    []Event
	Suppliers []Supplier
	Foundries []Foundry
}

// Len returns the number of items across all collections.
func (s Snapshots) Len() int {
	return len(s.News) + len(s.Materials) + len(s.Ebooks) +
		len(s.Events) + len(s.Suppliers) + len(s.Foundries)
}

// Counts returns the number of items per collection.
func (s Snapshots) Counts() map[ContentType]int {
	return map[ContentType]int{
		ContentNews:     len(s.News),
		ContentMaterial: len(s.Materials),
		ContentEbook:    len(s.Ebooks),
		ContentEvent:    len(s.Events),
		ContentSupplier: len(s.Suppliers),
		ContentFoundry:  len(s.Foundries),
	}
}
