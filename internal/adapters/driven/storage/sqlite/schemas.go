package sqlite

import (
	"database/sql"

	"github.com/custodia-labs/portal-search/internal/core/domain"
)

var newsSchema = schema[domain.News]{
	contentType: domain.ContentNews,
	table:       "news",
	columns:     []string{"id", "title", "slug", "excerpt", "content", "category", "author", "published_at", "image"},
	id:          func(n *domain.News) *string { return &n.ID },
	values: func(n domain.News) []any {
		return []any{n.ID, n.Title, nullString(n.Slug), nullString(n.Excerpt), nullString(n.Content),
			nullString(n.Category), nullString(n.Author), formatNullableTime(n.PublishedAt), nullString(n.Image)}
	},
	scan: func(sc scanner) (domain.News, error) {
		var n domain.News
		var slug, excerpt, content, category, author, published, image sql.NullString
		err := sc.Scan(&n.ID, &n.Title, &slug, &excerpt, &content, &category, &author, &published, &image)
		n.Slug, n.Excerpt, n.Content = slug.String, excerpt.String, content.String
		n.Category, n.Author, n.Image = category.String, author.String, image.String
		n.PublishedAt = parseNullableTime(published)
		return n, err
	},
}

var materialSchema = schema[domain.Material]{
	contentType: domain.ContentMaterial,
	table:       "materials",
	columns:     []string{"id", "title", "description", "category", "file_url", "downloads", "published_at", "image"},
	id:          func(m *domain.Material) *string { return &m.ID },
	values: func(m domain.Material) []any {
		return []any{m.ID, m.Title, nullString(m.Description), nullString(m.Category), nullString(m.FileURL),
			nullInt(m.Downloads), formatNullableTime(m.PublishedAt), nullString(m.Image)}
	},
	scan: func(sc scanner) (domain.Material, error) {
		var m domain.Material
		var description, category, fileURL, published, image sql.NullString
		var downloads sql.NullInt64
		err := sc.Scan(&m.ID, &m.Title, &description, &category, &fileURL, &downloads, &published, &image)
		m.Description, m.Category, m.FileURL, m.Image = description.String, category.String, fileURL.String, image.String
		m.Downloads = intPtr(downloads)
		m.PublishedAt = parseNullableTime(published)
		return m, err
	},
}

var ebookSchema = schema[domain.Ebook]{
	contentType: domain.ContentEbook,
	table:       "ebooks",
	columns:     []string{"id", "title", "author", "description", "category", "price", "downloads", "published_at", "image"},
	id:          func(e *domain.Ebook) *string { return &e.ID },
	values: func(e domain.Ebook) []any {
		return []any{e.ID, e.Title, nullString(e.Author), nullString(e.Description), nullString(e.Category),
			nullFloat(e.Price), nullInt(e.Downloads), formatNullableTime(e.PublishedAt), nullString(e.Image)}
	},
	scan: func(sc scanner) (domain.Ebook, error) {
		var e domain.Ebook
		var author, description, category, published, image sql.NullString
		var price sql.NullFloat64
		var downloads sql.NullInt64
		err := sc.Scan(&e.ID, &e.Title, &author, &description, &category, &price, &downloads, &published, &image)
		e.Author, e.Description, e.Category, e.Image = author.String, description.String, category.String, image.String
		e.Price = floatPtr(price)
		e.Downloads = intPtr(downloads)
		e.PublishedAt = parseNullableTime(published)
		return e, err
	},
}

var eventSchema = schema[domain.Event]{
	contentType: domain.ContentEvent,
	table:       "events",
	columns:     []string{"id", "title", "slug", "description", "location", "city", "state", "starts_at", "category", "image"},
	id:          func(e *domain.Event) *string { return &e.ID },
	values: func(e domain.Event) []any {
		return []any{e.ID, e.Title, nullString(e.Slug), nullString(e.Description), nullString(e.Location),
			nullString(e.City), nullString(e.State), formatNullableTime(e.StartsAt), nullString(e.Category), nullString(e.Image)}
	},
	scan: func(sc scanner) (domain.Event, error) {
		var e domain.Event
		var slug, description, location, city, state, startsAt, category, image sql.NullString
		err := sc.Scan(&e.ID, &e.Title, &slug, &description, &location, &city, &state, &startsAt, &category, &image)
		e.Slug, e.Description, e.Location = slug.String, description.String, location.String
		e.City, e.State, e.Category, e.Image = city.String, state.String, category.String, image.String
		e.StartsAt = parseNullableTime(startsAt)
		return e, err
	},
}

var supplierSchema = schema[domain.Supplier]{
	contentType: domain.ContentSupplier,
	table:       "suppliers",
	columns:     []string{"id", "name", "specialty", "description", "city", "state", "category", "image"},
	id:          func(s *domain.Supplier) *string { return &s.ID },
	values: func(s domain.Supplier) []any {
		return []any{s.ID, s.Name, nullString(s.Specialty), nullString(s.Description),
			nullString(s.City), nullString(s.State), nullString(s.Category), nullString(s.Image)}
	},
	scan: func(sc scanner) (domain.Supplier, error) {
		var s domain.Supplier
		var specialty, description, city, state, category, image sql.NullString
		err := sc.Scan(&s.ID, &s.Name, &specialty, &description, &city, &state, &category, &image)
		s.Specialty, s.Description, s.City = specialty.String, description.String, city.String
		s.State, s.Category, s.Image = state.String, category.String, image.String
		return s, err
	},
}

var foundrySchema = schema[domain.Foundry]{
	contentType: domain.ContentFoundry,
	table:       "foundries",
	columns:     []string{"id", "name", "specialty", "description", "city", "state", "image"},
	id:          func(f *domain.Foundry) *string { return &f.ID },
	values: func(f domain.Foundry) []any {
		return []any{f.ID, f.Name, nullString(f.Specialty), nullString(f.Description),
			nullString(f.City), nullString(f.State), nullString(f.Image)}
	},
	scan: func(sc scanner) (domain.Foundry, error) {
		var f domain.Foundry
		var specialty, description, city, state, image sql.NullString
		err := sc.Scan(&f.ID, &f.Name, &specialty, &description, &city, &state, &image)
		f.Specialty, f.Description, f.City = specialty.String, description.String, city.String
		f.State, f.Image = state.String, image.String
		return f, err
	},
}
