package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/portal-search/internal/core/domain"
	"github.com/custodia-labs/portal-search/internal/core/ports/driven"
	"github.com/custodia-labs/portal-search/internal/core/ports/driving"
	"github.com/custodia-labs/portal-search/internal/logger"
)

// Ensure ItemService implements the interface.
var _ driving.ItemService = (*ItemService)(nil)

// Writers holds the writable collections. A nil writer makes its
// collection read-only.
type Writers struct {
	News      driven.ContentWriter[domain.News]
	Materials driven.ContentWriter[domain.Material]
	Ebooks    driven.ContentWriter[domain.Ebook]
	Events    driven.ContentWriter[domain.Event]
	Suppliers driven.ContentWriter[domain.Supplier]
	Foundries driven.ContentWriter[domain.Foundry]
}

// ItemService adds and removes items through the configured writers.
type ItemService struct {
	writers Writers
}

// NewItemService creates an item service.
func NewItemService(writers Writers) *ItemService {
	return &ItemService{writers: writers}
}

// itemFields lists the field names accepted by Add, per collection.
// The first entry is required.
var itemFields = map[domain.ContentType][]string{
	domain.ContentNews:     {"title", "slug", "excerpt", "content", "category", "author", "published", "image", "id"},
	domain.ContentMaterial: {"title", "description", "category", "file_url", "downloads", "published", "image", "id"},
	domain.ContentEbook:    {"title", "author", "description", "category", "price", "downloads", "published", "image", "id"},
	domain.ContentEvent:    {"title", "slug", "description", "location", "city", "state", "starts", "category", "image", "id"},
	domain.ContentSupplier: {"name", "specialty", "description", "city", "state", "category", "image", "id"},
	domain.ContentFoundry:  {"name", "specialty", "description", "city", "state", "image", "id"},
}

// Fields returns the field names accepted by Add for ct, sorted.
func (s *ItemService) Fields(ct domain.ContentType) ([]string, error) {
	names, ok := itemFields[ct]
	if !ok {
		return nil, fmt.Errorf("%q: %w", ct, domain.ErrUnsupportedType)
	}
	out := append([]string(nil), names...)
	sort.Strings(out)
	return out, nil
}

// Add builds an item of type ct from fields and stores it.
func (s *ItemService) Add(ctx context.Context, ct domain.ContentType, fields map[string]string) (string, error) {
	names, ok := itemFields[ct]
	if !ok {
		return "", fmt.Errorf("%q: %w", ct, domain.ErrUnsupportedType)
	}
	if strings.TrimSpace(fields[names[0]]) == "" {
		return "", fmt.Errorf("%s is required: %w", names[0], domain.ErrInvalidInput)
	}

	f := newFieldReader(fields, names)
	var (
		id  string
		err error
	)

	switch ct {
	case domain.ContentNews:
		item := domain.News{
			ID:          f.str("id"),
			Title:       f.str("title"),
			Slug:        f.str("slug"),
			Excerpt:     f.str("excerpt"),
			Content:     f.str("content"),
			Category:    f.str("category"),
			Author:      f.str("author"),
			PublishedAt: f.date("published"),
			Image:       f.str("image"),
		}
		id, err = save(ctx, s.writers.News, f, item, func(n domain.News) string { return n.ID })
	case domain.ContentMaterial:
		item := domain.Material{
			ID:          f.str("id"),
			Title:       f.str("title"),
			Description: f.str("description"),
			Category:    f.str("category"),
			FileURL:     f.str("file_url"),
			Downloads:   f.integer("downloads"),
			PublishedAt: f.date("published"),
			Image:       f.str("image"),
		}
		id, err = save(ctx, s.writers.Materials, f, item, func(m domain.Material) string { return m.ID })
	case domain.ContentEbook:
		item := domain.Ebook{
			ID:          f.str("id"),
			Title:       f.str("title"),
			Author:      f.str("author"),
			Description: f.str("description"),
			Category:    f.str("category"),
			Price:       f.decimal("price"),
			Downloads:   f.integer("downloads"),
			PublishedAt: f.date("published"),
			Image:       f.str("image"),
		}
		id, err = save(ctx, s.writers.Ebooks, f, item, func(e domain.Ebook) string { return e.ID })
	case domain.ContentEvent:
		item := domain.Event{
			ID:          f.str("id"),
			Title:       f.str("title"),
			Slug:        f.str("slug"),
			Description: f.str("description"),
			Location:    f.str("location"),
			City:        f.str("city"),
			State:       f.str("state"),
			StartsAt:    f.date("starts"),
			Category:    f.str("category"),
			Image:       f.str("image"),
		}
		id, err = save(ctx, s.writers.Events, f, item, func(e domain.Event) string { return e.ID })
	case domain.ContentSupplier:
		item := domain.Supplier{
			ID:          f.str("id"),
			Name:        f.str("name"),
			Specialty:   f.str("specialty"),
			Description: f.str("description"),
			City:        f.str("city"),
			State:       f.str("state"),
			Category:    f.str("category"),
			Image:       f.str("image"),
		}
		id, err = save(ctx, s.writers.Suppliers, f, item, func(sp domain.Supplier) string { return sp.ID })
	case domain.ContentFoundry:
		item := domain.Foundry{
			ID:          f.str("id"),
			Name:        f.str("name"),
			Specialty:   f.str("specialty"),
			Description: f.str("description"),
			City:        f.str("city"),
			State:       f.str("state"),
			Image:       f.str("image"),
		}
		id, err = save(ctx, s.writers.Foundries, f, item, func(fd domain.Foundry) string { return fd.ID })
	}
	if err != nil {
		return "", err
	}

	logger.Info("Added %s %s", ct, id)
	return id, nil
}

// Delete removes the item of type ct with id.
func (s *ItemService) Delete(ctx context.Context, ct domain.ContentType, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("id is required: %w", domain.ErrInvalidInput)
	}

	var err error
	switch ct {
	case domain.ContentNews:
		err = remove(ctx, s.writers.News, id)
	case domain.ContentMaterial:
		err = remove(ctx, s.writers.Materials, id)
	case domain.ContentEbook:
		err = remove(ctx, s.writers.Ebooks, id)
	case domain.ContentEvent:
		err = remove(ctx, s.writers.Events, id)
	case domain.ContentSupplier:
		err = remove(ctx, s.writers.Suppliers, id)
	case domain.ContentFoundry:
		err = remove(ctx, s.writers.Foundries, id)
	default:
		return fmt.Errorf("%q: %w", ct, domain.ErrUnsupportedType)
	}
	if err != nil {
		return fmt.Errorf("deleting %s %s: %w", ct, id, err)
	}

	logger.Info("Deleted %s %s", ct, id)
	return nil
}

// errReadOnly is returned when a collection has no writer.
var errReadOnly = errors.New("collection is read-only")

func save[T any](
	ctx context.Context, w driven.ContentWriter[T], f *fieldReader, item T, id func(T) string,
) (string, error) {
	if err := f.err(); err != nil {
		return "", err
	}
	if w == nil {
		return "", errReadOnly
	}
	stored, err := w.Save(ctx, item)
	if err != nil {
		return "", err
	}
	return id(stored), nil
}

func remove[T any](ctx context.Context, w driven.ContentWriter[T], id string) error {
	if w == nil {
		return errReadOnly
	}
	return w.Delete(ctx, id)
}

// fieldReader reads typed values out of user-supplied fields and collects
// every problem so they are reported together.
type fieldReader struct {
	values map[string]string
	errs   []error
}

func newFieldReader(values map[string]string, allowed []string) *fieldReader {
	f := &fieldReader{values: values}

	known := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		known[name] = true
	}
	unknown := make([]string, 0)
	for name := range values {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		f.errs = append(f.errs, fmt.Errorf("unknown field %q: %w", name, domain.ErrInvalidInput))
	}
	return f
}

func (f *fieldReader) str(name string) string {
	return strings.TrimSpace(f.values[name])
}

func (f *fieldReader) integer(name string) *int {
	v := f.str(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		f.errs = append(f.errs, fmt.Errorf("%s: %q is not a number: %w", name, v, domain.ErrInvalidInput))
		return nil
	}
	return &n
}

func (f *fieldReader) decimal(name string) *float64 {
	v := strings.Replace(f.str(name), ",", ".", 1)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		f.errs = append(f.errs, fmt.Errorf("%s: %q is not a number: %w", name, v, domain.ErrInvalidInput))
		return nil
	}
	return &n
}

// date accepts a date (2006-01-02) or an RFC 3339 timestamp.
func (f *fieldReader) date(name string) time.Time {
	v := f.str(name)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	f.errs = append(f.errs, fmt.Errorf("%s: %q is not a date: %w", name, v, domain.ErrInvalidInput))
	return time.Time{}
}

func (f *fieldReader) err() error {
	return errors.Join(f.errs...)
}
