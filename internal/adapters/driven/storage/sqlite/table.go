package sqlite

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/portal-search/internal/core/domain"
	"github.com/custodia-labs/portal-search/internal/core/ports/driven"
	"github.com/custodia-labs/portal-search/internal/logger"
)

// Ensure Table implements the interfaces.
var (
	_ driven.NewsSource                     = (*Table[domain.News])(nil)
	_ driven.Refresher                      = (*Table[domain.News])(nil)
	_ driven.ContentWriter[domain.Supplier] = (*Table[domain.Supplier])(nil)
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// schema maps one collection onto its table. columns[0] is always "id".
type schema[T any] struct {
	contentType domain.ContentType
	table       string
	columns     []string
	id          func(*T) *string
	values      func(T) []any
	scan        func(scanner) (T, error)
}

// Table is a content source backed by one SQLite table. It serves
// snapshots from memory and reloads them after every write.
type Table[T any] struct {
	store  *Store
	schema schema[T]

	mu        sync.RWMutex
	items     []T
	listeners map[int]func()
	nextID    int
}

func newTable[T any](store *Store, sc schema[T]) *Table[T] {
	return &Table[T]{
		store:     store,
		schema:    sc,
		listeners: make(map[int]func()),
	}
}

// Name identifies the table in logs and refresh errors.
func (t *Table[T]) Name() string {
	return "sqlite:" + t.schema.table
}

// Snapshot returns the rows loaded by the last read, in insertion order.
func (t *Table[T]) Snapshot() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, len(t.items))
	copy(out, t.items)
	return out
}

// OnChange registers fn to run after the snapshot is reloaded.
func (t *Table[T]) OnChange(fn func()) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	id := t.nextID
	t.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			delete(t.listeners, id)
		})
	}
}

// Refresh re-reads the table, picking up rows written by other processes.
func (t *Table[T]) Refresh(ctx context.Context) error {
	return t.reload(ctx)
}

// Save inserts or updates item and returns it. An item without an ID is
// assigned a new UUID.
func (t *Table[T]) Save(ctx context.Context, item T) (T, error) {
	id := t.schema.id(&item)
	if strings.TrimSpace(*id) == "" {
		*id = uuid.New().String()
	}

	cols := t.schema.columns
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	updates := make([]string, 0, len(cols)-1)
	for _, c := range cols[1:] {
		updates = append(updates, c+" = excluded."+c)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		t.schema.table, strings.Join(cols, ", "), placeholders, strings.Join(updates, ", "),
	)

	if _, err := t.store.db.ExecContext(ctx, query, t.schema.values(item)...); err != nil {
		return item, fmt.Errorf("saving %s: %w", t.schema.contentType, err)
	}

	logger.Debug("sqlite: saved %s %s", t.schema.contentType, *id)
	return item, t.reload(ctx)
}

// Delete removes the row with id. Returns domain.ErrNotFound when no row
// matches.
func (t *Table[T]) Delete(ctx context.Context, id string) error {
	res, err := t.store.db.ExecContext(ctx, "DELETE FROM "+t.schema.table+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", t.schema.contentType, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return t.reload(ctx)
}

// Get returns the row with id.
func (t *Table[T]) Get(ctx context.Context, id string) (*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", strings.Join(t.schema.columns, ", "), t.schema.table)
	item, err := t.schema.scan(t.store.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (t *Table[T]) load() error {
	return t.reload(context.Background())
}

// reload replaces the snapshot and notifies listeners outside the lock.
// Listeners are not notified when the rows match the current snapshot.
func (t *Table[T]) reload(ctx context.Context) error {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid", strings.Join(t.schema.columns, ", "), t.schema.table)
	rows, err := t.store.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("querying %s: %w", t.schema.table, err)
	}
	defer rows.Close()

	var items []T //nolint:prealloc // size unknown from query
	for rows.Next() {
		item, err := t.schema.scan(rows)
		if err != nil {
			return fmt.Errorf("scanning %s: %w", t.schema.table, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating %s: %w", t.schema.table, err)
	}

	t.mu.Lock()
	if len(items) == len(t.items) && (len(items) == 0 || reflect.DeepEqual(items, t.items)) {
		t.mu.Unlock()
		return nil
	}
	t.items = items
	fns := make([]func(), 0, len(t.listeners))
	for _, fn := range t.listeners {
		fns = append(fns, fn)
	}
	t.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return nil
}
