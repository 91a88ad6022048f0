package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/portal-search/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/portal-search/internal/core/domain"
	"github.com/custodia-labs/portal-search/internal/core/ports/driven"
	"github.com/custodia-labs/portal-search/internal/logger"
)

// dbFile is the database file name inside the data directory.
const dbFile = "portal.db"

// DefaultPollInterval is how often Watch checks for writes made by other
// processes.
const DefaultPollInterval = time.Second

// Store owns the database connection and the six collection tables.
type Store struct {
	db   *sql.DB
	path string

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup

	news      *Table[domain.News]
	materials *Table[domain.Material]
	ebooks    *Table[domain.Ebook]
	events    *Table[domain.Event]
	suppliers *Table[domain.Supplier]
	foundries *Table[domain.Foundry]
}

// NewStore opens (creating if needed) the database in dataDir, applies
// migrations and loads every collection.
// If dataDir is empty, defaults to ~/.portal-search/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".portal-search", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath, done: make(chan struct{})}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	s.news = newTable(s, newsSchema)
	s.materials = newTable(s, materialSchema)
	s.ebooks = newTable(s, ebookSchema)
	s.events = newTable(s, eventSchema)
	s.suppliers = newTable(s, supplierSchema)
	s.foundries = newTable(s, foundrySchema)

	for _, t := range s.tables() {
		if err := t.load(); err != nil {
			db.Close()
			return nil, fmt.Errorf("loading %s: %w", t.Name(), err)
		}
	}

	return s, nil
}

// Close stops Watch and closes the database connection.
func (s *Store) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	s.wg.Wait()
	return s.db.Close()
}

// Watch polls the database for commits made through other connections,
// such as another portal-search process, and reloads every table when one
// is seen. Tables whose rows did not change do not notify. Polling stops
// when ctx is cancelled or the store is closed.
func (s *Store) Watch(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	// data_version is per connection, so it must be read on the same one.
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("opening watch connection: %w", err)
	}
	last, err := dataVersion(ctx, conn)
	if err != nil {
		conn.Close()
		return err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer conn.Close()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.done:
				return
			case <-ticker.C:
			}

			version, err := dataVersion(ctx, conn)
			if err != nil {
				logger.Debug("sqlite watch: %v", err)
				continue
			}
			if version == last {
				continue
			}
			last = version

			for _, t := range s.tables() {
				if err := t.Refresh(ctx); err != nil {
					logger.Warn("reloading %s: %v", t.Name(), err)
				}
			}
		}
	}()

	return nil
}

func dataVersion(ctx context.Context, conn *sql.Conn) (int64, error) {
	var v int64
	if err := conn.QueryRowContext(ctx, "PRAGMA data_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("reading data_version: %w", err)
	}
	return v, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// News returns the news table.
func (s *Store) News() *Table[domain.News] { return s.news }

// Materials returns the technical materials table.
func (s *Store) Materials() *Table[domain.Material] { return s.materials }

// Ebooks returns the ebooks table.
func (s *Store) Ebooks() *Table[domain.Ebook] { return s.ebooks }

// Events returns the events table.
func (s *Store) Events() *Table[domain.Event] { return s.events }

// Suppliers returns the suppliers table.
func (s *Store) Suppliers() *Table[domain.Supplier] { return s.suppliers }

// Foundries returns the foundries table.
func (s *Store) Foundries() *Table[domain.Foundry] { return s.foundries }

// Refreshers returns every table as a driven.Refresher.
func (s *Store) Refreshers() []driven.Refresher {
	tables := s.tables()
	out := make([]driven.Refresher, len(tables))
	for i, t := range tables {
		out[i] = t
	}
	return out
}

// SchedulerStore returns a SchedulerStore backed by this store.
func (s *Store) SchedulerStore() driven.SchedulerStore {
	return &schedulerStore{db: s.db}
}

// loader is the part of Table that NewStore and Refreshers need.
type loader interface {
	driven.Refresher
	load() error
}

func (s *Store) tables() []loader {
	return []loader{s.news, s.materials, s.ebooks, s.events, s.suppliers, s.foundries}
}

// migrate runs all pending migrations and records their versions.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
