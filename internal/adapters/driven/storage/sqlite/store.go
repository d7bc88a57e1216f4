package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/ragscholar/scholar-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/ragscholar/scholar-cli/internal/core/domain"
	"github.com/ragscholar/scholar-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to the
// local store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.scholar/data/local.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".scholar", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "local.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ClassStore returns a ClassStore interface backed by this store.
func (s *Store) ClassStore() driven.ClassStore {
	return &classStore{store: s}
}

// TranscriptCache returns a TranscriptCache interface backed by this store.
func (s *Store) TranscriptCache() driven.TranscriptCache {
	return &transcriptCache{store: s}
}

// KVStore returns a KVStore interface backed by this store.
func (s *Store) KVStore() driven.KVStore {
	return &kvStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Class Store ====================

// classStore implements driven.ClassStore.
type classStore struct {
	store *Store
}

var _ driven.ClassStore = (*classStore)(nil)

// Save stores or updates a class.
func (s *classStore) Save(ctx context.Context, class domain.Class) error {
	docsJSON, err := json.Marshal(class.Documents)
	if err != nil {
		return fmt.Errorf("marshalling documents: %w", err)
	}

	if class.CreatedAt.IsZero() {
		class.CreatedAt = time.Now().UTC()
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO classes (id, name, subject, description, documents, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			subject = excluded.subject,
			description = excluded.description,
			documents = excluded.documents
	`, class.ID, class.Name, class.Subject.String(), class.Description,
		string(docsJSON), class.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving class: %w", err)
	}
	return nil
}

// Get retrieves a class by ID.
func (s *classStore) Get(ctx context.Context, id string) (*domain.Class, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, subject, description, documents, created_at
		FROM classes WHERE id = ?
	`, id)

	class, err := scanClass(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return class, nil
}

// Delete removes a class.
func (s *classStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM classes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting class: %w", err)
	}
	return nil
}

// List returns all classes ordered by creation time.
func (s *classStore) List(ctx context.Context) ([]domain.Class, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, subject, description, documents, created_at
		FROM classes ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("querying classes: %w", err)
	}
	defer rows.Close()

	var classes []domain.Class //nolint:prealloc // size unknown from query
	for rows.Next() {
		class, err := scanClass(rows.Scan)
		if err != nil {
			return nil, err
		}
		classes = append(classes, *class)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating classes: %w", err)
	}

	return classes, nil
}

// scanClass reads one class row via the given scan function.
func scanClass(scan func(...any) error) (*domain.Class, error) {
	var class domain.Class
	var subject, docsJSON string
	var createdAt sql.NullTime
	if err := scan(&class.ID, &class.Name, &subject, &class.Description,
		&docsJSON, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning class: %w", err)
	}

	class.Subject = domain.Subject(subject)
	if err := json.Unmarshal([]byte(docsJSON), &class.Documents); err != nil {
		return nil, fmt.Errorf("unmarshaling documents: %w", err)
	}
	if createdAt.Valid {
		class.CreatedAt = createdAt.Time
	}
	return &class, nil
}

// ==================== Transcript Cache ====================

// transcriptCache implements driven.TranscriptCache.
type transcriptCache struct {
	store *Store
}

var _ driven.TranscriptCache = (*transcriptCache)(nil)

// Put stores the transcript for a key, replacing any prior entry.
func (c *transcriptCache) Put(ctx context.Context, scope driven.TranscriptScope, key string, t domain.Transcript) error {
	messagesJSON, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshalling transcript: %w", err)
	}

	_, err = c.store.db.ExecContext(ctx, `
		INSERT INTO transcripts (scope, key, messages, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(scope, key) DO UPDATE SET
			messages = excluded.messages,
			updated_at = excluded.updated_at
	`, string(scope), key, string(messagesJSON), time.Now().UTC())

	if err != nil {
		return fmt.Errorf("saving transcript: %w", err)
	}
	return nil
}

// Get retrieves the cached transcript for a key. A miss is an empty
// transcript, not an error.
func (c *transcriptCache) Get(ctx context.Context, scope driven.TranscriptScope, key string) (domain.Transcript, error) {
	row := c.store.db.QueryRowContext(ctx, `
		SELECT messages FROM transcripts WHERE scope = ? AND key = ?
	`, string(scope), key)

	var messagesJSON string
	if err := row.Scan(&messagesJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning transcript: %w", err)
	}

	var t domain.Transcript
	if err := json.Unmarshal([]byte(messagesJSON), &t); err != nil {
		return nil, fmt.Errorf("unmarshaling transcript: %w", err)
	}
	return t, nil
}

// Delete removes the cache entry for a key.
func (c *transcriptCache) Delete(ctx context.Context, scope driven.TranscriptScope, key string) error {
	_, err := c.store.db.ExecContext(ctx,
		"DELETE FROM transcripts WHERE scope = ? AND key = ?", string(scope), key)
	if err != nil {
		return fmt.Errorf("deleting transcript: %w", err)
	}
	return nil
}

// ==================== KV Store ====================

// kvStore implements driven.KVStore.
type kvStore struct {
	store *Store
}

var _ driven.KVStore = (*kvStore)(nil)

// Put stores a value under a key.
func (s *kvStore) Put(ctx context.Context, key, value string) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("saving kv entry: %w", err)
	}
	return nil
}

// Get retrieves the value for a key, empty string if absent.
func (s *kvStore) Get(ctx context.Context, key string) (string, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key)

	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("scanning kv entry: %w", err)
	}
	return value, nil
}

// Delete removes a key.
func (s *kvStore) Delete(ctx context.Context, key string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("deleting kv entry: %w", err)
	}
	return nil
}
