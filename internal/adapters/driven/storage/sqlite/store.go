package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/jnphilipp/papis-search-provider/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/jnphilipp/papis-search-provider/internal/core/domain"
	"github.com/jnphilipp/papis-search-provider/internal/core/ports/driven"
	"github.com/jnphilipp/papis-search-provider/internal/logger"
)

// DatabaseFile is the name of the index database inside the index directory.
const DatabaseFile = "library.db"

// Ensure Store implements the interface.
var _ driven.DocumentIndex = (*Store)(nil)

// Store is a SQLite-backed document index.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite index in the specified directory.
// If dir is empty, defaults to the user cache directory.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		cache, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("getting cache directory: %w", err)
		}
		dir = filepath.Join(cache, "papis-search-provider")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dir, DatabaseFile)

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	logger.Debug("Opened index %s", dbPath)
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

// All returns every indexed document ordered by folder path.
func (s *Store) All(ctx context.Context) ([]domain.Document, error) {
	return s.query(ctx, selectDocuments+" ORDER BY path")
}

// Search returns the documents matching a free-text query.
// Plain terms are narrowed in SQL, the full query is then applied in Go.
func (s *Store) Search(ctx context.Context, query string) ([]domain.Document, error) {
	q := domain.ParseQuery(query)

	stmt := selectDocuments
	var args []any
	var where []string
	for _, term := range q.PlainTerms() {
		where = append(where, `match_text LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(term)+"%")
	}
	if len(where) > 0 {
		stmt += " WHERE " + strings.Join(where, " AND ")
	}
	stmt += " ORDER BY path"

	docs, err := s.query(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	return filterDocs(docs, q.Matches), nil
}

// Filter returns the documents whose field contains value.
// papis_id is compared exactly.
func (s *Store) Filter(ctx context.Context, field, value string) ([]domain.Document, error) {
	if strings.EqualFold(field, domain.FieldPapisID) {
		return s.query(ctx, selectDocuments+" WHERE papis_id = ? ORDER BY path", value)
	}

	docs, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	q := domain.Query{Terms: []domain.QueryTerm{{Field: field, Value: value}}}
	return filterDocs(docs, q.Matches), nil
}

// Replace swaps the indexed documents for docs in one transaction.
// Documents whose fields cannot be encoded are skipped with a warning.
func (s *Store) Replace(ctx context.Context, docs []domain.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM documents"); err != nil {
		return fmt.Errorf("clearing documents: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (path, papis_id, title, abstract, files, fields, match_text, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			papis_id = excluded.papis_id,
			title = excluded.title,
			abstract = excluded.abstract,
			files = excluded.files,
			fields = excluded.fields,
			match_text = excluded.match_text,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i := range docs {
		doc := &docs[i]

		filesJSON, err := json.Marshal(nonNil(doc.Files))
		if err != nil {
			return fmt.Errorf("marshalling files: %w", err)
		}
		fieldsJSON, err := json.Marshal(doc.Fields)
		if err != nil {
			logger.Warn("Skipping document %s: marshalling fields: %v", doc.Path, err)
			continue
		}

		if _, err := stmt.ExecContext(ctx, doc.Path, doc.ID, doc.Title, nullString(doc.Abstract),
			string(filesJSON), string(fieldsJSON), doc.MatchText(), nullTime(doc.UpdatedAt)); err != nil {
			return fmt.Errorf("saving document %s: %w", doc.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

const selectDocuments = `
	SELECT path, papis_id, title, abstract, files, fields, updated_at
	FROM documents`

func (s *Store) query(ctx context.Context, stmt string, args ...any) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		var doc domain.Document
		var abstract sql.NullString
		var filesJSON, fieldsJSON string
		var updatedAt sql.NullTime
		if err := rows.Scan(&doc.Path, &doc.ID, &doc.Title, &abstract,
			&filesJSON, &fieldsJSON, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}

		if err := json.Unmarshal([]byte(filesJSON), &doc.Files); err != nil {
			return nil, fmt.Errorf("unmarshaling files: %w", err)
		}
		if err := json.Unmarshal([]byte(fieldsJSON), &doc.Fields); err != nil {
			return nil, fmt.Errorf("unmarshaling fields: %w", err)
		}
		if abstract.Valid {
			doc.Abstract = &abstract.String
		}
		if updatedAt.Valid {
			doc.UpdatedAt = updatedAt.Time
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
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

func filterDocs(docs []domain.Document, match func(*domain.Document) bool) []domain.Document {
	var result []domain.Document
	for i := range docs {
		if match(&docs[i]) {
			result = append(result, docs[i])
		}
	}
	return result
}

// escapeLike escapes LIKE wildcards in s.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
