package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// executor defines an interface for executing SQL queries, compatible with *sql.DB and *sql.Tx.
type executor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

// DB wraps sql.DB with the result cache methods
type DB struct {
	*sql.DB
	verbose bool
}

// Entry records whether a file, at a given content hash, was already
// trimmed under a given configuration.
type Entry struct {
	Path        string
	Config      string
	Hash        string
	Clean       bool
	LastScanned time.Time
}

// New creates a new database connection and initializes the schema
func New(dbPath string, verbose bool) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database at %s: %w", dbPath, err)
	}

	dbWrapper := &DB{
		DB:      db,
		verbose: verbose,
	}

	if err := dbWrapper.createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing database schema: %w", err)
	}

	return dbWrapper, nil
}

// createTables creates the cache table using the provided executor.
func (db *DB) createTables(exec executor) error {
	if db.verbose {
		log.Println("Ensuring table files exists...")
	}
	query := `
		CREATE TABLE IF NOT EXISTS files (
			path TEXT NOT NULL,
			config TEXT NOT NULL,
			hash TEXT NOT NULL,
			clean INTEGER NOT NULL,
			last_scanned TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (path, config)
		);
		CREATE INDEX IF NOT EXISTS idx_files_config_clean ON files (config, clean);
	`
	if _, err := exec.Exec(query); err != nil {
		return fmt.Errorf("creating files table: %w", err)
	}
	return nil
}

// GetEntry retrieves the cached entry for a file under a configuration.
// The boolean is false when nothing is stored.
func (db *DB) GetEntry(filePath, config string) (Entry, bool, error) {
	entry := Entry{Path: filePath, Config: config}
	err := db.QueryRow(
		"SELECT hash, clean, last_scanned FROM files WHERE path = ? AND config = ?",
		filePath, config,
	).Scan(&entry.Hash, &entry.Clean, &entry.LastScanned)
	if err != nil {
		if err == sql.ErrNoRows {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("querying cache entry for %s: %w", filePath, err)
	}
	return entry, true, nil
}

// UpsertEntry inserts or replaces the cache entry for e.Path and e.Config
func (db *DB) UpsertEntry(e Entry) error {
	if db.verbose {
		log.Printf("Upserting cache entry for: %s (clean: %t)", e.Path, e.Clean)
	}

	_, err := db.Exec(`
		INSERT INTO files (path, config, hash, clean, last_scanned)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (path, config) DO UPDATE SET
			hash = excluded.hash,
			clean = excluded.clean,
			last_scanned = excluded.last_scanned
	`, e.Path, e.Config, e.Hash, e.Clean)
	if err != nil {
		return fmt.Errorf("upserting cache entry for %s: %w", e.Path, err)
	}
	return nil
}

// ListDirty returns the paths recorded as not trimmed under config
func (db *DB) ListDirty(config string) ([]string, error) {
	rows, err := db.Query("SELECT path FROM files WHERE config = ? AND clean = 0 ORDER BY path", config)
	if err != nil {
		return nil, fmt.Errorf("listing dirty files: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("scanning dirty file row: %w", err)
		}
		paths = append(paths, path)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dirty files: %w", err)
	}
	return paths, nil
}

// Forget removes every entry for a file, whatever the configuration
func (db *DB) Forget(filePath string) error {
	if _, err := db.Exec("DELETE FROM files WHERE path = ?", filePath); err != nil {
		return fmt.Errorf("deleting cache entries for %s: %w", filePath, err)
	}
	return nil
}

// Reset drops and recreates the cache table, returning how many entries were removed
func (db *DB) Reset() (int, error) {
	if db.verbose {
		log.Println("Resetting cache...")
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() // Rollback if commit is not successful

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM files").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting cache entries: %w", err)
	}

	if _, err := tx.Exec("DROP TABLE IF EXISTS files;"); err != nil {
		return 0, fmt.Errorf("dropping files table: %w", err)
	}

	if err := db.createTables(tx); err != nil {
		return 0, err // Error already formatted by helper
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing cache reset: %w", err)
	}

	if db.verbose {
		log.Printf("Cache reset completed. Removed %d entries.", count)
	}

	return count, nil
}
