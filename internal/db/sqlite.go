package db

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yigit/hogwarts/internal/config"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

// MemoryPath opens a private in-process SQLite database
const MemoryPath = ":memory:"

// SQLiteDB wraps the embedded database handle
type SQLiteDB struct {
	DB *sql.DB
}

// NewSQLiteDB opens the SQLite database at path and checks it is reachable
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if path != MemoryPath {
		path = filepath.Clean(path)
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// SQLite has a single writer, and every ":memory:" connection is its own database
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	return &SQLiteDB{DB: sqlDB}, nil
}

// EnsureSchema creates the tables and indexes when they do not exist yet
func (db *SQLiteDB) EnsureSchema(ctx context.Context) error {
	ddl, err := schemaFor(config.DriverSQLite)
	if err != nil {
		return err
	}

	if _, err := db.DB.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create sqlite schema: %w", err)
	}
	return nil
}

// Close closes the SQLite handle
func (db *SQLiteDB) Close() error {
	if db == nil || db.DB == nil {
		return nil
	}
	return db.DB.Close()
}
