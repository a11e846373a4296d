package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	"entdash/internal/platform/config"

	_ "github.com/mattn/go-sqlite3"
)

// Open connects to the SQLite statistics store described by cfg.URL.
// A "file:" prefix is stripped; ":memory:" databases are pinned to a single
// connection so every query sees the same database.
func Open(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := strings.TrimPrefix(cfg.URL, "file:")
	memory := strings.Contains(dsn, ":memory:")

	if !memory {
		path := dsn
		if i := strings.IndexByte(path, '?'); i >= 0 {
			path = path[:i]
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	if memory {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxConnections)
		db.SetConnMaxLifetime(time.Hour)
	}
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
