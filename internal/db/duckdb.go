// Package db keeps the registration ledger in DuckDB.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/joeblew999/plat-assets/internal/asset"
)

var (
	instance *sql.DB
	once     sync.Once
	initErr  error
)

// Config holds database configuration.
type Config struct {
	DataDir string
	DBName  string
}

// Get returns the singleton DuckDB connection, creating the ledger table
// on first use.
func Get(cfg Config) (*sql.DB, error) {
	once.Do(func() {
		duckdbDir := filepath.Join(cfg.DataDir, "duckdb")
		if err := os.MkdirAll(duckdbDir, 0755); err != nil {
			initErr = fmt.Errorf("failed to create duckdb directory: %w", err)
			return
		}

		dbPath := filepath.Join(duckdbDir, cfg.DBName+".duckdb")
		instance, initErr = sql.Open("duckdb", dbPath)
		if initErr != nil {
			return
		}

		if _, err := instance.Exec(createLedger); err != nil {
			initErr = fmt.Errorf("failed to create ledger table: %w", err)
		}
	})
	return instance, initErr
}

// Close closes the database connection.
func Close() error {
	if instance != nil {
		return instance.Close()
	}
	return nil
}

const createLedger = `CREATE TABLE IF NOT EXISTS asset_registrations (
	registered_at TIMESTAMP DEFAULT current_timestamp,
	seq           INTEGER,
	layer_id      VARCHAR,
	version       INTEGER,
	category      VARCHAR,
	typename      VARCHAR,
	url           VARCHAR,
	format        VARCHAR,
	rules         INTEGER
)`

// Ledger records each asset registration as a row.
type Ledger struct {
	db *sql.DB
}

// NewLedger wraps an open connection.
func NewLedger(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

// Record implements service.Recorder.
func (l *Ledger) Record(ctx context.Context, seq int, layer asset.LayerConfig) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO asset_registrations (seq, layer_id, version, category, typename, url, format, rules)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, layer.ID, layer.Version, layer.Category, layer.TypeName(),
		layer.HTTPOptions.URL, string(layer.Format), len(layer.Style),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", layer.ID, err)
	}
	return nil
}
