// Package storage persists the transaction snapshot to a local SQLite
// database. The whole array lives as one JSON payload under a single key;
// every save replaces it wholesale.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/helderruiz/controle-mensal/internal/core"

	_ "modernc.org/sqlite"
)

// SnapshotKey is the single identifier the transaction array is stored
// under.
const SnapshotKey = "transactions"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrateUp(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Save implements store.Snapshotter. The payload is the serialized
// transaction array; the row version increments on every replace.
func (r *SQLiteRepository) Save(ctx context.Context, transactions []core.Transaction) error {
	payload, err := json.Marshal(transactions)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, payload, version, updated_at)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(key) DO UPDATE SET
			payload = excluded.payload,
			version = snapshots.version + 1,
			updated_at = excluded.updated_at`,
		SnapshotKey, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	slog.DebugContext(ctx, "Snapshot persisted",
		"key", SnapshotKey,
		"transactions", len(transactions),
		"bytes", len(payload))
	return nil
}

// Load implements store.Snapshotter.
func (r *SQLiteRepository) Load(ctx context.Context) ([]core.Transaction, bool, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM snapshots WHERE key = ?`, SnapshotKey).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read snapshot: %w", err)
	}

	var transactions []core.Transaction
	if err := json.Unmarshal(payload, &transactions); err != nil {
		return nil, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return transactions, true, nil
}

// Version returns the current snapshot version, zero when no snapshot has
// been saved yet.
func (r *SQLiteRepository) Version(ctx context.Context) (int64, error) {
	var version int64
	err := r.db.QueryRowContext(ctx,
		`SELECT version FROM snapshots WHERE key = ?`, SnapshotKey).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read snapshot version: %w", err)
	}
	return version, nil
}
