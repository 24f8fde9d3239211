package cache

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// Snapshot は保存済みコレクションの1行です。
type Snapshot struct {
	Kind    string `db:"kind"`
	Payload string `db:"payload"`
	SavedAt string `db:"saved_at"`
}

// DB is the local snapshot cache.
type DB struct {
	conn *sqlx.DB
}

// Open opens (or creates) the SQLite file at path and applies the schema.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to apply cache schema: %w", err)
	}
	log.Printf("INFO: snapshot cache opened at %s", path)
	return &DB{conn: conn}, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// Save はコレクションのJSONを種別ごとに上書き保存します。
func (db *DB) Save(ctx context.Context, kind string, payload []byte) error {
	const q = `INSERT INTO snapshots (kind, payload, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(kind) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at`
	if _, err := db.conn.ExecContext(ctx, q, kind, string(payload), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", kind, err)
	}
	return nil
}

// Load returns the stored snapshot, or false when none exists.
func (db *DB) Load(ctx context.Context, kind string) (Snapshot, bool, error) {
	var s Snapshot
	err := db.conn.GetContext(ctx, &s, `SELECT kind, payload, saved_at FROM snapshots WHERE kind = ?`, kind)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("failed to load snapshot %s: %w", kind, err)
	}
	return s, true, nil
}

func (db *DB) Kinds(ctx context.Context) ([]string, error) {
	var kinds []string
	if err := db.conn.SelectContext(ctx, &kinds, `SELECT kind FROM snapshots ORDER BY kind`); err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return kinds, nil
}

func (db *DB) Clear(ctx context.Context, kind string) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM snapshots WHERE kind = ?`, kind); err != nil {
		return fmt.Errorf("failed to clear snapshot %s: %w", kind, err)
	}
	return nil
}

// ClearAll はログアウト時に全スナップショットを削除します。
func (db *DB) ClearAll(ctx context.Context) error {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots`); err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}
	return tx.Commit()
}
