package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/levent-cli/internal/adapters/repo/prefs"
	"github.com/bnema/levent-cli/internal/domain"
	"github.com/bnema/levent-cli/internal/ports"

	_ "modernc.org/sqlite"
)

const storeDirMode = 0o700

// ProgressStore keeps progress as rows of a prefs(key, value) table.
type ProgressStore struct {
	db *sql.DB
}

var _ ports.ProgressStore = (*ProgressStore)(nil)

func Open(ctx context.Context, dbPath string) (*ProgressStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), storeDirMode); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection serializes writers instead of surfacing SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	store := &ProgressStore{db: db}
	if err := store.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *ProgressStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS prefs (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create prefs table: %w", err)
	}
	return nil
}

func (s *ProgressStore) Close() error {
	return s.db.Close()
}

func (s *ProgressStore) Load(ctx context.Context) (domain.ProgressState, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM prefs`)
	if err != nil {
		return domain.ProgressState{}, fmt.Errorf("query prefs: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string, len(prefs.Keys()))
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return domain.ProgressState{}, fmt.Errorf("scan pref: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return domain.ProgressState{}, fmt.Errorf("iterate prefs: %w", err)
	}

	return prefs.Decode(values), nil
}

func (s *ProgressStore) Save(ctx context.Context, state domain.ProgressState) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin prefs tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const stmt = `
INSERT INTO prefs (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value;
`
	encoded := prefs.Encode(state)
	for _, key := range prefs.Keys() {
		if _, err := tx.ExecContext(ctx, stmt, key, encoded[key]); err != nil {
			return fmt.Errorf("upsert pref %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit prefs: %w", err)
	}
	return nil
}
