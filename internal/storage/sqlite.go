package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/faithguard/faithguard/internal/common"
	"github.com/faithguard/faithguard/internal/dbx"
)

// SQLite implements KV over the kv table, using a DBTX (either *sql.DB or
// *sql.Tx).
type SQLite struct {
	db dbx.DBTX
}

// NewSQLite returns a SQLite KV bound to the given DBTX.
func NewSQLite(db dbx.DBTX) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	row := s.db.QueryRowContext(ctx, `select value from kv where key=?`, key)

	var value []byte
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return value, nil
}

func (s *SQLite) Put(ctx context.Context, key string, value []byte) error {
	query := `insert into kv (key, value) values (?, ?)
		on conflict(key) do update set value = excluded.value`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to upsert kv entry: %w", err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `delete from kv where key=?`, key); err != nil {
		return fmt.Errorf("failed to delete kv entry: %w", err)
	}
	return nil
}
