package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	perrors "github.com/vango-dev/productpage/internal/errors"
	_ "modernc.org/sqlite"
)

// DefaultSQLiteTimeout bounds each SQLite statement.
const DefaultSQLiteTimeout = 5 * time.Second

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv_entries (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLite is a Store backed by a SQLite database.
type SQLite struct {
	sqlDB   *sql.DB
	timeout time.Duration
	now     func() time.Time
}

// OpenSQLite opens (and migrates) the SQLite store at path.
func OpenSQLite(path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, perrors.New("P004").WithDetail("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, perrors.New("P004").Wrap(fmt.Errorf("open sqlite db: %w", err))
	}

	s := &SQLite{sqlDB: sqlDB, timeout: DefaultSQLiteTimeout, now: time.Now}
	ctx, cancel := s.context()
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, perrors.New("P004").Wrap(fmt.Errorf("ping sqlite db: %w", err))
	}
	if _, err := sqlDB.ExecContext(ctx, sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, perrors.New("P004").Wrap(fmt.Errorf("run migrations: %w", err))
	}
	return s, nil
}

// Close releases the underlying SQLite connection.
func (s *SQLite) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Get implements Store.
func (s *SQLite) Get(key string) (string, bool, error) {
	if s == nil || s.sqlDB == nil {
		return "", false, perrors.New("P001").WithDetail("storage is not configured")
	}
	ctx, cancel := s.context()
	defer cancel()

	var value string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT value FROM kv_entries WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, perrors.New("P002").WithDetailf("get %q", key).Wrap(err)
	}
	return value, true, nil
}

// Set implements Store.
func (s *SQLite) Set(key, value string) error {
	if s == nil || s.sqlDB == nil {
		return perrors.New("P001").WithDetail("storage is not configured")
	}
	ctx, cancel := s.context()
	defer cancel()

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return perrors.New("P003").WithDetailf("set %q", key).Wrap(err)
	}
	return nil
}

// Remove implements Remover.
func (s *SQLite) Remove(key string) error {
	if s == nil || s.sqlDB == nil {
		return perrors.New("P001").WithDetail("storage is not configured")
	}
	ctx, cancel := s.context()
	defer cancel()

	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		return perrors.New("P003").WithDetailf("remove %q", key).Wrap(err)
	}
	return nil
}

// Keys implements Keyser. Keys are sorted.
func (s *SQLite) Keys() ([]string, error) {
	if s == nil || s.sqlDB == nil {
		return nil, perrors.New("P001").WithDetail("storage is not configured")
	}
	ctx, cancel := s.context()
	defer cancel()

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT key FROM kv_entries ORDER BY key`)
	if err != nil {
		return nil, perrors.New("P002").Wrap(err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, perrors.New("P002").Wrap(err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, perrors.New("P002").Wrap(err)
	}
	return keys, nil
}

func (s *SQLite) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}
