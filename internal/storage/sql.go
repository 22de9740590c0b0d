package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Dialect holds the statements that differ between SQL engines.
type Dialect struct {
	Name        string
	CreateTable string
	Upsert      string
}

var (
	// MySQL upserts with ON DUPLICATE KEY UPDATE.
	MySQL = Dialect{
		Name: "mysql",
		CreateTable: `
			CREATE TABLE IF NOT EXISTS kv_store (
				k VARCHAR(191) NOT NULL PRIMARY KEY,
				v LONGTEXT NOT NULL,
				updated_at DATETIME NOT NULL
			)`,
		Upsert: `
			INSERT INTO kv_store (k, v, updated_at)
			VALUES (?, ?, ?)
			ON DUPLICATE KEY UPDATE
				v = VALUES(v),
				updated_at = VALUES(updated_at)`,
	}

	// SQLite upserts with ON CONFLICT.
	SQLite = Dialect{
		Name: "sqlite",
		CreateTable: `
			CREATE TABLE IF NOT EXISTS kv_store (
				k TEXT NOT NULL PRIMARY KEY,
				v TEXT NOT NULL,
				updated_at TIMESTAMP NOT NULL
			)`,
		Upsert: `
			INSERT INTO kv_store (k, v, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(k) DO UPDATE SET
				v = excluded.v,
				updated_at = excluded.updated_at`,
	}
)

// SQLKV stores values in a single kv_store table.
type SQLKV struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQLKV wraps db and creates the kv_store table if needed.
func NewSQLKV(ctx context.Context, db *sql.DB, dialect Dialect) (*SQLKV, error) {
	if _, err := db.ExecContext(ctx, dialect.CreateTable); err != nil {
		return nil, fmt.Errorf("%s: create kv_store: %w", dialect.Name, err)
	}
	return &SQLKV{db: db, dialect: dialect}, nil
}

func (s *SQLKV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT v FROM kv_store WHERE k = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLKV) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, s.dialect.Upsert, key, value, time.Now().UTC())
	return err
}

func (s *SQLKV) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM kv_store WHERE k = ?", key)
	return err
}

func (s *SQLKV) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLKV) Close() error {
	return s.db.Close()
}
