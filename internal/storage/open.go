package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/01moynul/storefront-golang/internal/config"
	"github.com/01moynul/storefront-golang/internal/database"
)

// Open builds the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (KV, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemoryKV(), nil

	case "sqlite":
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		kv, err := NewSQLKV(ctx, db, SQLite)
		if err != nil {
			db.Close()
			return nil, err
		}
		return kv, nil

	case "mysql":
		db, err := database.OpenDB(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		kv, err := NewSQLKV(ctx, db, MySQL)
		if err != nil {
			db.Close()
			return nil, err
		}
		return kv, nil

	case "redis":
		kv := NewRedisKV(cfg.RedisAddr, cfg.Namespace, logger)
		if err := kv.Initialize(ctx, 10); err != nil {
			kv.Close()
			return nil, err
		}
		return kv, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}
