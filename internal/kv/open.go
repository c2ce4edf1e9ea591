package kv

import (
	"context"
	"fmt"

	"github.com/andywolf/skilltrack/internal/cloud/gcp"
	"github.com/andywolf/skilltrack/internal/config"
	"github.com/andywolf/skilltrack/internal/security"
	"go.uber.org/zap"
)

// Open creates the backend selected by cfg. secrets may be nil when no
// password_secret is configured.
func Open(ctx context.Context, cfg *config.Config, secrets gcp.SecretFetcher, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.StoreTimeout()

	switch cfg.Store.Backend {
	case config.BackendMemory:
		logger.Debug("Using in-memory store")
		return NewMemory(), nil

	case config.BackendFile, "":
		logger.Debug("Using file store", zap.String("path", cfg.Store.Path))
		return NewFile(cfg.Store.Path), nil

	case config.BackendRedis:
		rc := cfg.Store.Redis
		password, err := gcp.ResolvePassword(ctx, secrets, rc.PasswordSecret, rc.Password)
		if err != nil {
			return nil, err
		}
		logger.Info("Connecting to Redis store",
			zap.String("addr", rc.Addr),
			zap.Int("db", rc.DB),
			zap.String("prefix", rc.Prefix),
		)
		return NewRedis(ctx, RedisOptions{
			Addr:     rc.Addr,
			Password: password,
			DB:       rc.DB,
			Prefix:   rc.Prefix,
			Timeout:  timeout,
		})

	case config.BackendPostgres:
		pc := cfg.Store.Postgres
		password, err := gcp.ResolvePassword(ctx, secrets, pc.PasswordSecret, "")
		if err != nil {
			return nil, err
		}
		logger.Info("Connecting to PostgreSQL store",
			zap.String("dsn", security.RedactDSN(pc.DSN)),
			zap.String("table", pc.Table),
		)
		return NewPostgres(ctx, PostgresOptions{
			DSN:      pc.DSN,
			Password: password,
			Table:    pc.Table,
			Timeout:  timeout,
		})
	}

	return nil, fmt.Errorf("unsupported store backend: %s", cfg.Store.Backend)
}
