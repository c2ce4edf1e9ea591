package cli

import (
	"context"
	"fmt"

	"github.com/andywolf/skilltrack/internal/cloud/gcp"
	"github.com/andywolf/skilltrack/internal/config"
	"github.com/andywolf/skilltrack/internal/kv"
	"github.com/andywolf/skilltrack/internal/logging"
	"github.com/andywolf/skilltrack/internal/metrics"
	"github.com/andywolf/skilltrack/internal/tracker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app is everything a command needs to talk to the skill collection.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics
	secrets gcp.SecretFetcher
	store   kv.Store
	manager *tracker.Manager
}

// openApp loads configuration and opens the configured store.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if viper.GetBool("verbose") {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.New(),
	}

	if cfg.NeedsSecrets() {
		client, err := gcp.NewSecretManagerClient(ctx, "")
		if err != nil {
			_ = logger.Sync()
			return nil, fmt.Errorf("failed to initialize secret manager: %w", err)
		}
		a.secrets = client
	}

	store, err := kv.Open(ctx, cfg, a.secrets, logger)
	if err != nil {
		a.closeSecrets()
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Backend, err)
	}
	a.store = kv.NewInstrumented(store, cfg.Store.Backend, a.metrics, logger)

	a.manager = tracker.New(a.store,
		tracker.WithLogger(logger),
		tracker.WithMetrics(a.metrics),
		tracker.WithSeed(cfg.Seed),
	)
	return a, nil
}

func (a *app) closeSecrets() {
	if a.secrets == nil {
		return
	}
	if err := a.secrets.Close(); err != nil {
		a.logger.Warn("Failed to close secret manager client", zap.Error(err))
	}
}

// Close releases the store and writes the metrics textfile when configured.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("Failed to close store", zap.Error(err))
	}
	a.closeSecrets()

	if path := a.cfg.Metrics.Textfile; path != "" {
		if err := a.metrics.WriteTextfile(path); err != nil {
			a.logger.Warn("Failed to write metrics textfile", zap.String("path", path), zap.Error(err))
		} else {
			a.logger.Debug("Wrote metrics textfile", zap.String("path", path))
		}
	}
	_ = a.logger.Sync()
}

// withApp opens the app, runs fn, and closes the app.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}
