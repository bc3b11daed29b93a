package app

import (
	"errors"
	"fmt"
	"log/slog"

	"rewardtrack/internal/catalog"
	"rewardtrack/internal/domain/types"
	"rewardtrack/internal/ledger"
	"rewardtrack/internal/metrics"
	"rewardtrack/internal/services/rewards"
	"rewardtrack/internal/store"
)

// New constructs the dependency graph from cfg.
func New(cfg Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cat := catalog.Default()

	// Snapshot store for the configured backend
	st, err := store.Open(cfg.Backend, cfg.Home, cfg.Passphrase)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}

	// Ledger from the saved snapshot; a corrupt snapshot is only a warning
	l, err := ledger.Restore(cat, st, logger)
	var warning error
	if errors.Is(err, types.ErrPersistenceParse) {
		warning, err = err, nil
	}
	if err != nil {
		return nil, errors.Join(err, st.Close())
	}

	// High-level services
	m := metrics.New()
	svc := rewards.New(cat, l, st, rewards.WithLogger(logger), rewards.WithRecorder(m))

	return &App{
		Config:         cfg,
		Catalog:        cat,
		Rewards:        svc,
		Metrics:        m,
		Log:            logger,
		RestoreWarning: warning,
		store:          st,
	}, nil
}
