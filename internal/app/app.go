package app

import (
	"log/slog"

	"rewardtrack/internal/catalog"
	"rewardtrack/internal/metrics"
	"rewardtrack/internal/services/rewards"
	"rewardtrack/internal/store"
)

// App bundles the built services for one process.
type App struct {
	Config  Config
	Catalog *catalog.Catalog
	Rewards *rewards.Service
	Metrics *metrics.Metrics
	Log     *slog.Logger

	// RestoreWarning is set when the saved ledger could not be parsed and the
	// app started from initial balances.
	RestoreWarning error

	store store.Store
}

// Close releases the snapshot store.
func (a *App) Close() error {
	if a == nil || a.store == nil {
		return nil
	}
	return a.store.Close()
}
