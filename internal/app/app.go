// Package app holds the start-up wiring shared by the API server and the CLI:
// logger construction and opening the Trip Store over the configured backend.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pkordes/trip-planner/backend/internal/config"
	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/storage"
	"github.com/pkordes/trip-planner/backend/internal/tripstore"
)

// NewLogger returns a JSON slog.Logger writing to w at the named level.
// An unknown level falls back to info.
func NewLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// Defaults returns the first-run trip: the built-in one, overlaid with the
// seed file when cfg names one.
func Defaults(cfg config.Config) (domain.Trip, error) {
	trip := domain.DefaultTrip()
	if cfg.SeedFile == "" {
		return trip, nil
	}
	return config.LoadSeed(cfg.SeedFile, trip)
}

// OpenStore opens the configured storage backend and loads the Trip Store
// over it. The returned close function releases the backend and is never nil.
func OpenStore(ctx context.Context, cfg config.Config, log *slog.Logger) (*tripstore.Store, func() error, error) {
	defaults, err := Defaults(cfg)
	if err != nil {
		return nil, func() error { return nil }, fmt.Errorf("app.OpenStore: %w", err)
	}

	slots, closeFn, err := storage.Open(ctx, cfg.StorageDriver, cfg.StoragePath)
	if err != nil {
		return nil, closeFn, fmt.Errorf("app.OpenStore: %w", err)
	}
	log.Info("storage opened", "driver", cfg.StorageDriver, "path", cfg.StoragePath)

	store := tripstore.Open(ctx, slots, defaults, tripstore.WithLogger(log))
	return store, closeFn, nil
}
