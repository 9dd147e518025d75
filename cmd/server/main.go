// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

// Package main is the entry point for the Nutriscope server.
//
// Nutriscope is a nutrition recommendation and scoring engine: it
// normalizes recipes into per-serving nutrient vectors, ranks
// candidates against per-user nutrient targets and pantry contents,
// scores logged meals, and folds meal scores into decayed per-user
// rolling health scores.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered load via Koanf v2 (defaults, YAML file,
//     NUTRISCOPE_* environment variables)
//  2. Logging: global zerolog logger from the logging section
//  3. Health store: in-memory or Badger-backed, per store.backend
//  4. Engine + HTTP boundary: normalizer, matcher, ranker, scorer,
//     advisory rules, aggregator behind the chi router
//  5. Supervisor tree: HTTP server, retention pruning, and Badger GC
//     under suture supervision
//
// # Configuration
//
// Configuration is loaded with layered sources (highest priority wins):
//   - Environment variables (NUTRISCOPE_ prefix)
//   - Config file (config.yaml, or NUTRISCOPE_CONFIG)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (shutdown timeout)
//   - Stops background pruning and GC workers
//   - Closes the health store
//
// # Example Usage
//
// In-memory store (development):
//
//	./nutriscope
//
// Badger-backed store:
//
//	export NUTRISCOPE_STORE_BACKEND=badger
//	export NUTRISCOPE_BADGER_PATH=/data/nutriscope
//	./nutriscope
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/nutriscope/internal/api"
	"github.com/tomtom215/nutriscope/internal/config"
	"github.com/tomtom215/nutriscope/internal/logging"
	"github.com/tomtom215/nutriscope/internal/nutrition/health"
	"github.com/tomtom215/nutriscope/internal/supervisor"
	"github.com/tomtom215/nutriscope/internal/supervisor/services"
)

// pruneInterval is how often the retention pruner sweeps all users.
const pruneInterval = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logging is not configured yet; stderr is all we have.
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("backend", cfg.Store.Backend).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting Nutriscope")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server failed")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// run wires the store, engine, and supervisor tree, then blocks until
// shutdown. Split from main so deferred cleanup runs before os.Exit.
func run(cfg *config.Config) error {
	store, badgerStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing health store")
		}
	}()

	handler, err := api.NewHandler(cfg, store)
	if err != nil {
		return err
	}
	router := api.NewRouter(handler, cfg.Server)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}

	pruneLogger := logging.With().Str("component", "health").Logger()
	tree.AddStoreService(health.NewPruneService(handler.Aggregator(), pruneInterval, pruneLogger))

	if badgerStore != nil {
		gcLogger := logging.With().Str("component", "store").Logger()
		tree.AddStoreService(services.NewBadgerGCService(badgerStore, cfg.Store.Badger.GCInterval, gcLogger))
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor closes the channel.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	return nil
}

// openStore builds the configured health store. The second return is
// non-nil only for the Badger backend, where the caller wires GC.
func openStore(cfg *config.Config) (health.Store, *health.BadgerStore, error) {
	switch cfg.Store.Backend {
	case config.StoreBadger:
		bs, err := health.OpenBadgerStore(cfg.Store.Badger.Path)
		if err != nil {
			return nil, nil, err
		}
		return bs, bs, nil
	default:
		return health.NewMemoryStore(), nil, nil
	}
}
