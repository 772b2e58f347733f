package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tashanwin/club-settle-go/internal/api"
	"github.com/tashanwin/club-settle-go/internal/config"
	"github.com/tashanwin/club-settle-go/internal/games"
	"github.com/tashanwin/club-settle-go/internal/logger"
	"github.com/tashanwin/club-settle-go/internal/settle"
	"github.com/tashanwin/club-settle-go/internal/store"
	"github.com/tashanwin/club-settle-go/internal/wallet"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	ledger := wallet.NewMemoryLedger()
	settlerOpts := []settle.Option{
		settle.WithTickInterval(cfg.TickInterval),
		settle.WithLogger(log),
	}
	if cfg.BetMin > 0 || cfg.BetMax > 0 {
		overrides := make(map[games.Kind]settle.Limits)
		for kind, lim := range settle.DefaultLimits() {
			if cfg.BetMin > 0 {
				lim.Min = cfg.BetMin
			}
			if cfg.BetMax > 0 {
				lim.Max = cfg.BetMax
			}
			overrides[kind] = lim
		}
		settlerOpts = append(settlerOpts, settle.WithLimits(overrides))
	}
	settler := settle.New(settlerOpts...)

	opts := []api.ServerOption{
		api.WithLogger(log),
		api.WithCORSOrigins(cfg.CORSOrigins),
		api.WithTickMs(cfg.TickInterval.Milliseconds()),
	}
	if cfg.SeedMode == "seeded" {
		opts = append(opts, api.WithSeedChain(api.NewSeedChain()))
	}
	server := api.NewServer(settler, db, ledger, opts...)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", srv.Addr, "seed_mode", cfg.SeedMode, "tick", cfg.TickInterval)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
