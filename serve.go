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

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/landing-analyzer/backend/api"
	"github.com/landing-analyzer/backend/middleware"
	"github.com/landing-analyzer/backend/stats"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Usage: "listen port (overrides PORT)",
			},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	cfg, logger := setup(c)
	if c.IsSet("port") {
		cfg.Server.Port = c.Int("port")
	}
	setupGinMode(cfg.Server.Mode)

	storage, err := stats.NewStorage(cfg.Stats.Dir, logger)
	if err != nil {
		return fmt.Errorf("init statistics: %w", err)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			logger.Error("failed to save statistics", "error", err)
		}
	}()
	storage.Cleanup(cfg.Stats.RetainMonths)

	limiter := middleware.NewRateLimiter(cfg.RateLimit)
	defer limiter.Stop()

	router := api.NewRouter(api.Deps{
		Analyzer:    newAnalyzer(cfg, logger, cfg.Simulation.Seed, true),
		Stats:       storage,
		RateLimiter: limiter,
		Logger:      logger,
		DevMode:     cfg.Server.DevMode,
		Version:     version,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server listening", "addr", srv.Addr, "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		cleanupDaily(gctx, storage, cfg.Stats.RetainMonths)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")

		// Give in-flight analyses time to finish.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Fetch.Timeout+5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server forced shutdown", "error", err)
		} else {
			logger.Info("HTTP server drained gracefully")
		}
		return nil
	})
	return g.Wait()
}

func cleanupDaily(ctx context.Context, storage *stats.Storage, retainMonths int) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			storage.Cleanup(retainMonths)
		case <-ctx.Done():
			return
		}
	}
}
