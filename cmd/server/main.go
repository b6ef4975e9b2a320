package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/schartrand77/trivia/internal/board"
	"github.com/schartrand77/trivia/internal/config"
	"github.com/schartrand77/trivia/internal/database"
	"github.com/schartrand77/trivia/internal/game"
	"github.com/schartrand77/trivia/internal/migrations"
	"github.com/schartrand77/trivia/internal/opentdb"
	"github.com/schartrand77/trivia/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	store := server.NewSQLiteStore(db)

	// --- Game engine ---
	source := opentdb.New(cfg.OpenTDBURL)
	assembler := board.New(source, cfg.FetchDelay, nil, logger)

	broker := server.NewBroker()
	engineCfg := game.DefaultConfig()
	engineCfg.CategoryCount = cfg.CategoryCount
	engineCfg.LevelsPerCategory = cfg.LevelsPerCategory
	engineCfg.CountdownSeconds = cfg.CountdownSeconds
	engine := game.New(engineCfg, assembler, store, broker.Publish, logger, nil)

	admin, err := server.NewAdmin(cfg.AdminUser, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("configuring admin credentials: %w", err)
	}

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, func(r chi.Router) {
		server.AddRoutes(r, logger, engine, store, broker, admin, db, cfg.HistoryLimit)
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		return engine.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
