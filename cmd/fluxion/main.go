package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alexanderramin/fluxion/internal/analytics"
	"github.com/alexanderramin/fluxion/internal/cli"
	"github.com/alexanderramin/fluxion/internal/clock"
	"github.com/alexanderramin/fluxion/internal/config"
	"github.com/alexanderramin/fluxion/internal/db"
	"github.com/alexanderramin/fluxion/internal/ledger"
	"github.com/alexanderramin/fluxion/internal/repository"
	"github.com/alexanderramin/fluxion/internal/service"
	"github.com/alexanderramin/fluxion/internal/timer"
	"github.com/gin-gonic/gin"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Use-case records go to stderr only when asked for.
	var logOut io.Writer = io.Discard
	if cfg.LogUseCases {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))
	observer := service.NewSlogUseCaseObserver(logger)
	if !cfg.LogUseCases {
		observer = service.NoopUseCaseObserver{}
		gin.SetMode(gin.ReleaseMode)
	}

	// Wire repositories
	kv := repository.NewSQLiteKVStore(database)
	blockRepo := repository.NewSQLiteRoutineBlockRepo(database)
	uow := db.NewSQLiteUnitOfWork(database, db.WithTxLogger(logger))
	clk := clock.SystemClock{}

	// Wire engine, ledger and analytics
	engine, err := timer.New(ctx, kv, clk)
	if err != nil {
		return fmt.Errorf("loading timer state: %w", err)
	}
	completions := ledger.New(kv, blockRepo, clk)
	agg := analytics.New(engine, completions, clk, analytics.WithDailyGoal(cfg.DailyGoalMin))

	app := &cli.App{
		Focus:    service.NewFocusService(engine, completions, observer),
		Routines: service.NewRoutineService(blockRepo, uow, clk, observer),
		Stats:    service.NewStatsService(agg, engine),
		State:    service.NewStateService(kv, engine, observer),
		Config:   cfg,
		Logger:   logger,
	}

	// Detect interactive terminal for the pickers.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
