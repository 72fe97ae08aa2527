package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/alexanderramin/timesheet/internal/api"
	"github.com/alexanderramin/timesheet/internal/cli"
	"github.com/alexanderramin/timesheet/internal/config"
	"github.com/alexanderramin/timesheet/internal/db"
	"github.com/alexanderramin/timesheet/internal/logging"
	"github.com/alexanderramin/timesheet/internal/repository"
	"github.com/alexanderramin/timesheet/internal/service"
	"github.com/alexanderramin/timesheet/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return fmt.Errorf("starting logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	sessionRepo := repository.NewSQLiteSessionRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	var observer api.Observer = api.NoopObserver{}
	if cfg.LogCalls {
		observer = api.NewLogObserver(logger)
	}

	// The login client carries no token; the session store is the token
	// source of every other call.
	authClient := api.NewClient(cfg.APIURL, cfg.Timeout(), api.WithObserver(observer))
	store := session.NewStore(authClient, sessionRepo, uow,
		session.WithTTL(cfg.SessionLifetime()),
		session.WithLogger(logger))
	if err := store.Restore(context.Background()); err != nil {
		logger.Warn("session_restore_failed", zap.Error(err))
	}
	client := api.NewClient(cfg.APIURL, cfg.Timeout(),
		api.WithTokenSource(store),
		api.WithObserver(observer))

	// Wire services
	useCases := service.NewLogUseCaseObserver(logger)
	projects := service.NewProjectListService(client, useCases)
	toolbar := service.NewToolbar(projects, logger)

	app := &cli.App{
		Session:    store,
		API:        client,
		Projects:   projects,
		References: service.NewReferenceService(client, useCases),
		Toolbar:    toolbar,
		Creator:    service.NewProjectCreateService(client, toolbar, useCases),
		Logger:     logger,
	}

	// Detect interactive terminal for the TUI entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	logger.Info("timesheet_started", zap.String("api_url", cfg.APIURL), zap.Bool("signed_in", store.IsAuthenticated()))

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
