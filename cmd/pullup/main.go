package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/pullup/internal/cli"
	"github.com/alexanderramin/pullup/internal/config"
	"github.com/alexanderramin/pullup/internal/db"
	"github.com/alexanderramin/pullup/internal/engine"
	"github.com/alexanderramin/pullup/internal/repository"
	"github.com/alexanderramin/pullup/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repository and unit of work for transactional edits
	workoutRepo := repository.NewSQLiteWorkoutRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	var sessionObserver engine.Observer = engine.NoopObserver{}
	if cfg.LogEvents {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
		sessionObserver = engine.NewLogObserver(os.Stderr)
	}

	workouts := service.NewWorkoutService(workoutRepo, uow, observers...)
	recorder := service.NewRecorder(workouts,
		service.WithSaveErrorHandler(func(res service.SaveResult) {
			// The TUI shows this too, but it may already be gone.
			fmt.Fprintf(os.Stderr, "Error: saving %s workout: %v\n", res.Protocol, res.Err)
		}),
	)
	defer recorder.Close()

	app := &cli.App{
		Workouts:        workouts,
		Recorder:        recorder,
		Backup:          service.NewBackupService(workoutRepo, uow, observers...),
		Config:          cfg,
		SessionObserver: sessionObserver,
	}

	// Detect interactive terminal for the TUI entrypoints.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
