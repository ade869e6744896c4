package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/edital/internal/cli"
	"github.com/alexanderramin/edital/internal/config"
	"github.com/alexanderramin/edital/internal/db"
	"github.com/alexanderramin/edital/internal/metrics"
	"github.com/alexanderramin/edital/internal/repository"
	"github.com/alexanderramin/edital/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() (err error) {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	syllabusRepo := repository.NewSQLiteSyllabusRepo(database)
	planRepo := repository.NewSQLitePlanRepo(database)
	flashcardRepo := repository.NewSQLiteFlashcardRepo(database)
	examRepo := repository.NewSQLiteExamRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Observers: metrics always, call logging on request.
	m := metrics.New(prometheus.NewRegistry())
	observers := []service.UseCaseObserver{metrics.NewObserver(m)}
	if cfg.LogCalls {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr, cfg.LogLevel))
	}
	if cfg.MetricsFile != "" {
		defer func() {
			if werr := m.WriteTextfile(cfg.MetricsFile); werr != nil && err == nil {
				err = fmt.Errorf("writing metrics: %w", werr)
			}
		}()
	}

	app := &cli.App{
		Syllabi:    service.NewSyllabusService(syllabusRepo, uow, observers...),
		Plans:      service.NewPlanService(planRepo, uow, cfg.AdaptWorkers, observers...),
		Cards:      service.NewFlashcardService(flashcardRepo, uow, observers...),
		Exams:      service.NewExamService(examRepo, uow, observers...),
		UserID:     cfg.UserID,
		DailyHours: cfg.DailyHours,
	}

	// Detect interactive terminal for prompts and the plan browser.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
