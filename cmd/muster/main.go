package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/muster/internal/cli"
	"github.com/alexanderramin/muster/internal/config"
	"github.com/alexanderramin/muster/internal/db"
	"github.com/alexanderramin/muster/internal/metrics"
	"github.com/alexanderramin/muster/internal/repository"
	"github.com/alexanderramin/muster/internal/service"
	"github.com/mattn/go-isatty"
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
		return err
	}
	order, err := cfg.RankOrder()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	memberRepo := repository.NewSQLiteMemberRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	attendanceRepo := repository.NewSQLiteAttendanceRepo(database)
	reqRepo := repository.NewSQLiteRankRequirementRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	recorder := metrics.New()
	var useCaseLog service.UseCaseObserver
	if cfg.LogUseCases {
		useCaseLog = service.NewLogUseCaseObserver(os.Stderr)
	}
	observer := service.NewFanoutObserver(useCaseLog, recorder)

	// Wire services
	reqSvc := service.NewRankRequirementService(reqRepo, order, observer)
	if seeded, err := reqSvc.SeedDefaults(context.Background()); err != nil {
		return fmt.Errorf("seeding rank requirements: %w", err)
	} else if seeded {
		logger.Info("seeded default rank requirements", "ranks", order.Len())
	}

	app := &cli.App{
		Members:      service.NewMemberService(memberRepo, order, uow, observer),
		Sessions:     service.NewSessionService(sessionRepo),
		Attendance:   service.NewAttendanceService(attendanceRepo, memberRepo, observer),
		Requirements: reqSvc,
		Import:       service.NewImportService(order, uow, observer),
		Eligibility: service.NewEligibilityService(memberRepo, sessionRepo, attendanceRepo, reqRepo, order,
			service.EligibilityOptions{
				OfficerRank:         cfg.OfficerRank,
				Workers:             cfg.Workers,
				NoResponseThreshold: cfg.NoResponseThreshold,
			}, observer),

		Order:    order,
		Config:   cfg,
		Recorder: recorder,
		Logger:   logger,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
