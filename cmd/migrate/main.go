package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/config"
	availabilityRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/availability"
	settingsRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/settings"
	availabilityService "github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/migrator"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

// actionSeed создает строку настроек расписания со значениями по умолчанию
const actionSeed = "seed"

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	source := flag.String("source", migrator.DefaultSource, "migrations source URL")
	action := flag.String("action", string(migrator.ActionUp), "up | down | step-up | drop | seed")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("", cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if *action == actionSeed {
		if err := seed(cfg, log); err != nil {
			log.ErrorWithStack(err)
			os.Exit(1)
		}
		return
	}

	if err := migrator.Run(*source, cfg.Database.URL(), migrator.Action(*action)); err != nil {
		log.ErrorWithStack(err)
		os.Exit(1)
	}

	log.Info("Migration %q completed successfully", *action)
}

func seed(cfg *config.Config, log *logger.Logger) error {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	wrapped := dbmetrics.Wrap(db, nil)
	svc := availabilityService.NewService(
		settingsRepo.NewRepository(wrapped),
		availabilityRepo.NewRepository(wrapped),
		nil,
		cfg.Cache.TTL(),
		txmanager.NewTransactionManager(wrapped),
		log,
	)

	settings, created, err := svc.SeedSettings(ctx)
	if err != nil {
		return err
	}

	if created {
		log.Info("Default scheduling settings created: slot=%dm, min=%dh, max=%dd",
			settings.SlotDurationMinutes, settings.MinAdvanceBookingHours, settings.MaxAdvanceBookingDays)
	} else {
		log.Info("Scheduling settings already exist (id=%d), nothing to seed", settings.ID)
	}
	return nil
}
