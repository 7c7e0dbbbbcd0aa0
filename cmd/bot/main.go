package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/infra/config"
	idb "homework_status_bot/internal/infra/database"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/systemd"
	"homework_status_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("Homework Status Bot starting...")

	cfg, err := config.Load()
	if err != nil {
		// The logger is not configured yet; the default one is enough for a fatal line.
		logger.Log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	log := logger.Init(cfg)
	if err := run(cfg, log); err != nil {
		log.Errorf("Homework Status Bot stopped: %v", err)
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, log *logrus.Logger) error {
	log.WithFields(logrus.Fields{
		"environment":   cfg.Environment,
		"endpoint":      cfg.PracticumEndpoint,
		"cursor_policy": cursorPolicy(cfg).String(),
		"journal":       cfg.DatabaseURL != "",
	}).Info("Configuration loaded.")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notifierOpts := []app.NotifierOption{}
	if cfg.DatabaseURL != "" {
		db, err := idb.NewPostgresConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("could not connect to database: %w", err)
		}
		defer db.Close()

		journal := idb.NewPostgresDeliveryRepository(db)
		if err := journal.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("could not prepare delivery journal: %w", err)
		}
		notifierOpts = append(notifierOpts, app.WithJournal(journal))
		log.Info("Delivery journal enabled.")
	}

	bot, err := telegram.NewOfflineBot(cfg.TelegramToken)
	if err != nil {
		return fmt.Errorf("could not create Telegram bot: %w", err)
	}
	notifier := app.NewNotifier(telegram.NewTelebotAdapter(bot), cfg.TelegramChatID, log, notifierOpts...)

	apiClient := practicum.NewClient(cfg.PracticumEndpoint, cfg.PracticumToken, log)
	pollService := app.NewPollService(apiClient, notifier, log, cursorPolicy(cfg), time.Now())

	sd := systemd.NewNotifier(log)
	if interval := sd.WatchdogInterval(); interval > 0 && interval < app.RetryPeriod {
		log.Warnf("systemd WatchdogSec (%s) is shorter than the poll period (%s); the unit will be restarted between polls", interval, app.RetryPeriod)
	}

	pollScheduler := scheduler.NewPollScheduler(pollService, scheduler.DefaultSchedule(), log, sd)
	pollScheduler.Start()
	sd.Ready()
	log.Info("Application setup complete. Polling homework statuses...")

	select {
	case <-ctx.Done():
		log.Info("Shutting down application...")
	case <-pollScheduler.Done():
		log.Errorf("Poll loop exited: %v", pollScheduler.Err())
	}

	sd.Stopping()
	pollScheduler.Stop()
	log.Info("Application shut down gracefully.")
	return pollScheduler.Err()
}

func cursorPolicy(cfg *config.AppConfig) app.CursorPolicy {
	if cfg.AdvanceCursor {
		return app.CursorAdvance
	}
	return app.CursorFixed
}
