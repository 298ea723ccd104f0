package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/telebot.v3"

	"rent_tracker/internal/app"
	"rent_tracker/internal/domain/notify"
	"rent_tracker/internal/domain/reconcile"
	"rent_tracker/internal/infra/akahu"
	"rent_tracker/internal/infra/config"
	idb "rent_tracker/internal/infra/database"
	"rent_tracker/internal/infra/logger"
	infranotify "rent_tracker/internal/infra/notify"
	"rent_tracker/internal/infra/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	log := logger.Log
	log.WithField("environment", cfg.Environment).Info("Rent Tracker starting")

	// Database and repositories
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Database connection established")

	userRepo := idb.NewPostgresUserRepository(db)
	propertyRepo := idb.NewPostgresPropertyRepository(db)
	ledgerRepo := idb.NewPostgresLedgerRepository(db)
	deliveryLogRepo := idb.NewPostgresDeliveryLogRepository(db)

	// Bank transaction source
	bankClient := akahu.NewClient(cfg.AkahuBaseURL, cfg.FetchTimeout)

	// Notification channels: email always, Telegram when a token is configured
	channels := infranotify.Multi{
		infranotify.NewEmailNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailSender, cfg.EmailPassword, deliveryLogRepo, log),
	}
	if cfg.TelegramToken != "" {
		bot, err := telebot.NewBot(telebot.Settings{
			Token:  cfg.TelegramToken,
			Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		})
		if err != nil {
			log.Fatalf("FATAL: Could not create Telegram bot: %v", err)
		}
		channels = append(channels, infranotify.NewTelegramNotifier(bot))
		log.Info("Telegram notification channel enabled")
	}
	var notifier notify.Notifier = channels

	// Reconciliation engine
	grace := reconcile.Grace{DaysBefore: cfg.GraceDaysBefore, DaysAfter: cfg.GraceDaysAfter}
	reconService := app.NewReconciliationService(
		userRepo,
		propertyRepo,
		ledgerRepo,
		bankClient,
		notifier,
		log,
		grace,
		cfg.FetchTimeout,
		cfg.MaxConcurrentChecks,
	)
	log.Info("Reconciliation service initialized")

	// Daily batch scheduler
	reconScheduler := scheduler.NewReconciliationScheduler(reconService, log, cfg.CronSpecDaily, cfg.LookbackDays)
	if err := reconScheduler.Start(); err != nil {
		log.Fatalf("FATAL: Could not start reconciliation scheduler: %v", err)
	}

	log.Info("Application setup complete")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down application...")
	reconScheduler.Stop()
	log.Info("Application shut down gracefully")
}
