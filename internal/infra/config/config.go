package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	DatabaseURL string

	// Bank API
	AkahuBaseURL string
	FetchTimeout time.Duration

	// Reconciliation
	CronSpecDaily       string // daily batch trigger
	LookbackDays        int    // reference date = today minus this many days
	GraceDaysBefore     int
	GraceDaysAfter      int
	MaxConcurrentChecks int // worker pool bound, sized to the bank API's rate limits

	// Email delivery
	SMTPHost      string
	SMTPPort      int
	EmailSender   string
	EmailPassword string

	// Optional Telegram delivery
	TelegramToken string

	LogLevel    string
	Environment string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.AkahuBaseURL = envOr("AKAHU_BASE_URL", "https://api.akahu.nz/v1")

	var err error
	if cfg.FetchTimeout, err = time.ParseDuration(envOr("FETCH_TIMEOUT", "30s")); err != nil {
		return nil, fmt.Errorf("invalid FETCH_TIMEOUT: %w", err)
	}

	cfg.CronSpecDaily = envOr("CRON_SPEC_DAILY", "0 9 * * *") // 9 AM every day

	if cfg.LookbackDays, err = envInt("LOOKBACK_DAYS", 1); err != nil {
		return nil, err
	}
	if cfg.GraceDaysBefore, err = envInt("GRACE_DAYS_BEFORE", 2); err != nil {
		return nil, err
	}
	if cfg.GraceDaysAfter, err = envInt("GRACE_DAYS_AFTER", 3); err != nil {
		return nil, err
	}
	if cfg.GraceDaysBefore < 0 || cfg.GraceDaysAfter < 0 {
		return nil, fmt.Errorf("grace days must not be negative")
	}
	if cfg.MaxConcurrentChecks, err = envInt("MAX_CONCURRENT_CHECKS", 4); err != nil {
		return nil, err
	}
	if cfg.MaxConcurrentChecks < 1 {
		return nil, fmt.Errorf("MAX_CONCURRENT_CHECKS must be at least 1")
	}

	cfg.SMTPHost = envOr("SMTP_HOST", "smtp.gmail.com")
	if cfg.SMTPPort, err = envInt("SMTP_PORT", 587); err != nil {
		return nil, err
	}
	// Sender credentials may be empty; the email notifier then runs in dev
	// mode and only logs what it would have sent.
	cfg.EmailSender = os.Getenv("EMAIL_SENDER")
	cfg.EmailPassword = os.Getenv("EMAIL_PASSWORD")

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")

	cfg.LogLevel = strings.ToLower(envOr("LOG_LEVEL", "info"))
	cfg.Environment = strings.ToLower(envOr("ENVIRONMENT", "development"))

	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
