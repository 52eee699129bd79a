package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"lifeflow/internal/dateutil"
	"lifeflow/internal/recurrence"
)

// Config keeps runtime settings for the planner daemon. Recurrence limits
// live here too: the engine takes them explicitly instead of reading any
// ambient global.
type Config struct {
	DatabaseURL    string
	TelegramToken  string // empty disables the alert notifier
	TelegramChatID int64
	SweepInterval  time.Duration
	ReportTime     string // HH:MM, daily alert report
	Recurrence     recurrence.Limits
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		SweepInterval: parseMinutes(strings.TrimSpace(os.Getenv("SWEEP_INTERVAL_MINUTES"))),
		ReportTime:    strings.TrimSpace(os.Getenv("REPORT_TIME")),
		Recurrence: recurrence.Limits{
			MaxOccurrences:        parsePositiveInt(strings.TrimSpace(os.Getenv("RECUR_MAX_OCCURRENCES"))),
			DefaultDurationMonths: parsePositiveInt(strings.TrimSpace(os.Getenv("RECUR_DEFAULT_DURATION_MONTHS"))),
		},
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "lifeflow.db"
	}
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = 30 * time.Minute
	}
	if cfg.ReportTime == "" {
		cfg.ReportTime = "20:00"
	}
	if cfg.Recurrence.MaxOccurrences == 0 {
		cfg.Recurrence.MaxOccurrences = recurrence.DefaultLimits.MaxOccurrences
	}
	if cfg.Recurrence.DefaultDurationMonths == 0 {
		cfg.Recurrence.DefaultDurationMonths = recurrence.DefaultLimits.DefaultDurationMonths
	}

	if _, _, err := dateutil.ParseClock(cfg.ReportTime); err != nil {
		return cfg, fmt.Errorf("REPORT_TIME: %w", err)
	}

	if raw := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("TELEGRAM_CHAT_ID must be numeric: %w", err)
		}
		cfg.TelegramChatID = chatID
	}
	if cfg.TelegramToken != "" && cfg.TelegramChatID == 0 {
		return cfg, fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	return cfg, nil
}

func parseMinutes(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return 0
	}
	return time.Duration(minutes) * time.Minute
}

func parsePositiveInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0
	}
	return value
}
