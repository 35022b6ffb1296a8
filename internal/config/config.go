package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/vytor/lingualearn/internal/logger"
)

type Config struct {
	Addr             string
	DBPath           string
	OfflineCachePath string
	LogLevel         string
	SyncWorkerCount  int
	SyncQueueSize    int
	SyncInterval     time.Duration
	QuizPassingScore int
	QuizOptionCount  int
	DueLimit         int
}

// Load reads configuration from the given .env files (or ./.env when none are
// given) and environment variables, applying defaults when values are
// missing or invalid.
func Load(envFiles ...string) Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load(envFiles...)

	return Config{
		Addr:             envOr("ADDR", ":8080"),
		DBPath:           envOr("DB_PATH", "file:lingualearn.db"),
		OfflineCachePath: envOr("OFFLINE_CACHE_PATH", "lingualearn-cache.db"),
		LogLevel:         strings.ToUpper(envOr("LOG_LEVEL", "INFO")),
		SyncWorkerCount:  envIntOr("SYNC_WORKER_COUNT", 2),
		SyncQueueSize:    envIntOr("SYNC_QUEUE_SIZE", 32),
		SyncInterval:     envDurationOr("SYNC_INTERVAL", 15*time.Minute),
		QuizPassingScore: envIntOr("QUIZ_PASSING_SCORE", 70),
		QuizOptionCount:  envIntOr("QUIZ_OPTION_COUNT", 4),
		DueLimit:         envIntOr("DUE_LIMIT", 50),
	}
}

// Validate reports every invalid setting in a single error.
func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	if c.OfflineCachePath == "" {
		errs = append(errs, errors.New("OFFLINE_CACHE_PATH cannot be empty"))
	}
	if !logger.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q must be one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if c.SyncWorkerCount < 1 {
		errs = append(errs, fmt.Errorf("SYNC_WORKER_COUNT must be at least 1, got %d", c.SyncWorkerCount))
	}
	if c.SyncQueueSize < 1 {
		errs = append(errs, fmt.Errorf("SYNC_QUEUE_SIZE must be at least 1, got %d", c.SyncQueueSize))
	}
	if c.SyncInterval < time.Minute {
		errs = append(errs, fmt.Errorf("SYNC_INTERVAL must be at least 1m, got %s", c.SyncInterval))
	}
	if c.QuizPassingScore < 1 || c.QuizPassingScore > 100 {
		errs = append(errs, fmt.Errorf("QUIZ_PASSING_SCORE must be between 1 and 100, got %d", c.QuizPassingScore))
	}
	if c.QuizOptionCount < 2 || c.QuizOptionCount > 10 {
		errs = append(errs, fmt.Errorf("QUIZ_OPTION_COUNT must be between 2 and 10, got %d", c.QuizOptionCount))
	}
	if c.DueLimit < 1 {
		errs = append(errs, fmt.Errorf("DUE_LIMIT must be at least 1, got %d", c.DueLimit))
	}
	return errors.Join(errs...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
