package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lingualearn/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:             ":8080",
		DBPath:           "test.db",
		OfflineCachePath: "cache.db",
		LogLevel:         "INFO",
		SyncWorkerCount:  2,
		SyncQueueSize:    32,
		SyncInterval:     15 * time.Minute,
		QuizPassingScore: 70,
		QuizOptionCount:  4,
		DueLimit:         50,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyPaths(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""
	cfg.DBPath = ""
	cfg.OfflineCachePath = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
	assert.Contains(t, err.Error(), "OFFLINE_CACHE_PATH cannot be empty")
}

func TestValidate_LogLevel(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"DEBUG", true},
		{"INFO", true},
		{"WARN", true},
		{"ERROR", true},
		{"debug", true},
		{"", false},
		{"INVALID", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "LOG_LEVEL")
			}
		})
	}
}

func TestValidate_Bounds(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*config.Config)
		expectedError string
	}{
		{
			name:          "zero sync workers",
			mutate:        func(c *config.Config) { c.SyncWorkerCount = 0 },
			expectedError: "SYNC_WORKER_COUNT",
		},
		{
			name:          "zero sync queue",
			mutate:        func(c *config.Config) { c.SyncQueueSize = 0 },
			expectedError: "SYNC_QUEUE_SIZE",
		},
		{
			name:          "sync interval too short",
			mutate:        func(c *config.Config) { c.SyncInterval = 10 * time.Second },
			expectedError: "SYNC_INTERVAL",
		},
		{
			name:          "passing score too high",
			mutate:        func(c *config.Config) { c.QuizPassingScore = 101 },
			expectedError: "QUIZ_PASSING_SCORE",
		},
		{
			name:          "passing score zero",
			mutate:        func(c *config.Config) { c.QuizPassingScore = 0 },
			expectedError: "QUIZ_PASSING_SCORE",
		},
		{
			name:          "single quiz option",
			mutate:        func(c *config.Config) { c.QuizOptionCount = 1 },
			expectedError: "QUIZ_OPTION_COUNT",
		},
		{
			name:          "negative due limit",
			mutate:        func(c *config.Config) { c.DueLimit = -1 },
			expectedError: "DUE_LIMIT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	for _, key := range []string{"ADDR", "DB_PATH", "OFFLINE_CACHE_PATH", "LOG_LEVEL", "SYNC_WORKER_COUNT",
		"SYNC_QUEUE_SIZE", "SYNC_INTERVAL", "QUIZ_PASSING_SCORE", "QUIZ_OPTION_COUNT", "DUE_LIMIT"} {
		assert.Contains(t, errStr, key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "DB_PATH", "SYNC_INTERVAL", "QUIZ_PASSING_SCORE"} {
		t.Setenv(key, "")
	}

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:lingualearn.db", cfg.DBPath)
	assert.Equal(t, 15*time.Minute, cfg.SyncInterval)
	assert.Equal(t, 70, cfg.QuizPassingScore)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SYNC_INTERVAL", "5m")
	t.Setenv("DUE_LIMIT", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, 5*time.Minute, cfg.SyncInterval)
	assert.Equal(t, 50, cfg.DueLimit, "invalid integers fall back to the default")
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("QUIZ_OPTION_COUNT=6\n"), 0o600))
	os.Unsetenv("QUIZ_OPTION_COUNT")
	t.Cleanup(func() { os.Unsetenv("QUIZ_OPTION_COUNT") })

	cfg := config.Load(path)

	assert.Equal(t, 6, cfg.QuizOptionCount)
}
