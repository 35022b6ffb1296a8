package testutil

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lingualearn/internal/db"
	"github.com/vytor/lingualearn/internal/models"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// A single connection is kept open so every query sees the same database.
func NewTestDB(t *testing.T) *sql.DB {
	sqlDB, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(context.Background(), sqlDB), "failed to apply migrations")
	return sqlDB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// InsertUser creates a user row and returns its ID.
func InsertUser(t *testing.T, sqlDB *sql.DB, username string) int64 {
	res, err := sqlDB.Exec(`INSERT INTO users (username) VALUES (?)`, username)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

// InsertLesson creates a lesson row.
func InsertLesson(t *testing.T, sqlDB *sql.DB, lesson models.Lesson) {
	_, err := sqlDB.Exec(`
		INSERT INTO lessons (id, title, description, content, level, duration)
		VALUES (?, ?, ?, ?, ?, ?)
	`, lesson.ID, lesson.Title, lesson.Description, lesson.Content, lesson.Level, lesson.Duration)
	require.NoError(t, err)
}

// Greetings is a small lesson used across tests.
func Greetings() models.Lesson {
	return models.Lesson{
		ID:          "lesson-greetings",
		Title:       "Basic Greetings",
		Description: "Learn essential greetings and introductions",
		Content:     "Hello = Hola\nGoodbye = Adiós\nGood morning = Buenos días\nGood afternoon = Buenas tardes\nGood night = Buenas noches",
		Level:       models.LevelBeginner,
		Duration:    15,
	}
}
