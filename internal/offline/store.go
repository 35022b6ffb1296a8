// Package offline keeps a local copy of lessons and progress so the app keeps
// working when the primary database cannot be reached. Completions recorded
// while offline are queued as pending until they are synced.
package offline

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vytor/lingualearn/internal/logger"
	"github.com/vytor/lingualearn/internal/models"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS lessons (
	id TEXT PRIMARY KEY,
	level TEXT NOT NULL,
	position INTEGER NOT NULL,
	data TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS progress (
	user_id INTEGER NOT NULL,
	lesson_id TEXT NOT NULL,
	completed INTEGER NOT NULL,
	PRIMARY KEY (user_id, lesson_id)
);
CREATE TABLE IF NOT EXISTS pending (
	user_id INTEGER NOT NULL,
	lesson_id TEXT NOT NULL,
	completed_at INTEGER NOT NULL,
	PRIMARY KEY (user_id, lesson_id)
);`

// PendingCompletion is a lesson completion that has not reached the primary
// store yet.
type PendingCompletion struct {
	UserID      int64
	LessonID    string
	CompletedAt time.Time
}

// Store is the offline cache backed by a local sqlite file.
type Store struct {
	db  *sql.DB
	log *logger.Logger
}

// Open opens (or creates) the cache at path.
func Open(path string) (*Store, error) {
	log := logger.Default().WithPrefix("offline")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open offline cache: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply offline schema: %w", err)
	}

	log.Info("offline cache ready: %s", path)
	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// StoreLessons replaces the cached lesson set. Order is preserved.
func (s *Store) StoreLessons(ctx context.Context, lessons []models.Lesson) error {
	return s.tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM lessons`); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO lessons (id, level, position, data) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, l := range lessons {
			data, err := json.Marshal(l)
			if err != nil {
				return fmt.Errorf("encode lesson %s: %w", l.ID, err)
			}
			if _, err := stmt.ExecContext(ctx, l.ID, l.Level, i, string(data)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Lessons returns a page of cached lessons matching filter and the total
// number of matches.
func (s *Store) Lessons(ctx context.Context, filter models.LessonFilter) ([]models.Lesson, int, error) {
	where := ""
	var args []any
	if filter.Level != "" {
		where = ` WHERE level = ?`
		args = append(args, filter.Level)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lessons`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM lessons`+where+` ORDER BY position LIMIT ? OFFSET ?`,
		append(args, limit, max(filter.Offset, 0))...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, 0, err
		}
		var l models.Lesson
		if err := json.Unmarshal([]byte(data), &l); err != nil {
			return nil, 0, fmt.Errorf("decode cached lesson: %w", err)
		}
		lessons = append(lessons, l)
	}
	return lessons, total, rows.Err()
}

// Lesson returns one cached lesson, or nil when it is not cached.
func (s *Store) Lesson(ctx context.Context, id string) (*models.Lesson, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM lessons WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var l models.Lesson
	if err := json.Unmarshal([]byte(data), &l); err != nil {
		return nil, fmt.Errorf("decode cached lesson: %w", err)
	}
	return &l, nil
}

// StoreProgress replaces the cached progress map of a user.
func (s *Store) StoreProgress(ctx context.Context, userID int64, lessons map[string]bool) error {
	return s.tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM progress WHERE user_id = ?`, userID); err != nil {
			return err
		}
		for lessonID, completed := range lessons {
			if _, err := tx.ExecContext(ctx, `INSERT INTO progress (user_id, lesson_id, completed) VALUES (?, ?, ?)`,
				userID, lessonID, completed); err != nil {
				return err
			}
		}
		return nil
	})
}

// Progress returns the cached progress map of a user with pending
// completions merged in. The map is never nil.
func (s *Store) Progress(ctx context.Context, userID int64) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT lesson_id, completed FROM progress WHERE user_id = ?
		UNION ALL
		SELECT lesson_id, 1 FROM pending WHERE user_id = ?`, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	progress := make(map[string]bool)
	for rows.Next() {
		var lessonID string
		var completed bool
		if err := rows.Scan(&lessonID, &completed); err != nil {
			return nil, err
		}
		progress[lessonID] = progress[lessonID] || completed
	}
	return progress, rows.Err()
}

// MarkPending queues a completion for the next sync. Marking the same lesson
// twice keeps the first timestamp.
func (s *Store) MarkPending(ctx context.Context, userID int64, lessonID string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO pending (user_id, lesson_id, completed_at) VALUES (?, ?, ?)`,
		userID, lessonID, at.UnixMilli())
	if err == nil {
		s.log.Debug("queued offline completion user=%d lesson=%s", userID, lessonID)
	}
	return err
}

// Pending lists queued completions of a user, oldest first.
func (s *Store) Pending(ctx context.Context, userID int64) ([]PendingCompletion, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT lesson_id, completed_at FROM pending WHERE user_id = ? ORDER BY completed_at, lesson_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pending []PendingCompletion
	for rows.Next() {
		p := PendingCompletion{UserID: userID}
		var ms int64
		if err := rows.Scan(&p.LessonID, &ms); err != nil {
			return nil, err
		}
		p.CompletedAt = time.UnixMilli(ms).UTC()
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

// ClearPending removes the given lessons from a user's queue.
func (s *Store) ClearPending(ctx context.Context, userID int64, lessonIDs []string) error {
	return s.tx(ctx, func(tx *sql.Tx) error {
		for _, id := range lessonIDs {
			if _, err := tx.ExecContext(ctx, `DELETE FROM pending WHERE user_id = ? AND lesson_id = ?`, userID, id); err != nil {
				return err
			}
		}
		return nil
	})
}

// Clear drops everything cached for a user. Lessons are shared and kept.
func (s *Store) Clear(ctx context.Context, userID int64) error {
	return s.tx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"progress", "pending"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE user_id = ?`, userID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) tx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
