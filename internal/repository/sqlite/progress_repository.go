package sqlite

import (
	"context"
	"database/sql"

	"github.com/vytor/lingualearn/internal/logger"
	"github.com/vytor/lingualearn/internal/models"
	"github.com/vytor/lingualearn/internal/repository"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

// MarkComplete records a completion. An existing completion keeps its
// original timestamp.
func (r *progressRepository) MarkComplete(ctx context.Context, p models.LessonProgress) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("marking lesson complete: user_id=%d, lesson_id=%s, offline=%t", p.UserID, p.LessonID, p.SyncedFromOffline)

	sqlStr, args, err := sqlBuilder.Insert("lesson_progress").
		Columns("user_id", "lesson_id", "completed", "completed_at", "synced_from_offline").
		Values(p.UserID, p.LessonID, true, p.CompletedAt, p.SyncedFromOffline).
		Suffix(`ON CONFLICT(user_id, lesson_id) DO UPDATE SET
    completed = 1,
    completed_at = COALESCE(lesson_progress.completed_at, excluded.completed_at)`).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}

	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		log.Error("failed to mark lesson complete: %v", err)
		return err
	}
	return nil
}

func (r *progressRepository) ListForUser(ctx context.Context, userID int64) ([]models.LessonProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing progress: user_id=%d", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT user_id, lesson_id, completed, completed_at, synced_from_offline
FROM lesson_progress
WHERE user_id = ?
ORDER BY completed_at ASC, lesson_id ASC
`, userID)
	if err != nil {
		log.Error("failed to list progress: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.LessonProgress
	for rows.Next() {
		var p models.LessonProgress
		if err := rows.Scan(&p.UserID, &p.LessonID, &p.Completed, &p.CompletedAt, &p.SyncedFromOffline); err != nil {
			log.Error("failed to scan progress row: %v", err)
			return nil, err
		}
		out = append(out, p)
	}
	log.Debug("found %d completed lessons", len(out))
	return out, rows.Err()
}
