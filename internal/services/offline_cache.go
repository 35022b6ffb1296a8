package services

import (
	"context"
	"time"

	"github.com/vytor/lingualearn/internal/models"
	"github.com/vytor/lingualearn/internal/offline"
)

// OfflineCache is the local copy of lessons and progress used when the
// primary store is unreachable. *offline.Store implements it.
type OfflineCache interface {
	StoreLessons(ctx context.Context, lessons []models.Lesson) error
	Lessons(ctx context.Context, filter models.LessonFilter) ([]models.Lesson, int, error)
	Lesson(ctx context.Context, id string) (*models.Lesson, error)
	StoreProgress(ctx context.Context, userID int64, lessons map[string]bool) error
	Progress(ctx context.Context, userID int64) (map[string]bool, error)
	MarkPending(ctx context.Context, userID int64, lessonID string, at time.Time) error
	Pending(ctx context.Context, userID int64) ([]offline.PendingCompletion, error)
	ClearPending(ctx context.Context, userID int64, lessonIDs []string) error
	Clear(ctx context.Context, userID int64) error
}

var _ OfflineCache = (*offline.Store)(nil)
