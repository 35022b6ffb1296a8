package repository

import (
	"context"
	"time"

	"github.com/vytor/lingualearn/internal/models"
)

// UserRepository handles learner profile data access
type UserRepository interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Upsert(ctx context.Context, username string) (*models.User, error)
	UpdateDisplayName(ctx context.Context, id int64, displayName string) error
	UpdateSync(ctx context.Context, id int64, t time.Time) error
	Delete(ctx context.Context, id int64) error
}

// LessonRepository handles lesson data access
type LessonRepository interface {
	Get(ctx context.Context, id string) (*models.Lesson, error)
	List(ctx context.Context, filter models.LessonFilter) ([]models.Lesson, error)
	Count(ctx context.Context, filter models.LessonFilter) (int, error)
	Upsert(ctx context.Context, lesson models.Lesson) error
	UpsertBatch(ctx context.Context, lessons []models.Lesson) error
}

// FlashcardRepository handles per-user flashcard data access
type FlashcardRepository interface {
	Get(ctx context.Context, id string, userID int64) (*models.Flashcard, error)
	ListForLesson(ctx context.Context, userID int64, lessonID string) ([]models.Flashcard, error)
	ListForUser(ctx context.Context, userID int64) ([]models.Flashcard, error)
	InsertBatch(ctx context.Context, cards []models.Flashcard) error
	Update(ctx context.Context, card models.Flashcard) error
	InsertReviewHistory(ctx context.Context, history models.ReviewHistory) error
}

// ProgressRepository handles lesson completion data access
type ProgressRepository interface {
	MarkComplete(ctx context.Context, progress models.LessonProgress) error
	ListForUser(ctx context.Context, userID int64) ([]models.LessonProgress, error)
}
