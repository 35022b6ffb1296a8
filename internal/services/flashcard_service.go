package services

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/vytor/lingualearn/internal/errors"
	"github.com/vytor/lingualearn/internal/flashcard"
	"github.com/vytor/lingualearn/internal/lesson"
	"github.com/vytor/lingualearn/internal/logger"
	"github.com/vytor/lingualearn/internal/models"
	"github.com/vytor/lingualearn/internal/repository"
)

// FlashcardService handles flashcard-related business logic
type FlashcardService interface {
	LessonFlashcards(ctx context.Context, userID int64, lessonID string) ([]models.Flashcard, error)
	DueFlashcards(ctx context.Context, userID int64, limit int) ([]models.Flashcard, error)
	ReviewFlashcard(ctx context.Context, userID int64, flashcardID string, success bool) (*models.Flashcard, error)
}

type flashcardService struct {
	cardRepo   repository.FlashcardRepository
	lessonRepo repository.LessonRepository
	cache      OfflineCache
	clock      flashcard.Clock
	dueLimit   int
}

// NewFlashcardService creates a new FlashcardService. dueLimit caps
// DueFlashcards when the caller passes no limit.
func NewFlashcardService(
	cardRepo repository.FlashcardRepository,
	lessonRepo repository.LessonRepository,
	cache OfflineCache,
	clock flashcard.Clock,
	dueLimit int,
) FlashcardService {
	if clock == nil {
		clock = flashcard.SystemClock{}
	}
	return &flashcardService{
		cardRepo:   cardRepo,
		lessonRepo: lessonRepo,
		cache:      cache,
		clock:      clock,
		dueLimit:   dueLimit,
	}
}

// LessonFlashcards returns the user's cards for a lesson, creating them from
// the lesson content on first access.
func (s *flashcardService) LessonFlashcards(ctx context.Context, userID int64, lessonID string) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting lesson flashcards: user_id=%d lesson_id=%s", userID, lessonID)

	cards, err := s.cardRepo.ListForLesson(ctx, userID, lessonID)
	if err != nil {
		log.Error("failed to list flashcards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if len(cards) > 0 {
		return cards, nil
	}

	l, err := loadLesson(ctx, s.lessonRepo, s.cache, lessonID)
	if err != nil {
		return nil, err
	}

	entries := lesson.ParseEntries(l.Content)
	if len(entries) == 0 {
		return []models.Flashcard{}, nil
	}

	now := s.clock.Now()
	cards = make([]models.Flashcard, 0, len(entries))
	for i, e := range entries {
		cards = append(cards, models.Flashcard{
			ID:        uuid.NewString(),
			UserID:    userID,
			LessonID:  l.ID,
			Position:  i,
			Front:     e.Term,
			Back:      e.Definition,
			CreatedAt: now,
		})
	}

	if err := s.cardRepo.InsertBatch(ctx, cards); err != nil {
		log.Error("failed to create flashcards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("created %d flashcards for lesson %s", len(cards), l.ID)

	// A concurrent request may have created the same positions first.
	stored, err := s.cardRepo.ListForLesson(ctx, userID, lessonID)
	if err != nil {
		log.Error("failed to list flashcards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stored, nil
}

func (s *flashcardService) DueFlashcards(ctx context.Context, userID int64, limit int) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 || limit > s.dueLimit {
		limit = s.dueLimit
	}

	cards, err := s.cardRepo.ListForUser(ctx, userID)
	if err != nil {
		log.Error("failed to list flashcards: %v", err)
		return nil, errors.NewInternalError(err)
	}

	due := flashcard.DueCards(cards, s.clock.Now())
	log.Debug("found %d due flashcards of %d for user_id=%d", len(due), len(cards), userID)
	if len(due) > limit {
		due = due[:limit]
	}
	return nonNil(due), nil
}

func (s *flashcardService) ReviewFlashcard(ctx context.Context, userID int64, flashcardID string, success bool) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)
	log.Debug("reviewing flashcard: flashcard_id=%s, success=%t", flashcardID, success)

	card, err := s.cardRepo.Get(ctx, flashcardID, userID)
	if err != nil {
		log.Error("failed to get flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("flashcard", flashcardID)
	}

	now := s.clock.Now()
	updated := flashcard.RecordReview(*card, success, now)
	log.Debug("applied review, difficulty %d -> %d days", card.Difficulty, updated.Difficulty)

	if err := s.cardRepo.Update(ctx, updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("flashcard", flashcardID)
		}
		log.Error("failed to update flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}

	history := models.ReviewHistory{
		FlashcardID: updated.ID,
		Success:     success,
		Difficulty:  updated.Difficulty,
		ReviewedAt:  now,
	}
	if err := s.cardRepo.InsertReviewHistory(ctx, history); err != nil {
		// Don't fail the review if history storage fails
		log.Warn("failed to store review history: %v", err)
	}

	return &updated, nil
}
