package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/lingualearn/internal/models"
)

// MockFlashcardRepository is a mock implementation of repository.FlashcardRepository
type MockFlashcardRepository struct {
	mock.Mock
}

func (m *MockFlashcardRepository) Get(ctx context.Context, id string, userID int64) (*models.Flashcard, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) ListForLesson(ctx context.Context, userID int64, lessonID string) ([]models.Flashcard, error) {
	args := m.Called(ctx, userID, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) ListForUser(ctx context.Context, userID int64) ([]models.Flashcard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) InsertBatch(ctx context.Context, cards []models.Flashcard) error {
	args := m.Called(ctx, cards)
	return args.Error(0)
}

func (m *MockFlashcardRepository) Update(ctx context.Context, card models.Flashcard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockFlashcardRepository) InsertReviewHistory(ctx context.Context, history models.ReviewHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}
