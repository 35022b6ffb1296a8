package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/lingualearn/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) MarkComplete(ctx context.Context, progress models.LessonProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockProgressRepository) ListForUser(ctx context.Context, userID int64) ([]models.LessonProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LessonProgress), args.Error(1)
}
