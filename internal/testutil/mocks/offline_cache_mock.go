package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/lingualearn/internal/models"
	"github.com/vytor/lingualearn/internal/offline"
)

// MockOfflineCache is a mock implementation of services.OfflineCache
type MockOfflineCache struct {
	mock.Mock
}

func (m *MockOfflineCache) StoreLessons(ctx context.Context, lessons []models.Lesson) error {
	args := m.Called(ctx, lessons)
	return args.Error(0)
}

func (m *MockOfflineCache) Lessons(ctx context.Context, filter models.LessonFilter) ([]models.Lesson, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Lesson), args.Int(1), args.Error(2)
}

func (m *MockOfflineCache) Lesson(ctx context.Context, id string) (*models.Lesson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

func (m *MockOfflineCache) StoreProgress(ctx context.Context, userID int64, lessons map[string]bool) error {
	args := m.Called(ctx, userID, lessons)
	return args.Error(0)
}

func (m *MockOfflineCache) Progress(ctx context.Context, userID int64) (map[string]bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockOfflineCache) MarkPending(ctx context.Context, userID int64, lessonID string, at time.Time) error {
	args := m.Called(ctx, userID, lessonID, at)
	return args.Error(0)
}

func (m *MockOfflineCache) Pending(ctx context.Context, userID int64) ([]offline.PendingCompletion, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]offline.PendingCompletion), args.Error(1)
}

func (m *MockOfflineCache) ClearPending(ctx context.Context, userID int64, lessonIDs []string) error {
	args := m.Called(ctx, userID, lessonIDs)
	return args.Error(0)
}

func (m *MockOfflineCache) Clear(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
