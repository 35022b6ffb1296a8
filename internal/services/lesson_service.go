package services

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/vytor/lingualearn/internal/errors"
	"github.com/vytor/lingualearn/internal/lesson"
	"github.com/vytor/lingualearn/internal/logger"
	"github.com/vytor/lingualearn/internal/models"
	"github.com/vytor/lingualearn/internal/repository"
)

const maxLessonPageSize = 200

// LessonService handles lesson catalogue business logic
type LessonService interface {
	ListLessons(ctx context.Context, filter models.LessonFilter) (*models.LessonList, error)
	GetLesson(ctx context.Context, userID int64, id string) (*models.Lesson, error)
	SeedLessons(ctx context.Context) (int, error)
	ImportLessons(ctx context.Context, lessons []models.Lesson) (int, error)
}

type lessonService struct {
	lessonRepo repository.LessonRepository
	cache      OfflineCache
}

// NewLessonService creates a new LessonService. cache may be nil, in which
// case primary store failures are returned as-is.
func NewLessonService(lessonRepo repository.LessonRepository, cache OfflineCache) LessonService {
	return &lessonService{lessonRepo: lessonRepo, cache: cache}
}

func (s *lessonService) ListLessons(ctx context.Context, filter models.LessonFilter) (*models.LessonList, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing lessons: level=%s limit=%d offset=%d", filter.Level, filter.Limit, filter.Offset)

	if filter.Level != "" && !models.ValidLevel(filter.Level) {
		return nil, errors.NewValidationError("level", "must be beginner, intermediate or advanced")
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, errors.NewValidationError("limit", "limit and offset cannot be negative")
	}
	filter.Limit = min(filter.Limit, maxLessonPageSize)

	lessons, total, err := s.fromPrimary(ctx, filter)
	if err == nil {
		s.refreshCache(ctx, filter, lessons, total)
		return &models.LessonList{Lessons: lessons, Total: total}, nil
	}

	log.Warn("primary lesson store unavailable: %v", err)
	if s.cache == nil {
		return nil, errors.NewInternalError(err)
	}

	lessons, total, cacheErr := s.cache.Lessons(ctx, filter)
	if cacheErr != nil {
		log.Error("offline lesson cache unavailable: %v", cacheErr)
		return nil, errors.NewUnavailableError(stderrors.Join(err, cacheErr))
	}
	log.Info("serving %d lessons from offline cache", len(lessons))
	return &models.LessonList{Lessons: nonNil(lessons), Total: total, Offline: true}, nil
}

func (s *lessonService) fromPrimary(ctx context.Context, filter models.LessonFilter) ([]models.Lesson, int, error) {
	lessons, err := s.lessonRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.lessonRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return nonNil(lessons), total, nil
}

// refreshCache stores the full catalogue offline. When the page already holds
// every lesson it is stored directly; otherwise the catalogue is reloaded.
func (s *lessonService) refreshCache(ctx context.Context, filter models.LessonFilter, page []models.Lesson, total int) {
	if s.cache == nil {
		return
	}
	log := logger.FromContext(ctx)

	all := page
	if filter.Level != "" || filter.Offset > 0 || len(page) < total {
		var err error
		all, err = s.lessonRepo.List(ctx, models.LessonFilter{Limit: max(total, maxLessonPageSize)})
		if err != nil {
			log.Warn("failed to load lessons for offline cache: %v", err)
			return
		}
	}
	if err := s.cache.StoreLessons(ctx, all); err != nil {
		log.Warn("failed to refresh offline lesson cache: %v", err)
	}
}

func (s *lessonService) GetLesson(ctx context.Context, userID int64, id string) (*models.Lesson, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting lesson: id=%s", id)

	l, err := loadLesson(ctx, s.lessonRepo, s.cache, id)
	if err != nil {
		return nil, err
	}

	log.Event(models.EventLessonStart, map[string]any{"user_id": userID, "lesson_id": l.ID})
	return l, nil
}

func (s *lessonService) SeedLessons(ctx context.Context) (int, error) {
	return s.ImportLessons(ctx, lesson.StarterLessons())
}

// ImportLessons validates and upserts lessons. Lessons without an ID get one
// derived from their title so repeated imports update in place.
func (s *lessonService) ImportLessons(ctx context.Context, lessons []models.Lesson) (int, error) {
	log := logger.FromContext(ctx)
	log.Info("importing %d lessons", len(lessons))

	for i := range lessons {
		l := &lessons[i]
		l.Title = strings.TrimSpace(l.Title)
		if l.Title == "" {
			return 0, errors.NewValidationError("title", "cannot be empty")
		}
		if !models.ValidLevel(l.Level) {
			return 0, errors.NewValidationError("level", "invalid level "+l.Level+" for "+l.Title)
		}
		if len(lesson.ParseEntries(l.Content)) == 0 {
			return 0, errors.NewValidationError("content", "no entries in "+l.Title)
		}
		if l.ID == "" {
			l.ID = lesson.StableID(l.Title)
		}
	}

	if len(lessons) == 0 {
		return 0, nil
	}
	if err := s.lessonRepo.UpsertBatch(ctx, lessons); err != nil {
		log.Error("failed to import lessons: %v", err)
		return 0, errors.NewInternalError(err)
	}
	return len(lessons), nil
}

// loadLesson reads a lesson from the primary store, falling back to the
// offline cache when the store fails.
func loadLesson(ctx context.Context, repo repository.LessonRepository, cache OfflineCache, id string) (*models.Lesson, error) {
	log := logger.FromContext(ctx)

	l, err := repo.Get(ctx, id)
	if err == nil {
		if l == nil {
			return nil, errors.NewNotFoundError("lesson", id)
		}
		return l, nil
	}

	log.Warn("primary lesson store unavailable: %v", err)
	if cache == nil {
		return nil, errors.NewInternalError(err)
	}
	l, cacheErr := cache.Lesson(ctx, id)
	if cacheErr != nil {
		log.Error("offline lesson cache unavailable: %v", cacheErr)
		return nil, errors.NewUnavailableError(stderrors.Join(err, cacheErr))
	}
	if l == nil {
		return nil, errors.NewNotFoundError("lesson", id)
	}
	return l, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
