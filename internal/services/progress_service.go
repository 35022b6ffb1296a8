package services

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/vytor/lingualearn/internal/errors"
	"github.com/vytor/lingualearn/internal/flashcard"
	"github.com/vytor/lingualearn/internal/logger"
	"github.com/vytor/lingualearn/internal/models"
	"github.com/vytor/lingualearn/internal/repository"
)

// ProgressService handles lesson completion and offline sync
type ProgressService interface {
	MarkLessonComplete(ctx context.Context, userID int64, lessonID string) (*models.CompletionResult, error)
	GetProgress(ctx context.Context, userID int64) (*models.Progress, error)
	SyncOfflineData(ctx context.Context, userID int64) (int, error)
}

type progressService struct {
	progressRepo repository.ProgressRepository
	userRepo     repository.UserRepository
	cache        OfflineCache
	clock        flashcard.Clock
}

// NewProgressService creates a new ProgressService. Without a cache, primary
// store failures are returned to the caller instead of being queued.
func NewProgressService(
	progressRepo repository.ProgressRepository,
	userRepo repository.UserRepository,
	cache OfflineCache,
	clock flashcard.Clock,
) ProgressService {
	if clock == nil {
		clock = flashcard.SystemClock{}
	}
	return &progressService{
		progressRepo: progressRepo,
		userRepo:     userRepo,
		cache:        cache,
		clock:        clock,
	}
}

func (s *progressService) MarkLessonComplete(ctx context.Context, userID int64, lessonID string) (*models.CompletionResult, error) {
	log := logger.FromContext(ctx)
	lessonID = strings.TrimSpace(lessonID)
	if lessonID == "" {
		return nil, errors.NewValidationError("lesson_id", "cannot be empty")
	}

	now := s.clock.Now()
	result := &models.CompletionResult{LessonID: lessonID}

	err := s.progressRepo.MarkComplete(ctx, models.LessonProgress{
		UserID:      userID,
		LessonID:    lessonID,
		Completed:   true,
		CompletedAt: &now,
	})
	switch {
	case err == nil:
		s.refreshCache(ctx, userID)
	case s.cache == nil:
		log.Error("failed to mark lesson complete: %v", err)
		return nil, errors.NewInternalError(err)
	default:
		log.Warn("primary store unavailable, queueing completion offline: %v", err)
		if cacheErr := s.cache.MarkPending(ctx, userID, lessonID, now); cacheErr != nil {
			log.Error("failed to queue offline completion: %v", cacheErr)
			return nil, errors.NewUnavailableError(stderrors.Join(err, cacheErr))
		}
		result.Offline = true
	}

	log.Event(models.EventLessonComplete, map[string]any{
		"user_id":   userID,
		"lesson_id": lessonID,
		"offline":   result.Offline,
	})
	return result, nil
}

func (s *progressService) GetProgress(ctx context.Context, userID int64) (*models.Progress, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting progress: user_id=%d", userID)

	lessons, err := s.primaryProgress(ctx, userID)
	if err == nil {
		s.storeProgress(ctx, userID, lessons)
		s.mergePending(ctx, userID, lessons)
		return &models.Progress{UserID: userID, Lessons: lessons}, nil
	}

	log.Warn("primary progress store unavailable: %v", err)
	if s.cache == nil {
		return nil, errors.NewInternalError(err)
	}
	lessons, cacheErr := s.cache.Progress(ctx, userID)
	if cacheErr != nil {
		log.Error("offline progress cache unavailable: %v", cacheErr)
		return nil, errors.NewUnavailableError(stderrors.Join(err, cacheErr))
	}
	if lessons == nil {
		lessons = map[string]bool{}
	}
	return &models.Progress{UserID: userID, Lessons: lessons, Offline: true}, nil
}

// SyncOfflineData pushes queued completions to the primary store and returns
// how many were synced. Completions that fail stay queued for the next run.
func (s *progressService) SyncOfflineData(ctx context.Context, userID int64) (int, error) {
	log := logger.FromContext(ctx)
	if s.cache == nil {
		return 0, nil
	}

	pending, err := s.cache.Pending(ctx, userID)
	if err != nil {
		log.Error("failed to read pending completions: %v", err)
		return 0, errors.NewInternalError(err)
	}

	var synced []string
	var syncErr error
	for _, p := range pending {
		completedAt := p.CompletedAt
		err := s.progressRepo.MarkComplete(ctx, models.LessonProgress{
			UserID:            userID,
			LessonID:          p.LessonID,
			Completed:         true,
			CompletedAt:       &completedAt,
			SyncedFromOffline: true,
		})
		if err != nil {
			syncErr = err
			break
		}
		synced = append(synced, p.LessonID)
	}

	if len(synced) > 0 {
		if err := s.cache.ClearPending(ctx, userID, synced); err != nil {
			log.Warn("failed to clear synced completions: %v", err)
		}
	}
	if syncErr != nil {
		log.Warn("sync stopped after %d of %d completions: %v", len(synced), len(pending), syncErr)
		return len(synced), errors.NewUnavailableError(syncErr)
	}

	if err := s.userRepo.UpdateSync(ctx, userID, s.clock.Now()); err != nil {
		log.Warn("failed to update last sync time: %v", err)
	}
	s.refreshCache(ctx, userID)

	if len(synced) > 0 {
		log.Info("synced %d offline completions for user_id=%d", len(synced), userID)
	}
	return len(synced), nil
}

func (s *progressService) primaryProgress(ctx context.Context, userID int64) (map[string]bool, error) {
	rows, err := s.progressRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	lessons := make(map[string]bool, len(rows))
	for _, p := range rows {
		lessons[p.LessonID] = p.Completed
	}
	return lessons, nil
}

func (s *progressService) refreshCache(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	lessons, err := s.primaryProgress(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Warn("failed to load progress for offline cache: %v", err)
		return
	}
	s.storeProgress(ctx, userID, lessons)
}

func (s *progressService) storeProgress(ctx context.Context, userID int64, lessons map[string]bool) {
	if s.cache == nil {
		return
	}
	if err := s.cache.StoreProgress(ctx, userID, lessons); err != nil {
		logger.FromContext(ctx).Warn("failed to refresh offline progress cache: %v", err)
	}
}

// mergePending marks completions still waiting for sync as done.
func (s *progressService) mergePending(ctx context.Context, userID int64, lessons map[string]bool) {
	if s.cache == nil {
		return
	}
	pending, err := s.cache.Pending(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Warn("failed to read pending completions: %v", err)
		return
	}
	for _, p := range pending {
		lessons[p.LessonID] = true
	}
}
