package services

import (
	"context"
	"database/sql"
	"strings"
	"unicode/utf8"

	"github.com/vytor/lingualearn/internal/errors"
	"github.com/vytor/lingualearn/internal/logger"
	"github.com/vytor/lingualearn/internal/models"
	"github.com/vytor/lingualearn/internal/repository"
)

const maxDisplayNameLength = 64

// UserService handles learner profile business logic
type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, username string) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	SelectUser(ctx context.Context, id int64) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	UpdateDisplayName(ctx context.Context, id int64, displayName string) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	cache    OfflineCache
}

// NewUserService creates a new UserService. cache may be nil.
func NewUserService(userRepo repository.UserRepository, cache OfflineCache) UserService {
	return &userService{userRepo: userRepo, cache: cache}
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing users")

	users, err := s.userRepo.List(ctx)
	if err != nil {
		log.Error("failed to list users: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (s *userService) CreateUser(ctx context.Context, username string) (*models.User, error) {
	log := logger.FromContext(ctx)
	username = strings.ToLower(strings.TrimSpace(username))
	log.Debug("creating user: username=%s", username)

	if username == "" {
		return nil, errors.NewValidationError("username", "cannot be empty")
	}

	user, err := s.userRepo.Upsert(ctx, username)
	if err != nil {
		log.Error("failed to create user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting user: id=%d", id)

	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("user", id)
		}
		log.Error("failed to get user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", id)
	}
	return user, nil
}

// SelectUser makes id the active profile and records a login event.
func (s *userService) SelectUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Event(models.EventUserLogin, map[string]any{"user_id": user.ID})
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting user: id=%d", id)

	if err := s.userRepo.Delete(ctx, id); err != nil {
		log.Error("failed to delete user: %v", err)
		return errors.NewInternalError(err)
	}

	if s.cache != nil {
		if err := s.cache.Clear(ctx, id); err != nil {
			log.Warn("failed to clear offline cache for user %d: %v", id, err)
		}
	}
	return nil
}

func (s *userService) UpdateDisplayName(ctx context.Context, id int64, displayName string) (*models.User, error) {
	log := logger.FromContext(ctx)
	displayName = strings.TrimSpace(displayName)

	if n := utf8.RuneCountInString(displayName); n == 0 || n > maxDisplayNameLength {
		return nil, errors.NewValidationError("display_name", "must be between 1 and 64 characters")
	}

	if err := s.userRepo.UpdateDisplayName(ctx, id, displayName); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("user", id)
		}
		log.Error("failed to update display name: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Event(models.EventProfileUpdate, map[string]any{"user_id": id})
	return s.GetUser(ctx, id)
}
