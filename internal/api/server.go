package api

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/vytor/lingualearn/internal/jobs"
	"github.com/vytor/lingualearn/internal/services"
)

// Pinger reports whether the primary database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	DB               Pinger
	UserService      services.UserService
	LessonService    services.LessonService
	FlashcardService services.FlashcardService
	QuizService      services.QuizService
	ProgressService  services.ProgressService
	JobQueue         jobs.JobQueue
}

var validate = validator.New(validator.WithRequiredStructEnabled())
