package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/vytor/lingualearn/internal/errors"
	"github.com/vytor/lingualearn/internal/lesson"
	"github.com/vytor/lingualearn/internal/logger"
	"github.com/vytor/lingualearn/internal/models"
	"github.com/vytor/lingualearn/internal/repository"
)

// QuizService builds multiple-choice quizzes from lesson content and grades
// submissions
type QuizService interface {
	GenerateQuiz(ctx context.Context, lessonID string) (*models.Quiz, error)
	SubmitQuiz(ctx context.Context, userID int64, lessonID string, answers map[string]string) (*models.QuizResult, error)
}

type QuizConfig struct {
	PassingScore int
	OptionCount  int
}

type quizService struct {
	lessonRepo repository.LessonRepository
	cache      OfflineCache
	progress   ProgressService
	cfg        QuizConfig

	mu  sync.Mutex
	rng *rand.Rand
}

// NewQuizService creates a new QuizService. rng drives option order.
func NewQuizService(
	lessonRepo repository.LessonRepository,
	cache OfflineCache,
	progress ProgressService,
	cfg QuizConfig,
	rng *rand.Rand,
) QuizService {
	return &quizService{
		lessonRepo: lessonRepo,
		cache:      cache,
		progress:   progress,
		cfg:        cfg,
		rng:        rng,
	}
}

func explanation(e lesson.Entry) string {
	return fmt.Sprintf("%q means %q.", e.Term, e.Definition)
}

func questionID(i int) string {
	return fmt.Sprintf("q%d", i+1)
}

func (s *quizService) entries(ctx context.Context, lessonID string) ([]lesson.Entry, error) {
	l, err := loadLesson(ctx, s.lessonRepo, s.cache, lessonID)
	if err != nil {
		return nil, err
	}
	entries := lesson.ParseEntries(l.Content)
	if len(entries) == 0 {
		return nil, errors.NewValidationError("lesson", "lesson has no quiz questions")
	}
	return entries, nil
}

func (s *quizService) GenerateQuiz(ctx context.Context, lessonID string) (*models.Quiz, error) {
	log := logger.FromContext(ctx)
	log.Debug("generating quiz: lesson_id=%s", lessonID)

	entries, err := s.entries(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	quiz := &models.Quiz{
		LessonID:     lessonID,
		PassingScore: s.cfg.PassingScore,
		Questions:    make([]models.Question, 0, len(entries)),
	}
	for i, e := range entries {
		quiz.Questions = append(quiz.Questions, models.Question{
			ID:            questionID(i),
			Text:          fmt.Sprintf("What is the translation of %q?", e.Term),
			Options:       s.options(entries, i),
			CorrectAnswer: e.Definition,
			Explanation:   explanation(e),
		})
	}
	return quiz, nil
}

// options returns the correct definition plus up to OptionCount-1 distinct
// distractors drawn from the other entries, in random order.
func (s *quizService) options(entries []lesson.Entry, idx int) []string {
	correct := entries[idx].Definition
	seen := map[string]bool{correct: true}
	var distractors []string
	for _, e := range entries {
		if !seen[e.Definition] {
			seen[e.Definition] = true
			distractors = append(distractors, e.Definition)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rng.Shuffle(len(distractors), func(i, j int) {
		distractors[i], distractors[j] = distractors[j], distractors[i]
	})
	n := min(len(distractors), max(s.cfg.OptionCount-1, 0))
	options := append([]string{correct}, distractors[:n]...)
	s.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

// SubmitQuiz grades answers keyed by question ID. Unanswered questions count
// as wrong. A passing result marks the lesson complete.
func (s *quizService) SubmitQuiz(ctx context.Context, userID int64, lessonID string, answers map[string]string) (*models.QuizResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("grading quiz: user_id=%d lesson_id=%s answers=%d", userID, lessonID, len(answers))

	entries, err := s.entries(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	result := &models.QuizResult{
		LessonID: lessonID,
		Total:    len(entries),
		Results:  make([]models.AnswerResult, 0, len(entries)),
	}
	for i, e := range entries {
		id := questionID(i)
		answer := answers[id]
		correct := strings.EqualFold(strings.TrimSpace(answer), e.Definition)
		if correct {
			result.Score++
		}
		result.Results = append(result.Results, models.AnswerResult{
			QuestionID:    id,
			Answer:        answer,
			CorrectAnswer: e.Definition,
			Correct:       correct,
			Explanation:   explanation(e),
		})
	}
	result.Percent = result.Score * 100 / result.Total
	result.Passed = result.Percent >= s.cfg.PassingScore

	log.Info("quiz graded: lesson_id=%s score=%d/%d passed=%t", lessonID, result.Score, result.Total, result.Passed)

	if result.Passed {
		if _, err := s.progress.MarkLessonComplete(ctx, userID, lessonID); err != nil {
			return nil, err
		}
	}
	return result, nil
}
