package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/lingualearn/internal/logger"
	"github.com/vytor/lingualearn/internal/models"
	"github.com/vytor/lingualearn/internal/repository"
)

var flashcardColumns = []string{
	"id", "user_id", "lesson_id", "position", "front", "back",
	"difficulty", "last_reviewed", "next_review", "created_at",
}

type flashcardRepository struct {
	db *sql.DB
}

// NewFlashcardRepository creates a new FlashcardRepository implementation
func NewFlashcardRepository(db *sql.DB) repository.FlashcardRepository {
	return &flashcardRepository{db: db}
}

func scanFlashcard(row interface{ Scan(...any) error }) (*models.Flashcard, error) {
	var c models.Flashcard
	var difficulty sql.NullInt64
	if err := row.Scan(&c.ID, &c.UserID, &c.LessonID, &c.Position, &c.Front, &c.Back,
		&difficulty, &c.LastReviewed, &c.NextReview, &c.CreatedAt); err != nil {
		return nil, err
	}
	if difficulty.Valid {
		c.Difficulty = int(difficulty.Int64)
	}
	return &c, nil
}

func (r *flashcardRepository) query(ctx context.Context, where squirrel.Sqlizer) ([]models.Flashcard, error) {
	sqlStr, args, err := sqlBuilder.Select(flashcardColumns...).
		From("flashcards").
		Where(where).
		OrderBy("lesson_id ASC", "position ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		c, err := scanFlashcard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *c)
	}
	return cards, rows.Err()
}

func (r *flashcardRepository) Get(ctx context.Context, id string, userID int64) (*models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("getting flashcard: id=%s, user_id=%d", id, userID)

	cards, err := r.query(ctx, squirrel.Eq{"id": id, "user_id": userID})
	if err != nil {
		log.Error("failed to get flashcard: %v", err)
		return nil, err
	}
	if len(cards) == 0 {
		log.Debug("flashcard not found: id=%s", id)
		return nil, nil
	}
	return &cards[0], nil
}

func (r *flashcardRepository) ListForLesson(ctx context.Context, userID int64, lessonID string) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("listing flashcards: user_id=%d, lesson_id=%s", userID, lessonID)

	cards, err := r.query(ctx, squirrel.Eq{"user_id": userID, "lesson_id": lessonID})
	if err != nil {
		log.Error("failed to list lesson flashcards: %v", err)
		return nil, err
	}
	log.Debug("found %d flashcards", len(cards))
	return cards, nil
}

func (r *flashcardRepository) ListForUser(ctx context.Context, userID int64) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("listing flashcards: user_id=%d", userID)

	cards, err := r.query(ctx, squirrel.Eq{"user_id": userID})
	if err != nil {
		log.Error("failed to list user flashcards: %v", err)
		return nil, err
	}
	log.Debug("found %d flashcards", len(cards))
	return cards, nil
}

func (r *flashcardRepository) InsertBatch(ctx context.Context, cards []models.Flashcard) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	if len(cards) == 0 {
		return nil
	}
	log.Debug("inserting %d flashcards", len(cards))

	insert := sqlBuilder.Insert("flashcards").
		Columns("id", "user_id", "lesson_id", "position", "front", "back", "difficulty", "last_reviewed", "next_review").
		Options("OR IGNORE")
	for _, c := range cards {
		insert = insert.Values(c.ID, c.UserID, c.LessonID, c.Position, c.Front, c.Back,
			nullableInt(c.Difficulty), c.LastReviewed, c.NextReview)
	}

	sqlStr, args, err := insert.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		log.Error("failed to insert flashcards: %v", err)
		return err
	}
	return nil
}

func (r *flashcardRepository) Update(ctx context.Context, c models.Flashcard) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("updating flashcard: id=%s, difficulty=%d", c.ID, c.Difficulty)

	res, err := r.db.ExecContext(ctx, `
UPDATE flashcards
SET difficulty = ?, last_reviewed = ?, next_review = ?
WHERE id = ? AND user_id = ?
`, nullableInt(c.Difficulty), c.LastReviewed, c.NextReview, c.ID, c.UserID)
	if err != nil {
		log.Error("failed to update flashcard: %v", err)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *flashcardRepository) InsertReviewHistory(ctx context.Context, h models.ReviewHistory) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("inserting review history: flashcard_id=%s, success=%t", h.FlashcardID, h.Success)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO review_history (flashcard_id, success, difficulty, reviewed_at)
		VALUES (?, ?, ?, ?)
	`, h.FlashcardID, h.Success, h.Difficulty, h.ReviewedAt)
	if err != nil {
		log.Error("failed to insert review history: %v", err)
	}
	return err
}
