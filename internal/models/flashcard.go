package models

import "time"

type Flashcard struct {
	ID           string     `json:"id"`
	UserID       int64      `json:"user_id"`
	LessonID     string     `json:"lesson_id"`
	Position     int        `json:"position"`
	Front        string     `json:"front"`
	Back         string     `json:"back"`
	Difficulty   int        `json:"difficulty,omitempty"`
	LastReviewed *time.Time `json:"last_reviewed,omitempty"`
	NextReview   *time.Time `json:"next_review,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NextReviewAt returns the instant the card becomes due, or nil when it has
// never been scheduled.
func (c Flashcard) NextReviewAt() *time.Time {
	return c.NextReview
}

type ReviewHistory struct {
	ID          int64     `json:"id"`
	FlashcardID string    `json:"flashcard_id"`
	Success     bool      `json:"success"`
	Difficulty  int       `json:"difficulty"`
	ReviewedAt  time.Time `json:"reviewed_at"`
}
