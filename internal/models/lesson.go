package models

import "time"

// Lesson levels
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// ValidLevel reports whether level is one of the known lesson levels.
func ValidLevel(level string) bool {
	switch level {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

type Lesson struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	Level       string    `json:"level"`
	Duration    int       `json:"duration"`
	CreatedAt   time.Time `json:"created_at"`
}

type LessonFilter struct {
	Level  string
	Limit  int
	Offset int
}

// LessonList is a page of lessons. Offline is set when the page was served
// from the local cache because the primary store could not be reached.
type LessonList struct {
	Lessons []Lesson `json:"lessons"`
	Total   int      `json:"total"`
	Offline bool     `json:"offline"`
}
