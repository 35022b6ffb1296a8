package models

import "time"

type LessonProgress struct {
	UserID            int64      `json:"user_id"`
	LessonID          string     `json:"lesson_id"`
	Completed         bool       `json:"completed"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	SyncedFromOffline bool       `json:"synced_from_offline"`
}

// Progress maps lesson IDs to completion for one user.
type Progress struct {
	UserID  int64           `json:"user_id"`
	Lessons map[string]bool `json:"lessons"`
	Offline bool            `json:"offline"`
}

// CompletionResult is returned when a lesson is marked complete.
type CompletionResult struct {
	LessonID string `json:"lesson_id"`
	Offline  bool   `json:"offline"`
}

// Analytics event names.
const (
	EventUserLogin      = "user_login"
	EventLessonStart    = "lesson_start"
	EventLessonComplete = "lesson_complete"
	EventProfileUpdate  = "profile_update"
)
