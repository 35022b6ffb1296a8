package flashcard_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lingualearn/internal/flashcard"
	"github.com/vytor/lingualearn/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func TestNextInterval_Success(t *testing.T) {
	tests := []struct {
		current  int
		expected int
	}{
		{1, 3},
		{3, 7},
		{7, 14},
		{14, 30},
		{30, 90},
		{90, 180},
		{180, 180},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, flashcard.NextInterval(tt.current, true), "success from %d", tt.current)
	}
}

func TestNextInterval_Failure(t *testing.T) {
	tests := []struct {
		current  int
		expected int
	}{
		{1, 1},
		{3, 1},
		{7, 3},
		{14, 7},
		{30, 14},
		{90, 30},
		{180, 90},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, flashcard.NextInterval(tt.current, false), "failure from %d", tt.current)
	}
}

func TestNextInterval_Saturation(t *testing.T) {
	interval := 180
	for i := 0; i < 5; i++ {
		interval = flashcard.NextInterval(interval, true)
		assert.Equal(t, 180, interval)
	}

	interval = 1
	for i := 0; i < 5; i++ {
		interval = flashcard.NextInterval(interval, false)
		assert.Equal(t, 1, interval)
	}
}

func TestNextInterval_UnrecognisedInterval(t *testing.T) {
	for _, current := range []int{0, -3, 2, 5, 45, 365} {
		assert.Equal(t, flashcard.MinInterval, flashcard.NextInterval(current, true), "success from %d", current)
		assert.Equal(t, flashcard.MinInterval, flashcard.NextInterval(current, false), "failure from %d", current)
	}
}

func TestNextInterval_AlwaysCanonical(t *testing.T) {
	for current := -10; current <= 200; current++ {
		assert.True(t, flashcard.ValidInterval(flashcard.NextInterval(current, true)))
		assert.True(t, flashcard.ValidInterval(flashcard.NextInterval(current, false)))
	}
}

func TestIsDue(t *testing.T) {
	now := date(2024, time.March, 10)

	assert.True(t, flashcard.IsDue(models.Flashcard{}, now), "unscheduled card is due")
	assert.True(t, flashcard.IsDue(models.Flashcard{}, time.Time{}), "unscheduled card is due at any time")
	assert.True(t, flashcard.IsDue(models.Flashcard{NextReview: ptr(now.Add(-time.Second))}, now))
	assert.True(t, flashcard.IsDue(models.Flashcard{NextReview: ptr(now)}, now), "due exactly at next review")
	assert.False(t, flashcard.IsDue(models.Flashcard{NextReview: ptr(now.Add(time.Second))}, now))
}

func TestDueCards_PreservesOrder(t *testing.T) {
	now := date(2024, time.March, 10)
	cards := []models.Flashcard{
		{ID: "past", NextReview: ptr(now.AddDate(0, 0, -1))},
		{ID: "future", NextReview: ptr(now.AddDate(0, 0, 1))},
		{ID: "unscheduled"},
	}

	due := flashcard.DueCards(cards, now)

	require.Len(t, due, 2)
	assert.Equal(t, "past", due[0].ID)
	assert.Equal(t, "unscheduled", due[1].ID)
	assert.Len(t, cards, 3, "input should not be modified")
	assert.Equal(t, "future", cards[1].ID)
}

func TestDueCards_Empty(t *testing.T) {
	due := flashcard.DueCards([]models.Flashcard{}, date(2024, time.March, 10))
	assert.Empty(t, due)
}

func TestDue_Restartable(t *testing.T) {
	now := date(2024, time.March, 10)
	cards := []models.Flashcard{
		{ID: "a"},
		{ID: "b", NextReview: ptr(now.AddDate(0, 0, 3))},
		{ID: "c", NextReview: ptr(now)},
	}

	seq := flashcard.Due(cards, now)

	var first, second []string
	for c := range seq {
		first = append(first, c.ID)
	}
	for c := range seq {
		second = append(second, c.ID)
	}
	assert.Equal(t, []string{"a", "c"}, first)
	assert.Equal(t, first, second)
}

func TestDue_StopsEarly(t *testing.T) {
	cards := []models.Flashcard{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	var seen []string
	for c := range flashcard.Due(cards, date(2024, time.March, 10)) {
		seen = append(seen, c.ID)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestRecordReview_FirstReview(t *testing.T) {
	now := date(2024, time.January, 1)

	updated := flashcard.RecordReview(models.Flashcard{}, true, now)

	assert.Equal(t, 3, updated.Difficulty)
	require.NotNil(t, updated.LastReviewed)
	require.NotNil(t, updated.NextReview)
	assert.True(t, updated.LastReviewed.Equal(now))
	assert.True(t, updated.NextReview.Equal(date(2024, time.January, 4)))
}

func TestRecordReview_FirstReviewFailed(t *testing.T) {
	now := date(2024, time.January, 1)

	updated := flashcard.RecordReview(models.Flashcard{}, false, now)

	assert.Equal(t, 1, updated.Difficulty)
	assert.True(t, updated.NextReview.Equal(date(2024, time.January, 2)))
}

func TestRecordReview_FailureStepsBack(t *testing.T) {
	now := date(2024, time.May, 20)
	card := models.Flashcard{ID: "card", Front: "Hola", Back: "Hello", Difficulty: 30}

	updated := flashcard.RecordReview(card, false, now)

	assert.Equal(t, 14, updated.Difficulty)
	assert.True(t, updated.NextReview.Equal(now.AddDate(0, 0, 14)))
	assert.Equal(t, "card", updated.ID)
	assert.Equal(t, "Hola", updated.Front)
	assert.Equal(t, "Hello", updated.Back)
}

func TestRecordReview_MaximumStays(t *testing.T) {
	now := date(2024, time.May, 20)

	updated := flashcard.RecordReview(models.Flashcard{Difficulty: 180}, true, now)

	assert.Equal(t, 180, updated.Difficulty)
	assert.True(t, updated.NextReview.Equal(now.AddDate(0, 0, 180)))
}

func TestRecordReview_UnrecognisedDifficulty(t *testing.T) {
	now := date(2024, time.May, 20)

	updated := flashcard.RecordReview(models.Flashcard{Difficulty: 42}, true, now)

	assert.Equal(t, 3, updated.Difficulty, "unknown difficulty restarts from the first interval")
}

func TestRecordReview_DoesNotMutateInput(t *testing.T) {
	lastReviewed := date(2024, time.January, 1)
	nextReview := date(2024, time.January, 8)
	card := models.Flashcard{
		ID:           "card",
		Difficulty:   7,
		LastReviewed: &lastReviewed,
		NextReview:   &nextReview,
	}

	updated := flashcard.RecordReview(card, true, date(2024, time.January, 8))

	assert.Equal(t, 7, card.Difficulty)
	assert.True(t, card.LastReviewed.Equal(date(2024, time.January, 1)))
	assert.True(t, card.NextReview.Equal(date(2024, time.January, 8)))
	assert.NotSame(t, card.LastReviewed, updated.LastReviewed)
	assert.NotSame(t, card.NextReview, updated.NextReview)
	assert.Equal(t, 14, updated.Difficulty)
}

func TestRecordReview_NextReviewMatchesDifficulty(t *testing.T) {
	now := date(2024, time.February, 27)
	card := models.Flashcard{}

	for i := 0; i < 10; i++ {
		card = flashcard.RecordReview(card, i%3 != 2, now)
		require.True(t, flashcard.ValidInterval(card.Difficulty))
		assert.True(t, card.NextReview.Equal(card.LastReviewed.AddDate(0, 0, card.Difficulty)))
		now = *card.NextReview
	}
}

func TestRecordReview_MonthAndYearBoundaries(t *testing.T) {
	updated := flashcard.RecordReview(models.Flashcard{Difficulty: 3}, true, date(2024, time.December, 28))
	assert.True(t, updated.NextReview.Equal(date(2025, time.January, 4)))

	updated = flashcard.RecordReview(models.Flashcard{Difficulty: 1}, true, date(2024, time.February, 27))
	assert.True(t, updated.NextReview.Equal(date(2024, time.March, 1)), "leap day is counted")
}

func TestRecordReview_KeepsWallClockAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// DST starts on 2024-03-10 in New York.
	now := time.Date(2024, time.March, 9, 9, 30, 0, 0, loc)
	updated := flashcard.RecordReview(models.Flashcard{}, true, now)

	next := *updated.NextReview
	assert.Equal(t, 9, next.Hour())
	assert.Equal(t, 30, next.Minute())
	assert.Equal(t, 12, next.Day())
	assert.Equal(t, 71*time.Hour, next.Sub(now))
}

func TestFixedClock(t *testing.T) {
	now := date(2024, time.June, 1)
	clock := flashcard.FixedClock(now)
	assert.True(t, clock.Now().Equal(now))
}
