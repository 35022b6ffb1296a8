package flashcard

import (
	"iter"
	"slices"
	"time"

	"github.com/vytor/lingualearn/internal/models"
)

// Intervals is the ascending sequence of review intervals, in days, a card
// can occupy.
var Intervals = [...]int{1, 3, 7, 14, 30, 90, 180}

// MinInterval and MaxInterval bound the sequence.
const (
	MinInterval = 1
	MaxInterval = 180
)

// Reviewable is anything that exposes when it is next due. A nil result
// means the card has never been scheduled.
type Reviewable interface {
	NextReviewAt() *time.Time
}

// ValidInterval reports whether days is one of Intervals.
func ValidInterval(days int) bool {
	return indexOf(days) >= 0
}

func indexOf(days int) int {
	for i, v := range Intervals {
		if v == days {
			return i
		}
	}
	return -1
}

// NextInterval steps one position through Intervals: forward on success,
// back on failure, saturating at both ends. An interval that is not in the
// sequence is placed before the first entry, so either outcome yields
// MinInterval.
func NextInterval(current int, success bool) int {
	i := indexOf(current)
	if success {
		i++
	} else {
		i--
	}
	i = max(0, min(i, len(Intervals)-1))
	return Intervals[i]
}

// IsDue reports whether card should be reviewed at now. Unscheduled cards
// are always due.
func IsDue(card Reviewable, now time.Time) bool {
	next := card.NextReviewAt()
	if next == nil {
		return true
	}
	return !next.After(now)
}

// DueCards returns the cards that are due at now, in their original order.
// The input slice is not modified.
func DueCards[C Reviewable](cards []C, now time.Time) []C {
	return slices.Collect(Due(cards, now))
}

// Due yields the cards that are due at now. Each range over the returned
// sequence re-evaluates the filter.
func Due[C Reviewable](cards []C, now time.Time) iter.Seq[C] {
	return func(yield func(C) bool) {
		for _, c := range cards {
			if !IsDue(c, now) {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// RecordReview returns a copy of card rescheduled after a review at now.
// A missing or unrecognised difficulty starts from MinInterval. The next
// review date is computed with calendar-day arithmetic in now's location,
// so the wall-clock time is preserved across daylight-saving changes.
func RecordReview(card models.Flashcard, success bool, now time.Time) models.Flashcard {
	current := card.Difficulty
	if !ValidInterval(current) {
		current = MinInterval
	}
	next := NextInterval(current, success)

	reviewed := now
	due := now.AddDate(0, 0, next)

	card.Difficulty = next
	card.LastReviewed = &reviewed
	card.NextReview = &due
	return card
}
