package lesson_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lingualearn/internal/lesson"
	"github.com/vytor/lingualearn/internal/models"
)

func TestParseEntries(t *testing.T) {
	content := "Hello = Hola\n\nno separator here\n = missing term\nmissing definition = \n  Good night=Buenas noches  \na = b = c"

	entries := lesson.ParseEntries(content)

	require.Len(t, entries, 3)
	assert.Equal(t, lesson.Entry{Term: "Hello", Definition: "Hola"}, entries[0])
	assert.Equal(t, lesson.Entry{Term: "Good night", Definition: "Buenas noches"}, entries[1])
	assert.Equal(t, lesson.Entry{Term: "a", Definition: "b = c"}, entries[2])
}

func TestParseEntries_Empty(t *testing.T) {
	assert.Empty(t, lesson.ParseEntries(""))
	assert.Empty(t, lesson.ParseEntries("Practice advanced conversation patterns and idioms"))
}

func TestFormatEntries(t *testing.T) {
	entries := []lesson.Entry{{Term: "to eat", Definition: "comer"}, {Term: "to live", Definition: "vivir"}}

	content := lesson.FormatEntries(entries)

	assert.Equal(t, "to eat = comer\nto live = vivir", content)
	assert.Equal(t, entries, lesson.ParseEntries(content))
}

func TestStarterLessons(t *testing.T) {
	lessons := lesson.StarterLessons()

	require.Len(t, lessons, 5)
	seen := map[string]bool{}
	for _, l := range lessons {
		assert.NotEmpty(t, l.ID)
		assert.False(t, seen[l.ID], "duplicate id %s", l.ID)
		seen[l.ID] = true
		assert.True(t, models.ValidLevel(l.Level))
		assert.NotEmpty(t, lesson.ParseEntries(l.Content), l.Title)
	}
	assert.Equal(t, lessons[0].ID, lesson.StarterLessons()[0].ID, "ids are stable")
	assert.Equal(t, lesson.StableID("Basic Greetings"), lessons[0].ID)
}
