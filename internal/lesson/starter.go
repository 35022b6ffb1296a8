package lesson

import (
	"github.com/google/uuid"
	"github.com/vytor/lingualearn/internal/models"
)

// starterNamespace keeps starter lesson IDs stable across seeds.
var starterNamespace = uuid.MustParse("6f1c1f52-5a43-4c1e-9f0b-7d0f3a8e2b61")

// StableID derives a lesson ID from its title so that re-importing the same
// lesson updates it instead of duplicating it.
func StableID(title string) string {
	return uuid.NewSHA1(starterNamespace, []byte(title)).String()
}

// StarterLessons returns the lessons inserted by --seed.
func StarterLessons() []models.Lesson {
	lessons := []models.Lesson{
		{
			Title:       "Basic Greetings",
			Description: "Learn essential greetings and introductions",
			Content:     "Hello = Hola\nGoodbye = Adiós\nGood morning = Buenos días\nGood afternoon = Buenas tardes\nGood night = Buenas noches",
			Level:       models.LevelBeginner,
			Duration:    15,
		},
		{
			Title:       "Numbers 1-20",
			Description: "Master counting and basic numbers",
			Content:     "1 = uno\n2 = dos\n3 = tres\n4 = cuatro\n5 = cinco",
			Level:       models.LevelBeginner,
			Duration:    20,
		},
		{
			Title:       "Common Phrases",
			Description: "Essential phrases for daily conversations",
			Content:     "Please = Por favor\nThank you = Gracias\nYou're welcome = De nada\nExcuse me = Perdón",
			Level:       models.LevelBeginner,
			Duration:    25,
		},
		{
			Title:       "Present Tense Verbs",
			Description: "Learn regular verb conjugations",
			Content:     "to speak = hablar\nto eat = comer\nto live = vivir",
			Level:       models.LevelIntermediate,
			Duration:    30,
		},
		{
			Title:       "Advanced Conversation",
			Description: "Complex dialogue scenarios",
			Content:     "by the way = por cierto\nto be lucky = tener suerte\nto pull someone's leg = tomar el pelo",
			Level:       models.LevelAdvanced,
			Duration:    45,
		},
	}
	for i := range lessons {
		lessons[i].ID = StableID(lessons[i].Title)
	}
	return lessons
}
