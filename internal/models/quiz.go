package models

type Quiz struct {
	LessonID     string     `json:"lesson_id"`
	PassingScore int        `json:"passing_score"`
	Questions    []Question `json:"questions"`
}

type Question struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"-"`
	Explanation   string   `json:"-"`
}

type AnswerResult struct {
	QuestionID    string `json:"question_id"`
	Answer        string `json:"answer"`
	CorrectAnswer string `json:"correct_answer"`
	Correct       bool   `json:"correct"`
	Explanation   string `json:"explanation,omitempty"`
}

type QuizResult struct {
	LessonID string         `json:"lesson_id"`
	Score    int            `json:"score"`
	Total    int            `json:"total"`
	Percent  int            `json:"percent"`
	Passed   bool           `json:"passed"`
	Results  []AnswerResult `json:"results"`
}
