package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// QuizQuestion is a single multiple-choice question. CorrectAnswer is drawn
// from Options verbatim — grading compares it against the learner's answer
// with exact string equality, case- and whitespace-sensitive as authored.
type QuizQuestion struct {
	ID            interface{} `json:"id,omitempty"` // number or string, model's choice
	Question      string      `json:"question"`
	Options       []string    `json:"options"`
	CorrectAnswer string      `json:"correctAnswer"`
	Explanation   string      `json:"explanation,omitempty"`
}

// Quiz is a generated quiz definition.
type Quiz struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Questions   []QuizQuestion `json:"questions"`
	Image       string         `json:"image,omitempty"`
}

// ParseQuiz builds a Quiz from raw model output, stripping code fences and
// validating structure. Returns ErrMalformed if the payload is not JSON or
// has no questions array.
func ParseQuiz(raw string) (*Quiz, error) {
	var quiz Quiz
	if err := json.Unmarshal([]byte(CleanModelResponse(raw)), &quiz); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("%w: quiz has no questions", ErrMalformed)
	}
	return &quiz, nil
}

// QuestionResult is the per-question reconciliation record of a graded quiz.
type QuestionResult struct {
	QuestionID    interface{} `json:"questionId"`
	Question      string      `json:"question"`
	UserAnswer    *string     `json:"userAnswer"`
	CorrectAnswer string      `json:"correctAnswer"`
	IsCorrect     bool        `json:"isCorrect"`
	Explanation   string      `json:"explanation,omitempty"`
}

// QuizResult is the aggregate outcome of grading one quiz submission.
type QuizResult struct {
	Score          int              `json:"score"` // 0–100
	TotalQuestions int              `json:"totalQuestions"`
	CorrectAnswers int              `json:"correctAnswers"`
	Results        []QuestionResult `json:"results"`
	CompletedAt    time.Time        `json:"completedAt"`
}
