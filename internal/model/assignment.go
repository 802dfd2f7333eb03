package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// SectionMultipleChoice is the only section type graded automatically.
// Every other section type accumulates points for manual grading.
const SectionMultipleChoice = "multiple-choice"

// AssignmentQuestion is one question within an assignment section. Options
// and CorrectAnswer are only present for multiple-choice questions.
type AssignmentQuestion struct {
	Question       string   `json:"question"`
	Options        []string `json:"options,omitempty"`
	CorrectAnswer  string   `json:"correctAnswer,omitempty"`
	ExpectedLength string   `json:"expectedLength,omitempty"`
	Points         int      `json:"points"`
}

// AssignmentSection groups questions of one type.
type AssignmentSection struct {
	Type      string               `json:"type"`
	Title     string               `json:"title,omitempty"`
	Questions []AssignmentQuestion `json:"questions"`
}

// Assignment is a generated assignment definition with heterogeneous sections.
type Assignment struct {
	Title         string              `json:"title"`
	GradeLevel    string              `json:"gradeLevel,omitempty"`
	Instructions  string              `json:"instructions,omitempty"`
	EstimatedTime string              `json:"estimatedTime,omitempty"`
	Sections      []AssignmentSection `json:"sections"`
	TotalPoints   int                 `json:"totalPoints,omitempty"`
}

// ParseAssignment builds an Assignment from raw model output. Returns
// ErrMalformed if the payload is not JSON or has no sections array.
// Per-section structure (missing questions) is deliberately left to grading
// time, which must surface it as an invalid-definition error.
func ParseAssignment(raw string) (*Assignment, error) {
	var assignment Assignment
	if err := json.Unmarshal([]byte(CleanModelResponse(raw)), &assignment); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(assignment.Sections) == 0 {
		return nil, fmt.Errorf("%w: assignment has no sections", ErrMalformed)
	}
	return &assignment, nil
}

// AnswerKey builds the composite key an assignment answer is stored under:
// "<sectionType>-<questionIndexWithinSection>". Assignments key answers by
// section type plus intra-section index because sections hold heterogeneous
// question types, unlike the quiz's flat index.
func AnswerKey(sectionType string, index int) string {
	return fmt.Sprintf("%s-%d", sectionType, index)
}

// AnswerResult is the per-question record of a graded assignment. For
// multiple-choice questions IsCorrect and EarnedPoints are set; for every
// other question type NeedsManualGrading is set instead.
type AnswerResult struct {
	Question           string  `json:"question"`
	UserAnswer         *string `json:"userAnswer"`
	CorrectAnswer      string  `json:"correctAnswer,omitempty"`
	IsCorrect          *bool   `json:"isCorrect,omitempty"`
	Points             int     `json:"points"`
	EarnedPoints       *int    `json:"earnedPoints,omitempty"`
	NeedsManualGrading bool    `json:"needsManualGrading,omitempty"`
}

// GradedSection is the original section shape plus its per-question results.
type GradedSection struct {
	AssignmentSection
	Results []AnswerResult `json:"results"`
}

// AssignmentResult is the aggregate outcome of grading one assignment
// submission.
type AssignmentResult struct {
	Score              int             `json:"score"` // 0–100, or 0 when TotalPoints is 0
	TotalPoints        int             `json:"totalPoints"`
	EarnedPoints       int             `json:"earnedPoints"`
	Results            []GradedSection `json:"results"`
	SubmittedAt        time.Time       `json:"submittedAt"`
	NeedsManualGrading bool            `json:"needsManualGrading"`
}
