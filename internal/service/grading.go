package service

import (
	"fmt"
	"math"
	"time"

	"github.com/edusuite/virtualschool-backend/internal/model"
)

// Grading reconciles learner answers against a generated definition. Both
// entry points are pure apart from the completion timestamp: same definition
// and answers always produce the same score, counts and per-question
// correctness.
//
// Answers are compared with exact value equality. No normalization is
// applied — case, whitespace and type differences all count as incorrect.

// GradeQuiz grades a quiz submission. answers is an ordered slice aligned
// with the definition's question order; nil entries are unanswered. A slice
// shorter than the question count is padded with nil rather than rejected,
// so a learner who skipped trailing questions still gets a result. Extra
// entries beyond the question count are ignored.
//
// The score is round(correct/total*100), rounding half away from zero
// (66.666… → 67). A definition with no questions cannot be scored and
// returns ErrInvalidDefinition.
func GradeQuiz(quiz *model.Quiz, answers []*string) (*model.QuizResult, error) {
	if quiz == nil || len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("%w: quiz has no questions", ErrInvalidDefinition)
	}

	total := len(quiz.Questions)
	correct := 0
	results := make([]model.QuestionResult, 0, total)

	for i, q := range quiz.Questions {
		var userAnswer *string
		if i < len(answers) {
			userAnswer = answers[i]
		}

		isCorrect := userAnswer != nil && *userAnswer == q.CorrectAnswer
		if isCorrect {
			correct++
		}

		results = append(results, model.QuestionResult{
			QuestionID:    questionID(q.ID, i),
			Question:      q.Question,
			UserAnswer:    userAnswer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     isCorrect,
			Explanation:   q.Explanation,
		})
	}

	return &model.QuizResult{
		Score:          roundPercent(correct, total),
		TotalQuestions: total,
		CorrectAnswers: correct,
		Results:        results,
		CompletedAt:    time.Now().UTC(),
	}, nil
}

// GradeAssignment grades an assignment submission. answers maps composite
// keys ("<sectionType>-<indexWithinSection>") to the learner's answer.
// Multiple-choice sections are graded automatically; every other section
// type accumulates points and is flagged for manual grading.
//
// Unlike quiz grading, a zero-point assignment yields score 0 rather than an
// error. The asymmetry mirrors observed product behavior and is kept
// deliberately.
func GradeAssignment(assignment *model.Assignment, answers map[string]string) (*model.AssignmentResult, error) {
	if assignment == nil || len(assignment.Sections) == 0 {
		return nil, fmt.Errorf("%w: assignment has no sections", ErrInvalidDefinition)
	}

	totalPoints := 0
	earnedPoints := 0
	needsManual := false
	results := make([]model.GradedSection, 0, len(assignment.Sections))

	for _, section := range assignment.Sections {
		if section.Questions == nil {
			return nil, fmt.Errorf("%w: section %q has no questions array", ErrInvalidDefinition, section.Type)
		}

		graded := model.GradedSection{
			AssignmentSection: section,
			Results:           make([]model.AnswerResult, 0, len(section.Questions)),
		}

		if section.Type == model.SectionMultipleChoice {
			for j, q := range section.Questions {
				userAnswer := lookupAnswer(answers, section.Type, j)
				isCorrect := userAnswer != nil && *userAnswer == q.CorrectAnswer

				totalPoints += q.Points
				earned := 0
				if isCorrect {
					earnedPoints += q.Points
					earned = q.Points
				}

				correct := isCorrect
				graded.Results = append(graded.Results, model.AnswerResult{
					Question:      q.Question,
					UserAnswer:    userAnswer,
					CorrectAnswer: q.CorrectAnswer,
					IsCorrect:     &correct,
					Points:        q.Points,
					EarnedPoints:  &earned,
				})
			}
		} else {
			needsManual = true
			for j, q := range section.Questions {
				totalPoints += q.Points
				graded.Results = append(graded.Results, model.AnswerResult{
					Question:           q.Question,
					UserAnswer:         lookupAnswer(answers, section.Type, j),
					Points:             q.Points,
					NeedsManualGrading: true,
				})
			}
		}

		results = append(results, graded)
	}

	score := 0
	if totalPoints > 0 {
		score = roundPercent(earnedPoints, totalPoints)
	}

	return &model.AssignmentResult{
		Score:              score,
		TotalPoints:        totalPoints,
		EarnedPoints:       earnedPoints,
		Results:            results,
		SubmittedAt:        time.Now().UTC(),
		NeedsManualGrading: needsManual,
	}, nil
}

// roundPercent computes round(part/total*100) with half away from zero.
func roundPercent(part, total int) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}

// questionID resolves the reported question ID: the authored id when the
// definition carries a truthy one, otherwise the 1-based position.
func questionID(id interface{}, index int) interface{} {
	switch v := id.(type) {
	case nil:
		return index + 1
	case string:
		if v == "" {
			return index + 1
		}
	case float64:
		if v == 0 {
			return index + 1
		}
	}
	return id
}

func lookupAnswer(answers map[string]string, sectionType string, index int) *string {
	if v, ok := answers[model.AnswerKey(sectionType, index)]; ok {
		return &v
	}
	return nil
}
