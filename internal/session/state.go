// Package session holds per-browser state: the current generated
// definitions, answers in progress, grading results, and append-only
// history lists. State lives in process memory only and is owned
// exclusively by the session that produced it; the only mutation after a
// history insert is a full clear of the feature area.
package session

import (
	"errors"
	"time"

	"github.com/edusuite/virtualschool-backend/internal/model"
	"github.com/edusuite/virtualschool-backend/internal/service"
)

// Sentinel errors for submit/answer calls with no active definition.
var (
	ErrNoQuiz       = errors.New("no quiz in session")
	ErrNoAssignment = errors.New("no assignment in session")
)

// QuizHistoryEntry pairs a quiz definition with its grading result.
type QuizHistoryEntry struct {
	Quiz        *model.Quiz       `json:"quiz"`
	Result      *model.QuizResult `json:"result"`
	SubmittedAt time.Time         `json:"submittedAt"`
}

// AssignmentHistoryEntry pairs an assignment definition with its grading
// result.
type AssignmentHistoryEntry struct {
	Assignment  *model.Assignment       `json:"assignment"`
	Result      *model.AssignmentResult `json:"result"`
	SubmittedAt time.Time               `json:"submittedAt"`
}

// History is the snapshot returned to the client.
type History struct {
	QuizHistory       []QuizHistoryEntry       `json:"quizHistory"`
	AssignmentHistory []AssignmentHistoryEntry `json:"assignmentHistory"`
}

// SetQuiz installs a freshly generated quiz and resets the answer map,
// result and submitted flag.
func (s *State) SetQuiz(quiz *model.Quiz) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quiz = quiz
	s.quizAnswers = make(map[int]string)
	s.quizResult = nil
	s.quizSubmitted = false
}

// SetQuizAnswer records the learner's selected option for one question.
// Answers accumulate incrementally; re-answering a question overwrites the
// previous selection.
func (s *State) SetQuizAnswer(index int, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quiz == nil {
		return ErrNoQuiz
	}
	if index < 0 || index >= len(s.quiz.Questions) {
		return errors.New("question index out of range")
	}
	s.quizAnswers[index] = answer
	return nil
}

// SubmitQuiz converts the sparse answer map into a fixed-length ordered
// slice (unanswered indices nil), grades it, stores the result, and pushes
// a history entry to the front of the list.
func (s *State) SubmitQuiz() (*model.QuizResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quiz == nil {
		return nil, ErrNoQuiz
	}

	ordered := make([]*string, len(s.quiz.Questions))
	for i := range ordered {
		if answer, ok := s.quizAnswers[i]; ok {
			a := answer
			ordered[i] = &a
		}
	}

	result, err := service.GradeQuiz(s.quiz, ordered)
	if err != nil {
		return nil, err
	}

	s.quizResult = result
	s.quizSubmitted = true
	s.quizHistory = append([]QuizHistoryEntry{{
		Quiz:        s.quiz,
		Result:      result,
		SubmittedAt: result.CompletedAt,
	}}, s.quizHistory...)

	return result, nil
}

// ClearQuiz resets the quiz feature area. History survives a clear of the
// current quiz.
func (s *State) ClearQuiz() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quiz = nil
	s.quizAnswers = make(map[int]string)
	s.quizResult = nil
	s.quizSubmitted = false
}

// SetAssignment installs a freshly generated assignment and resets answers,
// result and submitted flag.
func (s *State) SetAssignment(assignment *model.Assignment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignment = assignment
	s.assignmentAnswers = make(map[string]string)
	s.assignmentResult = nil
	s.assignmentSubmitted = false
}

// SetAssignmentAnswer records an answer under its composite
// "<sectionType>-<index>" key.
func (s *State) SetAssignmentAnswer(key, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.assignment == nil {
		return ErrNoAssignment
	}
	s.assignmentAnswers[key] = answer
	return nil
}

// SubmitAssignment grades the accumulated answers against the current
// assignment, stores the result, and pushes a history entry front-of-list.
func (s *State) SubmitAssignment() (*model.AssignmentResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.assignment == nil {
		return nil, ErrNoAssignment
	}

	result, err := service.GradeAssignment(s.assignment, s.assignmentAnswers)
	if err != nil {
		return nil, err
	}

	s.assignmentResult = result
	s.assignmentSubmitted = true
	s.assignmentHistory = append([]AssignmentHistoryEntry{{
		Assignment:  s.assignment,
		Result:      result,
		SubmittedAt: result.SubmittedAt,
	}}, s.assignmentHistory...)

	return result, nil
}

// ClearAssignment resets the assignment feature area.
func (s *State) ClearAssignment() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignment = nil
	s.assignmentAnswers = make(map[string]string)
	s.assignmentResult = nil
	s.assignmentSubmitted = false
}

// History returns a copy of both history lists, newest first.
func (s *State) History() History {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := History{
		QuizHistory:       make([]QuizHistoryEntry, len(s.quizHistory)),
		AssignmentHistory: make([]AssignmentHistoryEntry, len(s.assignmentHistory)),
	}
	copy(h.QuizHistory, s.quizHistory)
	copy(h.AssignmentHistory, s.assignmentHistory)
	return h
}

// Quiz returns the current quiz definition, or nil.
func (s *State) Quiz() *model.Quiz {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quiz
}

// Assignment returns the current assignment definition, or nil.
func (s *State) Assignment() *model.Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assignment
}
