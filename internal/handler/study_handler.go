package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/edusuite/virtualschool-backend/internal/response"
	"github.com/edusuite/virtualschool-backend/internal/service"
	"github.com/edusuite/virtualschool-backend/internal/session"
	"github.com/edusuite/virtualschool-backend/internal/validator"
)

// StudyHandler handles the learner-facing session endpoints: recording
// answers, submitting for grading, clearing state, and reading history.
// Definitions are owned by the caller's session; grading runs server-side
// against the session's current definition.
type StudyHandler struct {
	log zerolog.Logger
}

// NewStudyHandler creates a new StudyHandler.
func NewStudyHandler(log zerolog.Logger) *StudyHandler {
	return &StudyHandler{log: log}
}

// QuizAnswerRequest is the POST /api/quiz/answers body. QuestionIndex is a
// pointer so index 0 survives required-field validation.
type QuizAnswerRequest struct {
	QuestionIndex *int   `json:"questionIndex" binding:"required,min=0"`
	Answer        string `json:"answer" binding:"required"`
}

// SetQuizAnswer godoc
// POST /api/quiz/answers
func (h *StudyHandler) SetQuizAnswer(c *gin.Context) {
	var req QuizAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.Error(c, http.StatusBadRequest, validator.Message(fields))
		return
	}

	st := session.FromContext(c)
	if err := st.SetQuizAnswer(*req.QuestionIndex, req.Answer); err != nil {
		if errors.Is(err, session.ErrNoQuiz) {
			response.Error(c, http.StatusBadRequest, response.MsgNoActiveQuiz)
			return
		}
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"status": "ok"})
}

// SubmitQuiz godoc
// POST /api/quiz/submit
func (h *StudyHandler) SubmitQuiz(c *gin.Context) {
	st := session.FromContext(c)

	result, err := st.SubmitQuiz()
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNoQuiz):
			response.Error(c, http.StatusBadRequest, response.MsgNoActiveQuiz)
		case errors.Is(err, service.ErrInvalidDefinition):
			h.log.Warn().Err(err).Msg("quiz definition failed grading")
			response.Error(c, http.StatusUnprocessableEntity, response.MsgInvalidDefinition)
		default:
			h.log.Error().Err(err).Msg("quiz submit failed")
			response.Error(c, http.StatusInternalServerError, response.MsgInternal)
		}
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// ClearQuiz godoc
// POST /api/quiz/clear
func (h *StudyHandler) ClearQuiz(c *gin.Context) {
	session.FromContext(c).ClearQuiz()
	response.JSON(c, http.StatusOK, gin.H{"status": "ok"})
}

// AssignmentAnswerRequest is the POST /api/assignment/answers body. The key
// is the composite "<sectionType>-<questionIndex>" form.
type AssignmentAnswerRequest struct {
	QuestionKey string `json:"questionKey" binding:"required"`
	Answer      string `json:"answer" binding:"required"`
}

// SetAssignmentAnswer godoc
// POST /api/assignment/answers
func (h *StudyHandler) SetAssignmentAnswer(c *gin.Context) {
	var req AssignmentAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.Error(c, http.StatusBadRequest, validator.Message(fields))
		return
	}

	st := session.FromContext(c)
	if err := st.SetAssignmentAnswer(req.QuestionKey, req.Answer); err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgNoActiveAssignment)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"status": "ok"})
}

// SubmitAssignment godoc
// POST /api/assignment/submit
func (h *StudyHandler) SubmitAssignment(c *gin.Context) {
	st := session.FromContext(c)

	result, err := st.SubmitAssignment()
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNoAssignment):
			response.Error(c, http.StatusBadRequest, response.MsgNoActiveAssignment)
		case errors.Is(err, service.ErrInvalidDefinition):
			h.log.Warn().Err(err).Msg("assignment definition failed grading")
			response.Error(c, http.StatusUnprocessableEntity, response.MsgInvalidDefinition)
		default:
			h.log.Error().Err(err).Msg("assignment submit failed")
			response.Error(c, http.StatusInternalServerError, response.MsgInternal)
		}
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// ClearAssignment godoc
// POST /api/assignment/clear
func (h *StudyHandler) ClearAssignment(c *gin.Context) {
	session.FromContext(c).ClearAssignment()
	response.JSON(c, http.StatusOK, gin.H{"status": "ok"})
}

// History godoc
// GET /api/history
func (h *StudyHandler) History(c *gin.Context) {
	response.JSON(c, http.StatusOK, session.FromContext(c).History())
}
