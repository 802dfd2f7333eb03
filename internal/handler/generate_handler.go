package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/edusuite/virtualschool-backend/internal/response"
	"github.com/edusuite/virtualschool-backend/internal/service"
	"github.com/edusuite/virtualschool-backend/internal/session"
)

// GenerateHandler handles content-generation endpoints. Each endpoint
// validates its body, forwards to the generator service, stores the
// resulting definition in the caller's session, and returns the definition
// unwrapped. Generator failures are logged with their cause but surface as
// a generic 500 message.
type GenerateHandler struct {
	generator *service.GeneratorService
	log       zerolog.Logger
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(generator *service.GeneratorService, log zerolog.Logger) *GenerateHandler {
	return &GenerateHandler{generator: generator, log: log}
}

// GenerateQuizRequest is the POST /api/generate-quiz body.
type GenerateQuizRequest struct {
	Topic         string `json:"topic"`
	NumQuestions  int    `json:"numQuestions"`
	IncludeImages bool   `json:"includeImages"`
}

// GenerateQuiz godoc
// POST /api/generate-quiz
func (h *GenerateHandler) GenerateQuiz(c *gin.Context) {
	var req GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidPayload)
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		response.Error(c, http.StatusBadRequest, response.MsgTopicRequired)
		return
	}
	if req.NumQuestions < 1 || req.NumQuestions > 20 {
		response.Error(c, http.StatusBadRequest, response.MsgNumQuestionsRange)
		return
	}

	quiz, err := h.generator.GenerateQuiz(c.Request.Context(), req.Topic, req.NumQuestions, req.IncludeImages)
	if err != nil {
		h.log.Error().Err(err).Str("topic", req.Topic).Msg("generate quiz failed")
		response.Error(c, http.StatusInternalServerError, response.MsgFailedQuiz)
		return
	}

	if st := session.FromContext(c); st != nil {
		st.SetQuiz(quiz)
	}
	response.JSON(c, http.StatusOK, quiz)
}

// GenerateNotesRequest is the POST /api/generate-notes body.
type GenerateNotesRequest struct {
	Topic         string `json:"topic"`
	GradeLevel    string `json:"gradeLevel"`
	IncludeImages bool   `json:"includeImages"`
}

// GenerateNotes godoc
// POST /api/generate-notes
func (h *GenerateHandler) GenerateNotes(c *gin.Context) {
	var req GenerateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidPayload)
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		response.Error(c, http.StatusBadRequest, response.MsgTopicRequired)
		return
	}
	if req.GradeLevel == "" {
		response.Error(c, http.StatusBadRequest, response.MsgGradeLevelRequired)
		return
	}

	notes, err := h.generator.GenerateNotes(c.Request.Context(), req.Topic, req.GradeLevel, req.IncludeImages)
	if err != nil {
		h.log.Error().Err(err).Str("topic", req.Topic).Msg("generate notes failed")
		response.Error(c, http.StatusInternalServerError, response.MsgFailedNotes)
		return
	}
	response.JSON(c, http.StatusOK, notes)
}

// GenerateFlashcardsRequest is the POST /api/generate-flashcards body.
type GenerateFlashcardsRequest struct {
	Topic         string `json:"topic"`
	IncludeImages bool   `json:"includeImages"`
}

// GenerateFlashcards godoc
// POST /api/generate-flashcards
func (h *GenerateHandler) GenerateFlashcards(c *gin.Context) {
	var req GenerateFlashcardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidPayload)
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		response.Error(c, http.StatusBadRequest, response.MsgTopicRequired)
		return
	}

	deck, err := h.generator.GenerateFlashcards(c.Request.Context(), req.Topic, req.IncludeImages)
	if err != nil {
		h.log.Error().Err(err).Str("topic", req.Topic).Msg("generate flashcards failed")
		response.Error(c, http.StatusInternalServerError, response.MsgFailedFlashcards)
		return
	}
	response.JSON(c, http.StatusOK, deck)
}

// GenerateAssignmentRequest is the POST /api/generate-assignment body.
type GenerateAssignmentRequest struct {
	Topic      string `json:"topic"`
	GradeLevel string `json:"gradeLevel"`
}

// GenerateAssignment godoc
// POST /api/generate-assignment
func (h *GenerateHandler) GenerateAssignment(c *gin.Context) {
	var req GenerateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidPayload)
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		response.Error(c, http.StatusBadRequest, response.MsgTopicRequired)
		return
	}
	if req.GradeLevel == "" {
		response.Error(c, http.StatusBadRequest, response.MsgGradeLevelRequired)
		return
	}

	assignment, err := h.generator.GenerateAssignment(c.Request.Context(), req.Topic, req.GradeLevel)
	if err != nil {
		h.log.Error().Err(err).Str("topic", req.Topic).Msg("generate assignment failed")
		response.Error(c, http.StatusInternalServerError, response.MsgFailedAssignment)
		return
	}

	if st := session.FromContext(c); st != nil {
		st.SetAssignment(assignment)
	}
	response.JSON(c, http.StatusOK, assignment)
}

// FeedbackRequest is the POST /api/feedback body.
type FeedbackRequest struct {
	StudentData map[string]interface{} `json:"studentData"`
}

// Feedback godoc
// POST /api/feedback
func (h *GenerateHandler) Feedback(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidPayload)
		return
	}
	if req.StudentData == nil {
		response.Error(c, http.StatusBadRequest, response.MsgStudentDataRequired)
		return
	}

	report, err := h.generator.GenerateFeedback(c.Request.Context(), req.StudentData)
	if err != nil {
		h.log.Error().Err(err).Msg("generate feedback failed")
		response.Error(c, http.StatusInternalServerError, response.MsgFailedFeedback)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// TutorRequest is the POST /api/tutor body.
type TutorRequest struct {
	Question      string `json:"question"`
	GradeLevel    string `json:"gradeLevel"`
	IncludeImages bool   `json:"includeImages"`
}

// Tutor godoc
// POST /api/tutor
func (h *GenerateHandler) Tutor(c *gin.Context) {
	var req TutorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidPayload)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		response.Error(c, http.StatusBadRequest, response.MsgQuestionRequired)
		return
	}

	reply, err := h.generator.Tutor(c.Request.Context(), req.Question, req.GradeLevel, req.IncludeImages)
	if err != nil {
		h.log.Error().Err(err).Msg("tutor request failed")
		response.Error(c, http.StatusInternalServerError, response.MsgFailedTutor)
		return
	}
	response.JSON(c, http.StatusOK, reply)
}
