package handler_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusuite/virtualschool-backend/internal/config"
	"github.com/edusuite/virtualschool-backend/internal/handler"
	"github.com/edusuite/virtualschool-backend/internal/router"
	"github.com/edusuite/virtualschool-backend/internal/service"
	"github.com/edusuite/virtualschool-backend/internal/session"
	"github.com/edusuite/virtualschool-backend/internal/validator"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validator.Setup()
	os.Exit(m.Run())
}

type fakeChatClient struct {
	content string
	err     error
}

func (f *fakeChatClient) CreateChatCompletion(_ context.Context, _ openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{
		{Message: openai.ChatCompletionMessage{Content: f.content}},
	}}, nil
}

type fakeImageClient struct {
	resp openai.ImageResponse
	err  error
}

func (f *fakeImageClient) CreateImage(_ context.Context, _ openai.ImageRequest) (openai.ImageResponse, error) {
	return f.resp, f.err
}

func (f *fakeImageClient) CreateEditImage(_ context.Context, _ openai.ImageEditRequest) (openai.ImageResponse, error) {
	return f.resp, f.err
}

type testServer struct {
	engine *gin.Engine
	images *service.ImageService

	cookies []*http.Cookie
}

func newTestServer(t *testing.T, chat service.ChatClient, image service.ImageClient) *testServer {
	t.Helper()

	images, err := service.NewImageService(image, t.TempDir(), "dall-e-3", zerolog.Nop())
	require.NoError(t, err)
	generator := service.NewGeneratorService(chat, images, "gpt-4o-mini", zerolog.Nop())
	store := session.NewStore("test-secret")

	handlers := &router.Handlers{
		Generate: handler.NewGenerateHandler(generator, zerolog.Nop()),
		Image:    handler.NewImageHandler(images, zerolog.Nop()),
		Study:    handler.NewStudyHandler(zerolog.Nop()),
	}

	cfg := &config.Config{
		GinMode:           gin.TestMode,
		GenerateRateLimit: 1000,
	}
	return &testServer{engine: router.SetupRouter(handlers, store, cfg), images: images}
}

// do issues a request, replaying any session cookies from earlier responses.
func (ts *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range ts.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)

	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		ts.cookies = cookies
	}
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return body
}

const quizContent = `{
	"title": "Quiz on Planets",
	"questions": [
		{"id": 1, "question": "Closest planet to the sun?", "options": ["Mercury", "Venus", "Earth", "Mars"], "correctAnswer": "Mercury", "explanation": "Orbit order."},
		{"id": 2, "question": "Largest planet?", "options": ["Saturn", "Jupiter", "Neptune", "Uranus"], "correctAnswer": "Jupiter", "explanation": "By mass and volume."}
	]
}`

func TestHealth(t *testing.T) {
	ts := newTestServer(t, &fakeChatClient{}, &fakeImageClient{})

	w := ts.do(http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "OK", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestUnknownEndpoint(t *testing.T) {
	ts := newTestServer(t, &fakeChatClient{}, &fakeImageClient{})

	w := ts.do(http.MethodGet, "/api/nope", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Endpoint not found", decode(t, w)["error"])
}

func TestGenerateQuizValidation(t *testing.T) {
	ts := newTestServer(t, &fakeChatClient{content: quizContent}, &fakeImageClient{})

	cases := []struct {
		name    string
		body    string
		message string
	}{
		{"missingTopic", `{"numQuestions": 5}`, "Topic is required and must be a non-empty string"},
		{"blankTopic", `{"topic": "   ", "numQuestions": 5}`, "Topic is required and must be a non-empty string"},
		{"zeroQuestions", `{"topic": "Planets", "numQuestions": 0}`, "Number of questions must be between 1 and 20"},
		{"tooManyQuestions", `{"topic": "Planets", "numQuestions": 25}`, "Number of questions must be between 1 and 20"},
		{"notJSON", `topic=Planets`, "Invalid request payload"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ts.do(http.MethodPost, "/api/generate-quiz", tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.message, decode(t, w)["error"])
		})
	}
}

func TestGenerateQuizReturnsBareDefinition(t *testing.T) {
	ts := newTestServer(t, &fakeChatClient{content: quizContent}, &fakeImageClient{})

	w := ts.do(http.MethodPost, "/api/generate-quiz", `{"topic": "Planets", "numQuestions": 2}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	// the definition is the whole body, no data/result envelope
	assert.Equal(t, "Quiz on Planets", body["title"])
	questions, ok := body["questions"].([]interface{})
	require.True(t, ok)
	assert.Len(t, questions, 2)
	assert.NotContains(t, body, "data")
}

func TestGenerateQuizUpstreamFailure(t *testing.T) {
	ts := newTestServer(t, &fakeChatClient{content: "I cannot produce a quiz right now."}, &fakeImageClient{})

	w := ts.do(http.MethodPost, "/api/generate-quiz", `{"topic": "Planets", "numQuestions": 2}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to generate quiz", decode(t, w)["error"])
}

func TestQuizSessionFlow(t *testing.T) {
	ts := newTestServer(t, &fakeChatClient{content: quizContent}, &fakeImageClient{})

	w := ts.do(http.MethodPost, "/api/generate-quiz", `{"topic": "Planets", "numQuestions": 2}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodPost, "/api/quiz/answers", `{"questionIndex": 0, "answer": "Mercury"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = ts.do(http.MethodPost, "/api/quiz/answers", `{"questionIndex": 1, "answer": "Saturn"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodPost, "/api/quiz/submit", "")
	require.Equal(t, http.StatusOK, w.Code)
	result := decode(t, w)
	assert.Equal(t, float64(50), result["score"])
	assert.Equal(t, float64(1), result["correctAnswers"])
	assert.Equal(t, float64(2), result["totalQuestions"])

	w = ts.do(http.MethodGet, "/api/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	history := decode(t, w)
	entries, ok := history["quizHistory"].([]interface{})
	require.True(t, ok)
	assert.Len(t, entries, 1)

	w = ts.do(http.MethodPost, "/api/quiz/clear", "")
	require.Equal(t, http.StatusOK, w.Code)

	// cleared quiz means submit has nothing to grade
	w = ts.do(http.MethodPost, "/api/quiz/submit", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No quiz has been generated yet", decode(t, w)["error"])
}

func TestQuizSubmitWithoutQuiz(t *testing.T) {
	ts := newTestServer(t, &fakeChatClient{}, &fakeImageClient{})

	w := ts.do(http.MethodPost, "/api/quiz/submit", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No quiz has been generated yet", decode(t, w)["error"])
}

func TestQuizAnswerValidation(t *testing.T) {
	ts := newTestServer(t, &fakeChatClient{content: quizContent}, &fakeImageClient{})

	w := ts.do(http.MethodPost, "/api/quiz/answers", `{"answer": "Mercury"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodPost, "/api/quiz/answers", `{"questionIndex": 0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

const assignmentContent = `{
	"title": "Assignment: Planets",
	"gradeLevel": "6th",
	"instructions": "Answer every question.",
	"estimatedTime": "15 minutes",
	"sections": [
		{"type": "multiple-choice", "questions": [
			{"question": "Closest planet?", "options": ["Mercury", "Venus", "Earth", "Mars"], "correctAnswer": "Mercury", "points": 4}
		]},
		{"type": "short-answer", "questions": [
			{"question": "Why is Venus hot?", "expectedLength": "2-3 sentences", "points": 6}
		]}
	]
}`

func TestAssignmentSessionFlow(t *testing.T) {
	ts := newTestServer(t, &fakeChatClient{content: assignmentContent}, &fakeImageClient{})

	w := ts.do(http.MethodPost, "/api/generate-assignment", `{"topic": "Planets", "gradeLevel": "6th"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodPost, "/api/assignment/answers", `{"questionKey": "multiple-choice-0", "answer": "Mercury"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = ts.do(http.MethodPost, "/api/assignment/answers", `{"questionKey": "short-answer-0", "answer": "Greenhouse gases."}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodPost, "/api/assignment/submit", "")
	require.Equal(t, http.StatusOK, w.Code)
	result := decode(t, w)
	assert.Equal(t, float64(40), result["score"])
	assert.Equal(t, float64(10), result["totalPoints"])
	assert.Equal(t, float64(4), result["earnedPoints"])
	assert.Equal(t, true, result["needsManualGrading"])
}

func TestAssignmentSubmitWithoutAssignment(t *testing.T) {
	ts := newTestServer(t, &fakeChatClient{}, &fakeImageClient{})

	w := ts.do(http.MethodPost, "/api/assignment/submit", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No assignment has been generated yet", decode(t, w)["error"])
}

func TestGenerateNotesValidation(t *testing.T) {
	ts := newTestServer(t, &fakeChatClient{}, &fakeImageClient{})

	w := ts.do(http.MethodPost, "/api/generate-notes", `{"topic": "Cells"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Grade level is required", decode(t, w)["error"])
}

func TestFeedbackValidation(t *testing.T) {
	ts := newTestServer(t, &fakeChatClient{}, &fakeImageClient{})

	w := ts.do(http.MethodPost, "/api/feedback", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Student data is required", decode(t, w)["error"])
}

func TestTutorValidation(t *testing.T) {
	ts := newTestServer(t, &fakeChatClient{}, &fakeImageClient{})

	w := ts.do(http.MethodPost, "/api/tutor", `{"gradeLevel": "6th"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Question is required and must be a non-empty string", decode(t, w)["error"])
}

func TestGenerateImage(t *testing.T) {
	png := base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	image := &fakeImageClient{resp: openai.ImageResponse{Data: []openai.ImageResponseDataInner{{B64JSON: png}}}}
	ts := newTestServer(t, &fakeChatClient{}, image)

	w := ts.do(http.MethodPost, "/api/generate-image", `{"prompt": "the water cycle", "topic": "Weather"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	filename, ok := body["filename"].(string)
	require.True(t, ok)
	assert.Contains(t, filename, "custom_image_")
	assert.Equal(t, "/images/"+filename, body["imagePath"])
	// the default style lands in the composed prompt
	prompt, _ := body["prompt"].(string)
	assert.Contains(t, prompt, "educational")
	assert.Contains(t, prompt, "Weather")
}

func TestGenerateImageValidation(t *testing.T) {
	ts := newTestServer(t, &fakeChatClient{}, &fakeImageClient{})

	w := ts.do(http.MethodPost, "/api/generate-image", `{"topic": "Weather"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Prompt is required and must be a non-empty string", decode(t, w)["error"])
}

func TestEnhanceImageValidation(t *testing.T) {
	ts := newTestServer(t, &fakeChatClient{}, &fakeImageClient{})

	for name, body := range map[string]string{
		"missingImageData":    `{"instructions": "add labels"}`,
		"missingInstructions": `{"imageData": "aGVsbG8="}`,
	} {
		t.Run(name, func(t *testing.T) {
			w := ts.do(http.MethodPost, "/api/enhance-image", body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Image data and instructions are required", decode(t, w)["error"])
		})
	}
}

func TestServeImage(t *testing.T) {
	ts := newTestServer(t, &fakeChatClient{}, &fakeImageClient{})
	require.NoError(t, os.WriteFile(filepath.Join(ts.images.Dir(), "stored.png"), []byte("png-bytes"), 0o644))

	w := ts.do(http.MethodGet, "/api/images/stored.png", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png-bytes", w.Body.String())
	assert.Contains(t, w.Header().Get("Cache-Control"), "max-age=31536000")

	w = ts.do(http.MethodGet, "/api/images/missing.png", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Image not found", decode(t, w)["error"])
}
