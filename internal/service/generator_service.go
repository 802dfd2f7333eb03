package service

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/rs/zerolog"

	"github.com/edusuite/virtualschool-backend/internal/model"
)

// maxCardImages caps how many flashcards get their own illustration.
const maxCardImages = 3

// ChatClient is the subset of the provider client content generation uses.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// GeneratorService turns topics into structured study content by prompting
// the model provider and parsing the JSON it returns. Image augmentation is
// a best-effort decorator on top of an already-complete definition: when an
// image call fails, the definition goes out unchanged and the failure is
// only logged.
type GeneratorService struct {
	client ChatClient
	images *ImageService
	model  string
	log    zerolog.Logger
}

// NewGeneratorService creates a new GeneratorService.
func NewGeneratorService(client ChatClient, images *ImageService, textModel string, log zerolog.Logger) *GeneratorService {
	return &GeneratorService{client: client, images: images, model: textModel, log: log}
}

// GenerateQuiz generates a quiz definition for the topic.
func (s *GeneratorService) GenerateQuiz(ctx context.Context, topic string, numQuestions int, includeImages bool) (*model.Quiz, error) {
	raw, err := s.complete(ctx, quizPrompt(topic, numQuestions))
	if err != nil {
		return nil, err
	}

	quiz, err := model.ParseQuiz(raw)
	if err != nil {
		return nil, err
	}

	if includeImages {
		quiz.Image = s.attachImage(ctx, "quiz", topic, quizImagePrompt(topic))
	}
	return quiz, nil
}

// GenerateNotes generates a study-notes definition for the topic and grade
// level.
func (s *GeneratorService) GenerateNotes(ctx context.Context, topic, gradeLevel string, includeImages bool) (*model.Notes, error) {
	raw, err := s.complete(ctx, notesPrompt(topic, gradeLevel))
	if err != nil {
		return nil, err
	}

	notes, err := model.ParseNotes(raw)
	if err != nil {
		return nil, err
	}

	if includeImages {
		notes.Image = s.attachImage(ctx, "notes", topic, notesImagePrompt(topic, gradeLevel))
	}
	return notes, nil
}

// GenerateFlashcards generates a flashcard deck for the topic. With images
// enabled, the deck image and per-card images for the first few cards are
// attempted independently: one failed attempt never aborts the others.
func (s *GeneratorService) GenerateFlashcards(ctx context.Context, topic string, includeImages bool) (*model.FlashcardDeck, error) {
	raw, err := s.complete(ctx, flashcardsPrompt(topic))
	if err != nil {
		return nil, err
	}

	deck, err := model.ParseFlashcardDeck(raw)
	if err != nil {
		return nil, err
	}

	if includeImages {
		deck.Image = s.attachImage(ctx, "flashcards", topic, flashcardsImagePrompt(topic))

		for i := range deck.Cards {
			if i >= maxCardImages {
				break
			}
			kind := fmt.Sprintf("flashcard_%d", i)
			deck.Cards[i].Image = s.attachImage(ctx, kind, topic, cardImagePrompt(deck.Cards[i].Front, topic))
		}
	}
	return deck, nil
}

// GenerateAssignment generates an assignment definition for the topic and
// grade level.
func (s *GeneratorService) GenerateAssignment(ctx context.Context, topic, gradeLevel string) (*model.Assignment, error) {
	raw, err := s.complete(ctx, assignmentPrompt(topic, gradeLevel))
	if err != nil {
		return nil, err
	}
	return model.ParseAssignment(raw)
}

// GenerateFeedback analyzes student performance data and produces a
// feedback report.
func (s *GeneratorService) GenerateFeedback(ctx context.Context, studentData map[string]interface{}) (*model.FeedbackReport, error) {
	raw, err := s.complete(ctx, feedbackPrompt(studentData))
	if err != nil {
		return nil, err
	}
	return model.ParseFeedbackReport(raw)
}

// Tutor answers a student question with a structured tutoring reply.
func (s *GeneratorService) Tutor(ctx context.Context, question, gradeLevel string, includeImages bool) (*model.TutorReply, error) {
	raw, err := s.complete(ctx, tutorPrompt(question, gradeLevel))
	if err != nil {
		return nil, err
	}

	reply, err := model.ParseTutorReply(raw)
	if err != nil {
		return nil, err
	}

	if includeImages {
		reply.Image = s.attachImage(ctx, "tutor", "", tutorImagePrompt(question, gradeLevel))
	}
	return reply, nil
}

// complete runs one chat-completion round trip and returns the raw message
// content.
func (s *GeneratorService) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// attachImage runs one best-effort image generation. It returns the stored
// path, or "" when generation failed — the caller leaves the definition's
// image field unset in that case. Runs sequentially after the content call;
// its latency is additive.
func (s *GeneratorService) attachImage(ctx context.Context, kind, topic, prompt string) string {
	path, err := s.images.Generate(ctx, prompt, Filename(kind, topic, time.Now()))
	if err != nil {
		s.log.Warn().Err(err).Str("kind", kind).Msg("image augmentation failed")
		return ""
	}
	return path
}
