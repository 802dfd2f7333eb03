package service

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeImageClient returns a canned provider response for both generation and
// edit calls.
type fakeImageClient struct {
	resp openai.ImageResponse
	err  error

	lastPrompt string
}

func (f *fakeImageClient) CreateImage(_ context.Context, req openai.ImageRequest) (openai.ImageResponse, error) {
	f.lastPrompt = req.Prompt
	return f.resp, f.err
}

func (f *fakeImageClient) CreateEditImage(_ context.Context, req openai.ImageEditRequest) (openai.ImageResponse, error) {
	f.lastPrompt = req.Prompt
	return f.resp, f.err
}

func b64Response(payload []byte) openai.ImageResponse {
	return openai.ImageResponse{Data: []openai.ImageResponseDataInner{
		{B64JSON: base64.StdEncoding.EncodeToString(payload)},
	}}
}

func newTestImageService(t *testing.T, client ImageClient) *ImageService {
	t.Helper()
	svc, err := NewImageService(client, t.TempDir(), "dall-e-3", zerolog.Nop())
	require.NoError(t, err)
	return svc
}

func TestFilename(t *testing.T) {
	ts := time.UnixMilli(1700000000000)

	assert.Equal(t, "quiz_World_War_II_1700000000000.png", Filename("quiz", "World War II", ts))
	assert.Equal(t, "notes_Photosynthesis_1700000000000.png", Filename("notes", "Photosynthesis", ts))
	// whitespace runs collapse to one underscore; nothing else changes
	assert.Equal(t, "flashcards_a_b_1700000000000.png", Filename("flashcards", "a \t b", ts))
	assert.Equal(t, "quiz_Algebra!_1700000000000.png", Filename("quiz", "Algebra!", ts))
	// empty topic drops the slug segment
	assert.Equal(t, "tutor_1700000000000.png", Filename("tutor", "", ts))
	assert.Equal(t, "custom_image_1700000000000.png", Filename("custom_image", "", ts))
}

func TestImageServiceGenerate(t *testing.T) {
	payload := []byte("png-bytes")
	client := &fakeImageClient{resp: b64Response(payload)}
	svc := newTestImageService(t, client)

	path, err := svc.Generate(context.Background(), "an educational diagram", "quiz_Math_1.png")
	require.NoError(t, err)

	assert.Equal(t, "/images/quiz_Math_1.png", path)
	assert.Equal(t, "an educational diagram", client.lastPrompt)

	stored, err := os.ReadFile(filepath.Join(svc.Dir(), "quiz_Math_1.png"))
	require.NoError(t, err)
	assert.Equal(t, payload, stored)
}

func TestImageServiceGenerate_EmptyProviderResponse(t *testing.T) {
	svc := newTestImageService(t, &fakeImageClient{resp: openai.ImageResponse{}})

	_, err := svc.Generate(context.Background(), "p", "x.png")
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestImageServiceEnhance(t *testing.T) {
	client := &fakeImageClient{resp: b64Response([]byte("enhanced"))}
	svc := newTestImageService(t, client)

	source := base64.StdEncoding.EncodeToString([]byte("original"))
	path, filename, err := svc.Enhance(context.Background(), source, "image/png", "add labels")
	require.NoError(t, err)

	assert.Equal(t, "/images/"+filename, path)
	assert.Contains(t, filename, "enhanced_image_")
	assert.Equal(t, "add labels", client.lastPrompt)

	_, err = os.Stat(filepath.Join(svc.Dir(), filename))
	assert.NoError(t, err)
}

func TestImageServiceEnhance_BadBase64(t *testing.T) {
	svc := newTestImageService(t, &fakeImageClient{})

	_, _, err := svc.Enhance(context.Background(), "not-base64!!", "image/png", "x")
	assert.Error(t, err)
}

func TestImageServiceResolve(t *testing.T) {
	svc := newTestImageService(t, &fakeImageClient{})
	require.NoError(t, os.WriteFile(filepath.Join(svc.Dir(), "known.png"), []byte("x"), 0o644))

	full, err := svc.Resolve("known.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(svc.Dir(), "known.png"), full)

	// traversal components are stripped down to the basename
	full, err = svc.Resolve("../../etc/known.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(svc.Dir(), "known.png"), full)

	_, err = svc.Resolve("missing.png")
	assert.True(t, os.IsNotExist(err))

	_, err = svc.Resolve("../../etc/passwd")
	assert.True(t, os.IsNotExist(err))
}
