package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/rs/zerolog"
)

// ImageClient is the subset of the provider client the image store uses.
type ImageClient interface {
	CreateImage(ctx context.Context, req openai.ImageRequest) (openai.ImageResponse, error)
	CreateEditImage(ctx context.Context, req openai.ImageEditRequest) (openai.ImageResponse, error)
}

// ImageService generates images through the provider and persists them to a
// local directory. Stored files are addressed by bare filename; the
// directory layout is an implementation detail clients never see.
type ImageService struct {
	client ImageClient
	dir    string
	model  string
	log    zerolog.Logger
}

// NewImageService creates an ImageService, ensuring the storage directory
// exists.
func NewImageService(client ImageClient, dir, model string, log zerolog.Logger) (*ImageService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create images dir: %w", err)
	}
	return &ImageService{client: client, dir: dir, model: model, log: log}, nil
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Filename builds the stored image filename: "<kind>_<slug>_<millis>.png",
// where the slug is the topic with whitespace runs replaced by underscores.
// No other normalization is applied — case and punctuation survive as
// authored. An empty topic drops the slug segment entirely.
func Filename(kind, topic string, now time.Time) string {
	if topic == "" {
		return fmt.Sprintf("%s_%d.png", kind, now.UnixMilli())
	}
	slug := whitespaceRun.ReplaceAllString(topic, "_")
	return fmt.Sprintf("%s_%s_%d.png", kind, slug, now.UnixMilli())
}

// Generate asks the image model for one image, writes it under the storage
// directory as filename, and returns the server-relative path
// "/images/<filename>". A response without an inline image payload returns
// ErrNoImage.
func (s *ImageService) Generate(ctx context.Context, prompt, filename string) (string, error) {
	resp, err := s.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          s.model,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return "", fmt.Errorf("image generation: %w", err)
	}

	path, err := s.persist(resp, filename)
	if err != nil {
		return "", err
	}

	s.log.Debug().Str("filename", filename).Msg("image stored")
	return path, nil
}

// Enhance runs an image-edit call against caller-supplied base64 image bytes
// and persists the result. Returns the server-relative path and the stored
// filename.
func (s *ImageService) Enhance(ctx context.Context, imageData, mimeType, instructions string) (string, string, error) {
	raw, err := base64.StdEncoding.DecodeString(imageData)
	if err != nil {
		return "", "", fmt.Errorf("decode image data: %w", err)
	}

	tmp, err := os.CreateTemp("", "enhance-*"+extensionFor(mimeType))
	if err != nil {
		return "", "", fmt.Errorf("temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := tmp.Write(raw); err != nil {
		return "", "", fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, 0); err != nil {
		return "", "", fmt.Errorf("rewind temp file: %w", err)
	}

	resp, err := s.client.CreateEditImage(ctx, openai.ImageEditRequest{
		Image:          tmp,
		Prompt:         instructions,
		Model:          s.model,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return "", "", fmt.Errorf("image enhancement: %w", err)
	}

	filename := Filename("enhanced_image", "", time.Now())
	path, err := s.persist(resp, filename)
	if err != nil {
		return "", "", err
	}
	return path, filename, nil
}

// Resolve maps a client-supplied filename to the on-disk path. Only the
// basename is honored, so directory components (or traversal attempts) in
// the input are discarded. Returns an error satisfying os.IsNotExist checks
// when the image is missing.
func (s *ImageService) Resolve(filename string) (string, error) {
	full := filepath.Join(s.dir, filepath.Base(filename))
	if _, err := os.Stat(full); err != nil {
		return "", err
	}
	return full, nil
}

// Dir exposes the storage directory, for the retention sweeper.
func (s *ImageService) Dir() string {
	return s.dir
}

// persist extracts the first inline image payload from a provider response
// and writes it to disk.
func (s *ImageService) persist(resp openai.ImageResponse, filename string) (string, error) {
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return "", ErrNoImage
	}

	raw, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return "", fmt.Errorf("decode image payload: %w", err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, filename), raw, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	return "/images/" + filename, nil
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
