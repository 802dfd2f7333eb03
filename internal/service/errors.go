package service

import "errors"

// Sentinel errors surfaced to handlers.
var (
	// ErrInvalidDefinition marks a grading-time structural problem in a
	// definition (no questions, section without a questions array). It must
	// propagate to the caller rather than being silently zero-filled.
	ErrInvalidDefinition = errors.New("invalid definition")

	// ErrNoImage means the image model returned no inline image payload.
	// For augmentation callers this is non-fatal; for the direct image
	// endpoints it maps to a 500.
	ErrNoImage = errors.New("no image in model response")

	// ErrEmptyResponse means the chat model returned no choices or empty
	// content.
	ErrEmptyResponse = errors.New("model returned no content")
)
