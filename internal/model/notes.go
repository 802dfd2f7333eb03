package model

import (
	"encoding/json"
	"fmt"
)

// NoteSection is one heading of a generated note set.
type NoteSection struct {
	Heading   string   `json:"heading"`
	Content   string   `json:"content"`
	KeyPoints []string `json:"keyPoints,omitempty"`
}

// Notes is a generated study-notes definition.
type Notes struct {
	Title      string        `json:"title"`
	GradeLevel string        `json:"gradeLevel,omitempty"`
	Sections   []NoteSection `json:"sections"`
	Summary    string        `json:"summary,omitempty"`
	Image      string        `json:"image,omitempty"`
}

// ParseNotes builds a Notes definition from raw model output. Returns
// ErrMalformed if the payload is not JSON or has no sections array.
func ParseNotes(raw string) (*Notes, error) {
	var notes Notes
	if err := json.Unmarshal([]byte(CleanModelResponse(raw)), &notes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(notes.Sections) == 0 {
		return nil, fmt.Errorf("%w: notes have no sections", ErrMalformed)
	}
	return &notes, nil
}
