package model

import (
	"encoding/json"
	"fmt"
)

// TutorReply is the structured answer the AI tutor returns for one question.
type TutorReply struct {
	Response          string   `json:"response"`
	Examples          []string `json:"examples,omitempty"`
	RelatedTopics     []string `json:"relatedTopics,omitempty"`
	PracticeQuestions []string `json:"practiceQuestions,omitempty"`
	Difficulty        string   `json:"difficulty,omitempty"`
	Image             string   `json:"image,omitempty"`
}

// ParseTutorReply builds a TutorReply from raw model output. Returns
// ErrMalformed if the payload is not JSON or carries no response text.
func ParseTutorReply(raw string) (*TutorReply, error) {
	var reply TutorReply
	if err := json.Unmarshal([]byte(CleanModelResponse(raw)), &reply); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if reply.Response == "" {
		return nil, fmt.Errorf("%w: tutor reply has no response text", ErrMalformed)
	}
	return &reply, nil
}
