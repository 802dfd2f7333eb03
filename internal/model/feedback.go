package model

import (
	"encoding/json"
	"fmt"
)

// Recommendation is one actionable suggestion in a feedback report.
type Recommendation struct {
	Topic     string   `json:"topic"`
	Action    string   `json:"action"`
	Resources []string `json:"resources,omitempty"`
}

// FeedbackReport is generated performance feedback for a student.
type FeedbackReport struct {
	OverallScore    float64          `json:"overallScore"`
	Strengths       []string         `json:"strengths,omitempty"`
	Improvements    []string         `json:"improvements,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	Encouragement   string           `json:"encouragement,omitempty"`
}

// ParseFeedbackReport builds a FeedbackReport from raw model output.
// The report has no mandatory inner arrays, so validation stops at the
// payload being well-formed JSON.
func ParseFeedbackReport(raw string) (*FeedbackReport, error) {
	var report FeedbackReport
	if err := json.Unmarshal([]byte(CleanModelResponse(raw)), &report); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &report, nil
}
