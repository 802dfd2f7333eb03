package model

import (
	"errors"
	"regexp"
	"strings"
)

// ErrMalformed indicates that model output did not parse into the expected
// definition shape. The model is an untrusted collaborator: its output is
// free-form text that merely promises to be JSON, so every definition goes
// through a parse-and-validate constructor before anything downstream
// touches it.
var ErrMalformed = errors.New("model output does not match expected shape")

var codeFence = regexp.MustCompile("```json|```")

// CleanModelResponse strips the Markdown code fences models like to wrap
// around JSON payloads.
func CleanModelResponse(raw string) string {
	return strings.TrimSpace(codeFence.ReplaceAllString(raw, ""))
}
