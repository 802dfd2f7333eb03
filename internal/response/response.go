// Package response renders the wire format the browser client expects:
// success bodies are the bare payload object, error bodies are
// {"error": "<message>"}. Request IDs travel in the X-Request-ID header
// rather than the body so payload shapes stay untouched.
package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the uniform error envelope for every failed request.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON sends a successful response. The payload is written as-is: generated
// definitions go to the client byte-compatible with what the model produced.
func JSON(c *gin.Context, statusCode int, payload interface{}) {
	c.JSON(statusCode, payload)
}

// Error sends an error response with the given status code and message.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{Error: message})
}

// AbortError aborts the middleware chain and sends an error response.
func AbortError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorBody{Error: message})
}
