package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/edusuite/virtualschool-backend/internal/response"
	"github.com/edusuite/virtualschool-backend/internal/service"
)

// ImageHandler handles the standalone image endpoints: explicit generation,
// enhancement of uploaded bytes, and serving stored files.
type ImageHandler struct {
	images *service.ImageService
	log    zerolog.Logger
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(images *service.ImageService, log zerolog.Logger) *ImageHandler {
	return &ImageHandler{images: images, log: log}
}

// GenerateImageRequest is the POST /api/generate-image body.
type GenerateImageRequest struct {
	Prompt string `json:"prompt"`
	Topic  string `json:"topic"`
	Style  string `json:"style"`
}

// GenerateImage godoc
// POST /api/generate-image
func (h *ImageHandler) GenerateImage(c *gin.Context) {
	var req GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidPayload)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		response.Error(c, http.StatusBadRequest, response.MsgPromptRequired)
		return
	}
	if req.Style == "" {
		req.Style = "educational"
	}

	prompt := fmt.Sprintf("Create a %s illustration: %s. Make it colorful, clear, and suitable for learning.", req.Style, req.Prompt)
	if req.Topic != "" {
		prompt += fmt.Sprintf(" This is related to the topic: %s.", req.Topic)
	}

	filename := service.Filename("custom_image", "", time.Now())
	path, err := h.images.Generate(c.Request.Context(), prompt, filename)
	if err != nil {
		h.log.Error().Err(err).Msg("generate image failed")
		response.Error(c, http.StatusInternalServerError, response.MsgFailedImage)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"success":   true,
		"imagePath": path,
		"prompt":    prompt,
		"filename":  filename,
	})
}

// EnhanceImageRequest is the POST /api/enhance-image body.
type EnhanceImageRequest struct {
	ImageData    string `json:"imageData"`
	Instructions string `json:"instructions"`
	MimeType     string `json:"mimeType"`
}

// EnhanceImage godoc
// POST /api/enhance-image
func (h *ImageHandler) EnhanceImage(c *gin.Context) {
	var req EnhanceImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidPayload)
		return
	}
	if req.ImageData == "" || req.Instructions == "" {
		response.Error(c, http.StatusBadRequest, response.MsgImageDataRequired)
		return
	}
	if req.MimeType == "" {
		req.MimeType = "image/png"
	}

	path, filename, err := h.images.Enhance(c.Request.Context(), req.ImageData, req.MimeType, req.Instructions)
	if err != nil {
		h.log.Error().Err(err).Msg("enhance image failed")
		response.Error(c, http.StatusInternalServerError, response.MsgFailedEnhanceImage)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"success":      true,
		"imagePath":    path,
		"instructions": req.Instructions,
		"filename":     filename,
	})
}

// ServeImage godoc
// GET /api/images/:filename
// Streams stored image bytes. Only the basename of the parameter is used,
// so stored paths with directory prefixes resolve to the same file.
func (h *ImageHandler) ServeImage(c *gin.Context) {
	full, err := h.images.Resolve(c.Param("filename"))
	if err != nil {
		response.Error(c, http.StatusNotFound, response.MsgImageNotFound)
		return
	}
	c.File(full)
}
