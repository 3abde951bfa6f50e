package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "audio2num/internal/api/errors"
	"audio2num/internal/api/middleware"
	"audio2num/internal/api/v1/dto"
	"audio2num/internal/api/v1/services"
)

// NumberHandler serves the extraction endpoints.
type NumberHandler struct {
	service        services.NumberService
	maxUploadBytes int64
}

// NewNumberHandler creates a handler. Uploads larger than maxUploadBytes are
// rejected; zero disables the limit.
func NewNumberHandler(service services.NumberService, maxUploadBytes int64) *NumberHandler {
	return &NumberHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// Extract handles POST /api/v1/extract
func (h *NumberHandler) Extract(c *gin.Context) {
	var req dto.ExtractRequest

	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.Extract(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Process handles POST /api/v1/process
// Multipart form: "file" (required) and "format" (optional ffmpeg demuxer).
func (h *NumberHandler) Process(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.HandleError(c, apierrors.NewTooLargeError(h.maxUploadBytes))
			return
		}
		middleware.HandleError(c, apierrors.NewValidationError("Validation failed", map[string]string{
			"file": "is required",
		}))
		return
	}

	file, err := header.Open()
	if err != nil {
		middleware.HandleError(c, apierrors.NewBadRequestError("Uploaded file cannot be read"))
		return
	}
	defer file.Close()

	response, err := h.service.Process(c.Request.Context(), header.Filename, c.PostForm("format"), file)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListResults handles GET /api/v1/results
func (h *NumberHandler) ListResults(c *gin.Context) {
	response, err := h.service.ListResults(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
