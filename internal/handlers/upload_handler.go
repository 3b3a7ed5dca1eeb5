package handlers

import (
	"context"
	"io"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tahmid39/circle-help/backend/pkg/cloudinary"
)

const maxUploadBytes = 8 << 20 // 8MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/jpg":  true,
}

// Uploader stores an image and returns where it landed
type Uploader interface {
	UploadImage(ctx context.Context, r io.Reader) (*cloudinary.UploadResult, error)
}

// UploadHandler accepts multipart image uploads and hands them to the
// configured Uploader. A nil uploader means the service was started without
// Cloudinary credentials; uploads then fail with 500.
type UploadHandler struct {
	uploader Uploader
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploader Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// RegisterUploadRoutes registers the upload endpoint
func (h *UploadHandler) RegisterUploadRoutes(e *echo.Echo) {
	e.POST("/api/upload", h.UploadImage)
}

// UploadImage handles POST /api/upload. The file is validated before
// anything is sent upstream, so oversized or non-image payloads never reach
// Cloudinary.
func (h *UploadHandler) UploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No file provided"})
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return c.JSON(http.StatusUnsupportedMediaType, echo.Map{"error": "File must be a JPEG, PNG, or WebP image"})
	}

	if fileHeader.Size > maxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "File exceeds the 8MB limit"})
	}

	if h.uploader == nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Cloudinary not configured"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to read file"})
	}
	defer file.Close()

	result, err := h.uploader.UploadImage(c.Request().Context(), file)
	if err != nil {
		log.Printf("Upload error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Upload failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"url":       result.URL,
		"public_id": result.PublicID,
		"bytes":     result.Bytes,
		"format":    result.Format,
		"width":     result.Width,
		"height":    result.Height,
	})
}
