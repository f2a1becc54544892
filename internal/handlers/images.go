package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"frame-art-backend/internal/artstore"
	"frame-art-backend/internal/imaging"
	"frame-art-backend/internal/models"
)

// ArtworkStore is the persisted-artwork surface of artstore.Store.
type ArtworkStore interface {
	Save(png []byte, styleLabel, promptText string) (models.GeneratedImage, error)
	List() ([]models.GeneratedImage, error)
	Delete(id string) error
}

type ImagesHandler struct {
	store ArtworkStore
}

func NewImagesHandler(store ArtworkStore) *ImagesHandler {
	return &ImagesHandler{store: store}
}

// ListImages handles GET /images. Listing is always a fresh read; the
// response headers disable client caching, and failures degrade to an
// empty gallery rather than an omitted images key.
func (h *ImagesHandler) ListImages(c *gin.Context) {
	c.Header("Cache-Control", "no-store, no-cache, must-revalidate")
	c.Header("Pragma", "no-cache")

	images, err := h.store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ImagesErrorResponse{
			Error:  "failed to list images",
			Images: []models.GeneratedImage{},
		})
		return
	}
	if images == nil {
		images = []models.GeneratedImage{}
	}

	c.JSON(http.StatusOK, models.ImagesResponse{Images: images})
}

// SaveImage handles POST /images: persists a client-supplied image
// directly, with no synthesis step. The payload is still normalized so
// the store only ever holds PNGs at the target raster.
func (h *ImagesHandler) SaveImage(c *gin.Context) {
	var req models.SaveImageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ImageBase64 == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "imageBase64 is required"})
		return
	}

	raw, err := base64.StdEncoding.DecodeString(stripDataURLPrefix(req.ImageBase64))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid imageBase64",
			Details: truncateDetails(err.Error()),
		})
		return
	}

	normalized, err := imaging.Normalize(raw)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to process image",
			Details: truncateDetails(err.Error()),
		})
		return
	}

	style := req.Style
	if strings.TrimSpace(style) == "" {
		style = "untitled"
	}

	image, err := h.store.Save(normalized.PNG, style, req.Prompt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to save artwork",
			Details: truncateDetails(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, models.SaveImageResponse{Image: image})
}

// DeleteImage handles DELETE /images?id={id}.
func (h *ImagesHandler) DeleteImage(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "id is required"})
		return
	}

	if err := h.store.Delete(id); err != nil {
		if errors.Is(err, artstore.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete image",
			Details: truncateDetails(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, models.DeleteResponse{Success: true})
}

func stripDataURLPrefix(value string) string {
	if idx := strings.IndexByte(value, ','); idx >= 0 && strings.HasPrefix(value, "data:") {
		return value[idx+1:]
	}
	return value
}
