package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"frame-art-backend/internal/models"
	"frame-art-backend/internal/services"
)

// Editor applies a conversational edit to a stored artwork.
type Editor interface {
	Edit(ctx context.Context, imageURL, instruction, styleLabel string) (services.GenerationResult, error)
}

type EditHandler struct {
	service Editor
}

func NewEditHandler(service Editor) *EditHandler {
	return &EditHandler{service: service}
}

// Edit handles POST /edit.
func (h *EditHandler) Edit(c *gin.Context) {
	var req models.EditRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ImageURL == "" || req.EditInstruction == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "imageUrl and editInstruction are required"})
		return
	}

	result, err := h.service.Edit(c.Request.Context(), req.ImageURL, req.EditInstruction, req.Style)
	if err != nil {
		respondChainError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.EditResponse{Image: result.Image})
}
