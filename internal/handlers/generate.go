package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"frame-art-backend/internal/imaging"
	"frame-art-backend/internal/models"
	"frame-art-backend/internal/services"
)

// Generator runs the full generation chain for one request.
type Generator interface {
	Generate(ctx context.Context, styleInput, userPrompt string, tealAccent bool) (services.GenerationResult, error)
}

type GenerateHandler struct {
	service Generator
}

func NewGenerateHandler(service Generator) *GenerateHandler {
	return &GenerateHandler{service: service}
}

// Generate handles POST /generate.
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Style == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "style is required"})
		return
	}

	result, err := h.service.Generate(c.Request.Context(), req.Style, req.UserPrompt, req.UseTealAccent)
	if err != nil {
		respondChainError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.GenerateResponse{
		Image:  result.Image,
		Prompt: result.CraftedPrompt,
		Dimensions: models.Dimensions{
			Width:  imaging.TargetWidth,
			Height: imaging.TargetHeight,
		},
	})
}
