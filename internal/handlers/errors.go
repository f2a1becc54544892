package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"frame-art-backend/internal/gemini"
	"frame-art-backend/internal/models"
	"frame-art-backend/internal/services"
)

const maxDetailsLen = 500

// respondChainError maps a generation/edit chain failure onto the
// wire-level error taxonomy. Raw upstream bodies are logged by the
// gemini client; only a truncated form reaches the details field.
func respondChainError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrMissingAPIKey) {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "GEMINI_API_KEY is not configured",
		})
		return
	}

	var chainErr *services.ChainError
	if !errors.As(err, &chainErr) {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal error",
			Details: truncateDetails(err.Error()),
		})
		return
	}

	switch chainErr.Stage {
	case services.StageCraft:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "prompt crafting failed",
			Details: truncateDetails(chainErr.Err.Error()),
		})
	case services.StageSynthesize:
		var noImage *gemini.NoImageError
		if errors.As(chainErr.Err, &noImage) {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "no image returned",
				Details: truncateDetails(noImage.Explanation),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "image synthesis failed",
			Details: truncateDetails(chainErr.Err.Error()),
		})
	case services.StageFetchSource:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to fetch original image",
			Details: truncateDetails(chainErr.Err.Error()),
		})
	case services.StageNormalize:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to process image",
			Details: truncateDetails(chainErr.Err.Error()),
		})
	case services.StageStore:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to save artwork",
			Details: truncateDetails(chainErr.Err.Error()),
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal error",
			Details: truncateDetails(chainErr.Error()),
		})
	}
}

func truncateDetails(s string) string {
	if len(s) <= maxDetailsLen {
		return s
	}
	return s[:maxDetailsLen] + "..."
}
