package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"frame-art-backend/internal/models"
	"frame-art-backend/internal/styles"
)

// ListStyles handles GET /styles. The catalog is fixed at build time.
func ListStyles(c *gin.Context) {
	all := styles.All()
	out := make([]models.StyleResponse, len(all))
	for i, s := range all {
		out[i] = models.StyleResponse{
			ID:          s.ID,
			Name:        s.Name,
			Category:    string(s.Category),
			Description: s.Description,
		}
	}
	c.JSON(http.StatusOK, models.StylesResponse{Styles: out})
}
