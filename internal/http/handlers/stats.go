package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStats returns the aggregate snapshot.
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.Stats.Compute(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}
