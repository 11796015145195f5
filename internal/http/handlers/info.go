package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIInfo lists the available endpoints.
func (h *Handler) APIInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "task/user resource API",
		"endpoints": []string{
			"GET /health",
			"GET /api/v1/tasks",
			"POST /api/v1/tasks",
			"PUT /api/v1/tasks/:id",
			"DELETE /api/v1/tasks/:id",
			"GET /api/v1/users",
			"POST /api/v1/users",
			"GET /api/v1/users/:id",
			"PUT /api/v1/users/:id",
			"DELETE /api/v1/users/:id",
			"GET /api/v1/stats",
		},
	})
}
