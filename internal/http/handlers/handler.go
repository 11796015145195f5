package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"task_api/internal/domain"
	"task_api/internal/logger"
	"task_api/internal/repository"
	"task_api/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Tasks *repository.TaskRepository
	Users *repository.UserRepository
	Stats *service.StatsService
}

func NewHandler(db repository.DB) *Handler {
	return &Handler{
		Tasks: repository.NewTaskRepository(db),
		Users: repository.NewUserRepository(db),
		Stats: service.NewStatsService(db),
	}
}

// idParam parses the :id path segment. Writes the 400 response itself on
// garbage input.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// respondError maps the domain error taxonomy onto status codes. Store
// faults never leak their message to the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
