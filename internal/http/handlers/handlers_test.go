package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"task_api/internal/http/handlers"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, pgxmock.PgxPoolIface) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)

	h := handlers.NewHandler(mockPool)
	r := gin.New()
	api := r.Group("/api")
	api.GET("/tasks", h.ListTasks)
	api.POST("/tasks", h.CreateTask)
	api.PUT("/tasks/:id", h.UpdateTask)
	api.DELETE("/tasks/:id", h.DeleteTask)
	api.GET("/users", h.ListUsers)
	api.POST("/users", h.CreateUser)
	api.GET("/users/:id", h.GetUser)
	api.PUT("/users/:id", h.UpdateUser)
	api.DELETE("/users/:id", h.DeleteUser)
	api.GET("/stats", h.GetStats)
	return r, mockPool
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var taskCols = []string{"id", "title", "completed", "owner_id", "owner_name", "created_at", "updated_at"}
var userCols = []string{"id", "name", "email", "role", "created_at"}

func TestTaskEndpoints(t *testing.T) {
	t.Run("Should list tasks with a count", func(t *testing.T) {
		r, mockPool := newTestRouter(t)
		now := time.Now()
		var noOwner *int64
		var noName *string
		mockPool.ExpectQuery(`SELECT (.+) FROM tasks t`).
			WillReturnRows(mockPool.NewRows(taskCols).
				AddRow(int64(1), "Ship it", false, noOwner, noName, now, now))

		w := do(r, http.MethodGet, "/api/tasks", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"count":1`)
		assert.Contains(t, w.Body.String(), `"Ship it"`)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should return 201 on create", func(t *testing.T) {
		r, mockPool := newTestRouter(t)
		now := time.Now()
		var noOwner *int64
		var noName *string
		mockPool.ExpectQuery(`INSERT INTO tasks`).
			WithArgs("Ship it", pgxmock.AnyArg()).
			WillReturnRows(mockPool.NewRows([]string{"id"}).AddRow(int64(1)))
		mockPool.ExpectQuery(`SELECT (.+) FROM tasks t`).
			WithArgs(int64(1)).
			WillReturnRows(mockPool.NewRows(taskCols).
				AddRow(int64(1), "Ship it", false, noOwner, noName, now, now))

		w := do(r, http.MethodPost, "/api/tasks", `{"title":"Ship it"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should return 400 for a create without a title", func(t *testing.T) {
		r, mockPool := newTestRouter(t)

		w := do(r, http.MethodPost, "/api/tasks", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should return 400 for an update with no fields", func(t *testing.T) {
		r, mockPool := newTestRouter(t)

		w := do(r, http.MethodPut, "/api/tasks/1", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should return 400 for a garbage id", func(t *testing.T) {
		r, mockPool := newTestRouter(t)

		w := do(r, http.MethodPut, "/api/tasks/abc", `{"completed":true}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should return 404 when updating a missing task", func(t *testing.T) {
		r, mockPool := newTestRouter(t)
		mockPool.ExpectExec(`UPDATE tasks SET`).
			WithArgs(true, int64(99)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		w := do(r, http.MethodPut, "/api/tasks/99", `{"completed":true}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should echo the deleted task", func(t *testing.T) {
		r, mockPool := newTestRouter(t)
		now := time.Now()
		var noOwner *int64
		var noName *string
		mockPool.ExpectQuery(`SELECT (.+) FROM tasks t`).
			WithArgs(int64(1)).
			WillReturnRows(mockPool.NewRows(taskCols).
				AddRow(int64(1), "Old task", true, noOwner, noName, now, now))
		mockPool.ExpectExec(`DELETE FROM tasks`).
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		w := do(r, http.MethodDelete, "/api/tasks/1", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"Old task"`)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should return 500 with a generic message on a store failure", func(t *testing.T) {
		r, mockPool := newTestRouter(t)
		mockPool.ExpectQuery(`SELECT (.+) FROM tasks t`).
			WillReturnError(assert.AnError)

		w := do(r, http.MethodGet, "/api/tasks", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "internal error")
		assert.NotContains(t, w.Body.String(), assert.AnError.Error())
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestUserEndpoints(t *testing.T) {
	t.Run("Should return 409 for a duplicate email", func(t *testing.T) {
		r, mockPool := newTestRouter(t)
		mockPool.ExpectQuery(`INSERT INTO users`).
			WithArgs("Impostor", "jane@example.com", "user").
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

		w := do(r, http.MethodPost, "/api/users", `{"name":"Impostor","email":"jane@example.com"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should return 404 for a missing user", func(t *testing.T) {
		r, mockPool := newTestRouter(t)
		mockPool.ExpectQuery(`SELECT id, name, email, role, created_at FROM users`).
			WithArgs(int64(77)).
			WillReturnError(pgx.ErrNoRows)

		w := do(r, http.MethodGet, "/api/users/77", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should return 201 with the defaulted role", func(t *testing.T) {
		r, mockPool := newTestRouter(t)
		now := time.Now()
		mockPool.ExpectQuery(`INSERT INTO users`).
			WithArgs("Jane Smith", "jane@example.com", "user").
			WillReturnRows(mockPool.NewRows([]string{"id"}).AddRow(int64(2)))
		mockPool.ExpectQuery(`SELECT id, name, email, role, created_at FROM users`).
			WithArgs(int64(2)).
			WillReturnRows(mockPool.NewRows(userCols).
				AddRow(int64(2), "Jane Smith", "jane@example.com", "user", now))

		w := do(r, http.MethodPost, "/api/users", `{"name":"Jane Smith","email":"jane@example.com"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"role":"user"`)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestStatsEndpoint(t *testing.T) {
	t.Run("Should return the aggregate snapshot", func(t *testing.T) {
		r, mockPool := newTestRouter(t)
		mockPool.ExpectQuery(`SELECT COUNT\(\*\), COUNT\(\*\) FILTER`).
			WillReturnRows(mockPool.NewRows([]string{"total", "completed", "pending"}).
				AddRow(int64(3), int64(2), int64(1)))
		mockPool.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
			WillReturnRows(mockPool.NewRows([]string{"count"}).AddRow(int64(2)))

		w := do(r, http.MethodGet, "/api/stats", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total_tasks":3`)
		assert.Contains(t, w.Body.String(), `"completed_tasks":2`)
		assert.Contains(t, w.Body.String(), `"pending_tasks":1`)
		assert.Contains(t, w.Body.String(), `"total_users":2`)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}
