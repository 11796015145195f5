package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"task_api/internal/domain"

	"github.com/jackc/pgx/v5"
)

type TaskRepository struct {
	db DB
}

func NewTaskRepository(db DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// taskSelect projects a task with its owner via LEFT JOIN. Selecting u.id
// rather than t.owner_id makes a dangling owner degrade to no owner.
const taskSelect = `SELECT t.id, t.title, t.completed, u.id, u.name, t.created_at, t.updated_at FROM tasks t LEFT JOIN users u ON u.id = t.owner_id`

type CreateTaskParams struct {
	Title   string
	OwnerID *int64
}

// UpdateTaskParams carries the fields supplied by the caller. A nil pointer
// means the field was absent and must keep its stored value.
type UpdateTaskParams struct {
	Title     *string
	Completed *bool
}

func (r *TaskRepository) List(ctx context.Context) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx, taskSelect+` ORDER BY t.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var res []*domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Completed, &t.OwnerID, &t.OwnerName, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		res = append(res, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return res, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var t domain.Task
	err := r.db.QueryRow(ctx, taskSelect+` WHERE t.id = $1`, id).
		Scan(&t.ID, &t.Title, &t.Completed, &t.OwnerID, &t.OwnerName, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("task %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query task: %w", err)
	}
	return &t, nil
}

// Create inserts a task and re-reads the joined record so the response
// carries store-assigned fields and the owner projection.
func (r *TaskRepository) Create(ctx context.Context, p CreateTaskParams) (*domain.Task, error) {
	if strings.TrimSpace(p.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if p.OwnerID != nil {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, *p.OwnerID).Scan(&exists); err != nil {
			return nil, fmt.Errorf("check owner: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: owner %d does not exist", domain.ErrValidation, *p.OwnerID)
		}
	}

	var id int64
	if err := r.db.QueryRow(ctx,
		`INSERT INTO tasks (title, completed, owner_id) VALUES ($1, false, $2) RETURNING id`,
		p.Title, p.OwnerID,
	).Scan(&id); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return r.GetByID(ctx, id)
}

// Update overwrites only the supplied fields, then re-fetches the canonical
// record. The stored row is the source of truth for the response, never the
// in-memory pre-update values.
func (r *TaskRepository) Update(ctx context.Context, id int64, p UpdateTaskParams) (*domain.Task, error) {
	up := newUpdateSet("tasks")
	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrValidation)
		}
		up.Set("title", *p.Title)
	}
	if p.Completed != nil {
		up.Set("completed", *p.Completed)
	}
	if up.Empty() {
		return nil, fmt.Errorf("%w: no fields to update", domain.ErrValidation)
	}
	up.SetExpr("updated_at", "now()")

	sql, args, err := up.ByID(id)
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("task %d: %w", id, domain.ErrNotFound)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a task and returns the pre-delete snapshot so callers can
// report what was deleted.
func (r *TaskRepository) Delete(ctx context.Context, id int64) (*domain.Task, error) {
	t, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// removed between the read and the delete
		return nil, fmt.Errorf("task %d: %w", id, domain.ErrNotFound)
	}
	return t, nil
}

type TaskCounts struct {
	Total     int64
	Completed int64
	Pending   int64
}

func (r *TaskRepository) CountByStatus(ctx context.Context) (TaskCounts, error) {
	var c TaskCounts
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE completed), COUNT(*) FILTER (WHERE NOT completed) FROM tasks`,
	).Scan(&c.Total, &c.Completed, &c.Pending)
	if err != nil {
		return TaskCounts{}, fmt.Errorf("count tasks: %w", err)
	}
	return c, nil
}
