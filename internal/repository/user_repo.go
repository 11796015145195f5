package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"task_api/internal/domain"

	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

const userSelect = `SELECT id, name, email, role, created_at FROM users`

type CreateUserParams struct {
	Name  string
	Email string
	Role  string
}

type UpdateUserParams struct {
	Name  *string
	Email *string
	Role  *string
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.Query(ctx, userSelect+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var res []*domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		res = append(res, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return res, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, userSelect+` WHERE id = $1`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

// Create inserts a user. A duplicate email surfaces from the store as a
// unique violation and is reported as a conflict, not a store fault.
func (r *UserRepository) Create(ctx context.Context, p CreateUserParams) (*domain.User, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(p.Email) == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	role := p.Role
	if role == "" {
		role = domain.DefaultRole
	}

	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (name, email, role) VALUES ($1, $2, $3) RETURNING id`,
		p.Name, p.Email, role,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("email %s: %w", p.Email, domain.ErrConflict)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return r.GetByID(ctx, id)
}

// Update overwrites only the supplied fields, then re-fetches the canonical
// record. An email colliding with another user's is a conflict.
func (r *UserRepository) Update(ctx context.Context, id int64, p UpdateUserParams) (*domain.User, error) {
	up := newUpdateSet("users")
	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrValidation)
		}
		up.Set("name", *p.Name)
	}
	if p.Email != nil {
		if strings.TrimSpace(*p.Email) == "" {
			return nil, fmt.Errorf("%w: email cannot be empty", domain.ErrValidation)
		}
		up.Set("email", *p.Email)
	}
	if p.Role != nil {
		up.Set("role", *p.Role)
	}
	if up.Empty() {
		return nil, fmt.Errorf("%w: no fields to update", domain.ErrValidation)
	}

	sql, args, err := up.ByID(id)
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) && p.Email != nil {
			return nil, fmt.Errorf("email %s: %w", *p.Email, domain.ErrConflict)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a user and returns the pre-delete snapshot. Tasks owned by
// the user are left untouched; their owner projection degrades at read time.
func (r *UserRepository) Delete(ctx context.Context, id int64) (*domain.User, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	return u, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
