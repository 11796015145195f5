package domain

import "time"

// Task is a task row projected with its owner, when the owning user still
// exists. A dangling owner_id projects as no owner.
type Task struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	OwnerID   *int64    `json:"owner_id,omitempty"`
	OwnerName *string   `json:"owner_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
