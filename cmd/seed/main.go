package main

import (
	"context"
	"errors"
	"log"
	"os"

	"task_api/internal/db"
	"task_api/internal/domain"
	"task_api/internal/repository"
)

// Seeds a couple of demo users and tasks for local development.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(context.Background(), dsn)
	defer pool.Close()

	ctx := context.Background()
	users := repository.NewUserRepository(pool)
	tasks := repository.NewTaskRepository(pool)

	seedUsers := []repository.CreateUserParams{
		{Name: "John Doe", Email: "john@example.com", Role: "admin"},
		{Name: "Jane Smith", Email: "jane@example.com"},
	}

	var ownerID *int64
	for _, p := range seedUsers {
		u, err := users.Create(ctx, p)
		if errors.Is(err, domain.ErrConflict) {
			log.Printf("user %s already seeded", p.Email)
			continue
		}
		if err != nil {
			log.Fatalf("create user failed: %v", err)
		}
		log.Printf("user created id=%d email=%s", u.ID, u.Email)
		if ownerID == nil {
			ownerID = &u.ID
		}
	}

	seedTasks := []repository.CreateTaskParams{
		{Title: "Learn Go", OwnerID: ownerID},
		{Title: "Build the API"},
		{Title: "Deploy to production"},
	}
	for _, p := range seedTasks {
		t, err := tasks.Create(ctx, p)
		if err != nil {
			log.Fatalf("create task failed: %v", err)
		}
		log.Printf("task created id=%d title=%q", t.ID, t.Title)
	}
}
