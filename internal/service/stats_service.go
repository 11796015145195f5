package service

import (
	"context"
	"time"

	"task_api/internal/domain"
	"task_api/internal/repository"
)

// StatsService computes the aggregate report from the store at request time.
// No caching, no incremental counters.
type StatsService struct {
	tasks     *repository.TaskRepository
	users     *repository.UserRepository
	startedAt time.Time
}

func NewStatsService(db repository.DB) *StatsService {
	return &StatsService{
		tasks:     repository.NewTaskRepository(db),
		users:     repository.NewUserRepository(db),
		startedAt: time.Now(),
	}
}

// Compute runs the task aggregate and the user count as two independent
// queries. No transaction spans them; counts may drift in between.
func (s *StatsService) Compute(ctx context.Context) (*domain.Stats, error) {
	tc, err := s.tasks.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.Stats{
		TotalTasks:     tc.Total,
		CompletedTasks: tc.Completed,
		PendingTasks:   tc.Pending,
		TotalUsers:     users,
		ServerUptime:   time.Since(s.startedAt).Seconds(),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}, nil
}
