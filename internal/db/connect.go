package db

import (
	"context"

	"task_api/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect builds the shared connection pool and verifies it with a ping.
func Connect(ctx context.Context, dsn string) *pgxpool.Pool {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Fatal("failed to create database pool", "error", err)
	}

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("failed to ping database", "error", err)
	}

	logger.Info("database connected")
	return pool
}
