//go:build integration

// Package dbtest starts a throwaway Postgres for integration tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"
	"time"

	database "github.com/sebuszqo/ExpenseTracker/internal/db"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
)

// NewPostgres returns a connection string to a fresh database. The container
// is terminated when the test ends.
func NewPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("expenses"),
		postgres.WithUsername("expenses"),
		postgres.WithPassword("expenses"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return connStr
}

// NewMigratedDB connects to a fresh database with every migration applied.
func NewMigratedDB(t *testing.T) *sql.DB {
	t.Helper()

	dbService, err := database.NewDBService(context.Background(), NewPostgres(t), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbService.Close() })

	require.NoError(t, database.RunMigrations(dbService.DB))
	return dbService.DB
}
