//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/marcelsud/approval-bridge/approval"
	"github.com/marcelsud/approval-bridge/approval/postgres"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
Test helpers for PostgreSQL with testcontainers

Starts a real postgres:16-alpine container and hands back its
connection string. Cleanup terminates the container.
*/

const (
	defaultDatabase = "testdb"
	defaultUser     = "testuser"
	defaultPassword = "testpass"
)

// PostgresContainer wraps the container and its connection string
type PostgresContainer struct {
	Container testcontainers.Container
	ConnStr   string
}

// SetupPostgresContainer creates and starts a PostgreSQL container
func SetupPostgresContainer(t *testing.T, ctx context.Context) (*PostgresContainer, func()) {
	t.Helper()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase(defaultDatabase),
		tcpostgres.WithUsername(defaultUser),
		tcpostgres.WithPassword(defaultPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cleanup := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	}

	return &PostgresContainer{Container: pgContainer, ConnStr: connStr}, cleanup
}

// CreateTestStore creates a store against the container
func CreateTestStore(t *testing.T, ctx context.Context, connStr string) *postgres.Store {
	t.Helper()

	store, err := postgres.NewStore(ctx, connStr)
	require.NoError(t, err)

	return store
}

// NewTestRequest builds a pending request with a unique id
func NewTestRequest(t *testing.T, index int) approval.Request {
	t.Helper()
	return approval.Request{
		ID:        fmt.Sprintf("test-approval-%d-%d", index, time.Now().UnixNano()),
		Type:      "grant",
		Title:     "Access",
		Channel:   "C1",
		Fields:    []string{"name", "days"},
		Payload:   map[string]any{"name": "J. Smith", "days": float64(3), "tags": []any{"a", "b"}},
		Status:    approval.Pending,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}
