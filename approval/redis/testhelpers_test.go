//go:build integration

package redis_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/marcelsud/approval-bridge/approval"
	"github.com/marcelsud/approval-bridge/approval/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	testcontainersredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

/* Test Helpers for Redis Integration Tests
 * Following the pattern from: https://eltonminetto.dev/post/2024-02-15-using-test-helpers/
 */

// RedisContainer holds the Redis testcontainer and connection details
type RedisContainer struct {
	Container *testcontainersredis.RedisContainer
	Addr      string
}

// SetupRedisContainer creates and starts a Redis testcontainer
func SetupRedisContainer(t *testing.T, ctx context.Context) (*RedisContainer, func()) {
	t.Helper()

	// GETDEL needs Redis 6.2 or newer
	redisContainer, err := testcontainersredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err, "failed to start Redis container")

	addr, err := redisContainer.ConnectionString(ctx)
	require.NoError(t, err, "failed to get Redis connection string")
	addr = strings.TrimPrefix(addr, "redis://")

	rc := &RedisContainer{
		Container: redisContainer,
		Addr:      addr,
	}

	cleanup := func() {
		if err := redisContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Redis container: %v", err)
		}
	}

	return rc, cleanup
}

// CreateTestStore creates a Redis store connected to the test container
func CreateTestStore(t *testing.T, addr string, ttl time.Duration) *redis.Store {
	t.Helper()

	store, err := redis.NewStore(addr, "", 0, ttl)
	require.NoError(t, err, "failed to create Redis store")

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
		Fields:    []string{"name"},
		Payload:   map[string]any{"name": "J. Smith", "days": float64(3)},
		Status:    approval.Pending,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// GetKeyTTL returns the TTL of a Redis key
func GetKeyTTL(t *testing.T, addr string, key string) time.Duration {
	t.Helper()

	client := goredis.NewClient(&goredis.Options{Addr: addr})
	defer client.Close()

	ttl, err := client.TTL(context.Background(), key).Result()
	require.NoError(t, err)

	return ttl
}
