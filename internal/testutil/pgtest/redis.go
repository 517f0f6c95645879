//go:build integration

package pgtest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	redisOnce      sync.Once
	redisContainer testcontainers.Container
	redisErr       error
)

// NewRedisClient returns a client on a flushed redis:7 instance shared by the
// test process.
func NewRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	redisOnce.Do(func() {
		redisContainer, redisErr = startContainer(testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
			Labels:       map[string]string{"purpose": "court-booking-integration"},
		}, 60*time.Second)
	})
	require.NoError(t, redisErr, "failed to start redis container")

	info, err := hostPort(redisContainer, "6379/tcp")
	require.NoError(t, err, "failed to resolve redis port")

	client := redis.NewClient(&redis.Options{Addr: info.Host + ":" + info.Port.Port()})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, client.FlushDB(ctx).Err())
	t.Cleanup(func() { _ = client.Close() })
	return client
}
