//go:build integration

package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)
	require.NoError(t, pool.Client.Ping())

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7-alpine",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Purge(resource) })

	c := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("localhost:%s", resource.GetPort("6379/tcp")),
	})
	t.Cleanup(func() { _ = c.Close() })

	pool.MaxWait = 60 * time.Second
	require.NoError(t, pool.Retry(func() error {
		return Ping(context.Background(), c)
	}))

	return c
}

func TestRedisKV(t *testing.T) {
	ctx := context.Background()
	kv := NewRedisKV(startRedis(t))
	key := EnrollmentCountKey(7)

	_, err := kv.Get(ctx, key)
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, kv.Set(ctx, key, "3", time.Minute))
	got, err := kv.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "3", got)

	require.NoError(t, kv.Del(ctx, key))
	_, err = kv.Get(ctx, key)
	assert.ErrorIs(t, err, ErrMiss)
}
