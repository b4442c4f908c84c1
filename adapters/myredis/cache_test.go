package myredis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"stopwatchdog/interfaces"
	"stopwatchdog/service"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRedisAddr = "redis://localhost:6379"
const testPrefix = "stopwatchdog-test"

var _ interfaces.Cache[string] = NewNameCache(nil, "")

func setupTestRedis(t *testing.T) (redis.UniversalClient, func()) {
	client, err := NewRedisUniversalClient(testRedisAddr)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("redis not reachable at %s: %v", testRedisAddr, err)
	}

	keys, err := client.Keys(ctx, testPrefix+":*").Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		keys, _ := client.Keys(ctx, testPrefix+":*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	}
	return client, cleanup
}

func TestNewRedisUniversalClient_InvalidURL(t *testing.T) {
	_, err := NewRedisUniversalClient("not a url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cant parse redis url")
}

func TestNewRedisUniversalClient_Options(t *testing.T) {
	called := false
	client, err := NewRedisUniversalClient("redis://:secret@localhost:6380/2", func(o *redis.Options) {
		called = true
		assert.Equal(t, "localhost:6380", o.Addr)
		assert.Equal(t, 2, o.DB)
		assert.Equal(t, "secret", o.Password)
	})
	require.NoError(t, err)
	defer client.Close()
	assert.True(t, called)
}

func TestWithTimeout(t *testing.T) {
	opts, err := redis.ParseURL("redis://localhost:6379")
	require.NoError(t, err)

	WithTimeout(7 * time.Second)(opts)
	assert.Equal(t, 7*time.Second, opts.DialTimeout)
	assert.Equal(t, 7*time.Second, opts.ReadTimeout)
	assert.Equal(t, 7*time.Second, opts.WriteTimeout)

	u := universalOptions(opts)
	assert.Equal(t, 7*time.Second, u.DialTimeout)
	assert.Equal(t, 7*time.Second, u.ReadTimeout)
	assert.Equal(t, 7*time.Second, u.WriteTimeout)
}

func TestNameCache_ReadWrite(t *testing.T) {
	ctx := context.Background()
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewNameCache(client, testPrefix)

	t.Run("missing key returns entity_not_found", func(t *testing.T) {
		_, err := cache.ReadValue(ctx, "absent")
		require.Error(t, err)
		assert.True(t, service.IsEntityNotFoundError(err))
	})

	t.Run("write then read", func(t *testing.T) {
		require.NoError(t, cache.WriteValue(ctx, "abc123", "Survival #1", 60000))

		got, err := cache.ReadValue(ctx, "abc123")
		require.NoError(t, err)
		assert.Equal(t, "Survival #1", got)

		ttl, err := client.TTL(ctx, testPrefix+":abc123").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})

	t.Run("closed client returns internal_server_error", func(t *testing.T) {
		closedClient, err := NewRedisUniversalClient(testRedisAddr)
		require.NoError(t, err)
		require.NoError(t, closedClient.Close())
		closed := NewNameCache(closedClient, testPrefix)

		err = closed.WriteValue(ctx, "abc123", "x", 1000)
		assert.True(t, service.IsInternalServerError(err))

		_, err = closed.ReadValue(ctx, "abc123")
		assert.True(t, service.IsInternalServerError(err))
	})
}

func TestCache_UnmarshalError(t *testing.T) {
	ctx := context.Background()
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	type record struct {
		Name string `json:"name"`
	}
	cache := NewCache[record](client, testPrefix,
		func(r record) ([]byte, error) { return json.Marshal(r) },
		func(b []byte) (record, error) { return record{}, errors.New("corrupt") },
	)

	require.NoError(t, cache.WriteValue(ctx, "k", record{Name: "n"}, 60000))
	_, err := cache.ReadValue(ctx, "k")
	require.Error(t, err)
	assert.True(t, service.IsInternalServerError(err))
}
