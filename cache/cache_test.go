package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "test:"), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "k")
	require.ErrorIs(t, err, ErrMiss)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v"), got)
	require.True(t, mr.Exists("test:k"))

	mr.FastForward(2 * time.Minute)
	_, err = s.Get(ctx, "k")
	require.ErrorIs(t, err, ErrMiss)
}

func TestRedisStoreClearKeepsForeignKeys(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("jwt:blacklist:abc", "1"))
	require.NoError(t, s.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, s.Set(ctx, "b", []byte("2"), time.Minute))

	require.NoError(t, s.Clear(ctx))

	_, err := s.Get(ctx, "a")
	require.ErrorIs(t, err, ErrMiss)
	_, err = s.Get(ctx, "b")
	require.ErrorIs(t, err, ErrMiss)
	require.True(t, mr.Exists("jwt:blacklist:abc"))
}

func TestRedisStoreReportsBackendFailure(t *testing.T) {
	s, mr := newRedisStore(t)
	mr.Close()

	_, err := s.Get(context.Background(), "k")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrMiss)
	require.Error(t, s.Set(context.Background(), "k", []byte("v"), time.Minute))
	require.Error(t, s.Clear(context.Background()))
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s, err := NewMemoryStore(1 << 20)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	ctx := context.Background()

	_, err = s.Get(ctx, "k")
	require.ErrorIs(t, err, ErrMiss)

	require.NoError(t, s.Set(ctx, "k", []byte("payload"), time.Minute))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), got)

	require.NoError(t, s.Clear(ctx))
	_, err = s.Get(ctx, "k")
	require.ErrorIs(t, err, ErrMiss)
}

func TestMemoryStoreExpires(t *testing.T) {
	s, err := NewMemoryStore(1 << 20)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("v"), 50*time.Millisecond))
	require.Eventually(t, func() bool {
		_, err := s.Get(ctx, "k")
		return err == ErrMiss
	}, 2*time.Second, 20*time.Millisecond)
}

func TestOpenSelectsBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	s, err := Open("redis", client)
	require.NoError(t, err)
	require.IsType(t, &RedisStore{}, s)

	s, err = Open("memory", nil)
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, s)
	s.(*MemoryStore).Close()

	s, err = Open("none", nil)
	require.NoError(t, err)
	require.Nil(t, s)

	_, err = Open("redis", nil)
	require.Error(t, err)
	_, err = Open("memcached", nil)
	require.Error(t, err)
}

func TestRedisStoreClearRemovesLargeKeyspace(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	const n = 12_000
	for i := 0; i < n; i++ {
		require.NoError(t, s.Set(ctx, fmt.Sprintf("timeline:index:page=%d", i), []byte("x"), time.Minute))
	}
	for i := 0; i < 3_000; i++ {
		require.NoError(t, mr.Set(fmt.Sprintf("jwt:blacklist:%d", i), "1"))
	}

	require.NoError(t, s.Clear(ctx))

	survivors := 0
	for i := 0; i < n; i++ {
		if _, err := s.Get(ctx, fmt.Sprintf("timeline:index:page=%d", i)); err == nil {
			survivors++
		}
	}
	require.Zero(t, survivors)
	require.Len(t, mr.Keys(), 3_000)
}

func TestRedisStoreClearHonoursDeadline(t *testing.T) {
	s, _ := newRedisStore(t)
	require.NoError(t, s.Set(context.Background(), "k", []byte("v"), time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, s.Clear(ctx))
}
