package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	client, err := NewRedisClient(ctx, "redis://"+mr.Addr()+"/0", "test:")
	require.NoError(t, err)
	defer client.Close()

	claimed, err := client.Claim(ctx, "abc", time.Minute)
	require.NoError(t, err)
	assert.True(t, claimed)
	assert.True(t, mr.Exists("test:abc"))

	claimed, err = client.Claim(ctx, "abc", time.Minute)
	require.NoError(t, err)
	assert.False(t, claimed)

	mr.FastForward(2 * time.Minute)
	claimed, err = client.Claim(ctx, "abc", time.Minute)
	require.NoError(t, err)
	assert.True(t, claimed)

	require.NoError(t, client.Release(ctx, "abc"))
	assert.False(t, mr.Exists("test:abc"))
}

func TestRedisClientClearKeepsOtherPrefixes(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	client, err := NewRedisClient(ctx, "redis://"+mr.Addr()+"/0", "test:")
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Claim(ctx, "one", time.Hour)
	require.NoError(t, err)
	_, err = client.Claim(ctx, "two", time.Hour)
	require.NoError(t, err)
	require.NoError(t, mr.Set("other:key", "1"))

	require.NoError(t, client.Clear(ctx))

	assert.False(t, mr.Exists("test:one"))
	assert.False(t, mr.Exists("test:two"))
	assert.True(t, mr.Exists("other:key"))
}

func TestNewRedisClientErrors(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "://bad", "p:")
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err = NewRedisClient(context.Background(), "redis://"+addr+"/0", "p:")
	assert.Error(t, err)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	claimed, _ := store.Claim(ctx, "k", time.Minute)
	assert.True(t, claimed)
	claimed, _ = store.Claim(ctx, "k", time.Minute)
	assert.False(t, claimed)

	now = now.Add(time.Minute)
	claimed, _ = store.Claim(ctx, "k", time.Minute)
	assert.True(t, claimed)

	require.NoError(t, store.Release(ctx, "k"))
	claimed, _ = store.Claim(ctx, "k", time.Minute)
	assert.True(t, claimed)

	claimed, _ = store.Claim(ctx, "forever", 0)
	assert.True(t, claimed)
	now = now.Add(24 * time.Hour)
	claimed, _ = store.Claim(ctx, "forever", 0)
	assert.False(t, claimed)

	require.NoError(t, store.Clear(ctx))
	claimed, _ = store.Claim(ctx, "forever", 0)
	assert.True(t, claimed)
}

func TestMemoryStoreClaimIsExclusive(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	const workers = 16
	var (
		wg  sync.WaitGroup
		won int32
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := store.Claim(ctx, "same", time.Minute); ok {
				atomic.AddInt32(&won, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), won)
}

var (
	_ Store = (*RedisClient)(nil)
	_ Store = (*MemoryStore)(nil)
)
