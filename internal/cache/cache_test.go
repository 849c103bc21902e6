package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	cfg := DefaultRedisConfig()
	cfg.Host = mr.Host()
	cfg.Port = mr.Port()
	cfg.TTL = time.Minute

	c, err := NewRedisCache(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, _ := newTestRedisCache(t)
	ctx := context.Background()
	key := RouteKey{NetworkID: "n1", Revision: 3, From: "sydney", To: "perth", Scheme: "cost"}

	_, found := c.Get(ctx, key)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, key, [][]int{{0, 4}, {2}}))

	routes, found := c.Get(ctx, key)
	require.True(t, found)
	assert.Equal(t, [][]int{{0, 4}, {2}}, routes)
}

func TestRedisCacheStoresEmptyResult(t *testing.T) {
	c, _ := newTestRedisCache(t)
	ctx := context.Background()
	key := RouteKey{NetworkID: "n1", From: "a", To: "b", Scheme: "duration"}

	require.NoError(t, c.Set(ctx, key, nil))

	routes, found := c.Get(ctx, key)
	require.True(t, found)
	assert.Empty(t, routes)
}

func TestRedisCacheKeysDependOnRevision(t *testing.T) {
	c, _ := newTestRedisCache(t)
	ctx := context.Background()
	key := RouteKey{NetworkID: "n1", Revision: 1, From: "a", To: "b", Scheme: "duration"}

	require.NoError(t, c.Set(ctx, key, [][]int{{1}}))

	key.Revision = 2
	_, found := c.Get(ctx, key)
	assert.False(t, found)
}

func TestRedisCacheExpires(t *testing.T) {
	c, mr := newTestRedisCache(t)
	ctx := context.Background()
	key := RouteKey{NetworkID: "n1", From: "a", To: "b", Scheme: "cost"}

	require.NoError(t, c.Set(ctx, key, [][]int{{1}}))
	mr.FastForward(2 * time.Minute)

	_, found := c.Get(ctx, key)
	assert.False(t, found)
}

func TestRedisCacheIgnoresCorruptEntries(t *testing.T) {
	c, mr := newTestRedisCache(t)
	key := RouteKey{NetworkID: "n1", From: "a", To: "b", Scheme: "cost"}

	require.NoError(t, mr.Set(generateKey(key), "not json"))

	_, found := c.Get(context.Background(), key)
	assert.False(t, found)
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := DefaultRedisConfig()
	cfg.Host = mr.Host()
	cfg.Port = mr.Port()
	mr.Close()

	_, err := NewRedisCache(cfg)
	assert.Error(t, err)
}

func TestNoOpCache(t *testing.T) {
	c := NewNoOpCache()
	ctx := context.Background()
	key := RouteKey{From: "a", To: "b"}

	require.NoError(t, c.Set(ctx, key, [][]int{{1}}))
	_, found := c.Get(ctx, key)
	assert.False(t, found)
	assert.NoError(t, c.Close())
}

func TestGenerateKey(t *testing.T) {
	a := RouteKey{NetworkID: "n1", Revision: 1, From: "a", To: "b", Scheme: "cost"}
	b := a
	b.Scheme = "duration"

	assert.Equal(t, generateKey(a), generateKey(a))
	assert.NotEqual(t, generateKey(a), generateKey(b))
	assert.Regexp(t, `^route:[0-9a-f]{64}$`, generateKey(a))
}
