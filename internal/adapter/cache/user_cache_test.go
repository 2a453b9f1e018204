package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "user-post-service/internal/domain/user"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client, mr
}

func sampleProfile() *domain.Profile {
	body := "hello"
	return &domain.Profile{
		UUID: "7c1e0c3a-1111-4222-8333-944445555666",
		Name: "Ann",
		Role: domain.RoleAdmin,
		Posts: []domain.ProfilePost{
			{Title: "Hi", Body: &body},
			{Title: "No body"},
		},
	}
}

func TestRedisProfileCache_SetGet(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisProfileCache(client, 5*time.Minute, zaptest.NewLogger(t))
	p := sampleProfile()

	stored, err := cache.Set(context.Background(), p, 0)
	require.NoError(t, err)
	assert.True(t, stored)
	assert.True(t, mr.Exists(Key(p.UUID)))
	assert.Equal(t, 5*time.Minute, mr.TTL(Key(p.UUID)))

	got, err := cache.Get(context.Background(), p.UUID)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestRedisProfileCache_Get_Miss(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewRedisProfileCache(client, time.Minute, zaptest.NewLogger(t))

	got, err := cache.Get(context.Background(), "missing")

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisProfileCache_Get_Corrupt(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisProfileCache(client, time.Minute, zaptest.NewLogger(t))
	require.NoError(t, mr.Set(Key("bad"), "{not json"))

	_, err := cache.Get(context.Background(), "bad")

	assert.Error(t, err)
}

func TestRedisProfileCache_Set_Nil(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewRedisProfileCache(client, time.Minute, zaptest.NewLogger(t))

	_, err := cache.Set(context.Background(), nil, 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot cache nil profile")
}

func TestRedisProfileCache_Delete(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisProfileCache(client, time.Minute, zaptest.NewLogger(t))
	p := sampleProfile()
	_, err := cache.Set(context.Background(), p, 0)
	require.NoError(t, err)

	require.NoError(t, cache.Delete(context.Background(), p.UUID, "never-cached"))
	assert.False(t, mr.Exists(Key(p.UUID)))

	v, err := cache.Version(context.Background(), p.UUID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
	v, err = cache.Version(context.Background(), "never-cached")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
	assert.Equal(t, 2*time.Minute, mr.TTL(VersionKey(p.UUID)))

	assert.NoError(t, cache.Delete(context.Background()))
}

func TestRedisProfileCache_Expiry(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisProfileCache(client, time.Second, zaptest.NewLogger(t))
	p := sampleProfile()
	_, err := cache.Set(context.Background(), p, 0)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	got, err := cache.Get(context.Background(), p.UUID)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisProfileCache_Set_SkipsInvalidatedVersion(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisProfileCache(client, time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()
	p := sampleProfile()

	v, err := cache.Version(ctx, p.UUID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	require.NoError(t, cache.Delete(ctx, p.UUID))

	stored, err := cache.Set(ctx, p, v)
	require.NoError(t, err)
	assert.False(t, stored)
	assert.False(t, mr.Exists(Key(p.UUID)))

	stored, err = cache.Set(ctx, p, v+1)
	require.NoError(t, err)
	assert.True(t, stored)
	assert.True(t, mr.Exists(Key(p.UUID)))
}
