package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	domain "user-post-service/internal/domain/user"
)

// ProfileCache stores public user projections keyed by user UUID.
//
// Each uuid has a version that Delete increments. A reader takes the
// version before loading a profile from the database and passes it to Set,
// which refuses to store the profile if an invalidation happened meanwhile.
type ProfileCache interface {
	// Get returns nil, nil on a cache miss.
	Get(ctx context.Context, uuid string) (*domain.Profile, error)

	// Version returns the invalidation counter of uuid, zero if never
	// invalidated.
	Version(ctx context.Context, uuid string) (int64, error)

	// Set stores a profile with the configured TTL if its version still
	// equals version. stored is false when the entry was invalidated since.
	Set(ctx context.Context, p *domain.Profile, version int64) (stored bool, err error)

	// Delete removes the profiles of the given users and bumps their
	// versions.
	Delete(ctx context.Context, uuids ...string) error
}

// KEYS[1] profile, KEYS[2] version; ARGV[1] payload, ARGV[2] expected
// version, ARGV[3] ttl in milliseconds.
var setIfVersion = redis.NewScript(`
local current = redis.call("GET", KEYS[2])
if current == false then
	current = "0"
end
if current ~= ARGV[2] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[3])
else
	redis.call("SET", KEYS[1], ARGV[1])
end
return 1
`)

// KEYS holds (profile, version) pairs; ARGV[1] is the version ttl in
// milliseconds.
var invalidate = redis.NewScript(`
for i = 1, #KEYS, 2 do
	redis.call("DEL", KEYS[i])
	redis.call("INCR", KEYS[i + 1])
	if tonumber(ARGV[1]) > 0 then
		redis.call("PEXPIRE", KEYS[i + 1], ARGV[1])
	end
end
return 1
`)

// RedisProfileCache implements ProfileCache using Redis as the backing store.
type RedisProfileCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisProfileCache creates a new Redis-backed profile cache.
func NewRedisProfileCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisProfileCache {
	return &RedisProfileCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// Key returns the Redis key holding the profile of uuid.
func Key(uuid string) string {
	return fmt.Sprintf("user:profile:{%s}", uuid)
}

// VersionKey returns the Redis key holding the invalidation counter of uuid.
// It shares Key's hash slot.
func VersionKey(uuid string) string {
	return fmt.Sprintf("user:profile:{%s}:version", uuid)
}

// Get retrieves a profile from Redis.
func (c *RedisProfileCache) Get(ctx context.Context, uuid string) (*domain.Profile, error) {
	data, err := c.client.Get(ctx, Key(uuid)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.log.Debug("cache miss", zap.String("uuid", uuid))
		return nil, nil
	}
	if err != nil {
		c.log.Error("failed to get from cache", zap.String("uuid", uuid), zap.Error(err))
		return nil, err
	}

	var p domain.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		c.log.Error("failed to unmarshal cached profile", zap.String("uuid", uuid), zap.Error(err))
		return nil, err
	}

	c.log.Debug("cache hit", zap.String("uuid", uuid))
	return &p, nil
}

// Version reads the invalidation counter of uuid.
func (c *RedisProfileCache) Version(ctx context.Context, uuid string) (int64, error) {
	v, err := c.client.Get(ctx, VersionKey(uuid)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read profile version %s: %w", uuid, err)
	}
	return v, nil
}

// Set stores a profile in Redis with TTL unless it was invalidated after
// version was read.
func (c *RedisProfileCache) Set(ctx context.Context, p *domain.Profile, version int64) (bool, error) {
	if p == nil {
		return false, errors.New("cannot cache nil profile")
	}

	data, err := json.Marshal(p)
	if err != nil {
		return false, fmt.Errorf("marshal profile %s: %w", p.UUID, err)
	}

	n, err := setIfVersion.Run(ctx, c.client,
		[]string{Key(p.UUID), VersionKey(p.UUID)},
		data, version, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		c.log.Error("failed to set cache", zap.String("uuid", p.UUID), zap.Error(err))
		return false, err
	}
	if n == 0 {
		c.log.Debug("profile invalidated during load, not cached", zap.String("uuid", p.UUID), zap.Int64("version", version))
		return false, nil
	}

	c.log.Debug("cached profile", zap.String("uuid", p.UUID), zap.Duration("ttl", c.ttl))
	return true, nil
}

// Delete removes profiles from Redis and bumps their versions. Missing keys
// are not an error.
func (c *RedisProfileCache) Delete(ctx context.Context, uuids ...string) error {
	if len(uuids) == 0 {
		return nil
	}

	keys := make([]string, 0, 2*len(uuids))
	for _, id := range uuids {
		keys = append(keys, Key(id), VersionKey(id))
	}

	// Versions outlive their profiles so an in-flight load still sees the bump.
	if err := invalidate.Run(ctx, c.client, keys, (2 * c.ttl).Milliseconds()).Err(); err != nil {
		c.log.Error("failed to delete from cache", zap.Strings("uuids", uuids), zap.Error(err))
		return err
	}

	c.log.Debug("deleted from cache", zap.Int("count", len(uuids)))
	return nil
}
