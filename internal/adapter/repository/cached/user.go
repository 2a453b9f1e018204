package cached

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"user-post-service/internal/adapter/cache"
	domain "user-post-service/internal/domain/user"
	"user-post-service/internal/usecase/user"
)

// CachedUserRepository implements user.Repository with a profile cache in
// front of a persistent repository. Only GetProfile reads the cache; writes
// that change a profile drop its entry.
type CachedUserRepository struct {
	dbRepo user.Repository
	cache  cache.ProfileCache
	log    *zap.Logger
	group  singleflight.Group
}

// NewCachedUserRepository creates a new instance of CachedUserRepository.
func NewCachedUserRepository(dbRepo user.Repository, c cache.ProfileCache, log *zap.Logger) *CachedUserRepository {
	return &CachedUserRepository{
		dbRepo: dbRepo,
		cache:  c,
		log:    log,
	}
}

// Create delegates to the DB repository. A new user has no cached profile.
func (r *CachedUserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	return r.dbRepo.Create(ctx, u)
}

// GetByEmail delegates to the DB repository.
func (r *CachedUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.dbRepo.GetByEmail(ctx, email)
}

// GetProfile retrieves a profile using the cache-aside pattern. Concurrent
// misses for the same uuid share one database read. A profile that was
// invalidated while it was being read is returned but not cached.
func (r *CachedUserRepository) GetProfile(ctx context.Context, uuid string) (*domain.Profile, error) {
	if p, err := r.cache.Get(ctx, uuid); err != nil {
		r.log.Warn("cache get error, falling back to database", zap.String("uuid", uuid), zap.Error(err))
	} else if p != nil {
		return p, nil
	}

	result, err, _ := r.group.Do(cache.Key(uuid), func() (any, error) {
		// Another caller may have filled the entry while this one waited.
		if p, err := r.cache.Get(ctx, uuid); err == nil && p != nil {
			return p, nil
		}

		// The version must be read before the row.
		version, verr := r.cache.Version(ctx, uuid)

		p, err := r.dbRepo.GetProfile(ctx, uuid)
		if err != nil {
			return nil, err
		}

		if verr != nil {
			r.log.Warn("cache version unavailable, profile not cached", zap.String("uuid", uuid), zap.Error(verr))
			return p, nil
		}
		if _, err := r.cache.Set(ctx, p, version); err != nil {
			r.log.Warn("failed to cache profile", zap.String("uuid", uuid), zap.Error(err))
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*domain.Profile), nil
}

// List delegates to the DB repository.
func (r *CachedUserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.dbRepo.List(ctx)
}

// Update updates the user in DB and invalidates its profile. The
// invalidation follows the write so a concurrent load either sees the new
// row or fails its versioned Set.
func (r *CachedUserRepository) Update(ctx context.Context, uuid string, c domain.Changes) (*domain.User, error) {
	u, err := r.dbRepo.Update(ctx, uuid, c)
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, uuid, "update")
	return u, nil
}

// Delete deletes the user from DB and invalidates its profile.
func (r *CachedUserRepository) Delete(ctx context.Context, uuid string) error {
	if err := r.dbRepo.Delete(ctx, uuid); err != nil {
		return err
	}

	r.invalidate(ctx, uuid, "delete")
	return nil
}

func (r *CachedUserRepository) invalidate(ctx context.Context, uuid, op string) {
	if err := r.cache.Delete(ctx, uuid); err != nil {
		r.log.Warn("failed to invalidate cache after "+op, zap.String("uuid", uuid), zap.Error(err))
	}
}
