package di

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-post-service/cmd/api/infrastructure"
	"user-post-service/internal/adapter/cache"
	"user-post-service/internal/adapter/db/gormdb"
	ginhandler "user-post-service/internal/adapter/gin/handler"
	"user-post-service/internal/adapter/gin/middleware"
	ginrouter "user-post-service/internal/adapter/gin/router"
	"user-post-service/internal/adapter/repository/cached"
	"user-post-service/internal/config"
	domain "user-post-service/internal/domain/user"
	"user-post-service/internal/usecase/post"
	"user-post-service/internal/usecase/user"
	redisclient "user-post-service/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client
	Registry    *prometheus.Registry
	Validator   *validator.Validate
	UserUC      user.Usecase
	PostUC      post.Usecase
	RateLimiter *middleware.RateLimiter
	UserHandler *ginhandler.UserHandler
	PostHandler *ginhandler.PostHandler

	routerOnce sync.Once
	router     *gin.Engine
}

// NewContainer creates and initializes all application dependencies.
// Redis is only dialled when REDIS_ENABLED is set; without it profiles are
// read straight from the database and no rate limiter is installed.
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	c := &Container{
		Config:    cfg,
		Logger:    l,
		DB:        db,
		Registry:  prometheus.NewRegistry(),
		Validator: validator.New(),
	}
	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var userRepo user.Repository = gormdb.NewUserRepo(db, l)
	var profiles post.ProfileInvalidator

	if cfg.Redis.Enabled {
		rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
		if err != nil {
			_ = infrastructure.CloseDatabase(db)
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		c.RedisClient = rdb

		profileCache := cache.NewRedisProfileCache(
			rdb.Client,
			time.Duration(cfg.Redis.CacheTTL)*time.Second,
			l,
		)
		userRepo = cached.NewCachedUserRepository(userRepo, profileCache, l)
		profiles = profileCache

		if cfg.RateLimit.Enabled {
			c.RateLimiter = middleware.NewRateLimiter(
				rdb.Client,
				middleware.RateLimiterConfig{
					RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
					BurstCapacity:     cfg.RateLimit.BurstCapacity,
				},
				l,
			)
		}
	}

	c.UserUC = user.New(userRepo, domain.Role(cfg.App.DefaultUserRole), l)
	c.PostUC = post.New(gormdb.NewPostRepo(db, l), profiles, l)
	c.UserHandler = ginhandler.NewUserHandler(c.UserUC, l)
	c.PostHandler = ginhandler.NewPostHandler(c.PostUC, l)

	return c, nil
}

// Router returns the gin engine serving every route. It is built on first
// use since its metrics can only be registered once.
func (c *Container) Router() *gin.Engine {
	c.routerOnce.Do(func() {
		c.router = ginrouter.SetupRouter(
			c.UserHandler,
			c.PostHandler,
			c.Validator,
			ginrouter.Options{
				ServiceName: c.Config.Logger.ServiceName,
				Registry:    c.Registry,
				RateLimiter: c.RateLimiter,
			},
			c.Logger,
		)
	})
	return c.router
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	return errors.Join(errs...)
}
