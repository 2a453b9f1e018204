package post

import (
	"context"

	"go.uber.org/zap"

	domain "user-post-service/internal/domain/post"
	apperrors "user-post-service/pkg/errors"
	"user-post-service/pkg/logger"
)

// Service implements the post business rules on top of a Repository.
type Service struct {
	repo     Repository
	profiles ProfileInvalidator
	log      *zap.Logger
}

// New creates a post Service. profiles may be nil when no profile cache
// is configured.
func New(r Repository, profiles ProfileInvalidator, log *zap.Logger) *Service {
	return &Service{repo: r, profiles: profiles, log: log}
}

// CreatePost creates a post owned by in.UserUUID.
func (s *Service) CreatePost(ctx context.Context, in CreatePostRequest) (*domain.Post, error) {
	log := logger.WithContext(ctx, s.log)
	log.Info("creating post", zap.String("user_uuid", in.UserUUID))

	p, err := s.repo.Create(ctx, &domain.Post{
		Title:    in.Title,
		Body:     in.Body,
		UserUUID: in.UserUUID,
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create post", err)
	}

	if s.profiles != nil {
		if err := s.profiles.Delete(ctx, in.UserUUID); err != nil {
			log.Warn("failed to invalidate user profile", zap.String("user_uuid", in.UserUUID), zap.Error(err))
		}
	}
	return p, nil
}

// ListPosts returns every post with its owner, newest first.
func (s *Service) ListPosts(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list posts", err)
	}
	return posts, nil
}
