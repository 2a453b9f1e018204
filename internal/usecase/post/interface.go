package post

import (
	"context"

	domain "user-post-service/internal/domain/post"
)

// Usecase defines the interface for post business logic operations.
type Usecase interface {
	CreatePost(ctx context.Context, in CreatePostRequest) (*domain.Post, error)
	ListPosts(ctx context.Context) ([]domain.Post, error)
}

// Repository defines the interface for post data access operations.
type Repository interface {
	Create(ctx context.Context, p *domain.Post) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
}

// ProfileInvalidator drops cached user profiles. A new post changes the
// owner's profile.
type ProfileInvalidator interface {
	Delete(ctx context.Context, uuids ...string) error
}
