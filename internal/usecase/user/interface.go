package user

import (
	"context"

	domain "user-post-service/internal/domain/user"
)

// Usecase defines the interface for user business logic operations.
type Usecase interface {
	CreateUser(ctx context.Context, in CreateUserRequest) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, uuid string) (*domain.Profile, error)
	UpdateUser(ctx context.Context, in UpdateUserRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, uuid string) error
}

// Repository defines the interface for user data access operations.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	// GetByEmail returns nil, nil when no user has the address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetProfile(ctx context.Context, uuid string) (*domain.Profile, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, uuid string, c domain.Changes) (*domain.User, error)
	Delete(ctx context.Context, uuid string) error
}
