package user

import (
	"context"

	"go.uber.org/zap"

	domain "user-post-service/internal/domain/user"
	apperrors "user-post-service/pkg/errors"
	"user-post-service/pkg/logger"
)

// Service implements the user business rules on top of a Repository.
type Service struct {
	repo        Repository
	defaultRole domain.Role
	log         *zap.Logger
}

// New creates a user Service. defaultRole is written for users created
// without a role.
func New(r Repository, defaultRole domain.Role, log *zap.Logger) *Service {
	return &Service{repo: r, defaultRole: defaultRole, log: log}
}

// CreateUser creates a new user after checking email uniqueness.
func (s *Service) CreateUser(ctx context.Context, in CreateUserRequest) (*domain.User, error) {
	log := logger.WithContext(ctx, s.log)
	log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	existing, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to check email uniqueness", err)
	}
	if existing != nil {
		log.Warn("email already exists", zap.String("email", in.Email))
		return nil, apperrors.NewAlreadyExistsError("user", "Email already exists!!")
	}

	role := s.defaultRole
	if in.Role != nil {
		role = *in.Role
	}

	u, err := s.repo.Create(ctx, &domain.User{
		Name:  in.Name,
		Email: in.Email,
		Role:  role,
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create user", err)
	}
	return u, nil
}

// ListUsers returns every user with its posts.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list users", err)
	}
	return users, nil
}

// GetUser returns the public projection of a user.
func (s *Service) GetUser(ctx context.Context, uuid string) (*domain.Profile, error) {
	p, err := s.repo.GetProfile(ctx, uuid)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		return nil, apperrors.NewInternalError("failed to get user", err)
	}
	return p, nil
}

// UpdateUser applies the given fields to an existing user. Values are not
// validated here; the store rejects what it cannot hold.
func (s *Service) UpdateUser(ctx context.Context, in UpdateUserRequest) (*domain.User, error) {
	logger.WithContext(ctx, s.log).Info("updating user", zap.String("uuid", in.UUID))

	u, err := s.repo.Update(ctx, in.UUID, domain.Changes{
		Name:  in.Name,
		Email: in.Email,
		Role:  in.Role,
	})
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		return nil, apperrors.NewInternalError("failed to update user", err)
	}
	return u, nil
}

// DeleteUser deletes a user and its posts.
func (s *Service) DeleteUser(ctx context.Context, uuid string) error {
	logger.WithContext(ctx, s.log).Info("deleting user", zap.String("uuid", uuid))

	if err := s.repo.Delete(ctx, uuid); err != nil {
		if apperrors.IsNotFound(err) {
			return err
		}
		return apperrors.NewInternalError("failed to delete user", err)
	}
	return nil
}
