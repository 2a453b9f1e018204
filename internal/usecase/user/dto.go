package user

import domain "user-post-service/internal/domain/user"

// CreateUserRequest represents the input for creating a new user.
// A nil Role means the configured default role.
type CreateUserRequest struct {
	Name  string
	Email string
	Role  *domain.Role
}

// UpdateUserRequest represents the input for updating an existing user.
// Nil fields are left unchanged.
type UpdateUserRequest struct {
	UUID  string
	Name  *string
	Email *string
	Role  *domain.Role
}
