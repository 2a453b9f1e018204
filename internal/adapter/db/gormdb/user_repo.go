package gormdb

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-post-service/internal/domain/user"
	apperrors "user-post-service/pkg/errors"
)

// UserRepo implements the user Repository interface with GORM.
type UserRepo struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepo creates a new instance of UserRepo.
func NewUserRepo(db *gorm.DB, log *zap.Logger) *UserRepo {
	return &UserRepo{db: db, log: log}
}

// Create inserts a new user and returns it with its generated UUID.
func (r *UserRepo) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	model := UserSchema{
		UUID:  u.UUID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Info("user created in db", zap.String("uuid", model.UUID))
	return toDomainUser(&model), nil
}

// GetByEmail retrieves a user by email. It returns nil, nil when no user
// has that address.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found by email", zap.String("email", email))
			return nil, nil
		}
		r.log.Error("failed to get user by email from db", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return toDomainUser(&model), nil
}

// GetProfile loads the public projection of a user: uuid, name, role and
// the title and body of each post.
func (r *UserRepo) GetProfile(ctx context.Context, uuid string) (*user.Profile, error) {
	var model UserSchema
	err := r.db.WithContext(ctx).
		Select("id", "uuid", "name", "role").
		Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "user_id", "title", "body").Order("id")
		}).
		Where("uuid = ?", uuid).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user profile not found", zap.String("uuid", uuid))
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		r.log.Error("failed to get user profile from db", zap.Error(err), zap.String("uuid", uuid))
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}

	profile := &user.Profile{
		UUID:  model.UUID,
		Name:  model.Name,
		Role:  user.Role(model.Role),
		Posts: make([]user.ProfilePost, len(model.Posts)),
	}
	for i, p := range model.Posts {
		profile.Posts[i] = user.ProfilePost{Title: p.Title, Body: p.Body}
	}
	return profile, nil
}

// List returns every user with its posts, oldest user first.
func (r *UserRepo) List(ctx context.Context) ([]user.User, error) {
	var models []UserSchema
	err := r.db.WithContext(ctx).
		Preload("Posts", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Order("id").
		Find(&models).Error
	if err != nil {
		r.log.Error("failed to list users from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]user.User, len(models))
	for i := range models {
		users[i] = *toDomainUser(&models[i])
	}
	return users, nil
}

// Update writes the non-nil fields of c to the user identified by uuid and
// returns the stored result. Values are written as given.
func (r *UserRepo) Update(ctx context.Context, uuid string, c user.Changes) (*user.User, error) {
	var model UserSchema
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("uuid = ?", uuid).First(&model).Error; err != nil {
			return err
		}

		updates := make(map[string]any, 3)
		if c.Name != nil {
			updates["name"] = *c.Name
		}
		if c.Email != nil {
			updates["email"] = *c.Email
		}
		if c.Role != nil {
			updates["role"] = string(*c.Role)
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&model).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&model, model.ID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user to update not found", zap.String("uuid", uuid))
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		r.log.Error("failed to update user in db", zap.Error(err), zap.String("uuid", uuid))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	r.log.Info("user updated in db", zap.String("uuid", uuid))
	return toDomainUser(&model), nil
}

// Delete removes the user identified by uuid together with its posts.
func (r *UserRepo) Delete(ctx context.Context, uuid string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model UserSchema
		if err := tx.Select("id").Where("uuid = ?", uuid).First(&model).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", model.ID).Delete(&PostSchema{}).Error; err != nil {
			return err
		}
		return tx.Delete(&UserSchema{}, model.ID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user to delete not found", zap.String("uuid", uuid))
			return apperrors.NewNotFoundError("user", "User not found")
		}
		r.log.Error("failed to delete user in db", zap.Error(err), zap.String("uuid", uuid))
		return fmt.Errorf("failed to delete user: %w", err)
	}

	r.log.Info("user deleted in db", zap.String("uuid", uuid))
	return nil
}
