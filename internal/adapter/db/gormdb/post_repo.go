package gormdb

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-post-service/internal/domain/post"
)

// ErrOwnerNotFound is returned when a post references a user that does not
// exist. It is a persistence failure, not a typed application error.
var ErrOwnerNotFound = errors.New("owner does not exist")

// PostRepo implements the post Repository interface with GORM.
type PostRepo struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewPostRepo creates a new instance of PostRepo.
func NewPostRepo(db *gorm.DB, log *zap.Logger) *PostRepo {
	return &PostRepo{db: db, log: log}
}

// Create inserts p linked to the user identified by p.UserUUID.
func (r *PostRepo) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if p == nil {
		return nil, errors.New("post cannot be nil")
	}

	model := PostSchema{
		Title: p.Title,
		Body:  p.Body,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner UserSchema
		if err := tx.Select("id").Where("uuid = ?", p.UserUUID).First(&owner).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("connect user %q: %w", p.UserUUID, ErrOwnerNotFound)
			}
			return err
		}

		model.UserID = owner.ID
		return tx.Create(&model).Error
	})
	if err != nil {
		r.log.Error("failed to create post in db", zap.Error(err), zap.String("user_uuid", p.UserUUID))
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	r.log.Info("post created in db", zap.Int64("id", model.ID), zap.String("user_uuid", p.UserUUID))
	return toDomainPost(&model, p.UserUUID), nil
}

// List returns every post with its owner, newest first.
func (r *PostRepo) List(ctx context.Context) ([]post.Post, error) {
	var models []PostSchema
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Order("id DESC").
		Find(&models).Error
	if err != nil {
		r.log.Error("failed to list posts from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	posts := make([]post.Post, len(models))
	for i := range models {
		posts[i] = *toDomainPost(&models[i], "")
	}
	return posts, nil
}
