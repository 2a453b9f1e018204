package gormdb

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"user-post-service/internal/domain/post"
	"user-post-service/internal/domain/user"
)

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	UUID      string `gorm:"type:varchar(36);not null;uniqueIndex"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"not null;uniqueIndex"`
	Role      string `gorm:"type:varchar(16);not null;default:USER;check:chk_users_role,role IN ('ADMIN','USER','SUPERADMIN')"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Posts     []PostSchema `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// BeforeCreate assigns a fresh UUID when none was set.
func (u *UserSchema) BeforeCreate(_ *gorm.DB) error {
	if u.UUID == "" {
		u.UUID = uuid.NewString()
	}
	return nil
}

// PostSchema represents the database schema for the posts table.
type PostSchema struct {
	ID        int64       `gorm:"primaryKey;autoIncrement"`
	Title     string      `gorm:"not null"`
	Body      *string     `gorm:"type:text"`
	UserID    int64       `gorm:"not null;index"`
	User      *UserSchema `gorm:"foreignKey:UserID"`
	CreatedAt time.Time   `gorm:"index"`
	UpdatedAt time.Time
}

// TableName specifies the table name for the PostSchema model.
func (PostSchema) TableName() string {
	return "posts"
}

// Models lists every schema managed by this package, parents first.
func Models() []any {
	return []any{&UserSchema{}, &PostSchema{}}
}

// Migrate creates or updates the users and posts tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

func toDomainUser(m *UserSchema) *user.User {
	u := &user.User{
		UUID:      m.UUID,
		Name:      m.Name,
		Email:     m.Email,
		Role:      user.Role(m.Role),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Posts != nil {
		u.Posts = make([]user.Post, len(m.Posts))
		for i, p := range m.Posts {
			u.Posts[i] = user.Post{
				ID:        p.ID,
				Title:     p.Title,
				Body:      p.Body,
				CreatedAt: p.CreatedAt,
				UpdatedAt: p.UpdatedAt,
			}
		}
	}
	return u
}

func toDomainPost(m *PostSchema, ownerUUID string) *post.Post {
	p := &post.Post{
		ID:        m.ID,
		Title:     m.Title,
		Body:      m.Body,
		UserUUID:  ownerUUID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.User != nil {
		p.UserUUID = m.User.UUID
		p.User = toDomainUser(m.User)
	}
	return p
}
