package post

import (
	"time"

	"user-post-service/internal/domain/user"
)

// Post represents a post entity. A post always belongs to exactly one user.
type Post struct {
	ID        int64      // ID is assigned by the database on insert
	Title     string     // Title is required and non-empty
	Body      *string    // Body is optional free text
	UserUUID  string     // UserUUID references the owning user
	CreatedAt time.Time  // CreatedAt drives the listing order
	UpdatedAt time.Time  // UpdatedAt changes on every write
	User      *user.User // User is only filled when the caller asked for it
}
