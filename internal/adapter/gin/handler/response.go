package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-post-service/internal/adapter/gin/middleware"
	"user-post-service/internal/domain/post"
	"user-post-service/internal/domain/user"
)

// UserResponse represents a user in HTTP responses.
type UserResponse struct {
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      user.Role `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserWithPostsResponse is a user together with its posts.
type UserWithPostsResponse struct {
	UserResponse
	Posts []PostResponse `json:"posts"`
}

// PostResponse represents a post in HTTP responses.
type PostResponse struct {
	ID        int64         `json:"id"`
	Title     string        `json:"title"`
	Body      *string       `json:"body"`
	UserUUID  string        `json:"userUuid"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	User      *UserResponse `json:"user,omitempty"`
}

// ProfileResponse is the public projection of a user.
type ProfileResponse struct {
	UUID  string                `json:"uuid"`
	Name  string                `json:"name"`
	Role  user.Role             `json:"role"`
	Posts []ProfilePostResponse `json:"posts"`
}

// ProfilePostResponse is a post inside a ProfileResponse.
type ProfilePostResponse struct {
	Title string  `json:"title"`
	Body  *string `json:"body"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		UUID:      u.UUID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserWithPostsResponse(u *user.User) UserWithPostsResponse {
	posts := make([]PostResponse, len(u.Posts))
	for i, p := range u.Posts {
		posts[i] = PostResponse{
			ID:        p.ID,
			Title:     p.Title,
			Body:      p.Body,
			UserUUID:  u.UUID,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		}
	}
	return UserWithPostsResponse{UserResponse: toUserResponse(u), Posts: posts}
}

func toPostResponse(p *post.Post) PostResponse {
	resp := PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Body:      p.Body,
		UserUUID:  p.UserUUID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.User != nil {
		u := toUserResponse(p.User)
		resp.User = &u
	}
	return resp
}

func toProfileResponse(p *user.Profile) ProfileResponse {
	posts := make([]ProfilePostResponse, len(p.Posts))
	for i, pp := range p.Posts {
		posts[i] = ProfilePostResponse{Title: pp.Title, Body: pp.Body}
	}
	return ProfileResponse{UUID: p.UUID, Name: p.Name, Role: p.Role, Posts: posts}
}

// respondError writes err through the shared middleware writer.
func respondError(c *gin.Context, log *zap.Logger, err error, internalMessage string) {
	middleware.RespondError(c, log, err, internalMessage)
}

// respondBadBody answers a body that could not be decoded.
func respondBadBody(c *gin.Context, log *zap.Logger, err error) {
	middleware.RespondError(c, log, middleware.InvalidBody(err), "")
}
