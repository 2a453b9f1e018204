package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-post-service/internal/adapter/gin/middleware"
	domain "user-post-service/internal/domain/user"
	"user-post-service/internal/usecase/user"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserBody is the JSON body of POST /users. Pointer fields tell an
// absent key from an empty one.
type CreateUserBody struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

// UpdateUserBody is the JSON body of PUT /users/:uuid. Absent keys leave
// the stored value unchanged.
type UpdateUserBody struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

// CreateUser handles POST /users. The body has been checked against
// UserRules by the validation middleware.
func (h *UserHandler) CreateUser(c *gin.Context) {
	body, ok := middleware.BodyFrom[CreateUserBody](c)
	if !ok {
		if err := c.ShouldBindJSON(&body); err != nil {
			respondBadBody(c, h.log, err)
			return
		}
	}

	req := user.CreateUserRequest{
		Name:  deref(body.Name),
		Email: deref(body.Email),
		Role:  toRole(body.Role),
	}

	u, err := h.uc.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err, "Something went Wrong!!")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    toUserResponse(u),
		"message": "Successful",
	})
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Something went wrong")
		return
	}

	data := make([]UserWithPostsResponse, len(users))
	for i := range users {
		data[i] = toUserWithPostsResponse(&users[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Here are the users you requested for!! Thank you hitting this endpoint",
		"data":    data,
	})
}

// GetUser handles GET /users/:uuid
func (h *UserHandler) GetUser(c *gin.Context) {
	p, err := h.uc.GetUser(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		respondError(c, h.log, err, "Something wrong")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   toProfileResponse(p),
	})
}

// UpdateUser handles PUT /users/:uuid
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var body UpdateUserBody
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		respondBadBody(c, h.log, err)
		return
	}

	req := user.UpdateUserRequest{
		UUID:  c.Param("uuid"),
		Name:  body.Name,
		Email: body.Email,
		Role:  toRole(body.Role),
	}

	u, err := h.uc.UpdateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err, "Something went worong")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Updated successfully",
		"data":    toUserResponse(u),
	})
}

// DeleteUser handles DELETE /users/:uuid
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.uc.DeleteUser(c.Request.Context(), c.Param("uuid")); err != nil {
		respondError(c, h.log, err, "Something went Wrong!!")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "user deleted successfully!",
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toRole(s *string) *domain.Role {
	if s == nil {
		return nil
	}
	r := domain.Role(*s)
	return &r
}
