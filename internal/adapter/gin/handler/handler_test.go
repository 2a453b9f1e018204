package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-post-service/internal/adapter/gin/middleware"
	postdomain "user-post-service/internal/domain/post"
	domain "user-post-service/internal/domain/user"
	postuc "user-post-service/internal/usecase/post"
	useruc "user-post-service/internal/usecase/user"
	apperrors "user-post-service/pkg/errors"
)

// MockUserUsecase is a mock implementation of user.Usecase
type MockUserUsecase struct {
	mock.Mock
}

func (m *MockUserUsecase) CreateUser(ctx context.Context, in useruc.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUsecase) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserUsecase) GetUser(ctx context.Context, uuid string) (*domain.Profile, error) {
	args := m.Called(ctx, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockUserUsecase) UpdateUser(ctx context.Context, in useruc.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUsecase) DeleteUser(ctx context.Context, uuid string) error {
	return m.Called(ctx, uuid).Error(0)
}

// MockPostUsecase is a mock implementation of post.Usecase
type MockPostUsecase struct {
	mock.Mock
}

func (m *MockPostUsecase) CreatePost(ctx context.Context, in postuc.CreatePostRequest) (*postdomain.Post, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*postdomain.Post), args.Error(1)
}

func (m *MockPostUsecase) ListPosts(ctx context.Context) ([]postdomain.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]postdomain.Post), args.Error(1)
}

func setupTest(t *testing.T) (*gin.Engine, *MockUserUsecase, *MockPostUsecase) {
	gin.SetMode(gin.TestMode)
	userUC := new(MockUserUsecase)
	postUC := new(MockPostUsecase)
	log := zaptest.NewLogger(t)
	uh := NewUserHandler(userUC, log)
	ph := NewPostHandler(postUC, log)
	v := validator.New()

	r := gin.New()
	r.POST("/users", middleware.Body(v, UserRules, log), uh.CreateUser)
	r.GET("/users", uh.ListUsers)
	r.GET("/users/:uuid", uh.GetUser)
	r.PUT("/users/:uuid", uh.UpdateUser)
	r.DELETE("/users/:uuid", uh.DeleteUser)
	r.POST("/posts", middleware.Body(v, PostRules, log), ph.CreatePost)
	r.GET("/posts", ph.ListPosts)
	return r, userUC, postUC
}

func serve(r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func strPtr(s string) *string { return &s }

func TestCreateUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, userUC, _ := setupTest(t)

		userUC.On("CreateUser", mock.Anything, useruc.CreateUserRequest{Name: "Ann", Email: "ann@x.com"}).
			Return(&domain.User{UUID: "u-1", Name: "Ann", Email: "ann@x.com", Role: domain.RoleUser}, nil)

		w, resp := serve(r, http.MethodPost, "/users", `{"name":"Ann","email":"ann@x.com"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Successful", resp["message"])
		u := resp["user"].(map[string]any)
		assert.Equal(t, "u-1", u["uuid"])
		assert.Equal(t, "USER", u["role"])
		assert.NotContains(t, u, "id")
		userUC.AssertExpectations(t)
	})

	t.Run("Explicit Role", func(t *testing.T) {
		r, userUC, _ := setupTest(t)

		admin := domain.RoleAdmin
		userUC.On("CreateUser", mock.Anything, useruc.CreateUserRequest{Name: "Ann", Email: "ann@x.com", Role: &admin}).
			Return(&domain.User{UUID: "u-1", Role: admin}, nil)

		w, _ := serve(r, http.MethodPost, "/users", `{"name":"Ann","email":"ann@x.com","role":"ADMIN"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		userUC.AssertExpectations(t)
	})

	t.Run("Validation Error", func(t *testing.T) {
		r, userUC, _ := setupTest(t)

		w, resp := serve(r, http.MethodPost, "/users", `{"name":"","email":"bad","role":"ROOT"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Error Make sure you entered the correct fields", resp["message"])
		assert.Equal(t, map[string]any{
			"email": "Must be a valid email",
			"name":  "Name must not be empty",
			"role":  "Role must be 'ADMIN', 'USER', 'SUPERADMIN'",
		}, resp["error"])
		userUC.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("Email Already Exists", func(t *testing.T) {
		r, userUC, _ := setupTest(t)

		userUC.On("CreateUser", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewAlreadyExistsError("user", "Email already exists!!"))

		w, resp := serve(r, http.MethodPost, "/users", `{"name":"Ann","email":"ann@x.com"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, map[string]any{"message": "Email already exists!!"}, resp)
	})

	t.Run("Internal Error Is Sanitized", func(t *testing.T) {
		r, userUC, _ := setupTest(t)

		userUC.On("CreateUser", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewInternalError("failed to create user", errors.New("pq: password=secret")))

		w, resp := serve(r, http.MethodPost, "/users", `{"name":"Ann","email":"ann@x.com"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Something went Wrong!!", resp["message"])
		assert.Equal(t, map[string]any{"kind": "internal", "message": "internal server error"}, resp["error"])
		assert.NotContains(t, w.Body.String(), "secret")
	})
}

func TestListUsers(t *testing.T) {
	r, userUC, _ := setupTest(t)

	now := time.Now()
	userUC.On("ListUsers", mock.Anything).Return([]domain.User{
		{UUID: "u-1", Name: "Ann", Posts: []domain.Post{{ID: 1, Title: "Hi", CreatedAt: now}}},
		{UUID: "u-2", Name: "Bob"},
	}, nil)

	w, resp := serve(r, http.MethodGet, "/users", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Here are the users you requested for!! Thank you hitting this endpoint", resp["message"])
	data := resp["data"].([]any)
	require.Len(t, data, 2)
	first := data[0].(map[string]any)
	posts := first["posts"].([]any)
	require.Len(t, posts, 1)
	assert.Equal(t, "u-1", posts[0].(map[string]any)["userUuid"])
	assert.Equal(t, []any{}, data[1].(map[string]any)["posts"])
}

func TestListUsers_Error(t *testing.T) {
	r, userUC, _ := setupTest(t)
	userUC.On("ListUsers", mock.Anything).Return(nil, errors.New("db down"))

	w, resp := serve(r, http.MethodGet, "/users", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Something went wrong", resp["message"])
}

func TestGetUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, userUC, _ := setupTest(t)
		userUC.On("GetUser", mock.Anything, "u-1").Return(&domain.Profile{
			UUID: "u-1", Name: "Ann", Role: domain.RoleUser,
			Posts: []domain.ProfilePost{{Title: "Hi"}},
		}, nil)

		w, resp := serve(r, http.MethodGet, "/users/u-1", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "success", resp["status"])
		assert.Equal(t, map[string]any{
			"uuid":  "u-1",
			"name":  "Ann",
			"role":  "USER",
			"posts": []any{map[string]any{"title": "Hi", "body": nil}},
		}, resp["data"])
	})

	t.Run("Not Found", func(t *testing.T) {
		r, userUC, _ := setupTest(t)
		userUC.On("GetUser", mock.Anything, "missing").Return(nil, apperrors.NewNotFoundError("user", "User not found"))

		w, resp := serve(r, http.MethodGet, "/users/missing", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, map[string]any{"message": "User not found"}, resp)
	})

	t.Run("Internal", func(t *testing.T) {
		r, userUC, _ := setupTest(t)
		userUC.On("GetUser", mock.Anything, "u-1").Return(nil, errors.New("boom"))

		w, resp := serve(r, http.MethodGet, "/users/u-1", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Something wrong", resp["message"])
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("Only Present Fields", func(t *testing.T) {
		r, userUC, _ := setupTest(t)
		userUC.On("UpdateUser", mock.Anything, useruc.UpdateUserRequest{UUID: "u-1", Name: strPtr("Annie")}).
			Return(&domain.User{UUID: "u-1", Name: "Annie", Email: "ann@x.com"}, nil)

		w, resp := serve(r, http.MethodPut, "/users/u-1", `{"name":"Annie"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Updated successfully", resp["message"])
		assert.Equal(t, "Annie", resp["data"].(map[string]any)["name"])
		userUC.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		r, userUC, _ := setupTest(t)
		userUC.On("UpdateUser", mock.Anything, mock.Anything).Return(nil, apperrors.NewNotFoundError("user", "User not found"))

		w, _ := serve(r, http.MethodPut, "/users/missing", `{"name":"x"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Malformed Body", func(t *testing.T) {
		r, userUC, _ := setupTest(t)

		w, _ := serve(r, http.MethodPut, "/users/u-1", `{"name":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		userUC.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
	})

	t.Run("Store Rejects", func(t *testing.T) {
		r, userUC, _ := setupTest(t)
		userUC.On("UpdateUser", mock.Anything, mock.Anything).Return(nil, apperrors.NewInternalError("failed", errors.New("check")))

		w, resp := serve(r, http.MethodPut, "/users/u-1", `{"role":"ROOT"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Something went worong", resp["message"])
	})
}

func TestDeleteUser(t *testing.T) {
	r, userUC, _ := setupTest(t)
	userUC.On("DeleteUser", mock.Anything, "u-1").Return(nil)
	userUC.On("DeleteUser", mock.Anything, "missing").Return(apperrors.NewNotFoundError("user", "User not found"))

	w, resp := serve(r, http.MethodDelete, "/users/u-1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user deleted successfully!", resp["message"])

	w, resp = serve(r, http.MethodDelete, "/users/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", resp["message"])
}

func TestCreatePost(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, _, postUC := setupTest(t)
		postUC.On("CreatePost", mock.Anything, postuc.CreatePostRequest{Title: "Hi", Body: strPtr("there"), UserUUID: "u-1"}).
			Return(&postdomain.Post{ID: 3, Title: "Hi", Body: strPtr("there"), UserUUID: "u-1"}, nil)

		w, resp := serve(r, http.MethodPost, "/posts", `{"title":"Hi","body":"there","userUuid":"u-1"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "post created successfully", resp["message"])
		data := resp["data"].(map[string]any)
		assert.Equal(t, float64(3), data["id"])
		assert.Equal(t, "u-1", data["userUuid"])
		assert.NotContains(t, data, "user")
	})

	t.Run("Empty Title", func(t *testing.T) {
		r, _, postUC := setupTest(t)

		w, resp := serve(r, http.MethodPost, "/posts", `{"title":"","userUuid":"u-1"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, map[string]any{"title": "Please Provide title for this post"}, resp["error"])
		postUC.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything)
	})

	t.Run("Unknown Owner", func(t *testing.T) {
		r, _, postUC := setupTest(t)
		postUC.On("CreatePost", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewInternalError("failed to create post", errors.New("owner does not exist")))

		w, resp := serve(r, http.MethodPost, "/posts", `{"title":"Hi","userUuid":"nope"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Something Wrong", resp["message"])
	})
}

func TestListPosts(t *testing.T) {
	r, _, postUC := setupTest(t)
	postUC.On("ListPosts", mock.Anything).Return([]postdomain.Post{
		{ID: 2, Title: "B", UserUUID: "u-1", User: &domain.User{UUID: "u-1", Name: "Ann"}},
		{ID: 1, Title: "A", UserUUID: "u-1", User: &domain.User{UUID: "u-1", Name: "Ann"}},
	}, nil)

	w, resp := serve(r, http.MethodGet, "/posts", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", resp["status"])
	assert.Equal(t, "posts fetched successfully", resp["message"])
	data := resp["data"].([]any)
	require.Len(t, data, 2)
	assert.Equal(t, "B", data[0].(map[string]any)["title"])
	assert.Equal(t, "Ann", data[0].(map[string]any)["user"].(map[string]any)["name"])
}
