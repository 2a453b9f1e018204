package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-post-service/internal/adapter/gin/middleware"
	"user-post-service/internal/usecase/post"
)

// PostHandler handles HTTP requests for post operations
type PostHandler struct {
	uc  post.Usecase
	log *zap.Logger
}

// NewPostHandler creates a new PostHandler instance
func NewPostHandler(uc post.Usecase, log *zap.Logger) *PostHandler {
	return &PostHandler{
		uc:  uc,
		log: log,
	}
}

// CreatePostBody is the JSON body of POST /posts.
type CreatePostBody struct {
	Title    *string `json:"title"`
	Body     *string `json:"body"`
	UserUUID string  `json:"userUuid"`
}

// CreatePost handles POST /posts. The body has been checked against
// PostRules by the validation middleware.
func (h *PostHandler) CreatePost(c *gin.Context) {
	body, ok := middleware.BodyFrom[CreatePostBody](c)
	if !ok {
		if err := c.ShouldBindJSON(&body); err != nil {
			respondBadBody(c, h.log, err)
			return
		}
	}

	p, err := h.uc.CreatePost(c.Request.Context(), post.CreatePostRequest{
		Title:    deref(body.Title),
		Body:     body.Body,
		UserUUID: body.UserUUID,
	})
	if err != nil {
		respondError(c, h.log, err, "Something Wrong")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "post created successfully",
		"data":    toPostResponse(p),
	})
}

// ListPosts handles GET /posts
func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.uc.ListPosts(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Something Wrong")
		return
	}

	data := make([]PostResponse, len(posts))
	for i := range posts {
		data[i] = toPostResponse(&posts[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "posts fetched successfully",
		"data":    data,
	})
}
