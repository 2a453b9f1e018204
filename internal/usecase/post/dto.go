package post

// CreatePostRequest represents the input for creating a post.
type CreatePostRequest struct {
	Title    string
	Body     *string
	UserUUID string
}
