package posts

import "AtelierAdmin/pkg/response"

var (
	ErrPostNotFound    = response.NewError(404, "post not found")
	ErrLoadPosts       = response.NewError(500, "failed to load posts")
	ErrCreatePost      = response.NewError(500, "failed to create post")
	ErrUpdatePost      = response.NewError(500, "failed to update post")
	ErrDeletePost      = response.NewError(500, "failed to delete post")
	ErrInvalidFileType = response.NewError(400, "invalid file type")
	ErrFailedToUpload  = response.NewError(500, "failed to upload image")
)
