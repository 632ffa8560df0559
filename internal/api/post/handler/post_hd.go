package postHandler

import (
	"time"

	posts "AtelierAdmin/internal/api/post"
	contextPkg "AtelierAdmin/pkg/context"
	"AtelierAdmin/pkg/handlerUtil"
	"AtelierAdmin/pkg/log"

	"errors"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *PostsHandler) GetAllPosts(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing get all posts request")

	result, err := h.postsService.GetAllPosts(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_all_posts")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *PostsHandler) GetPostByID(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("post ID is required"), ctx.Path())
	}

	post, err := h.postsService.GetPostByID(c, id)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_post")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, posts.PostResponse{
			ID:            post.ID,
			Slug:          post.Slug,
			Title:         post.Title,
			Content:       post.Content,
			PublishedDate: post.PublishedDate,
			Status:        string(post.Status),
			ImageAssetID:  post.ImageAssetID,
			ImageURL:      post.ImageURL,
		})
	}
}

func (h *PostsHandler) CreatePost(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing create post request")

	req := posts.SavePostRequest{
		Slug:          ctx.FormValue("slug"),
		Title:         ctx.FormValue("title"),
		Content:       ctx.FormValue("content"),
		PublishedDate: ctx.FormValue("published_date"),
		Status:        ctx.FormValue("status"),
		ImageAssetID:  ctx.FormValue("image_asset_id"),
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	// Image is optional, so the form-file error is ignored.
	imageFile, _ := ctx.FormFile("image")

	post, err := h.postsService.CreatePost(c, req, imageFile)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_post")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, fiber.Map{
			"message": "Post created successfully",
			"id":      post.ID,
		})
	}
}

func (h *PostsHandler) UpdatePost(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("post ID is required"), ctx.Path())
	}

	req := posts.SavePostRequest{
		Slug:          ctx.FormValue("slug"),
		Title:         ctx.FormValue("title"),
		Content:       ctx.FormValue("content"),
		PublishedDate: ctx.FormValue("published_date"),
		Status:        ctx.FormValue("status"),
		ImageAssetID:  ctx.FormValue("image_asset_id"),
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	imageFile, _ := ctx.FormFile("image")

	if _, err := h.postsService.UpdatePost(c, id, req, imageFile); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "update_post")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Post updated successfully",
		})
	}
}

func (h *PostsHandler) DeletePost(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("post ID is required"), ctx.Path())
	}

	if ok := h.postsService.DeletePost(c, id); !ok {
		return errHandler.Handle(ctx, requestID, posts.ErrDeletePost, ctx.Path(), "delete_post")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Post deleted successfully",
		})
	}
}
