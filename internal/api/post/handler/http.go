package postHandler

import (
	postService "AtelierAdmin/internal/api/post/service"
	"AtelierAdmin/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type PostsHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	postsService postService.IPostsService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ps postService.IPostsService,
) *PostsHandler {
	return &PostsHandler{
		log:          log,
		validator:    validate,
		middleware:   middleware,
		postsService: ps,
	}
}

func (h *PostsHandler) Start(srv fiber.Router) {
	posts := srv.Group("/posts")

	posts.Get("", h.middleware.NewTokenMiddleware, h.GetAllPosts)
	posts.Get("/:id", h.middleware.NewTokenMiddleware, h.GetPostByID)
	posts.Post("/", h.middleware.NewTokenMiddleware, h.CreatePost)
	posts.Put("/:id", h.middleware.NewTokenMiddleware, h.UpdatePost)
	posts.Delete("/:id", h.middleware.NewTokenMiddleware, h.DeletePost)
}
