package config

import (
	"fmt"
	"os"

	"AtelierAdmin/internal/api/auth"
	authHandler "AtelierAdmin/internal/api/auth/handler"
	authService "AtelierAdmin/internal/api/auth/service"
	hoursHandler "AtelierAdmin/internal/api/hours/handler"
	hoursService "AtelierAdmin/internal/api/hours/service"
	postHandler "AtelierAdmin/internal/api/post/handler"
	postService "AtelierAdmin/internal/api/post/service"
	"AtelierAdmin/internal/middleware"
	"AtelierAdmin/pkg/cms"
	"AtelierAdmin/pkg/google"
	"AtelierAdmin/pkg/redis"
	"AtelierAdmin/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine         *fiber.App
	log            *logrus.Logger
	middleware     middleware.Middleware
	validator      *validator.Validate
	utils          utils.IUtils
	handlers       []handler
	googleProvider google.ItfGoogle
	redisServer    redis.IRedis
	cmsClient      cms.ItfCMS
	allowlist      auth.Allowlist
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithGoogleProvider(provider google.ItfGoogle) ServerOption {
	return func(s *Server) error {
		s.googleProvider = provider
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

// WithCMSClient builds the management client from the environment. Missing
// credentials fail server construction instead of surfacing on the first
// request.
func WithCMSClient() ServerOption {
	return func(s *Server) error {
		client, err := cms.New(cms.ConfigFromEnv(), s.log)
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize CMS client: %v", err)
			}
			return fmt.Errorf("failed to create CMS client: %w", err)
		}
		s.cmsClient = client
		return nil
	}
}

// WithAllowlist reads the permitted sign-in emails. An empty list would lock
// everyone out, so it is rejected at startup.
func WithAllowlist() ServerOption {
	return func(s *Server) error {
		list := auth.NewAllowlist(os.Getenv("ALLOWED_EMAILS"))
		if len(list) == 0 {
			return fmt.Errorf("ALLOWED_EMAILS is not set")
		}
		s.allowlist = list
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Auth Domain
	authServices := authService.NewAuthService(s.log, s.googleProvider, s.redisServer, s.allowlist, s.utils)
	authHandlers := authHandler.New(s.log, s.validator, s.middleware, authServices)

	// Posts Domain
	uploader := cms.NewAssetUploader(s.cmsClient, s.log, cms.DefaultRetryPolicy())
	postServices := postService.NewPostsService(s.log, s.cmsClient, uploader, s.utils)
	postHandlers := postHandler.New(s.log, s.validator, s.middleware, postServices)

	// Irregular Hours Domain
	hoursServices := hoursService.NewHoursService(s.log, s.cmsClient)
	hoursHandlers := hoursHandler.New(s.log, s.validator, s.middleware, hoursServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, authHandlers, postHandlers, hoursHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
