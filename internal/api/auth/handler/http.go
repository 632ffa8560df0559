package authHandler

import (
	authService "AtelierAdmin/internal/api/auth/service"
	"AtelierAdmin/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	authService authService.AuthService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	as authService.AuthService,
) *AuthHandler {
	return &AuthHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		authService: as,
	}
}

func (h *AuthHandler) Start(srv fiber.Router) {
	auth := srv.Group("/auth")

	auth.Get("/login-gl", h.middleware.NewRateLimiter, h.HandleGoogleLogin)
	auth.Get("/callback-gl", h.middleware.NewRateLimiter, h.CallBackFromGoogle)
}
