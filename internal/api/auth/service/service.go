package authService

import (
	"context"

	"AtelierAdmin/internal/api/auth"
	"AtelierAdmin/pkg/google"
	"AtelierAdmin/pkg/redis"
	"AtelierAdmin/pkg/utils"

	"github.com/sirupsen/logrus"
)

type AuthService interface {
	LoginGoogle(ctx context.Context) (string, error)
	CallbackGoogle(ctx context.Context, state, code string) (*auth.LoginUserResponse, error)
}

type authService struct {
	log            *logrus.Logger
	googleProvider google.ItfGoogle
	redisServer    redis.IRedis
	allowlist      auth.Allowlist
	utils          utils.IUtils
}

func NewAuthService(
	log *logrus.Logger,
	googleProvider google.ItfGoogle,
	redisServer redis.IRedis,
	allowlist auth.Allowlist,
	utils utils.IUtils,
) AuthService {
	return &authService{
		log:            log,
		googleProvider: googleProvider,
		redisServer:    redisServer,
		allowlist:      allowlist,
		utils:          utils,
	}
}
