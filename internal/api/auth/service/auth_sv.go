package authService

import (
	"time"

	"AtelierAdmin/internal/api/auth"
	contextPkg "AtelierAdmin/pkg/context"
	jwtPkg "AtelierAdmin/pkg/jwt"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const (
	statePrefix         = "oauth_state:"
	stateTTL            = 10 * time.Minute
	accessTokenDuration = 12 * time.Hour
)

// LoginGoogle issues a one-time state nonce, stores it with a short TTL and
// returns the provider consent URL carrying that state.
func (s *authService) LoginGoogle(ctx context.Context) (string, error) {
	requestID := contextPkg.GetRequestID(ctx)

	state, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate sign-in state")
		return "", auth.ErrLoginFailed
	}

	if err := s.redisServer.SetState(ctx, statePrefix+state, "pending", stateTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to store sign-in state")
		return "", auth.ErrLoginFailed
	}

	return s.googleProvider.AuthCodeURL(state), nil
}

// CallbackGoogle verifies and consumes the state nonce, resolves the account
// email through the provider and checks it against the allowlist before
// issuing an access token.
func (s *authService) CallbackGoogle(ctx context.Context, state, code string) (*auth.LoginUserResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if _, err := s.redisServer.GetState(ctx, statePrefix+state); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"state":      state,
		}).Warn("Unknown or expired sign-in state")
		return nil, auth.ErrInvalidState
	}

	// The nonce is single-use; a failed delete only costs the TTL window.
	if err := s.redisServer.DeleteState(ctx, statePrefix+state); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to delete consumed sign-in state")
	}

	email, err := s.googleProvider.GetUserEmail(ctx, code)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to resolve account email from provider")
		return nil, auth.ErrGoogleAuth
	}

	if !s.allowlist.Contains(email) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"email":      email,
		}).Warn("Sign-in rejected: email not on allowlist")
		return nil, auth.ErrEmailNotAllowed
	}

	accessToken, expiry, err := jwtPkg.Sign(map[string]interface{}{
		"email": email,
	}, accessTokenDuration)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign access token")
		return nil, auth.ErrGoogleAuth
	}

	return &auth.LoginUserResponse{
		AccessToken:      accessToken,
		ExpiresInMinutes: int64(time.Until(time.Unix(expiry, 0)).Minutes()),
	}, nil
}
