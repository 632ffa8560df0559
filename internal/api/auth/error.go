package auth

import "AtelierAdmin/pkg/response"

var (
	ErrInvalidState    = response.NewError(401, "invalid or expired sign-in state")
	ErrEmailNotAllowed = response.NewError(403, "email is not allowed to sign in")
	ErrGoogleAuth      = response.NewError(500, "failed to authenticate with google")
	ErrLoginFailed     = response.NewError(500, "failed to start sign-in")
)
