package authService

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"AtelierAdmin/internal/api/auth"
	"AtelierAdmin/pkg/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type fakeGoogle struct {
	email       string
	exchangeErr error
}

func (f *fakeGoogle) GetConfig() *oauth2.Config { return nil }

func (f *fakeGoogle) AuthCodeURL(state string) string {
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}

func (f *fakeGoogle) GetUserEmail(ctx context.Context, code string) (string, error) {
	if f.exchangeErr != nil {
		return "", f.exchangeErr
	}
	return f.email, nil
}

type fakeRedis struct {
	store  map[string]string
	setErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{store: map[string]string{}}
}

func (f *fakeRedis) SetState(ctx context.Context, key, value string, expiration time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.store[key] = value
	return nil
}

func (f *fakeRedis) GetState(ctx context.Context, key string) (string, error) {
	val, ok := f.store[key]
	if !ok {
		return "", errors.New("redis: nil")
	}
	return val, nil
}

func (f *fakeRedis) DeleteState(ctx context.Context, key string) error {
	delete(f.store, key)
	return nil
}

func newTestAuthService(provider *fakeGoogle, store *fakeRedis, allowed string) AuthService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewAuthService(logger, provider, store, auth.NewAllowlist(allowed), utils.New())
}

func TestLoginGoogleStoresState(t *testing.T) {
	store := newFakeRedis()
	svc := newTestAuthService(&fakeGoogle{}, store, "alice@example.com")

	url, err := svc.LoginGoogle(context.Background())

	require.NoError(t, err)
	assert.Contains(t, url, "state=")
	assert.Len(t, store.store, 1)
}

func TestLoginGoogleStateStoreFailure(t *testing.T) {
	store := newFakeRedis()
	store.setErr = errors.New("connection refused")
	svc := newTestAuthService(&fakeGoogle{}, store, "alice@example.com")

	_, err := svc.LoginGoogle(context.Background())

	assert.ErrorIs(t, err, auth.ErrLoginFailed)
}

func TestCallbackGoogleHappyPath(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	store := newFakeRedis()
	store.store[statePrefix+"nonce-1"] = "pending"
	svc := newTestAuthService(&fakeGoogle{email: "Alice@Example.com"}, store, "alice@example.com")

	result, err := svc.CallbackGoogle(context.Background(), "nonce-1", "auth-code")

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Greater(t, result.ExpiresInMinutes, int64(0))

	// The nonce is consumed on use.
	_, err = store.GetState(context.Background(), statePrefix+"nonce-1")
	assert.Error(t, err)
}

func TestCallbackGoogleUnknownState(t *testing.T) {
	svc := newTestAuthService(&fakeGoogle{email: "alice@example.com"}, newFakeRedis(), "alice@example.com")

	_, err := svc.CallbackGoogle(context.Background(), "stale-nonce", "auth-code")

	assert.ErrorIs(t, err, auth.ErrInvalidState)
}

func TestCallbackGoogleEmailNotAllowed(t *testing.T) {
	store := newFakeRedis()
	store.store[statePrefix+"nonce-1"] = "pending"
	svc := newTestAuthService(&fakeGoogle{email: "mallory@example.com"}, store, "alice@example.com")

	_, err := svc.CallbackGoogle(context.Background(), "nonce-1", "auth-code")

	assert.ErrorIs(t, err, auth.ErrEmailNotAllowed)
}

func TestCallbackGoogleEmptyAllowlistRejects(t *testing.T) {
	store := newFakeRedis()
	store.store[statePrefix+"nonce-1"] = "pending"
	svc := newTestAuthService(&fakeGoogle{email: "alice@example.com"}, store, "")

	_, err := svc.CallbackGoogle(context.Background(), "nonce-1", "auth-code")

	assert.ErrorIs(t, err, auth.ErrEmailNotAllowed)
}

func TestCallbackGoogleExchangeFailure(t *testing.T) {
	store := newFakeRedis()
	store.store[statePrefix+"nonce-1"] = "pending"
	svc := newTestAuthService(&fakeGoogle{exchangeErr: errors.New("invalid_grant")}, store, "alice@example.com")

	_, err := svc.CallbackGoogle(context.Background(), "nonce-1", "auth-code")

	assert.ErrorIs(t, err, auth.ErrGoogleAuth)
}
