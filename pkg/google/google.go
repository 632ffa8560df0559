package google

import (
	"context"
	"errors"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

type ItfGoogle interface {
	GetConfig() *oauth2.Config
	AuthCodeURL(state string) string
	GetUserEmail(ctx context.Context, code string) (string, error)
}

type googleProvider struct {
	config *oauth2.Config
}

func New() ItfGoogle {
	redirectURL := os.Getenv("GOOGLE_REDIRECT_URL")
	if redirectURL == "" {
		redirectURL = "http://localhost:3000/api/v1/auth/callback-gl"
	}

	config := &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  redirectURL,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email"},
		Endpoint:     google.Endpoint,
	}

	return &googleProvider{config: config}
}

func (g *googleProvider) GetConfig() *oauth2.Config {
	return g.config
}

func (g *googleProvider) AuthCodeURL(state string) string {
	return g.config.AuthCodeURL(state)
}

// GetUserEmail exchanges the authorization code and asks the userinfo API
// for the signed-in account's email address.
func (g *googleProvider) GetUserEmail(ctx context.Context, code string) (string, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return "", err
	}

	service, err := oauth2api.NewService(ctx, option.WithTokenSource(g.config.TokenSource(ctx, token)))
	if err != nil {
		return "", err
	}

	userInfo, err := service.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return "", err
	}

	if userInfo.Email == "" {
		return "", errors.New("google userinfo response has no email")
	}

	return userInfo.Email, nil
}
