package auth

type LoginUserResponse struct {
	AccessToken      string `json:"access_token"`
	ExpiresInMinutes int64  `json:"expires_in_minutes"`
}
