package outbound

import "context"

type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
}

// IdentityPort is the thin pass-through to the external identity provider.
type IdentityPort interface {
	SignIn(ctx context.Context, email string, password string) (*Session, error)
	SignUp(ctx context.Context, email string, password string) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error
}
