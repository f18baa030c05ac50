package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"story-production-api/application/ports/outbound"
	"story-production-api/config"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// identityGateway passes credentials through to the external identity
// provider's REST endpoints. The core never stores passwords or sessions.
type identityGateway struct {
	ContentFetcher
	logger     outbound.LoggerPort
	authConfig *config.AuthConfig
}

func NewIdentityGateway(contentFetcher ContentFetcher, authConfig *config.AuthConfig, logger outbound.LoggerPort) outbound.IdentityPort {
	return &identityGateway{
		ContentFetcher: contentFetcher,
		logger:         logger,
		authConfig:     authConfig,
	}
}

func (g *identityGateway) SignIn(ctx context.Context, email string, password string) (*outbound.Session, error) {
	return g.tokenRequest(ctx, "/token?grant_type=password", email, password)
}

func (g *identityGateway) SignUp(ctx context.Context, email string, password string) (*outbound.Session, error) {
	return g.tokenRequest(ctx, "/signup", email, password)
}

func (g *identityGateway) SignOut(ctx context.Context, accessToken string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.authConfig.IdentityApiUrl+"/logout", nil)
	if err != nil {
		g.logger.Error(err, "Failed to create the sign-out request")
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("apikey", g.authConfig.IdentityApiKey)

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		g.logger.Error(err, "Failed to send the sign-out request")
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		return fmt.Errorf("sign-out returned status %d", res.StatusCode)
	}
	return nil
}

func (g *identityGateway) tokenRequest(ctx context.Context, path string, email string, password string) (*outbound.Session, error) {
	payload, err := json.Marshal(credentialsRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.authConfig.IdentityApiUrl+path, bytes.NewBuffer(payload))
	if err != nil {
		g.logger.Error(err, "Failed to create the identity request")
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", g.authConfig.IdentityApiKey)

	body, err := g.FetchContent(req)
	if err != nil {
		return nil, err
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		g.logger.Error(err, "Failed to unmarshal the identity response")
		return nil, err
	}

	return &outbound.Session{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresIn:    token.ExpiresIn,
		UserID:       token.User.ID,
		Email:        token.User.Email,
	}, nil
}
