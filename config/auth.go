package config

import (
	"fmt"
	"os"
)

type AuthConfig struct {
	JwksUrl string
	// IdentityApiUrl is the base URL of the external identity provider the
	// /auth endpoints pass through to.
	IdentityApiUrl string
	IdentityApiKey string
}

func GetAuthConfig() (*AuthConfig, error) {
	jwksUrl := os.Getenv("JWKS_URL")
	if jwksUrl == "" {
		return nil, fmt.Errorf("JWKS_URL must be set")
	}

	identityApiUrl := os.Getenv("IDENTITY_API_URL")
	if identityApiUrl == "" {
		return nil, fmt.Errorf("IDENTITY_API_URL must be set")
	}

	identityApiKey := os.Getenv("IDENTITY_API_KEY")
	if identityApiKey == "" {
		return nil, fmt.Errorf("IDENTITY_API_KEY must be set")
	}

	return &AuthConfig{
		JwksUrl:        jwksUrl,
		IdentityApiUrl: identityApiUrl,
		IdentityApiKey: identityApiKey,
	}, nil
}
