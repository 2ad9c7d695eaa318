package llm

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Credential produces the current authorization header for a completion
// request. The two modes (static key, acquired bearer token) both sit
// behind this single capability so the client is written once.
type Credential interface {
	Header(ctx context.Context) (name, value string, err error)
}

// APIKeyCredential presents a static key in the provider's api-key header.
type APIKeyCredential struct {
	key string
}

func NewAPIKeyCredential(key string) (*APIKeyCredential, error) {
	if key == "" {
		return nil, fmt.Errorf("api key required")
	}
	return &APIKeyCredential{key: key}, nil
}

func (c *APIKeyCredential) Header(context.Context) (string, string, error) {
	return "api-key", c.key, nil
}

// BearerTokenCredential acquires short-lived bearer tokens from an
// identity provider scoped to a fixed audience. The token source reuses
// a token until it expires, then fetches a fresh one.
type BearerTokenCredential struct {
	source oauth2.TokenSource
}

func NewBearerTokenCredential(ctx context.Context, tokenURL, clientID, clientSecret, audience string) (*BearerTokenCredential, error) {
	if tokenURL == "" || audience == "" {
		return nil, fmt.Errorf("token url and audience required")
	}
	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		Scopes:       []string{audience},
	}
	return &BearerTokenCredential{source: cfg.TokenSource(ctx)}, nil
}

func (c *BearerTokenCredential) Header(context.Context) (string, string, error) {
	tok, err := c.source.Token()
	if err != nil {
		return "", "", fmt.Errorf("acquire bearer token: %w", err)
	}
	return "Authorization", "Bearer " + tok.AccessToken, nil
}
