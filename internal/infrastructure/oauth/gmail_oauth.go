package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"travella-service/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
)

// GmailOAuth wraps the read-only Gmail OAuth flow. The service runs
// headless, so after the one-time consent exchange everything is driven
// by a stored refresh token.
type GmailOAuth struct {
	config       *oauth2.Config
	refreshToken string
	logger       logger.Logger
}

func NewGmailOAuth(clientID, clientSecret, refreshToken string, logger logger.Logger) *GmailOAuth {
	return &GmailOAuth{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{gmail.GmailReadonlyScope},
		},
		refreshToken: refreshToken,
		logger:       logger,
	}
}

// GetTokenSource builds a self-refreshing token source from the stored
// refresh token. The seed token is created already expired so the first
// API call mints a fresh access token.
func (o *GmailOAuth) GetTokenSource(ctx context.Context) oauth2.TokenSource {
	seed := &oauth2.Token{
		RefreshToken: o.refreshToken,
		Expiry:       time.Now(),
	}
	return o.config.TokenSource(ctx, seed)
}

// GenerateAuthURL returns the consent URL for the one-time setup flow.
// Offline access is requested so Google issues a refresh token.
func (o *GmailOAuth) GenerateAuthURL() string {
	return o.config.AuthCodeURL("state", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// ExchangeCode trades the consent code for a token pair.
func (o *GmailOAuth) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := o.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("oauth code exchange failed: %w", err)
	}

	o.logger.Info("Obtained Gmail refresh token", "token", token.RefreshToken)

	return token, nil
}

// TokenToJSON renders a token for pasting into configuration.
func (o *GmailOAuth) TokenToJSON(token *oauth2.Token) (string, error) {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
