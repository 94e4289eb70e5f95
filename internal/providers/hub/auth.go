// ABOUTME: Docker Hub token provider that exchanges a PAT for a JWT.
// ABOUTME: Uses the hub auth/token endpoint; the token is opaque to the rest of the system.

package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// TokenClient exchanges Docker Hub credentials for a bearer token.
type TokenClient struct {
	url      string
	username string
	pat      string
	client   *http.Client
	logger   *logrus.Logger
}

// NewTokenClient creates a token provider against the given auth endpoint.
func NewTokenClient(url, username, pat string, logger *logrus.Logger) *TokenClient {
	return &TokenClient{
		url:      url,
		username: username,
		pat:      pat,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   logger,
	}
}

type tokenRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

type tokenResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
}

// Token implements engine.TokenProvider. The endpoint has historically
// answered with either "token" or "access_token"; both are accepted.
func (t *TokenClient) Token(ctx context.Context) (string, error) {
	if t.username == "" || t.pat == "" {
		return "", fmt.Errorf("DOCKER_USERNAME and DOCKER_PAT must be set")
	}

	payload, err := json.Marshal(tokenRequest{Identifier: t.username, Secret: t.pat})
	if err != nil {
		return "", fmt.Errorf("failed to encode auth request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error authenticating: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("error authenticating: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var decoded tokenResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("error authenticating: decoding response: %w", err)
	}

	token := decoded.Token
	if token == "" {
		token = decoded.AccessToken
	}
	if token == "" {
		return "", fmt.Errorf("no token received from authentication endpoint")
	}

	t.logger.WithField("component", "hub_auth").Debug("Obtained Docker Hub token")
	return token, nil
}
