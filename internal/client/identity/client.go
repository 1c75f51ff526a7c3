// Package identity verifies bearer credentials against the identity provider.
package identity

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
)

const defaultTimeout = 5 * time.Second

// Verifier resolves a bearer token to the owner it authenticates.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// verifyResponse is the identity provider's wire shape.
type verifyResponse struct {
	UserID string `json:"userId"`
}

// Client is an HTTP Verifier.
type Client struct {
	verifyURL  string
	httpClient *http.Client
}

// NewClient creates an identity client pointed at the provider's verify
// endpoint.
func NewClient(verifyURL string) *Client {
	return &Client{
		verifyURL: verifyURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// Verify resolves the token to a user ID. Rejected or empty tokens map to
// ErrNotAuthenticated.
func (c *Client) Verify(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.verifyURL, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to build verify request")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "verify request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", domain.ErrNotAuthenticated
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read verify response")
	}

	var parsed verifyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", errors.Wrap(err, "failed to decode verify response")
	}
	if parsed.UserID == "" {
		return "", domain.ErrNotAuthenticated
	}

	return parsed.UserID, nil
}
