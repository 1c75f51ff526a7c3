// Package cartapi is the HTTP client for the cart persistence API. It is the
// only path through which local cart state reaches the server.
package cartapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
)

const (
	defaultTimeout = 10 * time.Second
	maxAttempts    = 2
)

// ErrUnauthorized indicates the bearer credential was missing or rejected.
var ErrUnauthorized = errors.New("cart api rejected the credential")

// ServiceError is a non-auth failure response from the cart API.
type ServiceError struct {
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("cart api returned status %d: %s", e.StatusCode, e.Body)
}

// cartPayload is the wire envelope for cart contents.
type cartPayload struct {
	Products []*domain.LineItem `json:"products"`
}

// Client calls the cart persistence API with bearer authentication.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a cart API client for the given base URL.
func NewClient(baseURL string, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// Fetch retrieves the persisted cart for the token's owner. A missing cart
// comes back as an empty slice, not an error.
func (c *Client) Fetch(ctx context.Context, token string) ([]*domain.LineItem, error) {
	body, err := c.do(ctx, http.MethodGet, token, nil)
	if err != nil {
		return nil, err
	}

	var payload cartPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errors.Wrap(err, "failed to decode cart response")
	}
	if payload.Products == nil {
		return []*domain.LineItem{}, nil
	}
	return payload.Products, nil
}

// Upsert replaces the persisted cart with the given items.
func (c *Client) Upsert(ctx context.Context, token string, items []*domain.LineItem) error {
	if items == nil {
		items = []*domain.LineItem{}
	}
	payload, err := json.Marshal(&cartPayload{Products: items})
	if err != nil {
		return errors.Wrap(err, "failed to encode cart payload")
	}

	_, err = c.do(ctx, http.MethodPost, token, payload)
	return err
}

// Remove deletes the persisted cart. Deleting an absent cart succeeds.
func (c *Client) Remove(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodDelete, token, nil)
	return err
}

// do issues the request with one retry on transport errors and 5xx responses.
// Auth failures and client errors are never retried.
func (c *Client) do(ctx context.Context, method, token string, payload []byte) ([]byte, error) {
	url := c.baseURL + "/api/v1/cart"

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
		if err != nil {
			return nil, errors.Wrap(err, "failed to build cart request")
		}
		req.Header.Set("Authorization", "Bearer "+token)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = errors.Wrap(err, "cart request failed")
			c.logger.WithError(err).WithFields(logrus.Fields{
				"method":  method,
				"attempt": attempt,
			}).Warn("Cart API request failed")
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = errors.Wrap(readErr, "failed to read cart response")
			continue
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			return nil, ErrUnauthorized
		case resp.StatusCode >= 500:
			lastErr = &ServiceError{StatusCode: resp.StatusCode, Body: string(body)}
			c.logger.WithFields(logrus.Fields{
				"method":  method,
				"status":  resp.StatusCode,
				"attempt": attempt,
			}).Warn("Cart API returned server error")
			continue
		case resp.StatusCode >= 400:
			return nil, &ServiceError{StatusCode: resp.StatusCode, Body: string(body)}
		}

		return body, nil
	}

	return nil, lastErr
}
