// Package payment registers orders with the hosted payment gateway and hands
// back the redirect URL for the payment form.
package payment

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
)

const defaultTimeout = 15 * time.Second

// ErrRegistrationRejected indicates the gateway refused the order, either
// with an explicit error code or by omitting the form URL.
var ErrRegistrationRejected = errors.New("payment gateway rejected the order")

// Config carries the merchant credentials and endpoint settings.
type Config struct {
	RegisterURL string
	Username    string
	Password    string
	Currency    string
	ReturnURL   string
	FailURL     string
}

// Session is a successfully registered payment.
type Session struct {
	OrderID string
	FormURL string
}

// registerResponse is the gateway's wire shape.
type registerResponse struct {
	OrderID      string `json:"orderId"`
	FormURL      string `json:"formUrl"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// Client registers orders over the gateway's form-encoded HTTP API.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a payment client.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// Register submits the order and returns the hosted form session. The amount
// is converted to the gateway's minor units.
func (c *Client) Register(ctx context.Context, orderNumber string, amount *domain.Money) (*Session, error) {
	if orderNumber == "" {
		return nil, errors.New("order number cannot be empty")
	}
	if amount == nil || amount.IsZero() || amount.IsNegative() {
		return nil, errors.New("payment amount must be positive")
	}

	form := url.Values{}
	form.Set("userName", c.cfg.Username)
	form.Set("password", c.cfg.Password)
	form.Set("orderNumber", orderNumber)
	form.Set("amount", strconv.FormatInt(amount.MinorUnits(), 10))
	form.Set("currency", c.cfg.Currency)
	form.Set("returnUrl", c.cfg.ReturnURL)
	form.Set("failUrl", c.cfg.FailURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.RegisterURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build register request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "register request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read register response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	var parsed registerResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errors.Wrap(err, "failed to decode register response")
	}

	if parsed.ErrorCode != "" && parsed.ErrorCode != "0" {
		return nil, errors.Wrapf(ErrRegistrationRejected, "code %s: %s", parsed.ErrorCode, parsed.ErrorMessage)
	}
	if parsed.FormURL == "" {
		return nil, ErrRegistrationRejected
	}

	return &Session{
		OrderID: parsed.OrderID,
		FormURL: parsed.FormURL,
	}, nil
}
