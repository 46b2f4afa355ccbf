package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"marketplace_backend/internal/feature/payment/usecase"
)

// Client calls the Stripe charges API.
type Client struct {
	cfg    Config
	client *http.Client
}

// Compile-time check that Client implements PaymentGateway.
var _ usecase.PaymentGateway = (*Client)(nil)

// NewClient creates a new Client with the given configuration and HTTP client.
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// chargeResponse is the subset of Stripe's charge response we consume.
type chargeResponse struct {
	Status string `json:"status"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Charge submits a single charge in minor currency units and returns the
// processor's status verbatim.
func (c *Client) Charge(ctx context.Context, amountMinor int64, currency, description, source string) (string, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountMinor, 10))
	form.Set("currency", currency)
	form.Set("description", description)
	form.Set("source", source)

	endpoint := c.cfg.BaseURL + "/v1/charges"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APISecret)

	res, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	var body chargeResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("stripe: decode response: %w", err)
	}

	if res.StatusCode >= 400 {
		if body.Error.Message != "" {
			return "", fmt.Errorf("stripe: %s", body.Error.Message)
		}
		return "", fmt.Errorf("stripe http %d", res.StatusCode)
	}
	return body.Status, nil
}
