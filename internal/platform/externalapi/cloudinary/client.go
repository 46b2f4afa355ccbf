package cloudinary

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	authusecase "marketplace_backend/internal/feature/auth/usecase"
	offersusecase "marketplace_backend/internal/feature/offers/usecase"
)

// Client calls the Cloudinary upload API with signed requests.
type Client struct {
	cfg    Config
	client *http.Client
	// now is swappable in tests so signatures are reproducible.
	now func() time.Time
}

// Compile-time checks that Client satisfies the consumer interfaces.
var (
	_ authusecase.ImageUploader = (*Client)(nil)
	_ offersusecase.ImageHost   = (*Client)(nil)
)

// NewClient creates a new Client with the given configuration and HTTP client.
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client, now: time.Now}
}

// uploadResponse is the subset of Cloudinary's upload response we consume.
type uploadResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// destroyResponse is Cloudinary's destroy response.
type destroyResponse struct {
	Result string `json:"result"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
}

// sign computes Cloudinary's request signature: the SHA-1 hex digest of the
// alphabetically ordered parameters (excluding file and api_key) with the
// API secret appended.
func (c *Client) sign(params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "file" || k == "api_key" || k == "signature" {
			continue
		}
		keys = append(keys, k)
	}
	// Map iteration order is random; Cloudinary requires sorted keys.
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params.Get(k))
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.cfg.APISecret))
	return hex.EncodeToString(sum[:])
}

// post sends a signed form-encoded request to the given API action and
// decodes the JSON response into out.
func (c *Client) post(ctx context.Context, action string, params url.Values, out any) error {
	params.Set("timestamp", strconv.FormatInt(c.now().Unix(), 10))
	params.Set("signature", c.sign(params))
	params.Set("api_key", c.cfg.APIKey)

	endpoint := fmt.Sprintf("%s/v1_1/%s/image/%s", c.cfg.BaseURL, c.cfg.CloudName, action)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 500 {
		return fmt.Errorf("cloudinary http %d", res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return err
	}
	if res.StatusCode >= 400 {
		return fmt.Errorf("cloudinary http %d", res.StatusCode)
	}
	return nil
}

// Upload sends image bytes to Cloudinary as a base64 data URI under the
// given public ID and returns the stored reference and delivery URL.
func (c *Client) Upload(ctx context.Context, data []byte, publicID string) (string, string, error) {
	if len(data) == 0 {
		return "", "", fmt.Errorf("empty image data")
	}

	dataURI := fmt.Sprintf("data:%s;base64,%s",
		http.DetectContentType(data), base64.StdEncoding.EncodeToString(data))

	params := url.Values{}
	params.Set("file", dataURI)
	params.Set("public_id", publicID)

	var body uploadResponse
	if err := c.post(ctx, "upload", params, &body); err != nil {
		if body.Error.Message != "" {
			return "", "", fmt.Errorf("cloudinary upload: %s", body.Error.Message)
		}
		return "", "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if body.PublicID == "" {
		return "", "", fmt.Errorf("cloudinary upload: missing public_id in response")
	}
	return body.PublicID, body.SecureURL, nil
}

// Destroy removes a hosted image by its public ID.
func (c *Client) Destroy(ctx context.Context, ref string) error {
	params := url.Values{}
	params.Set("public_id", ref)

	var body destroyResponse
	if err := c.post(ctx, "destroy", params, &body); err != nil {
		if body.Error.Message != "" {
			return fmt.Errorf("cloudinary destroy: %s", body.Error.Message)
		}
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if body.Result != "ok" {
		return fmt.Errorf("cloudinary destroy: %s", body.Result)
	}
	return nil
}
