package stripe

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	cfg := Config{
		APISecret: "sk_test_abc",
		BaseURL:   baseURL,
		Timeout:   5 * time.Second,
	}
	return NewClient(cfg, &http.Client{Timeout: 5 * time.Second})
}

func TestClient_Charge(t *testing.T) {
	t.Run("successful charge", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/charges", r.URL.Path)
			assert.Equal(t, "Bearer sk_test_abc", r.Header.Get("Authorization"))
			require.NoError(t, r.ParseForm())

			assert.Equal(t, "2599", r.Form.Get("amount"))
			assert.Equal(t, "eur", r.Form.Get("currency"))
			assert.Equal(t, "Marketplace payment for: Blue jacket", r.Form.Get("description"))
			assert.Equal(t, "tok_visa", r.Form.Get("source"))

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"status":"succeeded"}`)
		}))
		defer srv.Close()

		client := newTestClient(srv.URL)
		status, err := client.Charge(context.Background(), 2599, "eur", "Marketplace payment for: Blue jacket", "tok_visa")

		require.NoError(t, err)
		assert.Equal(t, "succeeded", status)
	})

	t.Run("declined card message is surfaced", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusPaymentRequired)
			fmt.Fprint(w, `{"error":{"message":"Your card was declined."}}`)
		}))
		defer srv.Close()

		client := newTestClient(srv.URL)
		_, err := client.Charge(context.Background(), 100, "eur", "test", "tok_chargeDeclined")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Your card was declined.")
	})

	t.Run("error status without message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{}`)
		}))
		defer srv.Close()

		client := newTestClient(srv.URL)
		_, err := client.Charge(context.Background(), 100, "eur", "test", "tok_visa")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "http 500")
	})

	t.Run("malformed response body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "not json")
		}))
		defer srv.Close()

		client := newTestClient(srv.URL)
		_, err := client.Charge(context.Background(), 100, "eur", "test", "tok_visa")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode response")
	})
}
