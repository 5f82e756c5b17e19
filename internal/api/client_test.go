package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// TestNewClient tests client construction with various options.
func TestNewClient(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := NewClient("https://api.example.com")

		assert.Equal(t, "https://api.example.com", c.baseURL)
		assert.Equal(t, 30*time.Second, c.httpClient.Timeout)
		assert.NotNil(t, c.logger)
	})

	t.Run("with timeout option", func(t *testing.T) {
		c := NewClient("https://api.example.com", WithTimeout(5*time.Second))
		assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
	})

	t.Run("with logger option", func(t *testing.T) {
		logger := zaptest.NewLogger(t)
		c := NewClient("https://api.example.com", WithLogger(logger))
		assert.Same(t, logger, c.logger)
	})

	t.Run("nil logger keeps default", func(t *testing.T) {
		c := NewClient("https://api.example.com", WithLogger(nil))
		assert.NotNil(t, c.logger)
	})

	t.Run("with custom HTTP client", func(t *testing.T) {
		custom := &http.Client{Timeout: 10 * time.Second}
		c := NewClient("https://api.example.com", WithHTTPClient(custom))
		assert.Same(t, custom, c.httpClient)
	})
}

func TestAPIError(t *testing.T) {
	err := &APIError{StatusCode: 404, Message: "Not Found"}
	assert.Equal(t, "catalog api error 404: Not Found", err.Error())
}

// TestDoRequest tests the HTTP request functionality.
func TestDoRequest(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			assert.Empty(t, r.Header.Get("Authorization"))
			w.Write([]byte(`{"status": "ok"}`))
		}))
		defer server.Close()

		c := NewClient(server.URL)
		body, err := c.doRequest(context.Background(), http.MethodGet, "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, `{"status": "ok"}`, string(body))
	})

	t.Run("4xx error returns APIError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "not found"}`))
		}))
		defer server.Close()

		c := NewClient(server.URL)
		_, err := c.doRequest(context.Background(), http.MethodGet, "/test", nil)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Contains(t, string(apiErr.Body), "not found")
	})

	t.Run("5xx error is not retried", func(t *testing.T) {
		var attempts atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		c := NewClient(server.URL)
		_, err := c.doRequest(context.Background(), http.MethodGet, "/test", nil)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
		assert.Equal(t, int32(1), attempts.Load())
	})

	t.Run("context cancellation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
		}))
		defer server.Close()

		c := NewClient(server.URL)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.doRequest(ctx, http.MethodGet, "/test", nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestGetMarkets(t *testing.T) {
	t.Run("sends slug and closed filter", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/markets", r.URL.Path)
			assert.Equal(t, "btc-updown-15m-1700000100", r.URL.Query().Get("slug"))
			assert.Equal(t, "false", r.URL.Query().Get("closed"))
			w.Write([]byte(`[{"slug":"btc-updown-15m-1700000100","question":"Bitcoin Up or Down?"}]`))
		}))
		defer server.Close()

		closed := false
		c := NewClient(server.URL)
		markets, err := c.GetMarkets(context.Background(), GetMarketsOptions{
			Slug:   "btc-updown-15m-1700000100",
			Closed: &closed,
		})
		require.NoError(t, err)
		require.Len(t, markets, 1)
		assert.Equal(t, "Bitcoin Up or Down?", markets[0].Question)
	})

	t.Run("omits closed filter when nil", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := r.URL.Query()["closed"]
			assert.False(t, ok, "closed should not be sent")
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		markets, err := NewClient(server.URL).GetMarkets(context.Background(), GetMarketsOptions{Slug: "x"})
		require.NoError(t, err)
		assert.Empty(t, markets)
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"markets": not-json`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL).GetMarkets(context.Background(), GetMarketsOptions{Slug: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unmarshal response")
	})
}

func TestFindMarket(t *testing.T) {
	t.Run("returns first market", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[
				{"slug":"first","active":true,"volume24hr":1234.5,"clobTokenIds":"[\"111\", \"222\"]","outcomes":"[\"Up\", \"Down\"]"},
				{"slug":"second"}
			]`))
		}))
		defer server.Close()

		m, err := NewClient(server.URL).FindMarket(context.Background(), "first", true)
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, "first", m.Slug)
		require.NotNil(t, m.Active)
		assert.True(t, *m.Active)
		assert.Equal(t, "1234.5", m.Volume().Value.Decimal.String())
		assert.Equal(t, []string{"111", "222"}, m.TokenIDs())
	})

	t.Run("token ids as a json array", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"question":"Q","slug":"s","clobTokenIds":["1","2"]}]`))
		}))
		defer server.Close()

		m, err := NewClient(server.URL).FindMarket(context.Background(), "s", true)
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, "Q", m.Question)
		assert.Equal(t, []string{"1", "2"}, m.TokenIDs())
	})

	t.Run("odd field values do not fail the lookup", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"question":"Q","slug":"s","volume24hr":"","clobTokenIds":{"up":"1"},"outcomes":7}]`))
		}))
		defer server.Close()

		m, err := NewClient(server.URL).FindMarket(context.Background(), "s", true)
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, "Q", m.Question)
		assert.False(t, m.Volume().Value.Valid)
		assert.Empty(t, m.TokenIDs())

		got := m.ToModel()
		assert.Equal(t, "s", got.Slug)
		assert.Empty(t, got.Tokens)
	})

	t.Run("open only sends closed=false", func(t *testing.T) {
		var query string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.RawQuery
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL).FindMarket(context.Background(), "s", true)
		require.NoError(t, err)
		assert.Contains(t, query, "closed=false")
	})

	t.Run("empty result is not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		m, err := NewClient(server.URL).FindMarket(context.Background(), "missing", false)
		require.NoError(t, err)
		assert.Nil(t, m)
		assert.Empty(t, m.TokenIDs())
	})

	t.Run("status error is wrapped", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := NewClient(server.URL).FindMarket(context.Background(), "s", false)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
		assert.Contains(t, err.Error(), "find market s")
	})
}
