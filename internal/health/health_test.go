package health

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rickgao/updown-monitor/internal/interval"
	"github.com/rickgao/updown-monitor/internal/version"
)

func get(t *testing.T, s *Server, path string, out any) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestServer_Health(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s := NewServer(0, interval.DefaultSeries, func() time.Time { return now }, zaptest.NewLogger(t))
	now = now.Add(90 * time.Second)

	var resp StatusResponse
	get(t, s, "/health", &resp)

	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, version.Version, resp.Version)
	assert.Equal(t, "1m30s", resp.Uptime)
}

func TestServer_Slugs(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s := NewServer(0, interval.DefaultSeries, func() time.Time { return now }, nil)

	var resp SlugsResponse
	get(t, s, "/slugs", &resp)
	assert.Equal(t, SlugsResponse{
		Current:          "btc-updown-15m-1699999200",
		Next:             "btc-updown-15m-1700000100",
		SecondsUntilNext: 100,
	}, resp)

	// Recomputed per request.
	now = time.Unix(1700000100, 0)
	get(t, s, "/slugs", &resp)
	assert.Equal(t, "btc-updown-15m-1700000100", resp.Current)
	assert.Equal(t, "btc-updown-15m-1700001000", resp.Next)
	assert.Equal(t, int64(900), resp.SecondsUntilNext)
}

func TestServer_UnknownRoute(t *testing.T) {
	s := NewServer(0, interval.DefaultSeries, nil, nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/markets", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	s := NewServer(0, interval.DefaultSeries, nil, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_ListenFailureWaitsForCancel(t *testing.T) {
	busy, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer busy.Close()
	port := busy.Addr().(*net.TCPAddr).Port

	core, logs := observer.New(zap.ErrorLevel)
	s := NewServer(port, interval.DefaultSeries, nil, zap.New(core))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		return logs.FilterMessage("status endpoint unavailable").Len() == 1
	}, 5*time.Second, 10*time.Millisecond)

	select {
	case err := <-done:
		t.Fatalf("Run returned before cancel: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
