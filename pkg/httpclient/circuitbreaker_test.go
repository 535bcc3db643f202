package httpclient

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testClient() *Client {
	return New(Config{
		Timeout:         5 * time.Second,
		MaxRetries:      0,
		RetryWaitMin:    1 * time.Millisecond,
		RetryWaitMax:    5 * time.Millisecond,
		MaxConnsPerHost: 10,
	})
}

func tightBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:         name,
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		FailureRatio: 0.5,
		MinRequests:  2,
	}
}

func TestCircuitBreaker_PassesThroughSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`ok`))
	}))
	defer server.Close()

	cb := NewCircuitBreakerClient(testClient(), tightBreakerConfig("cb-pass"), testLogger())

	resp, err := cb.Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_TreatsServerErrorsAsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`boom`))
	}))
	defer server.Close()

	cb := NewCircuitBreakerClient(testClient(), tightBreakerConfig("cb-5xx"), testLogger())

	_, err := cb.Get(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server error 500")
}

func TestCircuitBreaker_OpensAfterFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cb := NewCircuitBreakerClient(testClient(), tightBreakerConfig("cb-open"), testLogger())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _ = cb.Get(ctx, server.URL)
	}

	assert.Equal(t, gobreaker.StateOpen, cb.State())

	_, err := cb.Get(ctx, server.URL)
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestCircuitBreaker_FallbackInvokedWhenOpen(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cb := NewCircuitBreakerClient(testClient(), tightBreakerConfig("cb-fallback"), testLogger()).
		WithFallback(func(ctx context.Context, err error) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(`[]`)),
				Header:     make(http.Header),
			}, nil
		})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _ = cb.Get(ctx, server.URL)
	}
	require.Equal(t, gobreaker.StateOpen, cb.State())

	resp, err := cb.Get(ctx, server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
