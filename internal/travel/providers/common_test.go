package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/travel-genie/internal/travel"
)

func TestDoRequestNoClient(t *testing.T) {
	_, err := doRequest(context.Background(), "test", HTTPClientConfig{}, newBreaker("test"),
		func(ctx context.Context) (*http.Request, error) { return getRequest(ctx, "http://example.invalid") })
	assert.ErrorIs(t, err, errNoHTTPClient)
}

func TestDoRequestDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := HTTPClientConfig{Client: srv.Client()}
	_, err := doRequest(context.Background(), "test", cfg, newBreaker("test"),
		func(ctx context.Context) (*http.Request, error) { return getRequest(ctx, srv.URL) })

	var perr *travel.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusServiceUnavailable, perr.StatusCode)
	assert.ErrorIs(t, err, errServerError)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCircuitOpensAfterRepeatedFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := HTTPClientConfig{Client: srv.Client()}
	cb := newBreaker("test")
	build := func(ctx context.Context) (*http.Request, error) { return getRequest(ctx, srv.URL) }

	for i := 0; i < 6; i++ {
		_, err := doRequest(context.Background(), "test", cfg, cb, build)
		require.ErrorIs(t, err, errServerError)
	}

	_, err := doRequest(context.Background(), "test", cfg, cb, build)
	assert.ErrorIs(t, err, errCircuitOpen)
	assert.Equal(t, int32(6), calls.Load())
}

func TestGetJSONMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	var out map[string]any
	err := getJSON(context.Background(), "test", HTTPClientConfig{Client: srv.Client()}, newBreaker("test"),
		func(ctx context.Context) (*http.Request, error) { return getRequest(ctx, srv.URL) }, &out)
	assert.ErrorIs(t, err, errMalformed)
}
