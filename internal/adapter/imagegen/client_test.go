package imagegen

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/weather-mcp-service/internal/domain"
	"github.com/couchcryptid/weather-mcp-service/internal/observability"
)

func newTestClient(url, token string) *Client {
	return NewClient(url, token, 5*time.Second,
		observability.NewMetricsForTesting(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClampSteps(t *testing.T) {
	tests := []struct {
		name  string
		steps int
		want  int
	}{
		{name: "zero selects default", steps: 0, want: DefaultSteps},
		{name: "below minimum", steps: 1, want: MinSteps},
		{name: "minimum", steps: 4, want: 4},
		{name: "within range", steps: 6, want: 6},
		{name: "maximum", steps: 8, want: 8},
		{name: "above maximum", steps: 20, want: MaxSteps},
		{name: "negative", steps: -3, want: MinSteps},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampSteps(tt.steps))
		})
	}
}

func TestGenerate_Success(t *testing.T) {
	fakePNG := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a thundercloud over the sea", req.Prompt)
		assert.Equal(t, 6, req.Steps)

		w.Header().Set("Content-Type", "image/png")
		w.Write(fakePNG)
	}))
	defer server.Close()

	img, err := newTestClient(server.URL, "secret").Generate(context.Background(), "a thundercloud over the sea", 6)
	require.NoError(t, err)

	assert.Equal(t, fakePNG, img.Data)
	assert.Equal(t, "image/png", img.MIMEType)
}

func TestGenerate_ClampsStepsInRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, MaxSteps, req.Steps)
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpeg-bytes"))
	}))
	defer server.Close()

	img, err := newTestClient(server.URL, "").Generate(context.Background(), "sunset", 50)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.MIMEType)
}

func TestGenerate_MissingContentTypeDefaultsToPNG(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header()["Content-Type"] = nil // suppress Go's content sniffing header
		w.Write([]byte("raw"))
	}))
	defer server.Close()

	img, err := newTestClient(server.URL, "").Generate(context.Background(), "fog", 4)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
}

func TestGenerate_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"reason": "model is warming up"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, "").Generate(context.Background(), "hail", 4)
	require.Error(t, err)

	var upstreamErr *domain.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, "imagegen", upstreamErr.API)
	assert.Equal(t, http.StatusServiceUnavailable, upstreamErr.Status)
	assert.Equal(t, "model is warming up", upstreamErr.Reason)
}

func TestGenerate_ConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newTestClient(server.URL, "").Generate(context.Background(), "rainbow", 4)
	require.Error(t, err)

	var upstreamErr *domain.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, "imagegen", upstreamErr.API)
}
