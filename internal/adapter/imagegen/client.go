// Package imagegen is a thin HTTP client for a text-to-image inference
// endpoint. Access control lives with the caller; this client only moves
// bytes.
package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/weather-mcp-service/internal/domain"
	"github.com/couchcryptid/weather-mcp-service/internal/observability"
)

// Steps are clamped to what the upstream diffusion model accepts.
const (
	MinSteps     = 4
	MaxSteps     = 8
	DefaultSteps = 4
)

// Image is a generated picture with its content type.
type Image struct {
	Data     []byte
	MIMEType string
}

// Client posts generation requests to the configured endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an image generation client.
func NewClient(baseURL, token string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		token:      token,
		metrics:    metrics,
		logger:     logger,
	}
}

// ClampSteps bounds the inference step count to [MinSteps, MaxSteps]; zero
// selects DefaultSteps.
func ClampSteps(steps int) int {
	if steps == 0 {
		return DefaultSteps
	}
	if steps < MinSteps {
		return MinSteps
	}
	if steps > MaxSteps {
		return MaxSteps
	}
	return steps
}

type generateRequest struct {
	Prompt string `json:"prompt"`
	Steps  int    `json:"steps"`
}

// Generate renders an image for the prompt. Steps outside [MinSteps,
// MaxSteps] are clamped before the request is sent.
func (c *Client) Generate(ctx context.Context, prompt string, steps int) (*Image, error) {
	payload, err := json.Marshal(generateRequest{Prompt: prompt, Steps: ClampSteps(steps)})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues("imagegen").Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("imagegen", "error").Inc()
		return nil, &domain.UpstreamError{API: "imagegen", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("imagegen", "error").Inc()
		return nil, &domain.UpstreamError{API: "imagegen", Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		c.metrics.UpstreamRequests.WithLabelValues("imagegen", "error").Inc()
		var upstream struct {
			Reason string `json:"reason"`
		}
		_ = json.Unmarshal(body, &upstream)
		return nil, &domain.UpstreamError{API: "imagegen", Status: resp.StatusCode, Reason: upstream.Reason}
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = "image/png"
	}

	c.metrics.UpstreamRequests.WithLabelValues("imagegen", "success").Inc()
	c.logger.Debug("image generated", "bytes", len(body), "mime_type", mime)
	return &Image{Data: body, MIMEType: mime}, nil
}
