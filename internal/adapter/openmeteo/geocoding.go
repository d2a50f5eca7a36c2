// Package openmeteo implements the domain collaborator interfaces against
// the public Open-Meteo geocoding and forecast APIs.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/weather-mcp-service/internal/domain"
	"github.com/couchcryptid/weather-mcp-service/internal/observability"
)

// DefaultGeocodingURL is the production geocoding endpoint.
const DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

// GeocodingClient implements domain.LocationSearcher using the Open-Meteo
// geocoding API. No retry, no caching; each call is independent.
type GeocodingClient struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewGeocodingClient creates a geocoding client.
func NewGeocodingClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *GeocodingClient {
	return &GeocodingClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		metrics:    metrics,
		logger:     logger,
	}
}

// Search returns candidate locations for a free-text query, in the upstream
// relevance order. The limit is clamped to [1, MaxLocationResults] before
// transmission. A response without results is a valid empty slice.
func (c *GeocodingClient) Search(ctx context.Context, name string, limit int) ([]domain.Location, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > domain.MaxLocationResults {
		limit = domain.MaxLocationResults
	}

	params := url.Values{
		"name":   {name},
		"count":  {strconv.Itoa(limit)},
		"format": {"json"},
	}

	start := time.Now()
	body, err := getJSON(ctx, c.httpClient, c.baseURL+"?"+params.Encode(), "geocoding")
	c.metrics.UpstreamDuration.WithLabelValues("geocoding").Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("geocoding", "error").Inc()
		return nil, err
	}

	var resp geocodingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("geocoding", "error").Inc()
		return nil, &domain.UpstreamError{API: "geocoding", Err: fmt.Errorf("decode response: %w", err)}
	}

	c.metrics.UpstreamRequests.WithLabelValues("geocoding", "success").Inc()

	locations := make([]domain.Location, 0, len(resp.Results))
	for _, r := range resp.Results {
		locations = append(locations, domain.Location{
			ID:         r.ID,
			Name:       r.Name,
			Latitude:   r.Latitude,
			Longitude:  r.Longitude,
			Country:    r.Country,
			Admin1:     r.Admin1,
			Admin2:     r.Admin2,
			Timezone:   r.Timezone,
			Population: r.Population,
			Elevation:  r.Elevation,
		})
	}

	c.logger.Debug("location search", "query", name, "limit", limit, "results", len(locations))
	return locations, nil
}

// Geocoding API response types.

type geocodingResponse struct {
	Results []locationResult `json:"results"`
}

type locationResult struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Country    string  `json:"country"`
	Admin1     string  `json:"admin1"`
	Admin2     string  `json:"admin2"`
	Timezone   string  `json:"timezone"`
	Population int64   `json:"population"`
	Elevation  float64 `json:"elevation"`
}
