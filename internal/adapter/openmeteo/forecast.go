package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/weather-mcp-service/internal/domain"
	"github.com/couchcryptid/weather-mcp-service/internal/observability"
)

// DefaultForecastURL is the production forecast endpoint.
const DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"

// ForecastClient implements domain.ForecastProvider using the Open-Meteo
// forecast API. It is a thin transport: variable selection and bounds live
// with the caller.
type ForecastClient struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewForecastClient creates a forecast client.
func NewForecastClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *ForecastClient {
	return &ForecastClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		metrics:    metrics,
		logger:     logger,
	}
}

// Fetch retrieves raw weather data for a coordinate pair. Unset options fall
// back to the API defaults (7 days, celsius, km/h, mm); unit strings are
// forwarded uninterpreted.
func (c *ForecastClient) Fetch(ctx context.Context, lat, lon float64, opts domain.ForecastOptions) (*domain.ForecastData, error) {
	params := url.Values{
		"latitude":           {strconv.FormatFloat(lat, 'f', -1, 64)},
		"longitude":          {strconv.FormatFloat(lon, 'f', -1, 64)},
		"temperature_unit":   {valueOr(opts.TemperatureUnit, domain.DefaultTemperatureUnit)},
		"wind_speed_unit":    {valueOr(opts.WindSpeedUnit, domain.DefaultWindSpeedUnit)},
		"precipitation_unit": {valueOr(opts.PrecipitationUnit, domain.DefaultPrecipitationUnit)},
		"forecast_days":      {strconv.Itoa(intOr(opts.ForecastDays, domain.DefaultForecastDays))},
	}
	if len(opts.Current) > 0 {
		params.Set("current", strings.Join(opts.Current, ","))
	}
	if len(opts.Hourly) > 0 {
		params.Set("hourly", strings.Join(opts.Hourly, ","))
	}
	if len(opts.Daily) > 0 {
		params.Set("daily", strings.Join(opts.Daily, ","))
	}

	start := time.Now()
	body, err := getJSON(ctx, c.httpClient, c.baseURL+"?"+params.Encode(), "forecast")
	c.metrics.UpstreamDuration.WithLabelValues("forecast").Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("forecast", "error").Inc()
		return nil, err
	}

	var data domain.ForecastData
	if err := json.Unmarshal(body, &data); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("forecast", "error").Inc()
		return nil, &domain.UpstreamError{API: "forecast", Err: fmt.Errorf("decode response: %w", err)}
	}

	c.metrics.UpstreamRequests.WithLabelValues("forecast", "success").Inc()
	c.logger.Debug("forecast fetched", "lat", lat, "lon", lon,
		"current", data.Current != nil, "hourly", data.Hourly != nil, "daily", data.Daily != nil)
	return &data, nil
}

// getJSON issues a GET request and returns the response body, converting
// non-2xx statuses into UpstreamError with the upstream "reason" when the
// body carries one.
func getJSON(ctx context.Context, client *http.Client, fullURL, api string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{API: api, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.UpstreamError{API: api, Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		var upstream struct {
			Reason string `json:"reason"`
		}
		_ = json.Unmarshal(body, &upstream) // best effort; fall back to status only
		return nil, &domain.UpstreamError{API: api, Status: resp.StatusCode, Reason: upstream.Reason}
	}

	return body, nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func intOr(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}
