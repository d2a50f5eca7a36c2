// Package mcptool exposes the weather use cases as Model Context Protocol
// tools over a stdio transport.
package mcptool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/couchcryptid/weather-mcp-service/internal/adapter/imagegen"
	"github.com/couchcryptid/weather-mcp-service/internal/auth"
	"github.com/couchcryptid/weather-mcp-service/internal/domain"
	"github.com/couchcryptid/weather-mcp-service/internal/observability"
	"github.com/couchcryptid/weather-mcp-service/internal/query"
)

const serverName = "weather-mcp-service"

// errAccessDenied marks invocations of restricted tools by callers absent
// from the allow-list.
var errAccessDenied = errors.New("access denied")

// Server registers the weather tools on an MCP server and runs it over
// stdio.
type Server struct {
	queries  *query.Service
	images   *imagegen.Client // nil when image generation is disabled
	auth     auth.Authorizer
	callerID string
	metrics  *observability.Metrics
	logger   *slog.Logger
	version  string

	ready atomic.Bool
}

// NewServer creates the tool server. images may be nil, which leaves the
// generate_image tool unregistered.
func NewServer(queries *query.Service, images *imagegen.Client, authorizer auth.Authorizer, callerID, version string, metrics *observability.Metrics, logger *slog.Logger) *Server {
	return &Server{
		queries:  queries,
		images:   images,
		auth:     authorizer,
		callerID: callerID,
		metrics:  metrics,
		logger:   logger,
		version:  version,
	}
}

// Ready reports whether the server is accepting tool calls.
func (s *Server) Ready() bool { return s.ready.Load() }

// CheckReadiness implements the ops server's readiness probe.
func (s *Server) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("mcp server not running")
	}
	return nil
}

// Run serves tool calls over stdio until ctx is cancelled or the transport
// closes.
func (s *Server) Run(ctx context.Context) error {
	srv := s.build()

	s.ready.Store(true)
	s.metrics.ServerRunning.Set(1)
	defer func() {
		s.ready.Store(false)
		s.metrics.ServerRunning.Set(0)
	}()

	s.logger.Info("mcp server starting", "name", serverName, "version", s.version,
		"image_generation", s.images != nil)
	return srv.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) build() *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: s.version}, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "search_locations",
		Description: "Search for locations by name and return matching candidates with coordinates.",
	}, instrument(s, "search_locations", s.searchLocations))

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_current_weather",
		Description: "Get the current weather conditions for a location.",
	}, instrument(s, "get_current_weather", s.currentWeather))

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_weather_forecast",
		Description: "Get a daily weather forecast for a location, up to 16 days ahead.",
	}, instrument(s, "get_weather_forecast", s.dailyForecast))

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_hourly_forecast",
		Description: "Get an hour-by-hour weather forecast for a location, up to 168 hours ahead.",
	}, instrument(s, "get_hourly_forecast", s.hourlyForecast))

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_weather_alerts",
		Description: "Derive weather alerts for a location from current conditions and the next 24 hours.",
	}, instrument(s, "get_weather_alerts", s.alerts))

	if s.images != nil {
		mcp.AddTool(srv, &mcp.Tool{
			Name:        "generate_image",
			Description: "Generate an image from a text prompt. Restricted to allow-listed callers.",
		}, instrument(s, "generate_image", s.generateImage))
	}

	return srv
}

// instrument wraps a tool handler with per-invocation metrics and error
// logging.
func instrument[In, Out any](s *Server, tool string, h func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, in In) (*mcp.CallToolResult, Out, error) {
		start := time.Now()
		res, out, err := h(ctx, req, in)
		s.metrics.ToolDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())

		outcome := "success"
		switch {
		case errors.Is(err, errAccessDenied):
			outcome = "denied"
			s.logger.Warn("tool access denied", "tool", tool, "caller", s.callerID)
		case err != nil:
			outcome = "error"
			s.logger.Error("tool failed", "tool", tool, "error", err)
		}
		s.metrics.ToolInvocations.WithLabelValues(tool, outcome).Inc()
		return res, out, err
	}
}

// SearchLocationsInput asks for candidate locations by name.
type SearchLocationsInput struct {
	LocationName string `json:"location_name" jsonschema:"name of the city or place to search for (at least 2 characters)"`
	Limit        int    `json:"limit,omitempty" jsonschema:"maximum number of results (1-10, default: 5)"`
}

// SearchLocationsOutput lists the matching locations.
type SearchLocationsOutput struct {
	Locations []domain.Location `json:"locations"`
	Count     int               `json:"count"`
}

func (s *Server) searchLocations(ctx context.Context, _ *mcp.CallToolRequest, in SearchLocationsInput) (*mcp.CallToolResult, SearchLocationsOutput, error) {
	locations, err := s.queries.SearchLocations(ctx, in.LocationName, in.Limit)
	if err != nil {
		return nil, SearchLocationsOutput{}, err
	}
	return nil, SearchLocationsOutput{Locations: locations, Count: len(locations)}, nil
}

// CurrentWeatherInput asks for current conditions at a named location.
type CurrentWeatherInput struct {
	LocationName    string `json:"location_name" jsonschema:"name of the city or place (at least 2 characters)"`
	TemperatureUnit string `json:"temperature_unit,omitempty" jsonschema:"temperature unit: celsius or fahrenheit (default: celsius)"`
}

func (s *Server) currentWeather(ctx context.Context, _ *mcp.CallToolRequest, in CurrentWeatherInput) (*mcp.CallToolResult, domain.CurrentConditions, error) {
	conditions, err := s.queries.CurrentWeather(ctx, in.LocationName, in.TemperatureUnit)
	if err != nil {
		return nil, domain.CurrentConditions{}, err
	}
	return nil, conditions, nil
}

// DailyForecastInput asks for a multi-day forecast.
type DailyForecastInput struct {
	LocationName    string `json:"location_name" jsonschema:"name of the city or place (at least 2 characters)"`
	ForecastDays    int    `json:"forecast_days,omitempty" jsonschema:"number of forecast days (1-16, default: 7)"`
	TemperatureUnit string `json:"temperature_unit,omitempty" jsonschema:"temperature unit: celsius or fahrenheit (default: celsius)"`
}

func (s *Server) dailyForecast(ctx context.Context, _ *mcp.CallToolRequest, in DailyForecastInput) (*mcp.CallToolResult, domain.DailyForecast, error) {
	forecast, err := s.queries.DailyForecast(ctx, in.LocationName, in.ForecastDays, in.TemperatureUnit)
	if err != nil {
		return nil, domain.DailyForecast{}, err
	}
	return nil, forecast, nil
}

// HourlyForecastInput asks for an hour-by-hour forecast.
type HourlyForecastInput struct {
	LocationName    string `json:"location_name" jsonschema:"name of the city or place (at least 2 characters)"`
	ForecastHours   int    `json:"forecast_hours,omitempty" jsonschema:"number of forecast hours (1-168, default: 24)"`
	TemperatureUnit string `json:"temperature_unit,omitempty" jsonschema:"temperature unit: celsius or fahrenheit (default: celsius)"`
}

func (s *Server) hourlyForecast(ctx context.Context, _ *mcp.CallToolRequest, in HourlyForecastInput) (*mcp.CallToolResult, domain.HourlyForecast, error) {
	forecast, err := s.queries.HourlyForecast(ctx, in.LocationName, in.ForecastHours, in.TemperatureUnit)
	if err != nil {
		return nil, domain.HourlyForecast{}, err
	}
	return nil, forecast, nil
}

// AlertsInput asks for derived weather alerts.
type AlertsInput struct {
	LocationName string `json:"location_name" jsonschema:"name of the city or place (at least 2 characters)"`
}

func (s *Server) alerts(ctx context.Context, _ *mcp.CallToolRequest, in AlertsInput) (*mcp.CallToolResult, domain.AlertReport, error) {
	report, err := s.queries.Alerts(ctx, in.LocationName)
	if err != nil {
		return nil, domain.AlertReport{}, err
	}
	return nil, report, nil
}

// GenerateImageInput asks for a rendered image.
type GenerateImageInput struct {
	Prompt string `json:"prompt" jsonschema:"text prompt describing the image to generate"`
	Steps  int    `json:"steps,omitempty" jsonschema:"inference steps (4-8, default: 4)"`
}

func (s *Server) generateImage(ctx context.Context, _ *mcp.CallToolRequest, in GenerateImageInput) (*mcp.CallToolResult, any, error) {
	if !s.auth.Allowed(s.callerID) {
		return nil, nil, fmt.Errorf("caller %q may not generate images: %w", s.callerID, errAccessDenied)
	}
	if in.Prompt == "" {
		return nil, nil, fmt.Errorf("prompt must not be empty: %w", domain.ErrInvalidArgument)
	}

	img, err := s.images.Generate(ctx, in.Prompt, in.Steps)
	if err != nil {
		return nil, nil, err
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.ImageContent{Data: img.Data, MIMEType: img.MIMEType}},
	}, nil, nil
}
