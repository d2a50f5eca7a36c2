package query

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/couchcryptid/weather-mcp-service/internal/domain"
	"github.com/couchcryptid/weather-mcp-service/internal/observability"
)

// Search result bounds. The search tool exposes a narrower window than the
// geocoding API itself supports.
const (
	DefaultSearchLimit = 5
	MaxSearchLimit     = 10

	minLocationNameLen = 2

	// The alert evaluation scans the next 24 hours; a 2-day horizon keeps
	// the scan window full regardless of the time of day.
	alertForecastDays = 2
)

// Per-use-case variable sets requested from the forecast API.
var (
	currentVariables = []string{
		"temperature_2m", "relative_humidity_2m", "weather_code",
		"wind_speed_10m", "wind_direction_10m", "pressure_msl",
		"cloud_cover", "precipitation",
	}
	dailyVariables = []string{
		"temperature_2m_max", "temperature_2m_min", "weather_code",
		"precipitation_sum", "wind_speed_10m_max", "wind_direction_10m_dominant",
	}
	hourlyVariables = []string{
		"temperature_2m", "relative_humidity_2m", "weather_code",
		"precipitation", "wind_speed_10m", "wind_direction_10m", "cloud_cover",
	}
	alertCurrentVariables = []string{"weather_code", "wind_speed_10m"}
	alertHourlyVariables  = []string{"weather_code"}
)

// Service executes the weather use cases against the resolver and the
// forecast provider.
type Service struct {
	resolver  *Resolver
	forecasts domain.ForecastProvider
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// NewService creates a query service.
func NewService(resolver *Resolver, forecasts domain.ForecastProvider, metrics *observability.Metrics, logger *slog.Logger) *Service {
	return &Service{resolver: resolver, forecasts: forecasts, metrics: metrics, logger: logger}
}

// validateName rejects location names shorter than two characters before any
// upstream call is made.
func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if len(name) < minLocationNameLen {
		return "", fmt.Errorf("location name must be at least %d characters: %w", minLocationNameLen, domain.ErrInvalidArgument)
	}
	return name, nil
}

// clampSearchLimit bounds limit to [1, MaxSearchLimit]; zero selects
// DefaultSearchLimit.
func clampSearchLimit(limit int) int {
	if limit == 0 {
		return DefaultSearchLimit
	}
	if limit < 1 {
		return 1
	}
	if limit > MaxSearchLimit {
		return MaxSearchLimit
	}
	return limit
}

// SearchLocations returns up to limit candidate locations for a free-text
// name.
func (s *Service) SearchLocations(ctx context.Context, name string, limit int) ([]domain.Location, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	return s.resolver.searcher.Search(ctx, name, clampSearchLimit(limit))
}

// CurrentWeather resolves name and returns its normalized current
// conditions.
func (s *Service) CurrentWeather(ctx context.Context, name, temperatureUnit string) (domain.CurrentConditions, error) {
	name, err := validateName(name)
	if err != nil {
		return domain.CurrentConditions{}, err
	}

	loc, err := s.resolver.Resolve(ctx, name)
	if err != nil {
		return domain.CurrentConditions{}, err
	}

	data, err := s.forecasts.Fetch(ctx, loc.Latitude, loc.Longitude, domain.ForecastOptions{
		Current:         currentVariables,
		TemperatureUnit: temperatureUnit,
	})
	if err != nil {
		return domain.CurrentConditions{}, fmt.Errorf("current weather for %q: %w", loc.Name, err)
	}

	return domain.BuildCurrentConditions(loc, data)
}

// DailyForecast resolves name and returns a forecast of days days, clamped
// to [1, 16]; zero selects the default of 7.
func (s *Service) DailyForecast(ctx context.Context, name string, days int, temperatureUnit string) (domain.DailyForecast, error) {
	name, err := validateName(name)
	if err != nil {
		return domain.DailyForecast{}, err
	}
	if days == 0 {
		days = domain.DefaultForecastDays
	}
	days = domain.ClampForecastDays(days)

	loc, err := s.resolver.Resolve(ctx, name)
	if err != nil {
		return domain.DailyForecast{}, err
	}

	data, err := s.forecasts.Fetch(ctx, loc.Latitude, loc.Longitude, domain.ForecastOptions{
		Daily:           dailyVariables,
		ForecastDays:    days,
		TemperatureUnit: temperatureUnit,
	})
	if err != nil {
		return domain.DailyForecast{}, fmt.Errorf("daily forecast for %q: %w", loc.Name, err)
	}

	return domain.BuildDailyForecast(loc, data)
}

// HourlyForecast resolves name and returns an hour-by-hour forecast of hours
// entries, clamped to [1, 168]; zero selects the default of 24. Fewer
// entries than requested is a valid result when the upstream horizon is
// shorter.
func (s *Service) HourlyForecast(ctx context.Context, name string, hours int, temperatureUnit string) (domain.HourlyForecast, error) {
	name, err := validateName(name)
	if err != nil {
		return domain.HourlyForecast{}, err
	}
	if hours == 0 {
		hours = domain.DefaultForecastHours
	}
	hours = domain.ClampForecastHours(hours)

	loc, err := s.resolver.Resolve(ctx, name)
	if err != nil {
		return domain.HourlyForecast{}, err
	}

	// The forecast API has no hourly-count parameter; request enough whole
	// days to cover the horizon and truncate during normalization.
	data, err := s.forecasts.Fetch(ctx, loc.Latitude, loc.Longitude, domain.ForecastOptions{
		Hourly:          hourlyVariables,
		ForecastDays:    (hours + 23) / 24,
		TemperatureUnit: temperatureUnit,
	})
	if err != nil {
		return domain.HourlyForecast{}, fmt.Errorf("hourly forecast for %q: %w", loc.Name, err)
	}

	return domain.BuildHourlyForecast(loc, data, hours)
}

// Alerts resolves name, fetches current conditions plus a 2-day hourly
// horizon, and derives the alert report. An empty report is a normal
// outcome.
func (s *Service) Alerts(ctx context.Context, name string) (domain.AlertReport, error) {
	name, err := validateName(name)
	if err != nil {
		return domain.AlertReport{}, err
	}

	loc, err := s.resolver.Resolve(ctx, name)
	if err != nil {
		return domain.AlertReport{}, err
	}

	data, err := s.forecasts.Fetch(ctx, loc.Latitude, loc.Longitude, domain.ForecastOptions{
		Current:      alertCurrentVariables,
		Hourly:       alertHourlyVariables,
		ForecastDays: alertForecastDays,
	})
	if err != nil {
		return domain.AlertReport{}, fmt.Errorf("alerts for %q: %w", loc.Name, err)
	}

	report, err := domain.BuildAlertReport(loc, data)
	if err != nil {
		return domain.AlertReport{}, err
	}

	s.metrics.AlertsEmitted.Add(float64(report.AlertCount))
	if report.AlertCount > 0 {
		s.logger.Info("weather alerts derived", "location", loc.Name, "count", report.AlertCount)
	}
	return report, nil
}
