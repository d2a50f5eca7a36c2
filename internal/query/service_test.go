package query

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/weather-mcp-service/internal/domain"
	"github.com/couchcryptid/weather-mcp-service/internal/observability"
)

type stubProvider struct {
	gotLat  float64
	gotLon  float64
	gotOpts domain.ForecastOptions
	data    *domain.ForecastData
	err     error
	calls   int
}

func (p *stubProvider) Fetch(_ context.Context, lat, lon float64, opts domain.ForecastOptions) (*domain.ForecastData, error) {
	p.calls++
	p.gotLat = lat
	p.gotLon = lon
	p.gotOpts = opts
	return p.data, p.err
}

func newTestService(searcher *stubSearcher, provider *stubProvider) (*Service, *observability.Metrics) {
	metrics := observability.NewMetricsForTesting()
	resolver := NewResolver(searcher, nil, discardLogger())
	return NewService(resolver, provider, metrics, discardLogger()), metrics
}

func currentData() *domain.ForecastData {
	return &domain.ForecastData{
		Current: &domain.CurrentSection{
			Time: "2024-04-26T12:00", Temperature2m: 17.3, RelativeHumidity2m: 61,
			WeatherCode: 3, WindSpeed10m: 12.4, WindDirection10m: 225,
			PressureMsl: 1012.5, CloudCover: 80,
		},
		CurrentUnits: &domain.CurrentUnits{Temperature2m: "°C", WindSpeed10m: "km/h"},
	}
}

func hourlyData(n int) *domain.ForecastData {
	h := &domain.HourlySection{}
	for i := range n {
		h.Time = append(h.Time, "2024-04-26T00:00")
		h.Temperature2m = append(h.Temperature2m, float64(i))
		h.RelativeHumidity2m = append(h.RelativeHumidity2m, 50)
		h.WeatherCode = append(h.WeatherCode, 1)
		h.Precipitation = append(h.Precipitation, 0)
		h.WindSpeed10m = append(h.WindSpeed10m, 10)
		h.WindDirection10m = append(h.WindDirection10m, 180)
		h.CloudCover = append(h.CloudCover, 25)
	}
	return &domain.ForecastData{
		Hourly:      h,
		HourlyUnits: &domain.HourlyUnits{Temperature2m: "°C", Precipitation: "mm", WindSpeed10m: "km/h"},
	}
}

func TestSearchLocations_RejectsShortName(t *testing.T) {
	searcher := &stubSearcher{}
	service, _ := newTestService(searcher, &stubProvider{})

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "one char", input: "a"},
		{name: "whitespace only", input: "   "},
		{name: "one char after trim", input: " a "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.SearchLocations(context.Background(), tt.input, 5)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
			assert.Empty(t, searcher.gotName, "no upstream call should be made")
		})
	}
}

func TestSearchLocations_ClampsLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "zero selects default", limit: 0, want: DefaultSearchLimit},
		{name: "negative clamps to one", limit: -1, want: 1},
		{name: "within range", limit: 7, want: 7},
		{name: "above maximum", limit: 50, want: MaxSearchLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := &stubSearcher{results: []domain.Location{helsinki}}
			service, _ := newTestService(searcher, &stubProvider{})

			results, err := service.SearchLocations(context.Background(), "Helsinki", tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, searcher.gotLimit)
			assert.Equal(t, []domain.Location{helsinki}, results)
		})
	}
}

func TestSearchLocations_TrimsName(t *testing.T) {
	searcher := &stubSearcher{results: []domain.Location{helsinki}}
	service, _ := newTestService(searcher, &stubProvider{})

	_, err := service.SearchLocations(context.Background(), "  Helsinki  ", 0)
	require.NoError(t, err)
	assert.Equal(t, "Helsinki", searcher.gotName)
}

func TestCurrentWeather(t *testing.T) {
	searcher := &stubSearcher{results: []domain.Location{helsinki}}
	provider := &stubProvider{data: currentData()}
	service, _ := newTestService(searcher, provider)

	conditions, err := service.CurrentWeather(context.Background(), "Helsinki", "fahrenheit")
	require.NoError(t, err)

	assert.Equal(t, helsinki.Latitude, provider.gotLat)
	assert.Equal(t, helsinki.Longitude, provider.gotLon)
	assert.Equal(t, currentVariables, provider.gotOpts.Current)
	assert.Empty(t, provider.gotOpts.Hourly)
	assert.Empty(t, provider.gotOpts.Daily)
	assert.Equal(t, "fahrenheit", provider.gotOpts.TemperatureUnit)

	assert.Equal(t, helsinki, conditions.Location)
	assert.Equal(t, 17.3, conditions.Temperature)
	assert.Equal(t, "Overcast", conditions.WeatherDescription)
}

func TestCurrentWeather_ShortName(t *testing.T) {
	provider := &stubProvider{}
	service, _ := newTestService(&stubSearcher{}, provider)

	_, err := service.CurrentWeather(context.Background(), "x", "celsius")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Zero(t, provider.calls)
}

func TestCurrentWeather_NotFound(t *testing.T) {
	provider := &stubProvider{}
	service, _ := newTestService(&stubSearcher{results: []domain.Location{}}, provider)

	_, err := service.CurrentWeather(context.Background(), "Nowhereville", "celsius")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, provider.calls, "no forecast fetch after failed resolution")
}

func TestCurrentWeather_ProviderError(t *testing.T) {
	provider := &stubProvider{err: &domain.UpstreamError{API: "forecast", Status: 500}}
	service, _ := newTestService(&stubSearcher{results: []domain.Location{helsinki}}, provider)

	_, err := service.CurrentWeather(context.Background(), "Helsinki", "celsius")
	require.Error(t, err)

	var upstreamErr *domain.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, "forecast", upstreamErr.API)
}

func TestDailyForecast_DaysHandling(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		wantDays int
	}{
		{name: "zero selects default", days: 0, wantDays: domain.DefaultForecastDays},
		{name: "within range", days: 3, wantDays: 3},
		{name: "negative clamps to one", days: -5, wantDays: 1},
		{name: "above maximum", days: 99, wantDays: domain.MaxForecastDays},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &stubProvider{data: &domain.ForecastData{
				Daily: &domain.DailySection{
					Time:                     []string{"2024-04-26"},
					Temperature2mMax:         []float64{18.1},
					Temperature2mMin:         []float64{9.4},
					WeatherCode:              []int{61},
					PrecipitationSum:         []float64{2.5},
					WindSpeed10mMax:          []float64{22.0},
					WindDirection10mDominant: []int{200},
				},
				DailyUnits: &domain.DailyUnits{Temperature2mMax: "°C", PrecipitationSum: "mm", WindSpeed10mMax: "km/h"},
			}}
			service, _ := newTestService(&stubSearcher{results: []domain.Location{helsinki}}, provider)

			forecast, err := service.DailyForecast(context.Background(), "Helsinki", tt.days, "")
			require.NoError(t, err)

			assert.Equal(t, tt.wantDays, provider.gotOpts.ForecastDays)
			assert.Equal(t, dailyVariables, provider.gotOpts.Daily)
			require.Len(t, forecast.Days, 1)
			assert.Equal(t, "Slight rain", forecast.Days[0].WeatherDescription)
		})
	}
}

func TestHourlyForecast_RequestsWholeDays(t *testing.T) {
	tests := []struct {
		name      string
		hours     int
		wantDays  int
		wantHours int
	}{
		{name: "zero selects default", hours: 0, wantDays: 1, wantHours: 24},
		{name: "exact day", hours: 24, wantDays: 1, wantHours: 24},
		{name: "partial second day", hours: 30, wantDays: 2, wantHours: 30},
		{name: "maximum", hours: 168, wantDays: 7, wantHours: 168},
		{name: "above maximum", hours: 999, wantDays: 7, wantHours: 168},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &stubProvider{data: hourlyData(tt.wantDays * 24)}
			service, _ := newTestService(&stubSearcher{results: []domain.Location{helsinki}}, provider)

			forecast, err := service.HourlyForecast(context.Background(), "Helsinki", tt.hours, "")
			require.NoError(t, err)

			assert.Equal(t, tt.wantDays, provider.gotOpts.ForecastDays)
			assert.Equal(t, hourlyVariables, provider.gotOpts.Hourly)
			assert.Len(t, forecast.Hours, tt.wantHours)
		})
	}
}

func TestHourlyForecast_TruncatesToRequested(t *testing.T) {
	provider := &stubProvider{data: hourlyData(24)}
	service, _ := newTestService(&stubSearcher{results: []domain.Location{helsinki}}, provider)

	forecast, err := service.HourlyForecast(context.Background(), "Helsinki", 6, "")
	require.NoError(t, err)
	assert.Len(t, forecast.Hours, 6)
}

func TestAlerts_FetchesCurrentAndTwoDayHourly(t *testing.T) {
	data := hourlyData(48)
	data.Current = &domain.CurrentSection{WeatherCode: 0, WindSpeed10m: 8}
	provider := &stubProvider{data: data}
	service, metrics := newTestService(&stubSearcher{results: []domain.Location{helsinki}}, provider)

	report, err := service.Alerts(context.Background(), "Helsinki")
	require.NoError(t, err)

	assert.Equal(t, alertCurrentVariables, provider.gotOpts.Current)
	assert.Equal(t, alertHourlyVariables, provider.gotOpts.Hourly)
	assert.Equal(t, alertForecastDays, provider.gotOpts.ForecastDays)

	assert.Equal(t, helsinki, report.Location)
	assert.Empty(t, report.Alerts)
	assert.Zero(t, report.AlertCount)
	assert.Zero(t, testutil.ToFloat64(metrics.AlertsEmitted))
}

func TestAlerts_CountsEmittedAlerts(t *testing.T) {
	data := hourlyData(48)
	data.Current = &domain.CurrentSection{WeatherCode: 95, WindSpeed10m: 62}
	provider := &stubProvider{data: data}
	service, metrics := newTestService(&stubSearcher{results: []domain.Location{helsinki}}, provider)

	report, err := service.Alerts(context.Background(), "Helsinki")
	require.NoError(t, err)

	assert.Equal(t, 2, report.AlertCount, "thunderstorm warning plus wind warning")
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.AlertsEmitted))
}

func TestAlerts_MissingHourlySection(t *testing.T) {
	provider := &stubProvider{data: currentData()}
	service, _ := newTestService(&stubSearcher{results: []domain.Location{helsinki}}, provider)

	_, err := service.Alerts(context.Background(), "Helsinki")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIncompleteData)
}
