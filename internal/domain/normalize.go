package domain

import (
	"fmt"
	"time"
)

// BuildCurrentConditions folds the current snapshot and its unit labels into
// a CurrentConditions. Fails with ErrIncompleteData when the response lacks
// the current/current_units sections.
func BuildCurrentConditions(loc Location, data *ForecastData) (CurrentConditions, error) {
	if data.Current == nil || data.CurrentUnits == nil {
		return CurrentConditions{}, fmt.Errorf("build current conditions: current section missing: %w", ErrIncompleteData)
	}

	cur := data.Current
	return CurrentConditions{
		Location:           loc,
		Temperature:        cur.Temperature2m,
		TemperatureUnit:    data.CurrentUnits.Temperature2m,
		Humidity:           cur.RelativeHumidity2m,
		WeatherDescription: DescribeWeatherCode(cur.WeatherCode),
		WeatherCode:        cur.WeatherCode,
		WindSpeed:          cur.WindSpeed10m,
		WindDirection:      cur.WindDirection10m,
		WindSpeedUnit:      data.CurrentUnits.WindSpeed10m,
		Pressure:           cur.PressureMsl,
		CloudCover:         cur.CloudCover,
		Timestamp:          cur.Time,
	}, nil
}

// BuildDailyForecast reshapes the daily parallel arrays into one DailyEntry
// per index. Array alignment is guaranteed by the upstream API contract.
func BuildDailyForecast(loc Location, data *ForecastData) (DailyForecast, error) {
	if data.Daily == nil || data.DailyUnits == nil {
		return DailyForecast{}, fmt.Errorf("build daily forecast: daily section missing: %w", ErrIncompleteData)
	}

	daily := data.Daily
	units := data.DailyUnits
	days := make([]DailyEntry, 0, len(daily.Time))
	for i := range daily.Time {
		days = append(days, DailyEntry{
			Date:                  daily.Time[i],
			TemperatureMax:        daily.Temperature2mMax[i],
			TemperatureMin:        daily.Temperature2mMin[i],
			TemperatureUnit:       units.Temperature2mMax,
			WeatherDescription:    DescribeWeatherCode(daily.WeatherCode[i]),
			WeatherCode:           daily.WeatherCode[i],
			PrecipitationSum:      daily.PrecipitationSum[i],
			PrecipitationUnit:     units.PrecipitationSum,
			WindSpeedMax:          daily.WindSpeed10mMax[i],
			WindDirectionDominant: daily.WindDirection10mDominant[i],
			WindSpeedUnit:         units.WindSpeed10mMax,
		})
	}

	return DailyForecast{
		Location:    loc,
		Days:        days,
		GeneratedAt: clock.Now().UTC().Format(time.RFC3339),
	}, nil
}

// BuildHourlyForecast reshapes the hourly parallel arrays into per-hour
// points, truncated to min(hours, available length). The upstream API has no
// hourly-count parameter, so fewer entries than requested is a valid result
// when its horizon is shorter.
func BuildHourlyForecast(loc Location, data *ForecastData, hours int) (HourlyForecast, error) {
	if data.Hourly == nil || data.HourlyUnits == nil {
		return HourlyForecast{}, fmt.Errorf("build hourly forecast: hourly section missing: %w", ErrIncompleteData)
	}

	hourly := data.Hourly
	n := min(hours, len(hourly.Time))
	points := make([]HourlyPoint, 0, n)
	for i := range n {
		points = append(points, HourlyPoint{
			Time:               hourly.Time[i],
			Temperature:        hourly.Temperature2m[i],
			Humidity:           hourly.RelativeHumidity2m[i],
			WeatherCode:        hourly.WeatherCode[i],
			WeatherDescription: DescribeWeatherCode(hourly.WeatherCode[i]),
			Precipitation:      hourly.Precipitation[i],
			WindSpeed:          hourly.WindSpeed10m[i],
			WindDirection:      hourly.WindDirection10m[i],
			CloudCover:         hourly.CloudCover[i],
		})
	}

	return HourlyForecast{
		Location:          loc,
		Hours:             points,
		TemperatureUnit:   data.HourlyUnits.Temperature2m,
		PrecipitationUnit: data.HourlyUnits.Precipitation,
		WindSpeedUnit:     data.HourlyUnits.WindSpeed10m,
		GeneratedAt:       clock.Now().UTC().Format(time.RFC3339),
	}, nil
}
