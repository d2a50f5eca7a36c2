package domain

import (
	"fmt"
	"time"
)

// Alert classification rules. Code sets follow the WMO table: 95/96/99 are
// thunderstorms, 66/67 freezing rain, 71/73/75 snow fall.
const (
	AlertTypeSevereWeather   = "severe_weather"
	AlertTypeWeatherAdvisory = "weather_advisory"
	AlertTypeWindWarning     = "wind_warning"

	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"

	// HighWindThresholdKmh is the current wind speed above which a wind
	// warning is emitted.
	HighWindThresholdKmh = 50.0

	// alertScanHours is how many hourly entries the incoming-storm scan
	// covers. The alert fetch requests a 2-day horizon but only the next 24
	// hours are scanned.
	alertScanHours = 24
)

var (
	severeWeatherCodes = map[int]bool{95: true, 96: true, 99: true}
	freezingRainCodes  = map[int]bool{66: true, 67: true}
	snowCodes          = map[int]bool{71: true, 73: true, 75: true}
)

// Alert is a single derived alert condition.
type Alert struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"` // low < medium < high
	Title       string `json:"title"`
	Description string `json:"description"`
	Time        string `json:"time"` // "current" or an ISO timestamp
}

// AlertReport is the result of an alert evaluation for a location. An empty
// alert list with AlertCount 0 is a normal, successful outcome.
type AlertReport struct {
	Location   Location `json:"location"`
	Alerts     []Alert  `json:"alerts"`
	AlertCount int      `json:"alert_count"`
	CheckedAt  string   `json:"checked_at"`
}

// EvaluateAlerts classifies current and near-term forecast conditions into a
// deduplicated, ordered alert list.
//
// Rules, in emission order:
//  1. Current weather code: thunderstorm, freezing rain, or snow. The three
//     checks are mutually exclusive; only the first match fires, so at most
//     one current-condition code alert is emitted.
//  2. Current wind speed above HighWindThresholdKmh, independent of rule 1.
//  3. First severe weather code within the next 24 hourly entries, unless an
//     alert of type severe_weather was already emitted. The dedup is by alert
//     type, so a freezing rain warning also suppresses this scan.
func EvaluateAlerts(current CurrentSection, hourly HourlySection) []Alert {
	alerts := []Alert{}

	switch code := current.WeatherCode; {
	case severeWeatherCodes[code]:
		alerts = append(alerts, Alert{
			Type:        AlertTypeSevereWeather,
			Severity:    SeverityHigh,
			Title:       "Thunderstorm Warning",
			Description: DescribeWeatherCode(code),
			Time:        "current",
		})
	case freezingRainCodes[code]:
		alerts = append(alerts, Alert{
			Type:        AlertTypeSevereWeather,
			Severity:    SeverityHigh,
			Title:       "Freezing Rain Warning",
			Description: DescribeWeatherCode(code),
			Time:        "current",
		})
	case snowCodes[code]:
		alerts = append(alerts, Alert{
			Type:        AlertTypeWeatherAdvisory,
			Severity:    SeverityMedium,
			Title:       "Snow Advisory",
			Description: DescribeWeatherCode(code),
			Time:        "current",
		})
	}

	if current.WindSpeed10m > HighWindThresholdKmh {
		alerts = append(alerts, Alert{
			Type:        AlertTypeWindWarning,
			Severity:    SeverityMedium,
			Title:       "High Wind Warning",
			Description: fmt.Sprintf("Strong winds at %v km/h", current.WindSpeed10m),
			Time:        "current",
		})
	}

	for i := 0; i < min(alertScanHours, len(hourly.Time)); i++ {
		if !severeWeatherCodes[hourly.WeatherCode[i]] {
			continue
		}
		if hasAlertType(alerts, AlertTypeSevereWeather) {
			break
		}
		alerts = append(alerts, Alert{
			Type:        AlertTypeSevereWeather,
			Severity:    SeverityMedium,
			Title:       "Incoming Thunderstorm",
			Description: fmt.Sprintf("Thunderstorm expected at %s", hourly.Time[i]),
			Time:        hourly.Time[i],
		})
		break
	}

	return alerts
}

func hasAlertType(alerts []Alert, alertType string) bool {
	for _, a := range alerts {
		if a.Type == alertType {
			return true
		}
	}
	return false
}

// BuildAlertReport evaluates alerts against a forecast response that must
// contain both the current and hourly sections.
func BuildAlertReport(loc Location, data *ForecastData) (AlertReport, error) {
	if data.Current == nil || data.Hourly == nil {
		return AlertReport{}, fmt.Errorf("build alert report: current or hourly section missing: %w", ErrIncompleteData)
	}

	alerts := EvaluateAlerts(*data.Current, *data.Hourly)
	return AlertReport{
		Location:   loc,
		Alerts:     alerts,
		AlertCount: len(alerts),
		CheckedAt:  clock.Now().UTC().Format(time.RFC3339),
	}, nil
}
