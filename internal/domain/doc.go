// Package domain models weather queries against the Open-Meteo APIs.
//
// # Data Sources
//
// Location candidates come from the Open-Meteo geocoding API
// (https://geocoding-api.open-meteo.com/v1/search) and weather data from the
// forecast API (https://api.open-meteo.com/v1/forecast). Both are public,
// unauthenticated JSON endpoints. Failures carry a "reason" field in the
// response body, which is surfaced through [UpstreamError].
//
// # Response Conventions
//
// The forecast API returns time series as index-aligned parallel arrays:
//
//	"hourly": {
//	  "time":           ["2024-01-01T00:00", "2024-01-01T01:00", ...],
//	  "temperature_2m": [3.1, 2.8, ...],
//	  "weather_code":   [3, 61, ...]
//	}
//
// plus a parallel *_units object mapping each variable to its unit label.
// Index alignment is an upstream contract; the Build* functions in this
// package fold the arrays into per-record structs as early as possible so the
// alignment assumption does not leak further into the codebase.
//
// Weather conditions use WMO interpretation codes (0 = clear sky, 95-99 =
// thunderstorms). [DescribeWeatherCode] is total: unknown codes map to a
// placeholder description instead of failing.
//
// # Alert Derivation
//
// There is no upstream alert feed. Alerts are derived locally from current
// conditions and the near-term hourly series using fixed code sets and a wind
// threshold, see [EvaluateAlerts]. An empty alert list is a normal result.
package domain
