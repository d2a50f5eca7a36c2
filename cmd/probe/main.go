// Command probe exercises the query paths end to end against the live
// Open-Meteo APIs and prints the result envelope as indented JSON. It is a
// development aid; the MCP server never shells out to it.
//
// Usage:
//
//	go run ./cmd/probe -op search -location Helsinki -limit 3
//	go run ./cmd/probe -op current -location "New York" -unit fahrenheit
//	go run ./cmd/probe -op forecast -location Tokyo -days 5
//	go run ./cmd/probe -op hourly -location Berlin -hours 36
//	go run ./cmd/probe -op alerts -location Miami
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/couchcryptid/weather-mcp-service/internal/adapter/openmeteo"
	"github.com/couchcryptid/weather-mcp-service/internal/config"
	"github.com/couchcryptid/weather-mcp-service/internal/observability"
	"github.com/couchcryptid/weather-mcp-service/internal/query"
)

func main() {
	op := flag.String("op", "current", "operation: search, current, forecast, hourly, or alerts")
	location := flag.String("location", "", "location name to query (required)")
	limit := flag.Int("limit", 0, "search result limit (search only)")
	days := flag.Int("days", 0, "forecast days (forecast only)")
	hours := flag.Int("hours", 0, "forecast hours (hourly only)")
	unit := flag.String("unit", "", "temperature unit: celsius or fahrenheit")
	flag.Parse()

	if *location == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(*op, *location, *limit, *days, *hours, *unit); err != nil {
		fmt.Fprintln(os.Stderr, "probe failed:", err)
		os.Exit(1)
	}
}

func run(op, location string, limit, days, hours int, unit string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg.LogLevel, "text")
	metrics := observability.NewMetrics()

	geocoding := openmeteo.NewGeocodingClient(cfg.GeocodingAPIURL, cfg.UpstreamTimeout, metrics, logger)
	forecasts := openmeteo.NewForecastClient(cfg.WeatherAPIURL, cfg.UpstreamTimeout, metrics, logger)
	resolver := query.NewResolver(geocoding, nil, logger)
	queries := query.NewService(resolver, forecasts, metrics, logger)

	ctx := context.Background()

	var result any
	switch op {
	case "search":
		result, err = queries.SearchLocations(ctx, location, limit)
	case "current":
		result, err = queries.CurrentWeather(ctx, location, unit)
	case "forecast":
		result, err = queries.DailyForecast(ctx, location, days, unit)
	case "hourly":
		result, err = queries.HourlyForecast(ctx, location, hours, unit)
	case "alerts":
		result, err = queries.Alerts(ctx, location)
	default:
		return fmt.Errorf("unknown operation %q", op)
	}
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
