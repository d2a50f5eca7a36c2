package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	GeocodingAPIURL string
	WeatherAPIURL   string
	UpstreamTimeout time.Duration

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// CallerID identifies the connected client for authorization checks.
	// Stdio transports carry no per-request identity, so it is fixed at
	// startup.
	CallerID string

	// Image generation configuration.
	ImageAPIURL       string
	ImageAPIToken     string
	ImageEnabled      bool
	ImageTimeout      time.Duration
	ImageAllowedUsers []string
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is loaded first if
// present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	upstreamTimeout, err := parseDurationEnv("UPSTREAM_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	imageTimeout, err := parseDurationEnv("IMAGE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}

	imageToken := os.Getenv("IMAGE_API_TOKEN")
	imageEnabled := imageToken != ""
	if v := os.Getenv("IMAGE_ENABLED"); v != "" {
		imageEnabled = v == "true"
	}

	cfg := &Config{
		GeocodingAPIURL: envOrDefault("GEOCODING_API_URL", "https://geocoding-api.open-meteo.com/v1/search"),
		WeatherAPIURL:   envOrDefault("WEATHER_API_URL", "https://api.open-meteo.com/v1/forecast"),
		UpstreamTimeout: upstreamTimeout,
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		CallerID:        os.Getenv("MCP_CALLER_ID"),

		ImageAPIURL:       os.Getenv("IMAGE_API_URL"),
		ImageAPIToken:     imageToken,
		ImageEnabled:      imageEnabled,
		ImageTimeout:      imageTimeout,
		ImageAllowedUsers: parseList(os.Getenv("IMAGE_ALLOWED_USERS")),
	}

	if cfg.GeocodingAPIURL == "" {
		return nil, fmt.Errorf("GEOCODING_API_URL is required")
	}
	if cfg.WeatherAPIURL == "" {
		return nil, fmt.Errorf("WEATHER_API_URL is required")
	}
	if cfg.ImageEnabled && cfg.ImageAPIURL == "" {
		return nil, fmt.Errorf("IMAGE_ENABLED is true but IMAGE_API_URL is not set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

// parseList splits a comma-separated environment value, trimming whitespace
// and dropping empty entries.
func parseList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
