package domain

import "context"

// Location is a canonical place resolved through the geocoding API.
// Immutable once resolved; it lives only for the duration of a request.
type Location struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Country    string  `json:"country"`
	Admin1     string  `json:"admin1,omitempty"` // state or province
	Admin2     string  `json:"admin2,omitempty"` // county or region
	Timezone   string  `json:"timezone"`
	Population int64   `json:"population,omitempty"`
	Elevation  float64 `json:"elevation,omitempty"` // meters
}

// LocationSearcher queries the geocoding collaborator for candidate locations
// matching a free-text name. Implementations clamp limit to [1, 100] before
// transmission. Each call is independent and idempotent.
type LocationSearcher interface {
	Search(ctx context.Context, name string, limit int) ([]Location, error)
}

// ForecastProvider fetches raw weather data for a coordinate pair. It is a
// thin transport: it does not validate that opts requests any section.
type ForecastProvider interface {
	Fetch(ctx context.Context, lat, lon float64, opts ForecastOptions) (*ForecastData, error)
}
