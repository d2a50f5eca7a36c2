package domain

// CurrentConditions is the normalized current-weather snapshot for a
// resolved location. Numeric magnitudes are source-API-native; units travel
// as separate string fields.
type CurrentConditions struct {
	Location           Location `json:"location"`
	Temperature        float64  `json:"temperature"`
	TemperatureUnit    string   `json:"temperature_unit"`
	Humidity           int      `json:"humidity"`
	WeatherDescription string   `json:"weather_description"`
	WeatherCode        int      `json:"weather_code"`
	WindSpeed          float64  `json:"wind_speed"`
	WindDirection      int      `json:"wind_direction"`
	WindSpeedUnit      string   `json:"wind_speed_unit"`
	Pressure           float64  `json:"pressure"`
	CloudCover         int      `json:"cloud_cover"`
	Timestamp          string   `json:"timestamp"` // ISO-8601 from source data, not reinterpreted
}

// DailyEntry is one day of a daily forecast.
type DailyEntry struct {
	Date                  string  `json:"date"`
	TemperatureMax        float64 `json:"temperature_max"`
	TemperatureMin        float64 `json:"temperature_min"`
	TemperatureUnit       string  `json:"temperature_unit"`
	WeatherDescription    string  `json:"weather_description"`
	WeatherCode           int     `json:"weather_code"`
	PrecipitationSum      float64 `json:"precipitation_sum"`
	PrecipitationUnit     string  `json:"precipitation_unit"`
	WindSpeedMax          float64 `json:"wind_speed_max"`
	WindDirectionDominant int     `json:"wind_direction_dominant"`
	WindSpeedUnit         string  `json:"wind_speed_unit"`
}

// DailyForecast is a multi-day forecast, at most MaxForecastDays entries,
// ordered by day (index 0 = first day).
type DailyForecast struct {
	Location    Location     `json:"location"`
	Days        []DailyEntry `json:"forecast_days"`
	GeneratedAt string       `json:"generated_at"`
}

// HourlyPoint is a single hourly forecast data point.
type HourlyPoint struct {
	Time               string  `json:"time"`
	Temperature        float64 `json:"temperature"`
	Humidity           int     `json:"humidity"`
	WeatherCode        int     `json:"weather_code"`
	WeatherDescription string  `json:"weather_description"`
	Precipitation      float64 `json:"precipitation"`
	WindSpeed          float64 `json:"wind_speed"`
	WindDirection      int     `json:"wind_direction"`
	CloudCover         int     `json:"cloud_cover"`
}

// HourlyForecast is an hour-by-hour forecast, at most MaxForecastHours
// entries, ordered chronologically.
type HourlyForecast struct {
	Location          Location      `json:"location"`
	Hours             []HourlyPoint `json:"hourly_data"`
	TemperatureUnit   string        `json:"temperature_unit"`
	PrecipitationUnit string        `json:"precipitation_unit"`
	WindSpeedUnit     string        `json:"wind_speed_unit"`
	GeneratedAt       string        `json:"generated_at"`
}
