package domain

// Defaults and bounds for forecast requests. The maxima mirror the horizons
// the upstream API actually serves; requests beyond them are capped, not
// rejected.
const (
	DefaultForecastDays  = 7
	DefaultForecastHours = 24
	MaxForecastDays      = 16
	MaxForecastHours     = 168
	MaxLocationResults   = 100

	DefaultTemperatureUnit   = "celsius"
	DefaultWindSpeedUnit     = "kmh"
	DefaultPrecipitationUnit = "mm"
)

// ClampForecastDays bounds a requested day count to [1, MaxForecastDays].
func ClampForecastDays(days int) int {
	return clamp(days, 1, MaxForecastDays)
}

// ClampForecastHours bounds a requested hour count to [1, MaxForecastHours].
func ClampForecastHours(hours int) int {
	return clamp(hours, 1, MaxForecastHours)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ForecastOptions selects the variables, horizon, and units for a forecast
// request. At least one of Current/Hourly/Daily should be set for a
// meaningful result; the transport does not enforce this.
type ForecastOptions struct {
	Current []string
	Hourly  []string
	Daily   []string

	ForecastDays      int    // default DefaultForecastDays
	TemperatureUnit   string // "celsius" or "fahrenheit"; forwarded uninterpreted
	WindSpeedUnit     string // default "kmh"
	PrecipitationUnit string // default "mm"
}

// ForecastData is the raw forecast API response. Sections are present only
// when the corresponding variable set was requested; absent sections are nil.
type ForecastData struct {
	Latitude     float64         `json:"latitude"`
	Longitude    float64         `json:"longitude"`
	Timezone     string          `json:"timezone"`
	Current      *CurrentSection `json:"current,omitempty"`
	CurrentUnits *CurrentUnits   `json:"current_units,omitempty"`
	Hourly       *HourlySection  `json:"hourly,omitempty"`
	HourlyUnits  *HourlyUnits    `json:"hourly_units,omitempty"`
	Daily        *DailySection   `json:"daily,omitempty"`
	DailyUnits   *DailyUnits     `json:"daily_units,omitempty"`
}

// CurrentSection holds the single current-conditions snapshot.
type CurrentSection struct {
	Time               string  `json:"time"`
	Temperature2m      float64 `json:"temperature_2m"`
	RelativeHumidity2m int     `json:"relative_humidity_2m"`
	WeatherCode        int     `json:"weather_code"`
	WindSpeed10m       float64 `json:"wind_speed_10m"`
	WindDirection10m   int     `json:"wind_direction_10m"`
	PressureMsl        float64 `json:"pressure_msl"`
	CloudCover         int     `json:"cloud_cover"`
	Precipitation      float64 `json:"precipitation"`
}

// CurrentUnits labels the current-conditions variables.
type CurrentUnits struct {
	Temperature2m string `json:"temperature_2m"`
	WindSpeed10m  string `json:"wind_speed_10m"`
	Precipitation string `json:"precipitation"`
	PressureMsl   string `json:"pressure_msl"`
}

// HourlySection holds index-aligned hourly time series.
type HourlySection struct {
	Time               []string  `json:"time"`
	Temperature2m      []float64 `json:"temperature_2m"`
	RelativeHumidity2m []int     `json:"relative_humidity_2m"`
	WeatherCode        []int     `json:"weather_code"`
	Precipitation      []float64 `json:"precipitation"`
	WindSpeed10m       []float64 `json:"wind_speed_10m"`
	WindDirection10m   []int     `json:"wind_direction_10m"`
	CloudCover         []int     `json:"cloud_cover"`
	WindGusts10m       []float64 `json:"wind_gusts_10m"`
}

// HourlyUnits labels the hourly variables.
type HourlyUnits struct {
	Temperature2m string `json:"temperature_2m"`
	Precipitation string `json:"precipitation"`
	WindSpeed10m  string `json:"wind_speed_10m"`
}

// DailySection holds index-aligned daily time series.
type DailySection struct {
	Time                     []string  `json:"time"`
	Temperature2mMax         []float64 `json:"temperature_2m_max"`
	Temperature2mMin         []float64 `json:"temperature_2m_min"`
	WeatherCode              []int     `json:"weather_code"`
	PrecipitationSum         []float64 `json:"precipitation_sum"`
	WindSpeed10mMax          []float64 `json:"wind_speed_10m_max"`
	WindDirection10mDominant []int     `json:"wind_direction_10m_dominant"`
}

// DailyUnits labels the daily variables.
type DailyUnits struct {
	Temperature2mMax string `json:"temperature_2m_max"`
	PrecipitationSum string `json:"precipitation_sum"`
	WindSpeed10mMax  string `json:"wind_speed_10m_max"`
}
