package weather

import "time"

// SourceName labels the upstream provider in every payload.
const SourceName = "OpenWeatherMap"

// Coordinates locate a city.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Location identifies the city a report covers.
type Location struct {
	City        string      `json:"city"`
	Country     string      `json:"country"`
	Coordinates Coordinates `json:"coordinates"`
}

// Current is the normalized observation for one city. Wind speed is
// converted to km/h and visibility to kilometers.
type Current struct {
	Temperature   int      `json:"temperature"`
	FeelsLike     int      `json:"feelsLike"`
	Humidity      int      `json:"humidity"`
	Pressure      int      `json:"pressure"`
	VisibilityKm  *float64 `json:"visibility"`
	WindSpeedKmh  int      `json:"windSpeed"`
	WindDirection int      `json:"windDirection"`
	Condition     string   `json:"condition"`
	Description   string   `json:"description"`
	Icon          string   `json:"icon"`
}

// Report is a full current-weather payload.
type Report struct {
	Location  Location  `json:"location"`
	Current   Current   `json:"current"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
}

// ForecastEntry is one three-hour forecast slot.
type ForecastEntry struct {
	Datetime     string `json:"datetime"`
	Temperature  int    `json:"temperature"`
	Condition    string `json:"condition"`
	Description  string `json:"description"`
	Humidity     int    `json:"humidity"`
	WindSpeedKmh int    `json:"windSpeed"`
	Icon         string `json:"icon"`
}

// Forecast covers the next 24 hours in three-hour slots.
type Forecast struct {
	Location  Location        `json:"location"`
	Entries   []ForecastEntry `json:"forecast"`
	Timestamp time.Time       `json:"timestamp"`
	Source    string          `json:"source"`
}

// CityResult is one element of a multi-city lookup; failed cities are
// reported in place instead of failing the batch.
type CityResult struct {
	City         string   `json:"city"`
	Country      string   `json:"country,omitempty"`
	Temperature  int      `json:"temperature,omitempty"`
	Condition    string   `json:"condition,omitempty"`
	Description  string   `json:"description,omitempty"`
	WindSpeedKmh int      `json:"windSpeed,omitempty"`
	VisibilityKm *float64 `json:"visibility,omitempty"`
	Success      bool     `json:"success"`
	Error        string   `json:"error,omitempty"`
}

// Config drives the weather domain.
type Config struct {
	HomeCity string
	CacheTTL time.Duration
}
