package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/skyport/backoffice/internal/domain/weather"
	apperrors "github.com/skyport/backoffice/pkg/errors"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

// A forecast response carries slots in three-hour steps; eight cover a day.
const forecastSlots = 8

// Client fetches observations from the OpenWeatherMap API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(base, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Current retrieves the present observation for a city.
func (c *Client) Current(ctx context.Context, city string) (weather.Report, error) {
	body, err := c.get(ctx, "weather", city)
	if err != nil {
		return weather.Report{}, err
	}

	var raw currentResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return weather.Report{}, apperrors.Wrap("weather_unavailable", "weather data unavailable", fmt.Errorf("decode weather response: %w", err))
	}
	if len(raw.Weather) == 0 {
		return weather.Report{}, apperrors.Wrap("weather_unavailable", "weather data unavailable", fmt.Errorf("response missing weather block"))
	}

	return weather.Report{
		Location: weather.Location{
			City:        raw.Name,
			Country:     raw.Sys.Country,
			Coordinates: weather.Coordinates{Lat: raw.Coord.Lat, Lon: raw.Coord.Lon},
		},
		Current: weather.Current{
			Temperature:   int(math.Round(raw.Main.Temp)),
			FeelsLike:     int(math.Round(raw.Main.FeelsLike)),
			Humidity:      raw.Main.Humidity,
			Pressure:      raw.Main.Pressure,
			VisibilityKm:  visibilityKm(raw.Visibility),
			WindSpeedKmh:  kmh(raw.Wind.Speed),
			WindDirection: raw.Wind.Deg,
			Condition:     raw.Weather[0].Main,
			Description:   raw.Weather[0].Description,
			Icon:          raw.Weather[0].Icon,
		},
		Timestamp: time.Now().UTC(),
		Source:    weather.SourceName,
	}, nil
}

// Forecast retrieves the next day of three-hour slots for a city.
func (c *Client) Forecast(ctx context.Context, city string) (weather.Forecast, error) {
	body, err := c.get(ctx, "forecast", city)
	if err != nil {
		return weather.Forecast{}, err
	}

	var raw forecastResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return weather.Forecast{}, apperrors.Wrap("weather_unavailable", "weather forecast unavailable", fmt.Errorf("decode forecast response: %w", err))
	}

	entries := make([]weather.ForecastEntry, 0, forecastSlots)
	for _, item := range raw.List {
		if len(entries) == forecastSlots {
			break
		}
		if len(item.Weather) == 0 {
			continue
		}
		entries = append(entries, weather.ForecastEntry{
			Datetime:     item.DtTxt,
			Temperature:  int(math.Round(item.Main.Temp)),
			Condition:    item.Weather[0].Main,
			Description:  item.Weather[0].Description,
			Humidity:     item.Main.Humidity,
			WindSpeedKmh: kmh(item.Wind.Speed),
			Icon:         item.Weather[0].Icon,
		})
	}

	return weather.Forecast{
		Location: weather.Location{
			City:        raw.City.Name,
			Country:     raw.City.Country,
			Coordinates: weather.Coordinates{Lat: raw.City.Coord.Lat, Lon: raw.City.Coord.Lon},
		},
		Entries:   entries,
		Timestamp: time.Now().UTC(),
		Source:    weather.SourceName,
	}, nil
}

func (c *Client) get(ctx context.Context, endpoint, city string) ([]byte, error) {
	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")
	target := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, apperrors.Wrap("weather_unavailable", "weather data unavailable", fmt.Errorf("build weather request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap("weather_unavailable", "weather data unavailable", fmt.Errorf("weather request failed: %w", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, apperrors.Wrap("invalid_api_key", "invalid weather API key", nil)
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.Wrap("city_not_found", "city not found", nil)
	case resp.StatusCode >= 300:
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, apperrors.Wrap("weather_unavailable", "weather data unavailable",
			fmt.Errorf("weather request error: status=%d body=%s", resp.StatusCode, string(payload)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap("weather_unavailable", "weather data unavailable", fmt.Errorf("read weather response: %w", err))
	}
	return body, nil
}

// kmh converts an upstream m/s wind speed to rounded km/h.
func kmh(metersPerSecond float64) int {
	return int(math.Round(metersPerSecond * 3.6))
}

// visibilityKm converts meters to kilometers at one decimal; the upstream
// field is optional.
func visibilityKm(meters int) *float64 {
	if meters <= 0 {
		return nil
	}
	km := math.Round(float64(meters)/1000*10) / 10
	return &km
}

type currentResponse struct {
	Name       string         `json:"name"`
	Visibility int            `json:"visibility"`
	Coord      coord          `json:"coord"`
	Sys        sys            `json:"sys"`
	Main       mainBlock      `json:"main"`
	Wind       wind           `json:"wind"`
	Weather    []weatherBlock `json:"weather"`
}

type forecastResponse struct {
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
		Coord   coord  `json:"coord"`
	} `json:"city"`
	List []forecastItem `json:"list"`
}

type forecastItem struct {
	DtTxt   string         `json:"dt_txt"`
	Main    mainBlock      `json:"main"`
	Wind    wind           `json:"wind"`
	Weather []weatherBlock `json:"weather"`
}

type coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type sys struct {
	Country string `json:"country"`
}

type mainBlock struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  int     `json:"humidity"`
	Pressure  int     `json:"pressure"`
}

type wind struct {
	Speed float64 `json:"speed"`
	Deg   int     `json:"deg"`
}

type weatherBlock struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

var _ weather.Provider = (*Client)(nil)
