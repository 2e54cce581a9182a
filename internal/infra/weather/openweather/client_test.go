package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/skyport/backoffice/pkg/errors"
)

const currentPayload = `{
	"name": "Dhaka",
	"visibility": 4500,
	"coord": {"lat": 23.71, "lon": 90.41},
	"sys": {"country": "BD"},
	"main": {"temp": 31.4, "feels_like": 36.2, "humidity": 70, "pressure": 1005},
	"wind": {"speed": 4.2, "deg": 180},
	"weather": [{"main": "Rain", "description": "light rain", "icon": "10d"}]
}`

const forecastPayload = `{
	"city": {"name": "Dhaka", "country": "BD", "coord": {"lat": 23.71, "lon": 90.41}},
	"list": [
		{"dt_txt": "2025-03-15 12:00:00", "main": {"temp": 30.6, "humidity": 65}, "wind": {"speed": 3.0}, "weather": [{"main": "Clouds", "description": "few clouds", "icon": "02d"}]},
		{"dt_txt": "2025-03-15 15:00:00", "main": {"temp": 29.1, "humidity": 70}, "wind": {"speed": 5.0}, "weather": [{"main": "Rain", "description": "light rain", "icon": "10d"}]}
	]
}`

func TestCurrentNormalizesUnits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/weather", r.URL.Path)
		require.Equal(t, "Dhaka,BD", r.URL.Query().Get("q"))
		require.Equal(t, "test-key", r.URL.Query().Get("appid"))
		require.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Write([]byte(currentPayload))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", time.Second)
	report, err := client.Current(context.Background(), "Dhaka,BD")
	require.NoError(t, err)
	require.Equal(t, "Dhaka", report.Location.City)
	require.Equal(t, "BD", report.Location.Country)
	require.Equal(t, 31, report.Current.Temperature)
	require.Equal(t, 36, report.Current.FeelsLike)
	// 4.2 m/s is 15.12 km/h.
	require.Equal(t, 15, report.Current.WindSpeedKmh)
	require.NotNil(t, report.Current.VisibilityKm)
	require.InDelta(t, 4.5, *report.Current.VisibilityKm, 0.001)
	require.Equal(t, "Rain", report.Current.Condition)
	require.Equal(t, "OpenWeatherMap", report.Source)
}

func TestCurrentMissingVisibility(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{
			"name": "Oslo", "sys": {"country": "NO"},
			"main": {"temp": 3.0}, "wind": {"speed": 1.0},
			"weather": [{"main": "Clear", "description": "clear sky", "icon": "01d"}]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", time.Second)
	report, err := client.Current(context.Background(), "Oslo")
	require.NoError(t, err)
	require.Nil(t, report.Current.VisibilityKm)
}

func TestCurrentErrorMapping(t *testing.T) {
	cases := map[string]struct {
		status int
		code   string
	}{
		"bad key":       {status: http.StatusUnauthorized, code: "invalid_api_key"},
		"unknown city":  {status: http.StatusNotFound, code: "city_not_found"},
		"upstream down": {status: http.StatusBadGateway, code: "weather_unavailable"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer server.Close()

			client := NewClient(server.URL, "test-key", time.Second)
			_, err := client.Current(context.Background(), "Atlantis")
			require.Error(t, err)
			require.True(t, apperrors.IsCode(err, tc.code))
		})
	}
}

func TestForecastLimitsSlots(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/forecast", r.URL.Path)
		w.Write([]byte(forecastPayload))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", time.Second)
	forecast, err := client.Forecast(context.Background(), "Dhaka,BD")
	require.NoError(t, err)
	require.Equal(t, "Dhaka", forecast.Location.City)
	require.Len(t, forecast.Entries, 2)
	require.Equal(t, "2025-03-15 12:00:00", forecast.Entries[0].Datetime)
	require.Equal(t, 31, forecast.Entries[0].Temperature)
	require.Equal(t, 11, forecast.Entries[0].WindSpeedKmh)
	require.Equal(t, 18, forecast.Entries[1].WindSpeedKmh)
}
