package unit

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skyport/backoffice/internal/domain/weather"
	"github.com/skyport/backoffice/internal/infra/weathercache"
	apperrors "github.com/skyport/backoffice/pkg/errors"
)

func TestCityWeatherIsCached(t *testing.T) {
	provider := &stubWeatherProvider{
		report: weather.Report{
			Location: weather.Location{City: "Dhaka", Country: "BD"},
			Current:  weather.Current{Temperature: 31, Condition: "Rain"},
		},
	}
	svc := newWeatherService(provider)

	first, err := svc.City(context.Background(), "Dhaka,BD")
	require.NoError(t, err)
	require.Equal(t, "Dhaka", first.Location.City)

	second, err := svc.City(context.Background(), "dhaka,bd")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, int32(1), provider.currentCalls.Load())
}

func TestCityWeatherRejectsBlankCity(t *testing.T) {
	svc := newWeatherService(&stubWeatherProvider{})

	_, err := svc.City(context.Background(), "   ")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestHomeWeatherUsesConfiguredCity(t *testing.T) {
	provider := &stubWeatherProvider{
		report: weather.Report{Location: weather.Location{City: "Dhaka"}},
	}
	svc := newWeatherService(provider)

	_, err := svc.Home(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Dhaka,BD", provider.lastCity)
}

func TestMultiCityFailuresDegradeInPlace(t *testing.T) {
	provider := &stubWeatherProvider{
		report: weather.Report{
			Location: weather.Location{City: "Dhaka", Country: "BD"},
			Current:  weather.Current{Temperature: 31, Condition: "Rain"},
		},
		failFor: "Atlantis",
	}
	svc := newWeatherService(provider)

	results, err := svc.Cities(context.Background(), []string{"Dhaka,BD", "Atlantis"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	require.True(t, results[0].Success)
	require.Equal(t, "Dhaka", results[0].City)

	require.False(t, results[1].Success)
	require.Equal(t, "Atlantis", results[1].City)
	require.Equal(t, "Weather data unavailable", results[1].Error)
}

func TestMultiCityRequiresCities(t *testing.T) {
	svc := newWeatherService(&stubWeatherProvider{})

	_, err := svc.Cities(context.Background(), nil)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestSnapshotDefaultsVisibility(t *testing.T) {
	provider := &stubWeatherProvider{
		report: weather.Report{
			Location: weather.Location{City: "Dhaka"},
			Current:  weather.Current{Temperature: 31, Condition: "Clear", WindSpeedKmh: 12},
		},
	}
	svc := newWeatherService(provider)

	snapshot, err := svc.Snapshot(context.Background(), "Dhaka,BD")
	require.NoError(t, err)
	require.Equal(t, "Clear", snapshot.Condition)
	require.InDelta(t, 10.0, snapshot.VisibilityKm, 0.001)
	require.InDelta(t, 12.0, snapshot.WindSpeedKmh, 0.001)
}

func newWeatherService(provider *stubWeatherProvider) weather.Service {
	cfg := weather.Config{HomeCity: "Dhaka,BD", CacheTTL: time.Minute}
	return weather.NewService(cfg, provider, weathercache.NewMemoryStore(), newTestLogger())
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubWeatherProvider struct {
	report       weather.Report
	failFor      string
	currentCalls atomic.Int32

	mu       sync.Mutex
	lastCity string
}

func (s *stubWeatherProvider) Current(_ context.Context, city string) (weather.Report, error) {
	s.currentCalls.Add(1)
	s.mu.Lock()
	s.lastCity = city
	s.mu.Unlock()
	if s.failFor != "" && city == s.failFor {
		return weather.Report{}, apperrors.Wrap("city_not_found", "city not found", nil)
	}
	return s.report, nil
}

func (s *stubWeatherProvider) Forecast(_ context.Context, city string) (weather.Forecast, error) {
	return weather.Forecast{Location: s.report.Location}, nil
}
