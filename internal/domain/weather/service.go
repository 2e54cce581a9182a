package weather

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/skyport/backoffice/internal/domain/advisor"
	apperrors "github.com/skyport/backoffice/pkg/errors"
)

// Provider fetches weather from the upstream API.
type Provider interface {
	Current(ctx context.Context, city string) (Report, error)
	Forecast(ctx context.Context, city string) (Forecast, error)
}

// Cache stores recent reports keyed by city.
type Cache interface {
	Get(ctx context.Context, city string) (Report, bool, error)
	Save(ctx context.Context, city string, report Report, ttl time.Duration) error
}

// Service exposes weather lookups for the dashboard and the route advisor.
type Service interface {
	Home(ctx context.Context) (Report, error)
	City(ctx context.Context, city string) (Report, error)
	CityForecast(ctx context.Context, city string) (Forecast, error)
	Cities(ctx context.Context, cities []string) ([]CityResult, error)

	// Snapshot adapts a cached report into the shape the route advisor
	// consumes.
	Snapshot(ctx context.Context, city string) (advisor.WeatherSnapshot, error)
}

type service struct {
	cfg      Config
	provider Provider
	cache    Cache
	logger   *slog.Logger
}

// NewService wires up the weather domain.
func NewService(cfg Config, provider Provider, cache Cache, logger *slog.Logger) Service {
	if cfg.HomeCity == "" {
		cfg.HomeCity = "Dhaka,BD"
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	return &service{
		cfg:      cfg,
		provider: provider,
		cache:    cache,
		logger:   logger.With("component", "weather.service"),
	}
}

func (s *service) Home(ctx context.Context) (Report, error) {
	return s.City(ctx, s.cfg.HomeCity)
}

func (s *service) City(ctx context.Context, city string) (Report, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Report{}, apperrors.Wrap("invalid_input", "city name is required", nil)
	}

	key := cacheKey(city)
	if cached, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("weather cache read failed", "city", city, "error", err)
	} else if ok {
		return cached, nil
	}

	report, err := s.provider.Current(ctx, city)
	if err != nil {
		return Report{}, err
	}
	if err := s.cache.Save(ctx, key, report, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("weather cache write failed", "city", city, "error", err)
	}

	s.logger.Info("weather fetched", "city", report.Location.City, "condition", report.Current.Condition)
	return report, nil
}

func (s *service) CityForecast(ctx context.Context, city string) (Forecast, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		city = s.cfg.HomeCity
	}
	forecast, err := s.provider.Forecast(ctx, city)
	if err != nil {
		return Forecast{}, err
	}
	s.logger.Info("forecast fetched", "city", forecast.Location.City, "slots", len(forecast.Entries))
	return forecast, nil
}

// Cities fans out one lookup per city; failed legs degrade to an in-place
// error entry instead of failing the batch.
func (s *service) Cities(ctx context.Context, cities []string) ([]CityResult, error) {
	if len(cities) == 0 {
		return nil, apperrors.Wrap("invalid_input", "cities array is required", nil)
	}

	results := make([]CityResult, len(cities))
	g, gctx := errgroup.WithContext(ctx)
	for i, city := range cities {
		i, city := i, city
		g.Go(func() error {
			report, err := s.City(gctx, city)
			if err != nil {
				s.logger.Warn("city weather unavailable", "city", city, "error", err)
				results[i] = CityResult{City: city, Error: "Weather data unavailable"}
				return nil
			}
			results[i] = CityResult{
				City:         report.Location.City,
				Country:      report.Location.Country,
				Temperature:  report.Current.Temperature,
				Condition:    report.Current.Condition,
				Description:  report.Current.Description,
				WindSpeedKmh: report.Current.WindSpeedKmh,
				VisibilityKm: report.Current.VisibilityKm,
				Success:      true,
			}
			return nil
		})
	}
	_ = g.Wait()
	return results, nil
}

func (s *service) Snapshot(ctx context.Context, city string) (advisor.WeatherSnapshot, error) {
	report, err := s.City(ctx, city)
	if err != nil {
		return advisor.WeatherSnapshot{}, err
	}
	visibility := 10.0
	if report.Current.VisibilityKm != nil {
		visibility = *report.Current.VisibilityKm
	}
	return advisor.WeatherSnapshot{
		Condition:    report.Current.Condition,
		VisibilityKm: visibility,
		WindSpeedKmh: float64(report.Current.WindSpeedKmh),
		TemperatureC: float64(report.Current.Temperature),
	}, nil
}

func cacheKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

var _ advisor.WeatherProvider = (Service)(nil)
