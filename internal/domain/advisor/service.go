package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/skyport/backoffice/pkg/errors"
)

// Service exposes the heuristic route analysis capabilities.
type Service interface {
	AnalyzeRouteSafety(ctx context.Context, req RouteSafetyRequest) (SafetyAnalysis, error)
	GenerateDynamicPricing(ctx context.Context, req PricingRequest) (PricingAnalysis, error)
	PredictFlightDelay(ctx context.Context, req DelayRequest) (DelayPrediction, error)
	OptimizePassengerFlow(ctx context.Context, req FlowRequest) (FlowPlan, error)
	PredictMaintenance(ctx context.Context, req MaintenanceRequest) (MaintenanceOutlook, error)
}

// WeatherProvider supplies a normalized snapshot for one city.
type WeatherProvider interface {
	Snapshot(ctx context.Context, city string) (WeatherSnapshot, error)
}

// HistoryProvider aggregates stored flight records for a route.
type HistoryProvider interface {
	RouteHistory(ctx context.Context, origin, destination string, window time.Duration) (RouteHistory, error)
}

type service struct {
	cfg       Config
	weather   WeatherProvider
	history   HistoryProvider
	logger    *slog.Logger
	randFloat func() float64
	now       func() time.Time
}

// NewService wires up the advisor domain. Randomness flows through a single
// injectable source so tests can pin the draw sequence.
func NewService(cfg Config, weather WeatherProvider, history HistoryProvider, logger *slog.Logger) Service {
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = 90 * 24 * time.Hour
	}
	return &service{
		cfg:       cfg,
		weather:   weather,
		history:   history,
		logger:    logger.With("component", "advisor.service"),
		randFloat: rand.Float64,
		now:       time.Now,
	}
}

// fallbackSnapshot substitutes for any leg whose upstream lookup fails.
var fallbackSnapshot = WeatherSnapshot{Condition: "Unknown", VisibilityKm: 10, WindSpeedKmh: 5, TemperatureC: 25}

// baselineHistory substitutes when the history lookup itself fails.
var baselineHistory = RouteHistory{
	TotalFlights:        100,
	OnTimeRatePct:       92,
	DelayRatePct:        6,
	CancellationRatePct: 2,
	AverageDelayMinutes: 15,
}

func (s *service) AnalyzeRouteSafety(ctx context.Context, req RouteSafetyRequest) (SafetyAnalysis, error) {
	origin := strings.TrimSpace(req.Origin)
	destination := strings.TrimSpace(req.Destination)
	if origin == "" || destination == "" {
		return SafetyAnalysis{}, apperrors.Wrap("invalid_input", "origin and destination are required", nil)
	}

	weather := s.routeWeather(ctx, origin, destination)

	history, err := s.history.RouteHistory(ctx, origin, destination, s.cfg.HistoryWindow)
	if err != nil {
		s.logger.Warn("route history unavailable, using baseline", "origin", origin, "destination", destination, "error", err)
		history = baselineHistory
	}

	airspace := s.assessAirspace(origin, destination)

	analysis := s.scoreSafety(weather, history, airspace, req.Aircraft)
	analysis.Route = fmt.Sprintf("%s → %s", origin, destination)
	analysis.AlternativeRoutes = s.alternativeRoutes(origin, destination, analysis.SafetyScore)
	analysis.GeneratedAt = s.now().UTC()

	s.logger.Info("route safety analyzed",
		"route", analysis.Route,
		"score", analysis.SafetyScore,
		"risk", analysis.RiskLevel,
		"alternatives", len(analysis.AlternativeRoutes))
	return analysis, nil
}

// routeWeather fetches both legs concurrently; a failed leg degrades to the
// fixed fallback snapshot instead of failing the analysis.
func (s *service) routeWeather(ctx context.Context, origin, destination string) RouteWeather {
	var originWx, destWx WeatherSnapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snap, err := s.weather.Snapshot(gctx, origin)
		if err != nil {
			s.logger.Warn("origin weather unavailable, using fallback", "city", origin, "error", err)
			snap = fallbackSnapshot
		}
		originWx = snap
		return nil
	})
	g.Go(func() error {
		snap, err := s.weather.Snapshot(gctx, destination)
		if err != nil {
			s.logger.Warn("destination weather unavailable, using fallback", "city", destination, "error", err)
			snap = fallbackSnapshot
		}
		destWx = snap
		return nil
	})
	_ = g.Wait()

	return RouteWeather{Origin: originWx, Destination: destWx}
}
