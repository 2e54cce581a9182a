package flight

import (
	"context"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skyport/backoffice/internal/domain/advisor"
	apperrors "github.com/skyport/backoffice/pkg/errors"
	"github.com/skyport/backoffice/pkg/util"
)

var (
	flightNumberPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{3,4}$`)
	platformPattern     = regexp.MustCompile(`^[A-Z][0-9]{1,2}$`)
)

// Delays above this many minutes count against a route's on-time rate.
const onTimeGraceMinutes = 15

// Service manages the flight schedule.
type Service interface {
	List(ctx context.Context, q ListQuery) (ListResult, error)
	Get(ctx context.Context, id string) (Flight, error)
	Create(ctx context.Context, params CreateParams, createdBy int64) (Flight, error)
	Update(ctx context.Context, id string, params UpdateParams) (Flight, error)
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, update StatusUpdate) (Flight, error)
	Stats(ctx context.Context) (Stats, error)

	// RouteHistory aggregates stored flights into the shape the route
	// advisor consumes.
	RouteHistory(ctx context.Context, origin, destination string, window time.Duration) (advisor.RouteHistory, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewService wires up the flight domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With("component", "flight.service"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func (s *service) List(ctx context.Context, q ListQuery) (ListResult, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	filter := Filter{
		Status:      strings.TrimSpace(q.Status),
		Origin:      strings.TrimSpace(q.Origin),
		Destination: strings.TrimSpace(q.Destination),
		Offset:      (page - 1) * limit,
		Limit:       limit,
	}
	if q.Date != "" {
		day, err := time.Parse("2006-01-02", q.Date)
		if err != nil {
			return ListResult{}, apperrors.Wrap("invalid_input", "date must be formatted as YYYY-MM-DD", err)
		}
		filter.DepartureFrom = day
		filter.DepartureTo = day.Add(24 * time.Hour)
	}

	flights, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return ListResult{}, apperrors.Wrap("repository_failure", "unable to list flights", err)
	}

	totalPages := (total + limit - 1) / limit
	return ListResult{
		Flights: flights,
		Pagination: Pagination{
			Current:      page,
			TotalPages:   totalPages,
			Count:        len(flights),
			TotalRecords: total,
		},
	}, nil
}

func (s *service) Get(ctx context.Context, id string) (Flight, error) {
	f, ok, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Flight{}, apperrors.Wrap("repository_failure", "unable to load flight", err)
	}
	if !ok {
		return Flight{}, apperrors.Wrap("not_found", "flight not found", nil)
	}
	return f, nil
}

func (s *service) Create(ctx context.Context, params CreateParams, createdBy int64) (Flight, error) {
	f := Flight{
		ID:            s.newID(),
		FlightNumber:  strings.ToUpper(strings.TrimSpace(params.FlightNumber)),
		Airline:       strings.TrimSpace(params.Airline),
		Aircraft:      strings.TrimSpace(params.Aircraft),
		Origin:        strings.TrimSpace(params.Origin),
		Destination:   strings.TrimSpace(params.Destination),
		TransitPoints: params.TransitPoints,
		DepartureTime: params.DepartureTime,
		ArrivalTime:   params.ArrivalTime,
		Platform:      strings.ToUpper(strings.TrimSpace(params.Platform)),
		Status:        params.Status,
		Delay:         params.Delay,
		Passengers:    params.Passengers,
		FuelStatus:    params.FuelStatus,
		CreatedBy:     createdBy,
	}
	if f.Status == "" {
		f.Status = StatusScheduled
	}
	if f.FuelStatus == "" {
		f.FuelStatus = "Pending"
	}
	f.Passengers = distributePassengers(f.Passengers)

	if err := s.validate(f, true); err != nil {
		return Flight{}, err
	}

	now := s.now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now

	created, err := s.repo.Create(ctx, f)
	if err != nil {
		if err == ErrFlightNumberExists {
			return Flight{}, apperrors.Wrap("duplicate_flight", "flight number already exists", err)
		}
		return Flight{}, apperrors.Wrap("repository_failure", "unable to create flight", err)
	}

	s.logger.Info("flight created", "flightNumber", created.FlightNumber, "route", created.Origin+"-"+created.Destination)
	return created, nil
}

func (s *service) Update(ctx context.Context, id string, params UpdateParams) (Flight, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return Flight{}, err
	}

	if params.Airline != nil {
		f.Airline = strings.TrimSpace(*params.Airline)
	}
	if params.Aircraft != nil {
		f.Aircraft = strings.TrimSpace(*params.Aircraft)
	}
	if params.Origin != nil {
		f.Origin = strings.TrimSpace(*params.Origin)
	}
	if params.Destination != nil {
		f.Destination = strings.TrimSpace(*params.Destination)
	}
	if params.TransitPoints != nil {
		f.TransitPoints = *params.TransitPoints
	}
	if params.DepartureTime != nil {
		f.DepartureTime = *params.DepartureTime
	}
	if params.ArrivalTime != nil {
		f.ArrivalTime = *params.ArrivalTime
	}
	if params.Platform != nil {
		f.Platform = strings.ToUpper(strings.TrimSpace(*params.Platform))
	}
	if params.Status != nil {
		f.Status = *params.Status
	}
	if params.Delay != nil {
		f.Delay = params.Delay
	}
	if params.Passengers != nil {
		f.Passengers = distributePassengers(*params.Passengers)
	}
	if params.FuelStatus != nil {
		f.FuelStatus = *params.FuelStatus
	}

	if err := s.validate(f, false); err != nil {
		return Flight{}, err
	}

	f.UpdatedAt = s.now().UTC()
	updated, err := s.repo.Update(ctx, f)
	if err != nil {
		return Flight{}, apperrors.Wrap("repository_failure", "unable to update flight", err)
	}

	s.logger.Info("flight updated", "flightNumber", updated.FlightNumber)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.Wrap("repository_failure", "unable to delete flight", err)
	}
	if !ok {
		return apperrors.Wrap("not_found", "flight not found", nil)
	}
	s.logger.Info("flight deleted", "id", id)
	return nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, update StatusUpdate) (Flight, error) {
	if !slices.Contains(Statuses, update.Status) {
		return Flight{}, apperrors.Wrap("invalid_input", "invalid flight status", nil)
	}
	if update.Status == StatusDelayed {
		if update.Delay == nil || update.Delay.DurationMinutes <= 0 {
			return Flight{}, apperrors.Wrap("invalid_input", "delay duration is required for delayed flights", nil)
		}
		if !slices.Contains(DelayReasons, update.Delay.Reason) {
			return Flight{}, apperrors.Wrap("invalid_input", "invalid delay reason", nil)
		}
	}

	f, err := s.Get(ctx, id)
	if err != nil {
		return Flight{}, err
	}

	f.Status = update.Status
	if update.Status == StatusDelayed {
		f.Delay = update.Delay
	}
	f.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, f)
	if err != nil {
		return Flight{}, apperrors.Wrap("repository_failure", "unable to update flight status", err)
	}

	s.logger.Info("flight status updated", "flightNumber", updated.FlightNumber, "status", updated.Status)
	return updated, nil
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	flights, _, err := s.repo.List(ctx, Filter{})
	if err != nil {
		return Stats{}, apperrors.Wrap("repository_failure", "unable to compute flight stats", err)
	}

	stats := Stats{
		TotalFlights:      len(flights),
		StatusBreakdown:   make(map[string]int),
		AircraftBreakdown: make(map[string]int),
	}
	today := util.StartOfDay(s.now().UTC())
	tomorrow := today.Add(24 * time.Hour)
	for _, f := range flights {
		stats.StatusBreakdown[f.Status]++
		stats.AircraftBreakdown[f.Aircraft]++
		stats.TotalPassengers += f.Passengers.Total
		if !f.DepartureTime.Before(today) && f.DepartureTime.Before(tomorrow) {
			stats.TodayFlights++
		}
	}
	return stats, nil
}

func (s *service) RouteHistory(ctx context.Context, origin, destination string, window time.Duration) (advisor.RouteHistory, error) {
	flights, _, err := s.repo.List(ctx, Filter{
		Origin:        origin,
		Destination:   destination,
		DepartureFrom: s.now().UTC().Add(-window),
	})
	if err != nil {
		return advisor.RouteHistory{}, apperrors.Wrap("repository_failure", "unable to aggregate route history", err)
	}
	if len(flights) == 0 {
		// No operating history yet; assume a slightly optimistic default.
		return advisor.RouteHistory{TotalFlights: 0, OnTimeRatePct: 95, DelayRatePct: 3, CancellationRatePct: 2}, nil
	}

	var onTime, delayed, cancelled, delaySum int
	for _, f := range flights {
		switch {
		case f.Status == StatusCancelled:
			cancelled++
		case f.Delay != nil && f.Delay.DurationMinutes > onTimeGraceMinutes:
			delayed++
			delaySum += f.Delay.DurationMinutes
		default:
			onTime++
		}
	}

	total := len(flights)
	history := advisor.RouteHistory{
		TotalFlights:        total,
		OnTimeRatePct:       float64(onTime) / float64(total) * 100,
		DelayRatePct:        float64(delayed) / float64(total) * 100,
		CancellationRatePct: float64(cancelled) / float64(total) * 100,
	}
	if delayed > 0 {
		history.AverageDelayMinutes = float64(delaySum) / float64(delayed)
	}
	return history, nil
}

func (s *service) validate(f Flight, requireFuture bool) error {
	switch {
	case !flightNumberPattern.MatchString(f.FlightNumber):
		return apperrors.Wrap("invalid_input", "flight number must match two letters followed by 3-4 digits", nil)
	case f.Airline == "":
		return apperrors.Wrap("invalid_input", "airline is required", nil)
	case !slices.Contains(AircraftTypes, f.Aircraft):
		return apperrors.Wrap("invalid_input", "unsupported aircraft type", nil)
	case f.Origin == "" || f.Destination == "":
		return apperrors.Wrap("invalid_input", "origin and destination are required", nil)
	case strings.EqualFold(f.Origin, f.Destination):
		return apperrors.Wrap("invalid_input", "origin and destination must differ", nil)
	case !platformPattern.MatchString(f.Platform):
		return apperrors.Wrap("invalid_input", "platform must be a letter followed by 1-2 digits", nil)
	case !slices.Contains(Statuses, f.Status):
		return apperrors.Wrap("invalid_input", "invalid flight status", nil)
	case f.DepartureTime.IsZero() || f.ArrivalTime.IsZero():
		return apperrors.Wrap("invalid_input", "departure and arrival times are required", nil)
	case !f.ArrivalTime.After(f.DepartureTime):
		return apperrors.Wrap("invalid_input", "arrival time must be after departure time", nil)
	case f.Passengers.Total < 0 || f.Passengers.Total > 500:
		return apperrors.Wrap("invalid_input", "passenger total must be between 0 and 500", nil)
	case !slices.Contains(FuelStatuses, f.FuelStatus):
		return apperrors.Wrap("invalid_input", "invalid fuel status", nil)
	}
	if requireFuture && !f.DepartureTime.After(s.now()) {
		return apperrors.Wrap("invalid_input", "departure time must be in the future", nil)
	}
	return nil
}

// distributePassengers fills in cabin class counts when only the total is
// supplied: 70% economy, 25% business, remainder first class.
func distributePassengers(p Passengers) Passengers {
	if p.Total > 0 && p.Economy == 0 && p.Business == 0 && p.FirstClass == 0 {
		p.Economy = p.Total * 70 / 100
		p.Business = p.Total * 25 / 100
		p.FirstClass = p.Total - p.Economy - p.Business
		return p
	}
	if p.Total == 0 {
		p.Total = p.Economy + p.Business + p.FirstClass
	}
	return p
}
