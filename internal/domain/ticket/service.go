package ticket

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skyport/backoffice/internal/domain/flight"
	apperrors "github.com/skyport/backoffice/pkg/errors"
)

// Fare sheets default to a 30 day validity window.
const defaultValidity = 30 * 24 * time.Hour

// FlightCatalog is the slice of the flight store the ticket domain needs.
// Satisfied by flight.Repository.
type FlightCatalog interface {
	GetByNumber(ctx context.Context, flightNumber string) (flight.Flight, bool, error)
	List(ctx context.Context, filter flight.Filter) ([]flight.Flight, int, error)
}

// Service manages per-flight fare sheets.
type Service interface {
	List(ctx context.Context, q ListQuery) (ListResult, error)
	Get(ctx context.Context, id string) (Ticket, error)
	GetByFlightNumber(ctx context.Context, flightNumber string) (Ticket, error)
	Create(ctx context.Context, params CreateParams, updatedBy int64) (Ticket, error)
	Update(ctx context.Context, id string, params UpdateParams, updatedBy int64) (Ticket, error)
	UpdatePricing(ctx context.Context, id string, pricing Pricing, factors Factors, updatedBy int64) (Ticket, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (Stats, error)

	// GenerateSamples seeds a fare sheet for every non-cancelled flight
	// that does not have one yet.
	GenerateSamples(ctx context.Context, updatedBy int64) ([]Ticket, error)
}

type service struct {
	repo      Repository
	flights   FlightCatalog
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
	randFloat func() float64
}

// NewService wires up the ticket domain.
func NewService(repo Repository, flights FlightCatalog, logger *slog.Logger) Service {
	return &service{
		repo:      repo,
		flights:   flights,
		logger:    logger.With("component", "ticket.service"),
		now:       time.Now,
		newID:     uuid.NewString,
		randFloat: rand.Float64,
	}
}

func (s *service) List(ctx context.Context, q ListQuery) (ListResult, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	tickets, total, err := s.repo.List(ctx, Filter{
		Route:    strings.TrimSpace(q.Route),
		Aircraft: strings.TrimSpace(q.Aircraft),
		Active:   q.Active,
		Offset:   (page - 1) * limit,
		Limit:    limit,
	})
	if err != nil {
		return ListResult{}, apperrors.Wrap("repository_failure", "unable to list tickets", err)
	}

	return ListResult{
		Tickets: tickets,
		Pagination: Pagination{
			Current:      page,
			TotalPages:   (total + limit - 1) / limit,
			Count:        len(tickets),
			TotalRecords: total,
		},
	}, nil
}

func (s *service) Get(ctx context.Context, id string) (Ticket, error) {
	t, ok, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Ticket{}, apperrors.Wrap("repository_failure", "unable to load ticket", err)
	}
	if !ok {
		return Ticket{}, apperrors.Wrap("not_found", "ticket not found", nil)
	}
	return t, nil
}

func (s *service) GetByFlightNumber(ctx context.Context, flightNumber string) (Ticket, error) {
	number := strings.ToUpper(strings.TrimSpace(flightNumber))
	t, ok, err := s.repo.GetByFlight(ctx, number, true)
	if err != nil {
		return Ticket{}, apperrors.Wrap("repository_failure", "unable to load ticket", err)
	}
	if !ok {
		return Ticket{}, apperrors.Wrap("not_found", "ticket not found for this flight", nil)
	}
	return t, nil
}

func (s *service) Create(ctx context.Context, params CreateParams, updatedBy int64) (Ticket, error) {
	number := strings.ToUpper(strings.TrimSpace(params.FlightNumber))
	fl, ok, err := s.flights.GetByNumber(ctx, number)
	if err != nil {
		return Ticket{}, apperrors.Wrap("repository_failure", "unable to resolve flight", err)
	}
	if !ok {
		return Ticket{}, apperrors.Wrap("invalid_input", "flight not found", nil)
	}

	now := s.now().UTC()
	t := Ticket{
		ID:           s.newID(),
		FlightNumber: number,
		Aircraft:     strings.TrimSpace(params.Aircraft),
		Pricing:      normalizePricing(params.Pricing),
		Factors:      params.Factors,
		ValidFrom:    now,
		IsActive:     true,
		LastUpdated:  now,
		UpdatedBy:    updatedBy,
	}
	if params.Route != nil {
		t.Route = *params.Route
	} else {
		t.Route = Route{Origin: fl.Origin, Destination: fl.Destination}
	}
	if t.Aircraft == "" {
		t.Aircraft = fl.Aircraft
	}
	if params.ValidFrom != nil {
		t.ValidFrom = *params.ValidFrom
	}
	if params.ValidUntil != nil {
		t.ValidUntil = *params.ValidUntil
	} else {
		t.ValidUntil = now.Add(defaultValidity)
	}
	if t.Factors.Demand == "" {
		t.Factors.Demand = "Medium"
	}
	if t.Factors.Season == "" {
		t.Factors.Season = "Regular"
	}

	if err := validate(t); err != nil {
		return Ticket{}, err
	}

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		if err == ErrTicketExists {
			return Ticket{}, apperrors.Wrap("duplicate_ticket", "ticket already exists for this flight", err)
		}
		return Ticket{}, apperrors.Wrap("repository_failure", "unable to create ticket", err)
	}

	s.logger.Info("ticket created", "flightNumber", created.FlightNumber, "route", created.Route.Origin+"-"+created.Route.Destination)
	return created, nil
}

func (s *service) Update(ctx context.Context, id string, params UpdateParams, updatedBy int64) (Ticket, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return Ticket{}, err
	}

	if params.Route != nil {
		t.Route = *params.Route
	}
	if params.Aircraft != nil {
		t.Aircraft = strings.TrimSpace(*params.Aircraft)
	}
	if params.Pricing != nil {
		t.Pricing = normalizePricing(*params.Pricing)
	}
	if params.Factors != nil {
		t.Factors = *params.Factors
	}
	if params.ValidFrom != nil {
		t.ValidFrom = *params.ValidFrom
	}
	if params.ValidUntil != nil {
		t.ValidUntil = *params.ValidUntil
	}
	if params.IsActive != nil {
		t.IsActive = *params.IsActive
	}
	t.UpdatedBy = updatedBy
	t.LastUpdated = s.now().UTC()

	if err := validate(t); err != nil {
		return Ticket{}, err
	}

	updated, err := s.repo.Update(ctx, t)
	if err != nil {
		return Ticket{}, apperrors.Wrap("repository_failure", "unable to update ticket", err)
	}
	s.logger.Info("ticket updated", "flightNumber", updated.FlightNumber)
	return updated, nil
}

func (s *service) UpdatePricing(ctx context.Context, id string, pricing Pricing, factors Factors, updatedBy int64) (Ticket, error) {
	return s.Update(ctx, id, UpdateParams{Pricing: &pricing, Factors: &factors}, updatedBy)
}

func (s *service) Delete(ctx context.Context, id string) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.Wrap("repository_failure", "unable to delete ticket", err)
	}
	if !ok {
		return apperrors.Wrap("not_found", "ticket not found", nil)
	}
	s.logger.Info("ticket deleted", "id", id)
	return nil
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	tickets, _, err := s.repo.List(ctx, Filter{})
	if err != nil {
		return Stats{}, apperrors.Wrap("repository_failure", "unable to compute ticket stats", err)
	}

	stats := Stats{
		TotalTickets:      len(tickets),
		AircraftBreakdown: make(map[string]int),
		DemandBreakdown:   make(map[string]int),
	}

	type routeAgg struct {
		count                    int
		economy, business, first float64
	}
	routes := make(map[Route]*routeAgg)
	var order []Route
	for _, t := range tickets {
		if t.IsActive {
			stats.ActiveTickets++
		}
		stats.AircraftBreakdown[t.Aircraft]++
		stats.DemandBreakdown[t.Factors.Demand]++

		agg, ok := routes[t.Route]
		if !ok {
			agg = &routeAgg{}
			routes[t.Route] = agg
			order = append(order, t.Route)
		}
		agg.count++
		agg.economy += t.Pricing.Economy.Current
		agg.business += t.Pricing.Business.Current
		agg.first += t.Pricing.FirstClass.Current
	}

	for _, route := range order {
		agg := routes[route]
		n := float64(agg.count)
		stats.RouteBreakdown = append(stats.RouteBreakdown, RouteStats{
			Origin:        route.Origin,
			Destination:   route.Destination,
			Count:         agg.count,
			AvgEconomy:    agg.economy / n,
			AvgBusiness:   agg.business / n,
			AvgFirstClass: agg.first / n,
		})
	}
	return stats, nil
}

func (s *service) GenerateSamples(ctx context.Context, updatedBy int64) ([]Ticket, error) {
	flights, _, err := s.flights.List(ctx, flight.Filter{})
	if err != nil {
		return nil, apperrors.Wrap("repository_failure", "unable to list flights", err)
	}

	now := s.now().UTC()
	var inserted []Ticket
	for _, fl := range flights {
		if fl.Status == flight.StatusCancelled {
			continue
		}
		if _, exists, err := s.repo.GetByFlight(ctx, fl.FlightNumber, false); err != nil {
			return nil, apperrors.Wrap("repository_failure", "unable to check existing tickets", err)
		} else if exists {
			continue
		}

		t := s.sampleTicket(fl, now)
		t.UpdatedBy = updatedBy
		created, err := s.repo.Create(ctx, t)
		if err != nil {
			s.logger.Warn("sample ticket skipped", "flightNumber", fl.FlightNumber, "error", err)
			continue
		}
		inserted = append(inserted, created)
	}

	s.logger.Info("sample tickets generated", "count", len(inserted))
	return inserted, nil
}

// sampleTicket synthesizes a plausible fare sheet from a randomized route
// distance, mirroring the demo data seeding tool.
func (s *service) sampleTicket(fl flight.Flight, now time.Time) Ticket {
	distance := math.Floor(s.randFloat()*5000) + 500
	baseEconomy := math.Floor(distance*8) + math.Floor(s.randFloat()*10000) + 15000
	baseBusiness := baseEconomy * 2.5
	baseFirstClass := baseEconomy * 4

	return Ticket{
		ID:           s.newID(),
		FlightNumber: fl.FlightNumber,
		Route:        Route{Origin: fl.Origin, Destination: fl.Destination},
		Aircraft:     fl.Aircraft,
		Pricing: Pricing{
			Economy: ClassPrice{
				Base:     baseEconomy,
				Current:  baseEconomy + math.Floor(s.randFloat()*5000),
				Currency: DefaultCurrency,
			},
			Business: ClassPrice{
				Base:     baseBusiness,
				Current:  baseBusiness + math.Floor(s.randFloat()*15000),
				Currency: DefaultCurrency,
			},
			FirstClass: ClassPrice{
				Base:     baseFirstClass,
				Current:  baseFirstClass + math.Floor(s.randFloat()*25000),
				Currency: DefaultCurrency,
			},
		},
		Factors: Factors{
			DistanceKm: distance,
			Demand:     DemandLevels[int(s.randFloat()*float64(len(DemandLevels)))%len(DemandLevels)],
			Season:     Seasons[int(s.randFloat()*float64(len(Seasons)))%len(Seasons)],
			FuelCost:   math.Floor(s.randFloat()*50) + 30,
		},
		ValidFrom:   now,
		ValidUntil:  now.Add(defaultValidity),
		IsActive:    true,
		LastUpdated: now,
	}
}

func normalizePricing(p Pricing) Pricing {
	if p.Economy.Currency == "" {
		p.Economy.Currency = DefaultCurrency
	}
	if p.Business.Currency == "" {
		p.Business.Currency = DefaultCurrency
	}
	if p.FirstClass.Currency == "" {
		p.FirstClass.Currency = DefaultCurrency
	}
	return p
}

func validate(t Ticket) error {
	classes := map[string]ClassPrice{
		"economy":    t.Pricing.Economy,
		"business":   t.Pricing.Business,
		"firstClass": t.Pricing.FirstClass,
	}
	for name, price := range classes {
		if price.Base < 0 || price.Current < 0 {
			return apperrors.Wrap("invalid_input", fmt.Sprintf("%s price cannot be negative", name), nil)
		}
	}
	if t.Route.Origin == "" || t.Route.Destination == "" {
		return apperrors.Wrap("invalid_input", "route origin and destination are required", nil)
	}
	if !slices.Contains(DemandLevels, t.Factors.Demand) {
		return apperrors.Wrap("invalid_input", "demand must be Low, Medium or High", nil)
	}
	if !slices.Contains(Seasons, t.Factors.Season) {
		return apperrors.Wrap("invalid_input", "season must be Peak, Off-Peak or Regular", nil)
	}
	if t.Factors.DistanceKm < 0 || t.Factors.FuelCost < 0 {
		return apperrors.Wrap("invalid_input", "factors cannot be negative", nil)
	}
	if t.ValidUntil.IsZero() || !t.ValidUntil.After(t.ValidFrom) {
		return apperrors.Wrap("invalid_input", "validUntil must be after validFrom", nil)
	}
	return nil
}
