package ticket

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skyport/backoffice/internal/domain/flight"
)

type stubRepo struct {
	tickets []Ticket
	created []Ticket
	updated []Ticket
}

func (r *stubRepo) Create(_ context.Context, t Ticket) (Ticket, error) {
	for _, existing := range r.tickets {
		if existing.FlightNumber == t.FlightNumber {
			return Ticket{}, ErrTicketExists
		}
	}
	r.tickets = append(r.tickets, t)
	r.created = append(r.created, t)
	return t, nil
}

func (r *stubRepo) GetByID(_ context.Context, id string) (Ticket, bool, error) {
	for _, t := range r.tickets {
		if t.ID == id {
			return t, true, nil
		}
	}
	return Ticket{}, false, nil
}

func (r *stubRepo) GetByFlight(_ context.Context, number string, onlyActive bool) (Ticket, bool, error) {
	for _, t := range r.tickets {
		if t.FlightNumber == number && (!onlyActive || t.IsActive) {
			return t, true, nil
		}
	}
	return Ticket{}, false, nil
}

func (r *stubRepo) Update(_ context.Context, t Ticket) (Ticket, error) {
	r.updated = append(r.updated, t)
	for i, existing := range r.tickets {
		if existing.ID == t.ID {
			r.tickets[i] = t
		}
	}
	return t, nil
}

func (r *stubRepo) Delete(_ context.Context, id string) (bool, error) {
	for i, t := range r.tickets {
		if t.ID == id {
			r.tickets = append(r.tickets[:i], r.tickets[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *stubRepo) List(_ context.Context, _ Filter) ([]Ticket, int, error) {
	return r.tickets, len(r.tickets), nil
}

type stubCatalog struct {
	flights []flight.Flight
}

func (c *stubCatalog) GetByNumber(_ context.Context, number string) (flight.Flight, bool, error) {
	for _, f := range c.flights {
		if f.FlightNumber == number {
			return f, true, nil
		}
	}
	return flight.Flight{}, false, nil
}

func (c *stubCatalog) List(_ context.Context, _ flight.Filter) ([]flight.Flight, int, error) {
	return c.flights, len(c.flights), nil
}

func newTestService(repo *stubRepo, catalog *stubCatalog) *service {
	idSeq := 0
	return &service{
		repo:    repo,
		flights: catalog,
		logger:  slog.New(slog.NewTextHandler(discard{}, nil)),
		now:     func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) },
		newID: func() string {
			idSeq++
			return string(rune('a' + idSeq - 1))
		},
		randFloat: func() float64 { return 0.5 },
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func dhakaLondon() flight.Flight {
	return flight.Flight{
		FlightNumber: "BG101",
		Origin:       "Dhaka",
		Destination:  "London",
		Aircraft:     "Boeing 787",
		Status:       flight.StatusScheduled,
	}
}

func validPricing() Pricing {
	return Pricing{
		Economy:    ClassPrice{Base: 30000, Current: 32000},
		Business:   ClassPrice{Base: 75000, Current: 80000},
		FirstClass: ClassPrice{Base: 120000, Current: 125000},
	}
}

func TestCreateInheritsRouteAndAircraft(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(repo, &stubCatalog{flights: []flight.Flight{dhakaLondon()}})

	created, err := svc.Create(context.Background(), CreateParams{
		FlightNumber: "bg101",
		Pricing:      validPricing(),
	}, 9)
	require.NoError(t, err)
	require.Equal(t, "BG101", created.FlightNumber)
	require.Equal(t, Route{Origin: "Dhaka", Destination: "London"}, created.Route)
	require.Equal(t, "Boeing 787", created.Aircraft)
	require.Equal(t, "BDT", created.Pricing.Economy.Currency)
	require.Equal(t, "Medium", created.Factors.Demand)
	require.Equal(t, "Regular", created.Factors.Season)
	require.True(t, created.IsActive)
	require.Equal(t, int64(9), created.UpdatedBy)
	require.Equal(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), created.ValidFrom)
	require.Equal(t, created.ValidFrom.Add(30*24*time.Hour), created.ValidUntil)
}

func TestCreateUnknownFlight(t *testing.T) {
	svc := newTestService(&stubRepo{}, &stubCatalog{})

	_, err := svc.Create(context.Background(), CreateParams{FlightNumber: "XX999", Pricing: validPricing()}, 1)
	require.Error(t, err)
	require.ErrorContains(t, err, "flight not found")
}

func TestCreateDuplicate(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(repo, &stubCatalog{flights: []flight.Flight{dhakaLondon()}})

	_, err := svc.Create(context.Background(), CreateParams{FlightNumber: "BG101", Pricing: validPricing()}, 1)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateParams{FlightNumber: "BG101", Pricing: validPricing()}, 1)
	require.Error(t, err)
	require.ErrorContains(t, err, "already exists")
}

func TestCreateRejectsNegativePrice(t *testing.T) {
	svc := newTestService(&stubRepo{}, &stubCatalog{flights: []flight.Flight{dhakaLondon()}})

	pricing := validPricing()
	pricing.Business.Current = -1
	_, err := svc.Create(context.Background(), CreateParams{FlightNumber: "BG101", Pricing: pricing}, 1)
	require.Error(t, err)
	require.ErrorContains(t, err, "negative")
}

func TestUpdatePricingStampsAuditFields(t *testing.T) {
	repo := &stubRepo{tickets: []Ticket{{
		ID:           "t1",
		FlightNumber: "BG101",
		Route:        Route{Origin: "Dhaka", Destination: "London"},
		Pricing:      validPricing(),
		Factors:      Factors{Demand: "Medium", Season: "Regular"},
		ValidFrom:    time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		IsActive:     true,
	}}}
	svc := newTestService(repo, &stubCatalog{})

	pricing := validPricing()
	pricing.Economy.Current = 35000
	updated, err := svc.UpdatePricing(context.Background(), "t1", pricing, Factors{Demand: "High", Season: "Peak"}, 4)
	require.NoError(t, err)
	require.Equal(t, float64(35000), updated.Pricing.Economy.Current)
	require.Equal(t, "High", updated.Factors.Demand)
	require.Equal(t, int64(4), updated.UpdatedBy)
	require.Equal(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), updated.LastUpdated)
}

func TestGetByFlightNumberOnlyActive(t *testing.T) {
	repo := &stubRepo{tickets: []Ticket{{ID: "t1", FlightNumber: "BG101", IsActive: false}}}
	svc := newTestService(repo, &stubCatalog{})

	_, err := svc.GetByFlightNumber(context.Background(), "bg101")
	require.Error(t, err)
	require.ErrorContains(t, err, "not found")
}

func TestGenerateSamplesSkipsCancelledAndExisting(t *testing.T) {
	cancelled := dhakaLondon()
	cancelled.FlightNumber = "BG102"
	cancelled.Status = flight.StatusCancelled
	covered := dhakaLondon()
	covered.FlightNumber = "BG103"

	repo := &stubRepo{tickets: []Ticket{{ID: "t0", FlightNumber: "BG103", IsActive: false}}}
	svc := newTestService(repo, &stubCatalog{flights: []flight.Flight{dhakaLondon(), cancelled, covered}})

	inserted, err := svc.GenerateSamples(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, inserted, 1)
	require.Equal(t, "BG101", inserted[0].FlightNumber)
}

func TestGenerateSamplesPricingShape(t *testing.T) {
	svc := newTestService(&stubRepo{}, &stubCatalog{flights: []flight.Flight{dhakaLondon()}})

	inserted, err := svc.GenerateSamples(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, inserted, 1)

	ticket := inserted[0]
	// randFloat pinned at 0.5: distance 3000, economy 3000*8+5000+15000.
	require.Equal(t, float64(3000), ticket.Factors.DistanceKm)
	require.Equal(t, float64(44000), ticket.Pricing.Economy.Base)
	require.Equal(t, float64(110000), ticket.Pricing.Business.Base)
	require.Equal(t, float64(176000), ticket.Pricing.FirstClass.Base)
	require.Equal(t, "BDT", ticket.Pricing.FirstClass.Currency)
	require.GreaterOrEqual(t, ticket.Pricing.Economy.Current, ticket.Pricing.Economy.Base)
	require.True(t, ticket.IsActive)
	require.Equal(t, "Medium", ticket.Factors.Demand)
	require.Equal(t, float64(55), ticket.Factors.FuelCost)
}

func TestPriceChangePct(t *testing.T) {
	price := ClassPrice{Base: 100, Current: 125}
	require.InDelta(t, 25, price.PriceChangePct(), 0.001)
	require.Zero(t, ClassPrice{Base: 0, Current: 50}.PriceChangePct())
}

func TestValidAt(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	ticket := Ticket{
		ValidFrom:  now.Add(-time.Hour),
		ValidUntil: now.Add(time.Hour),
		IsActive:   true,
	}
	require.True(t, ticket.ValidAt(now))
	require.False(t, ticket.ValidAt(now.Add(2*time.Hour)))
	ticket.IsActive = false
	require.False(t, ticket.ValidAt(now))
}

func TestStatsAggregation(t *testing.T) {
	repo := &stubRepo{tickets: []Ticket{
		{
			Route: Route{Origin: "Dhaka", Destination: "London"}, Aircraft: "Boeing 787", IsActive: true,
			Pricing: Pricing{Economy: ClassPrice{Current: 30000}, Business: ClassPrice{Current: 80000}, FirstClass: ClassPrice{Current: 120000}},
			Factors: Factors{Demand: "High"},
		},
		{
			Route: Route{Origin: "Dhaka", Destination: "London"}, Aircraft: "Boeing 777", IsActive: false,
			Pricing: Pricing{Economy: ClassPrice{Current: 40000}, Business: ClassPrice{Current: 90000}, FirstClass: ClassPrice{Current: 140000}},
			Factors: Factors{Demand: "Low"},
		},
		{
			Route: Route{Origin: "Dhaka", Destination: "Dubai"}, Aircraft: "Boeing 787", IsActive: true,
			Pricing: Pricing{Economy: ClassPrice{Current: 25000}},
			Factors: Factors{Demand: "High"},
		},
	}}
	svc := newTestService(repo, &stubCatalog{})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, stats.TotalTickets)
	require.Equal(t, 2, stats.ActiveTickets)
	require.Equal(t, 2, stats.AircraftBreakdown["Boeing 787"])
	require.Equal(t, 2, stats.DemandBreakdown["High"])
	require.Len(t, stats.RouteBreakdown, 2)
	require.Equal(t, "London", stats.RouteBreakdown[0].Destination)
	require.InDelta(t, 35000, stats.RouteBreakdown[0].AvgEconomy, 0.001)
}
