package report

import (
	"context"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/skyport/backoffice/internal/domain/auth"
	"github.com/skyport/backoffice/internal/domain/flight"
	"github.com/skyport/backoffice/internal/domain/ticket"
	apperrors "github.com/skyport/backoffice/pkg/errors"
	"github.com/skyport/backoffice/pkg/util"
)

// FlightSource is the slice of the flight store reports read from.
// Satisfied by flight.Repository.
type FlightSource interface {
	List(ctx context.Context, filter flight.Filter) ([]flight.Flight, int, error)
}

// TicketSource is the slice of the ticket store reports read from.
// Satisfied by ticket.Repository.
type TicketSource interface {
	List(ctx context.Context, filter ticket.Filter) ([]ticket.Ticket, int, error)
}

// ActivitySource is the slice of the login audit trail reports read from.
// Satisfied by auth.ActivityRepository.
type ActivitySource interface {
	List(ctx context.Context, offset, limit int) ([]auth.LoginActivity, int, error)
}

// Service produces operational and financial rollups.
type Service interface {
	Daily(ctx context.Context) (DailyReport, error)
	Weekly(ctx context.Context) (WeeklyReport, error)
	Monthly(ctx context.Context) (MonthlyReport, error)
	Performance(ctx context.Context) (PerformanceReport, error)
	Financial(ctx context.Context) (FinancialReport, error)
}

type service struct {
	flights    FlightSource
	tickets    TicketSource
	activities ActivitySource
	logger     *slog.Logger
	now        func() time.Time
}

// NewService wires up the report domain.
func NewService(flights FlightSource, tickets TicketSource, activities ActivitySource, logger *slog.Logger) Service {
	return &service{
		flights:    flights,
		tickets:    tickets,
		activities: activities,
		logger:     logger.With("component", "report.service"),
		now:        time.Now,
	}
}

func (s *service) Daily(ctx context.Context) (DailyReport, error) {
	now := s.now().UTC()
	today := util.StartOfDay(now)
	tomorrow := today.Add(24 * time.Hour)

	var (
		flights    []flight.Flight
		logins     []auth.LoginActivity
		fareSheets []ticket.Ticket
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		flights, _, err = s.flights.List(gctx, flight.Filter{DepartureFrom: today, DepartureTo: tomorrow})
		return err
	})
	g.Go(func() error {
		rows, _, err := s.activities.List(gctx, 0, 0)
		if err != nil {
			return err
		}
		for _, row := range rows {
			if !row.LoginTime.Before(today) && row.LoginTime.Before(tomorrow) {
				logins = append(logins, row)
			}
		}
		return nil
	})
	g.Go(func() error {
		rows, _, err := s.tickets.List(gctx, ticket.Filter{})
		if err != nil {
			return err
		}
		for _, row := range rows {
			if !row.LastUpdated.Before(today) && row.LastUpdated.Before(tomorrow) {
				fareSheets = append(fareSheets, row)
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return DailyReport{}, apperrors.Wrap("repository_failure", "unable to gather daily report data", err)
	}

	report := DailyReport{
		Date:        today.Format("2006-01-02"),
		Passengers:  passengerTotals(flights),
		Performance: Performance{OnTimePercentage: onTimePercentage(flights)},
		GeneratedAt: now,
	}
	for _, f := range flights {
		report.Flights.Total++
		switch f.Status {
		case flight.StatusScheduled:
			report.Flights.Scheduled++
		case flight.StatusOnTime:
			report.Flights.OnTime++
		case flight.StatusDelayed:
			report.Flights.Delayed++
		case flight.StatusCancelled:
			report.Flights.Cancelled++
		case flight.StatusDeparted:
			report.Flights.Departed++
		}
	}
	for _, row := range logins {
		report.LoginActivities.Total++
		if row.Success {
			report.LoginActivities.Successful++
		} else {
			report.LoginActivities.Failed++
		}
	}
	for _, t := range fareSheets {
		report.Tickets.Total++
		if t.IsActive {
			report.Tickets.Active++
		}
	}

	s.logger.Info("daily report generated", "date", report.Date, "flights", report.Flights.Total)
	return report, nil
}

func (s *service) Weekly(ctx context.Context) (WeeklyReport, error) {
	now := s.now().UTC()
	weekAgo := now.Add(-7 * 24 * time.Hour)

	flights, _, err := s.flights.List(ctx, flight.Filter{DepartureFrom: weekAgo, DepartureTo: now})
	if err != nil {
		return WeeklyReport{}, apperrors.Wrap("repository_failure", "unable to gather weekly report data", err)
	}

	passengers := passengerTotals(flights)
	report := WeeklyReport{
		Period: Period{From: weekAgo.Format("2006-01-02"), To: now.Format("2006-01-02")},
		Flights: WeeklyFlights{
			Total:           len(flights),
			DailyAverage:    int(math.Round(float64(len(flights)) / 7)),
			StatusBreakdown: statusBreakdown(flights),
		},
		Passengers: WeeklyPassengers{
			Total:        passengers.Total,
			DailyAverage: int(math.Round(float64(passengers.Total) / 7)),
		},
		Performance: Performance{OnTimePercentage: onTimePercentage(flights)},
		GeneratedAt: now,
	}

	s.logger.Info("weekly report generated", "from", report.Period.From, "flights", report.Flights.Total)
	return report, nil
}

func (s *service) Monthly(ctx context.Context) (MonthlyReport, error) {
	now := s.now().UTC()
	monthAgo := now.AddDate(0, -1, 0)

	flights, _, err := s.flights.List(ctx, flight.Filter{DepartureFrom: monthAgo, DepartureTo: now})
	if err != nil {
		return MonthlyReport{}, apperrors.Wrap("repository_failure", "unable to gather monthly report data", err)
	}

	passengers := passengerTotals(flights)
	report := MonthlyReport{
		Period: Period{From: monthAgo.Format("2006-01-02"), To: now.Format("2006-01-02")},
		Flights: MonthlyFlights{
			Total:             len(flights),
			StatusBreakdown:   statusBreakdown(flights),
			AircraftBreakdown: aircraftBreakdown(flights),
		},
		Passengers: MonthlyPassengers{
			Total:          passengers.Total,
			ClassBreakdown: passengers,
		},
		Performance: Performance{
			OnTimePercentage:    onTimePercentage(flights),
			AverageDelayMinutes: averageDelay(flights),
		},
		GeneratedAt: now,
	}

	s.logger.Info("monthly report generated", "from", report.Period.From, "flights", report.Flights.Total)
	return report, nil
}

func (s *service) Performance(ctx context.Context) (PerformanceReport, error) {
	flights, _, err := s.flights.List(ctx, flight.Filter{})
	if err != nil {
		return PerformanceReport{}, apperrors.Wrap("repository_failure", "unable to gather performance data", err)
	}

	report := PerformanceReport{
		Overall: OverallPerformance{
			TotalFlights:     len(flights),
			OnTimePercentage: onTimePercentage(flights),
			CancellationRate: percentage(countStatus(flights, flight.StatusCancelled), len(flights)),
		},
		ByAircraft: groupPerformance(flights, func(f flight.Flight) string { return f.Aircraft }),
		ByRoute:    groupPerformance(flights, func(f flight.Flight) string { return f.Origin + "-" + f.Destination }),
		Trends: Trends{
			Last7Days:  []int{},
			Last30Days: []int{},
			Note:       "Trend analysis requires more historical data",
		},
		GeneratedAt: s.now().UTC(),
	}

	s.logger.Info("performance report generated", "flights", report.Overall.TotalFlights)
	return report, nil
}

func (s *service) Financial(ctx context.Context) (FinancialReport, error) {
	active := true
	var fareSheets []ticket.Ticket
	var flights []flight.Flight

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fareSheets, _, err = s.tickets.List(gctx, ticket.Filter{Active: &active})
		return err
	})
	g.Go(func() error {
		var err error
		flights, _, err = s.flights.List(gctx, flight.Filter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return FinancialReport{}, apperrors.Wrap("repository_failure", "unable to gather financial data", err)
	}

	byNumber := make(map[string]flight.Flight, len(flights))
	for _, f := range flights {
		byNumber[f.FlightNumber] = f
	}

	var revenue RevenueByClass
	var sumEconomy, sumBusiness, sumFirst float64
	for _, t := range fareSheets {
		sumEconomy += t.Pricing.Economy.Current
		sumBusiness += t.Pricing.Business.Current
		sumFirst += t.Pricing.FirstClass.Current

		f, ok := byNumber[t.FlightNumber]
		if !ok {
			continue
		}
		revenue.Economy += float64(f.Passengers.Economy) * t.Pricing.Economy.Current
		revenue.Business += float64(f.Passengers.Business) * t.Pricing.Business.Current
		revenue.FirstClass += float64(f.Passengers.FirstClass) * t.Pricing.FirstClass.Current
	}

	report := FinancialReport{
		Revenue: Revenue{
			Total:    revenue.Economy + revenue.Business + revenue.FirstClass,
			ByClass:  revenue,
			Currency: ticket.DefaultCurrency,
		},
		Tickets:     TicketFinancials{Total: len(fareSheets)},
		GeneratedAt: s.now().UTC(),
	}
	if n := len(fareSheets); n > 0 {
		report.Tickets.AveragePrice = AveragePrices{
			Economy:    int(math.Round(sumEconomy / float64(n))),
			Business:   int(math.Round(sumBusiness / float64(n))),
			FirstClass: int(math.Round(sumFirst / float64(n))),
		}
	}

	s.logger.Info("financial report generated", "tickets", report.Tickets.Total, "revenue", report.Revenue.Total)
	return report, nil
}

func passengerTotals(flights []flight.Flight) ClassTotals {
	var totals ClassTotals
	for _, f := range flights {
		totals.Total += f.Passengers.Total
		totals.Economy += f.Passengers.Economy
		totals.Business += f.Passengers.Business
		totals.FirstClass += f.Passengers.FirstClass
	}
	return totals
}

func statusBreakdown(flights []flight.Flight) map[string]int {
	breakdown := make(map[string]int)
	for _, f := range flights {
		breakdown[f.Status]++
	}
	return breakdown
}

func aircraftBreakdown(flights []flight.Flight) map[string]int {
	breakdown := make(map[string]int)
	for _, f := range flights {
		breakdown[f.Aircraft]++
	}
	return breakdown
}

func countStatus(flights []flight.Flight, status string) int {
	count := 0
	for _, f := range flights {
		if f.Status == status {
			count++
		}
	}
	return count
}

func onTimePercentage(flights []flight.Flight) int {
	return percentage(countStatus(flights, flight.StatusOnTime), len(flights))
}

func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func averageDelay(flights []flight.Flight) int {
	var sum, count int
	for _, f := range flights {
		if f.Delay != nil && f.Delay.DurationMinutes > 0 {
			sum += f.Delay.DurationMinutes
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(count)))
}

func groupPerformance(flights []flight.Flight, keyOf func(flight.Flight) string) map[string]GroupPerformance {
	groups := make(map[string]GroupPerformance)
	for _, f := range flights {
		perf := groups[keyOf(f)]
		perf.Total++
		switch f.Status {
		case flight.StatusOnTime:
			perf.OnTime++
		case flight.StatusDelayed:
			perf.Delayed++
		case flight.StatusCancelled:
			perf.Cancelled++
		}
		groups[keyOf(f)] = perf
	}
	for key, perf := range groups {
		perf.OnTimePercentage = percentage(perf.OnTime, perf.Total)
		groups[key] = perf
	}
	return groups
}
