package flightrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skyport/backoffice/internal/domain/flight"
)

// PostgresRepository persists flights in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const flightColumns = `
	id, flight_number, airline, aircraft, origin, destination, transit_points,
	departure_time, arrival_time, platform, status, delay_minutes, delay_reason,
	passengers_total, passengers_economy, passengers_business, passengers_first,
	fuel_status, created_by, created_at, updated_at`

// Create inserts a new flight row.
func (r *PostgresRepository) Create(ctx context.Context, f flight.Flight) (flight.Flight, error) {
	var delayMinutes *int
	var delayReason *string
	if f.Delay != nil {
		delayMinutes = &f.Delay.DurationMinutes
		delayReason = &f.Delay.Reason
	}
	rows, err := r.pool.Query(ctx, `
		INSERT INTO flights (
			id, flight_number, airline, aircraft, origin, destination, transit_points,
			departure_time, arrival_time, platform, status, delay_minutes, delay_reason,
			passengers_total, passengers_economy, passengers_business, passengers_first,
			fuel_status, created_by, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING`+flightColumns, f.ID, f.FlightNumber, f.Airline, f.Aircraft, f.Origin, f.Destination, f.TransitPoints,
		f.DepartureTime, f.ArrivalTime, f.Platform, f.Status, delayMinutes, delayReason,
		f.Passengers.Total, f.Passengers.Economy, f.Passengers.Business, f.Passengers.FirstClass,
		f.FuelStatus, f.CreatedBy, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		return flight.Flight{}, translateError(err)
	}
	created, err := pgx.CollectOneRow(rows, scanFlight)
	if err != nil {
		return flight.Flight{}, translateError(err)
	}
	return created, nil
}

// GetByID fetches by primary key.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (flight.Flight, bool, error) {
	return r.getOne(ctx, `SELECT`+flightColumns+` FROM flights WHERE id = $1 LIMIT 1`, id)
}

// GetByNumber fetches by flight number.
func (r *PostgresRepository) GetByNumber(ctx context.Context, number string) (flight.Flight, bool, error) {
	return r.getOne(ctx, `SELECT`+flightColumns+` FROM flights WHERE flight_number = $1 LIMIT 1`, number)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (flight.Flight, bool, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return flight.Flight{}, false, err
	}
	f, err := pgx.CollectOneRow(rows, scanFlight)
	if errors.Is(err, pgx.ErrNoRows) {
		return flight.Flight{}, false, nil
	}
	if err != nil {
		return flight.Flight{}, false, err
	}
	return f, true, nil
}

// Update rewrites every mutable column.
func (r *PostgresRepository) Update(ctx context.Context, f flight.Flight) (flight.Flight, error) {
	var delayMinutes *int
	var delayReason *string
	if f.Delay != nil {
		delayMinutes = &f.Delay.DurationMinutes
		delayReason = &f.Delay.Reason
	}
	rows, err := r.pool.Query(ctx, `
		UPDATE flights SET
			airline = $2, aircraft = $3, origin = $4, destination = $5, transit_points = $6,
			departure_time = $7, arrival_time = $8, platform = $9, status = $10,
			delay_minutes = $11, delay_reason = $12,
			passengers_total = $13, passengers_economy = $14, passengers_business = $15, passengers_first = $16,
			fuel_status = $17, updated_at = $18
		WHERE id = $1
		RETURNING`+flightColumns, f.ID, f.Airline, f.Aircraft, f.Origin, f.Destination, f.TransitPoints,
		f.DepartureTime, f.ArrivalTime, f.Platform, f.Status, delayMinutes, delayReason,
		f.Passengers.Total, f.Passengers.Economy, f.Passengers.Business, f.Passengers.FirstClass,
		f.FuelStatus, f.UpdatedAt)
	if err != nil {
		return flight.Flight{}, err
	}
	return pgx.CollectOneRow(rows, scanFlight)
}

// Delete removes a flight row.
func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM flights WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// List applies the filter with a windowed page plus a matching count.
func (r *PostgresRepository) List(ctx context.Context, filter flight.Filter) ([]flight.Flight, int, error) {
	where, args := buildWhere(filter)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM flights`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT` + flightColumns + ` FROM flights` + where + ` ORDER BY departure_time`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	flights, err := pgx.CollectRows(rows, scanFlight)
	if err != nil {
		return nil, 0, err
	}
	return flights, total, nil
}

func buildWhere(filter flight.Filter) (string, []any) {
	var clauses []string
	var args []any
	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.Origin != "" {
		add("origin ILIKE '%%' || $%d || '%%'", filter.Origin)
	}
	if filter.Destination != "" {
		add("destination ILIKE '%%' || $%d || '%%'", filter.Destination)
	}
	if !filter.DepartureFrom.IsZero() {
		add("departure_time >= $%d", filter.DepartureFrom)
	}
	if !filter.DepartureTo.IsZero() {
		add("departure_time < $%d", filter.DepartureTo)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func scanFlight(row pgx.CollectableRow) (flight.Flight, error) {
	var f flight.Flight
	var delayMinutes *int
	var delayReason *string
	var departure, arrival, created, updated time.Time
	err := row.Scan(
		&f.ID, &f.FlightNumber, &f.Airline, &f.Aircraft, &f.Origin, &f.Destination, &f.TransitPoints,
		&departure, &arrival, &f.Platform, &f.Status, &delayMinutes, &delayReason,
		&f.Passengers.Total, &f.Passengers.Economy, &f.Passengers.Business, &f.Passengers.FirstClass,
		&f.FuelStatus, &f.CreatedBy, &created, &updated,
	)
	if err != nil {
		return flight.Flight{}, err
	}
	if delayMinutes != nil {
		f.Delay = &flight.Delay{DurationMinutes: *delayMinutes}
		if delayReason != nil {
			f.Delay.Reason = *delayReason
		}
	}
	f.DepartureTime = departure.UTC()
	f.ArrivalTime = arrival.UTC()
	f.CreatedAt = created.UTC()
	f.UpdatedAt = updated.UTC()
	return f, nil
}

// translateError maps the unique-violation class onto the domain error.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return flight.ErrFlightNumberExists
	}
	return err
}

var _ flight.Repository = (*PostgresRepository)(nil)
