package ticketrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skyport/backoffice/internal/domain/ticket"
)

// PostgresRepository persists tickets in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const ticketColumns = `
	id, flight_number, origin, destination, aircraft,
	economy_base, economy_current, economy_currency,
	business_base, business_current, business_currency,
	first_base, first_current, first_currency,
	distance_km, demand, season, fuel_cost,
	valid_from, valid_until, is_active, last_updated, updated_by`

// Create inserts a new ticket row.
func (r *PostgresRepository) Create(ctx context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	rows, err := r.pool.Query(ctx, `
		INSERT INTO tickets (
			id, flight_number, origin, destination, aircraft,
			economy_base, economy_current, economy_currency,
			business_base, business_current, business_currency,
			first_base, first_current, first_currency,
			distance_km, demand, season, fuel_cost,
			valid_from, valid_until, is_active, last_updated, updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING`+ticketColumns,
		t.ID, t.FlightNumber, t.Route.Origin, t.Route.Destination, t.Aircraft,
		t.Pricing.Economy.Base, t.Pricing.Economy.Current, t.Pricing.Economy.Currency,
		t.Pricing.Business.Base, t.Pricing.Business.Current, t.Pricing.Business.Currency,
		t.Pricing.FirstClass.Base, t.Pricing.FirstClass.Current, t.Pricing.FirstClass.Currency,
		t.Factors.DistanceKm, t.Factors.Demand, t.Factors.Season, t.Factors.FuelCost,
		t.ValidFrom, t.ValidUntil, t.IsActive, t.LastUpdated, t.UpdatedBy)
	if err != nil {
		return ticket.Ticket{}, translateError(err)
	}
	created, err := pgx.CollectOneRow(rows, scanTicket)
	if err != nil {
		return ticket.Ticket{}, translateError(err)
	}
	return created, nil
}

// GetByID fetches by primary key.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (ticket.Ticket, bool, error) {
	return r.getOne(ctx, `SELECT`+ticketColumns+` FROM tickets WHERE id = $1 LIMIT 1`, id)
}

// GetByFlight fetches the fare sheet for a flight number.
func (r *PostgresRepository) GetByFlight(ctx context.Context, flightNumber string, onlyActive bool) (ticket.Ticket, bool, error) {
	query := `SELECT` + ticketColumns + ` FROM tickets WHERE flight_number = $1`
	if onlyActive {
		query += ` AND is_active`
	}
	return r.getOne(ctx, query+` LIMIT 1`, flightNumber)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (ticket.Ticket, bool, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return ticket.Ticket{}, false, err
	}
	t, err := pgx.CollectOneRow(rows, scanTicket)
	if errors.Is(err, pgx.ErrNoRows) {
		return ticket.Ticket{}, false, nil
	}
	if err != nil {
		return ticket.Ticket{}, false, err
	}
	return t, true, nil
}

// Update rewrites every mutable column.
func (r *PostgresRepository) Update(ctx context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	rows, err := r.pool.Query(ctx, `
		UPDATE tickets SET
			origin = $2, destination = $3, aircraft = $4,
			economy_base = $5, economy_current = $6, economy_currency = $7,
			business_base = $8, business_current = $9, business_currency = $10,
			first_base = $11, first_current = $12, first_currency = $13,
			distance_km = $14, demand = $15, season = $16, fuel_cost = $17,
			valid_from = $18, valid_until = $19, is_active = $20, last_updated = $21, updated_by = $22
		WHERE id = $1
		RETURNING`+ticketColumns,
		t.ID, t.Route.Origin, t.Route.Destination, t.Aircraft,
		t.Pricing.Economy.Base, t.Pricing.Economy.Current, t.Pricing.Economy.Currency,
		t.Pricing.Business.Base, t.Pricing.Business.Current, t.Pricing.Business.Currency,
		t.Pricing.FirstClass.Base, t.Pricing.FirstClass.Current, t.Pricing.FirstClass.Currency,
		t.Factors.DistanceKm, t.Factors.Demand, t.Factors.Season, t.Factors.FuelCost,
		t.ValidFrom, t.ValidUntil, t.IsActive, t.LastUpdated, t.UpdatedBy)
	if err != nil {
		return ticket.Ticket{}, err
	}
	return pgx.CollectOneRow(rows, scanTicket)
}

// Delete removes a ticket row.
func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// List applies the filter with a windowed page plus a matching count.
func (r *PostgresRepository) List(ctx context.Context, filter ticket.Filter) ([]ticket.Ticket, int, error) {
	where, args := buildWhere(filter)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tickets`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT` + ticketColumns + ` FROM tickets` + where + ` ORDER BY last_updated DESC`
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
	tickets, err := pgx.CollectRows(rows, scanTicket)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

func buildWhere(filter ticket.Filter) (string, []any) {
	var clauses []string
	var args []any

	if filter.Route != "" {
		args = append(args, filter.Route)
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(origin ILIKE '%%' || $%d || '%%' OR destination ILIKE '%%' || $%d || '%%')", n, n))
	}
	if filter.Aircraft != "" {
		args = append(args, filter.Aircraft)
		clauses = append(clauses, fmt.Sprintf("aircraft ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		clauses = append(clauses, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func scanTicket(row pgx.CollectableRow) (ticket.Ticket, error) {
	var t ticket.Ticket
	var validFrom, validUntil, lastUpdated time.Time
	err := row.Scan(
		&t.ID, &t.FlightNumber, &t.Route.Origin, &t.Route.Destination, &t.Aircraft,
		&t.Pricing.Economy.Base, &t.Pricing.Economy.Current, &t.Pricing.Economy.Currency,
		&t.Pricing.Business.Base, &t.Pricing.Business.Current, &t.Pricing.Business.Currency,
		&t.Pricing.FirstClass.Base, &t.Pricing.FirstClass.Current, &t.Pricing.FirstClass.Currency,
		&t.Factors.DistanceKm, &t.Factors.Demand, &t.Factors.Season, &t.Factors.FuelCost,
		&validFrom, &validUntil, &t.IsActive, &lastUpdated, &t.UpdatedBy,
	)
	if err != nil {
		return ticket.Ticket{}, err
	}
	t.ValidFrom = validFrom.UTC()
	t.ValidUntil = validUntil.UTC()
	t.LastUpdated = lastUpdated.UTC()
	return t, nil
}

func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ticket.ErrTicketExists
	}
	return err
}

var _ ticket.Repository = (*PostgresRepository)(nil)
