package ticket

import (
	"context"
	"errors"
)

// ErrTicketExists indicates a flight already has a fare sheet.
var ErrTicketExists = errors.New("ticket already exists for flight")

// Filter narrows repository listings. Route matches origin or destination
// case-insensitively as a substring.
type Filter struct {
	Route    string
	Aircraft string
	Active   *bool
	Offset   int
	Limit    int
}

// Repository abstracts ticket persistence.
type Repository interface {
	Create(ctx context.Context, t Ticket) (Ticket, error)
	GetByID(ctx context.Context, id string) (Ticket, bool, error)
	GetByFlight(ctx context.Context, flightNumber string, onlyActive bool) (Ticket, bool, error)
	Update(ctx context.Context, t Ticket) (Ticket, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, filter Filter) ([]Ticket, int, error)
}
