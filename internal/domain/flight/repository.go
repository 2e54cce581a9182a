package flight

import (
	"context"
	"errors"
	"time"
)

// ErrFlightNumberExists indicates a duplicate flight number.
var ErrFlightNumberExists = errors.New("flight number already exists")

// Filter narrows repository listings. Zero values mean "no constraint";
// origin/destination match case-insensitively as substrings.
type Filter struct {
	Status        string
	Origin        string
	Destination   string
	DepartureFrom time.Time
	DepartureTo   time.Time
	Offset        int
	Limit         int
}

// Repository abstracts flight persistence.
type Repository interface {
	Create(ctx context.Context, f Flight) (Flight, error)
	GetByID(ctx context.Context, id string) (Flight, bool, error)
	GetByNumber(ctx context.Context, flightNumber string) (Flight, bool, error)
	Update(ctx context.Context, f Flight) (Flight, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, filter Filter) ([]Flight, int, error)
}
