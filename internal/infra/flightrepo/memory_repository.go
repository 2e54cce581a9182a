package flightrepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/skyport/backoffice/internal/domain/flight"
)

// MemoryRepository provides an in-memory flight store for tests/dev.
type MemoryRepository struct {
	mu          sync.RWMutex
	flights     map[string]flight.Flight
	numberIndex map[string]string
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		flights:     make(map[string]flight.Flight),
		numberIndex: make(map[string]string),
	}
}

// Create stores the flight record.
func (r *MemoryRepository) Create(_ context.Context, f flight.Flight) (flight.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.numberIndex[f.FlightNumber]; exists {
		return flight.Flight{}, flight.ErrFlightNumberExists
	}
	r.flights[f.ID] = f
	r.numberIndex[f.FlightNumber] = f.ID
	return f, nil
}

// GetByID fetches by ID.
func (r *MemoryRepository) GetByID(_ context.Context, id string) (flight.Flight, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.flights[id]
	return f, ok, nil
}

// GetByNumber fetches by flight number.
func (r *MemoryRepository) GetByNumber(_ context.Context, number string) (flight.Flight, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id, ok := r.numberIndex[number]; ok {
		return r.flights[id], true, nil
	}
	return flight.Flight{}, false, nil
}

// Update replaces a stored flight.
func (r *MemoryRepository) Update(_ context.Context, f flight.Flight) (flight.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flights[f.ID] = f
	r.numberIndex[f.FlightNumber] = f.ID
	return f, nil
}

// Delete removes a flight; returns false when it did not exist.
func (r *MemoryRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.flights[id]
	if !ok {
		return false, nil
	}
	delete(r.flights, id)
	delete(r.numberIndex, f.FlightNumber)
	return true, nil
}

// List filters, sorts by departure time, and paginates.
func (r *MemoryRepository) List(_ context.Context, filter flight.Filter) ([]flight.Flight, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]flight.Flight, 0, len(r.flights))
	for _, f := range r.flights {
		if matches(f, filter) {
			matched = append(matched, f)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].DepartureTime.Before(matched[j].DepartureTime)
	})

	total := len(matched)
	if filter.Offset > 0 {
		if filter.Offset >= total {
			return []flight.Flight{}, total, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func matches(f flight.Flight, filter flight.Filter) bool {
	if filter.Status != "" && f.Status != filter.Status {
		return false
	}
	if filter.Origin != "" && !strings.Contains(strings.ToLower(f.Origin), strings.ToLower(filter.Origin)) {
		return false
	}
	if filter.Destination != "" && !strings.Contains(strings.ToLower(f.Destination), strings.ToLower(filter.Destination)) {
		return false
	}
	if !filter.DepartureFrom.IsZero() && f.DepartureTime.Before(filter.DepartureFrom) {
		return false
	}
	if !filter.DepartureTo.IsZero() && !f.DepartureTime.Before(filter.DepartureTo) {
		return false
	}
	return true
}

var _ flight.Repository = (*MemoryRepository)(nil)
