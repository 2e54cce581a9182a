package ticketrepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/skyport/backoffice/internal/domain/ticket"
)

// MemoryRepository provides an in-memory ticket store for tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	tickets map[string]ticket.Ticket
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tickets: make(map[string]ticket.Ticket)}
}

// Create stores the ticket record; one fare sheet per flight.
func (r *MemoryRepository) Create(_ context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.tickets {
		if existing.FlightNumber == t.FlightNumber {
			return ticket.Ticket{}, ticket.ErrTicketExists
		}
	}
	r.tickets[t.ID] = t
	return t, nil
}

// GetByID fetches by ID.
func (r *MemoryRepository) GetByID(_ context.Context, id string) (ticket.Ticket, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tickets[id]
	return t, ok, nil
}

// GetByFlight fetches the fare sheet for a flight number.
func (r *MemoryRepository) GetByFlight(_ context.Context, flightNumber string, onlyActive bool) (ticket.Ticket, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.tickets {
		if t.FlightNumber == flightNumber && (!onlyActive || t.IsActive) {
			return t, true, nil
		}
	}
	return ticket.Ticket{}, false, nil
}

// Update replaces a stored ticket.
func (r *MemoryRepository) Update(_ context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets[t.ID] = t
	return t, nil
}

// Delete removes a ticket; returns false when it did not exist.
func (r *MemoryRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[id]; !ok {
		return false, nil
	}
	delete(r.tickets, id)
	return true, nil
}

// List filters, sorts by most recently updated, and paginates.
func (r *MemoryRepository) List(_ context.Context, filter ticket.Filter) ([]ticket.Ticket, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]ticket.Ticket, 0, len(r.tickets))
	for _, t := range r.tickets {
		if matches(t, filter) {
			matched = append(matched, t)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].LastUpdated.After(matched[j].LastUpdated)
	})

	total := len(matched)
	if filter.Offset > 0 {
		if filter.Offset >= total {
			return []ticket.Ticket{}, total, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func matches(t ticket.Ticket, filter ticket.Filter) bool {
	if filter.Route != "" {
		route := strings.ToLower(filter.Route)
		if !strings.Contains(strings.ToLower(t.Route.Origin), route) &&
			!strings.Contains(strings.ToLower(t.Route.Destination), route) {
			return false
		}
	}
	if filter.Aircraft != "" && !strings.Contains(strings.ToLower(t.Aircraft), strings.ToLower(filter.Aircraft)) {
		return false
	}
	if filter.Active != nil && t.IsActive != *filter.Active {
		return false
	}
	return true
}

var _ ticket.Repository = (*MemoryRepository)(nil)
