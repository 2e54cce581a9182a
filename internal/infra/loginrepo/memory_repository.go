package loginrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/skyport/backoffice/internal/domain/auth"
)

// MemoryRepository provides an in-memory login activity store for tests/dev.
type MemoryRepository struct {
	mu   sync.RWMutex
	rows []auth.LoginActivity
	seq  int64
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Record appends an activity row.
func (r *MemoryRepository) Record(_ context.Context, activity auth.LoginActivity) (auth.LoginActivity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	activity.ID = r.seq
	r.rows = append(r.rows, activity)
	return activity, nil
}

// CountRecentFailures counts failed attempts for an email since the cutoff.
func (r *MemoryRepository) CountRecentFailures(_ context.Context, email string, since time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, row := range r.rows {
		if row.Email == email && !row.Success && !row.LoginTime.Before(since) {
			count++
		}
	}
	return count, nil
}

// MarkLogout stamps the logout time on an activity row.
func (r *MemoryRepository) MarkLogout(_ context.Context, activityID int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == activityID {
			r.rows[i].LogoutTime = &at
			return nil
		}
	}
	return nil
}

// List returns activity rows newest first.
func (r *MemoryRepository) List(_ context.Context, offset, limit int) ([]auth.LoginActivity, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := make([]auth.LoginActivity, len(r.rows))
	copy(rows, r.rows)
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].LoginTime.After(rows[j].LoginTime)
	})

	total := len(rows)
	if offset >= total {
		return []auth.LoginActivity{}, total, nil
	}
	rows = rows[offset:]
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, total, nil
}

var _ auth.ActivityRepository = (*MemoryRepository)(nil)
