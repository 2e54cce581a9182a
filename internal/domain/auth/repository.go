package auth

import (
	"context"
	"time"
)

// Repository abstracts user persistence.
type Repository interface {
	Create(ctx context.Context, user User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	GetByID(ctx context.Context, id int64) (User, bool, error)
	Update(ctx context.Context, user User) (User, error)
}

// ActivityRepository abstracts the login audit trail.
type ActivityRepository interface {
	Record(ctx context.Context, activity LoginActivity) (LoginActivity, error)
	CountRecentFailures(ctx context.Context, email string, since time.Time) (int, error)
	MarkLogout(ctx context.Context, activityID int64, at time.Time) error
	List(ctx context.Context, offset, limit int) ([]LoginActivity, int, error)
}
