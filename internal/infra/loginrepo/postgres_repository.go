package loginrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skyport/backoffice/internal/domain/auth"
)

// PostgresRepository persists login activity in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const activityColumns = `
	id, user_id, email, login_time, ip_address, user_agent,
	success, failure_reason, logout_time`

// Record appends an activity row.
func (r *PostgresRepository) Record(ctx context.Context, activity auth.LoginActivity) (auth.LoginActivity, error) {
	var userID *int64
	if activity.UserID != 0 {
		userID = &activity.UserID
	}
	var reason *string
	if activity.FailureReason != "" {
		reason = &activity.FailureReason
	}
	rows, err := r.pool.Query(ctx, `
		INSERT INTO login_activity (user_id, email, login_time, ip_address, user_agent, success, failure_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING`+activityColumns,
		userID, activity.Email, activity.LoginTime, activity.IPAddress, activity.UserAgent,
		activity.Success, reason)
	if err != nil {
		return auth.LoginActivity{}, err
	}
	return pgx.CollectOneRow(rows, scanActivity)
}

// CountRecentFailures counts failed attempts for an email since the cutoff.
func (r *PostgresRepository) CountRecentFailures(ctx context.Context, email string, since time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM login_activity
		WHERE email = $1 AND success = FALSE AND login_time >= $2
	`, email, since).Scan(&count)
	return count, err
}

// MarkLogout stamps the logout time on an activity row.
func (r *PostgresRepository) MarkLogout(ctx context.Context, activityID int64, at time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE login_activity SET logout_time = $2 WHERE id = $1`, activityID, at)
	return err
}

// List returns activity rows newest first.
func (r *PostgresRepository) List(ctx context.Context, offset, limit int) ([]auth.LoginActivity, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM login_activity`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT` + activityColumns + ` FROM login_activity ORDER BY login_time DESC`
	var args []any
	if limit > 0 {
		args = append(args, limit)
		query += " LIMIT $1"
	}
	if offset > 0 {
		args = append(args, offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	activities, err := pgx.CollectRows(rows, scanActivity)
	if err != nil {
		return nil, 0, err
	}
	return activities, total, nil
}

func scanActivity(row pgx.CollectableRow) (auth.LoginActivity, error) {
	var activity auth.LoginActivity
	var userID *int64
	var ipAddress, userAgent, reason *string
	var loginTime time.Time
	var logoutTime *time.Time
	err := row.Scan(
		&activity.ID, &userID, &activity.Email, &loginTime, &ipAddress, &userAgent,
		&activity.Success, &reason, &logoutTime,
	)
	if err != nil {
		return auth.LoginActivity{}, err
	}
	if userID != nil {
		activity.UserID = *userID
	}
	if ipAddress != nil {
		activity.IPAddress = *ipAddress
	}
	if userAgent != nil {
		activity.UserAgent = *userAgent
	}
	if reason != nil {
		activity.FailureReason = *reason
	}
	activity.LoginTime = loginTime.UTC()
	if logoutTime != nil {
		t := logoutTime.UTC()
		activity.LogoutTime = &t
	}
	return activity, nil
}

var _ auth.ActivityRepository = (*PostgresRepository)(nil)
