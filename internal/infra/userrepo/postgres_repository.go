package userrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skyport/backoffice/internal/domain/auth"
)

// PostgresRepository persists users in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const userColumns = `
	id, first_name, last_name, email, date_of_birth, password_hash,
	role, is_active, last_login, created_at, updated_at`

// Create inserts a new user row.
func (r *PostgresRepository) Create(ctx context.Context, user auth.User) (auth.User, error) {
	rows, err := r.pool.Query(ctx, `
		INSERT INTO users (first_name, last_name, email, date_of_birth, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING`+userColumns,
		user.FirstName, user.LastName, user.Email, user.DateOfBirth, user.PasswordHash,
		user.Role, user.IsActive, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return auth.User{}, translateError(err)
	}
	created, err := pgx.CollectOneRow(rows, scanUser)
	if err != nil {
		return auth.User{}, translateError(err)
	}
	return created, nil
}

// GetByEmail fetches a user by email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (auth.User, bool, error) {
	return r.getOne(ctx, `SELECT`+userColumns+` FROM users WHERE email = $1 LIMIT 1`, email)
}

// GetByID fetches by primary key.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (auth.User, bool, error) {
	return r.getOne(ctx, `SELECT`+userColumns+` FROM users WHERE id = $1 LIMIT 1`, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (auth.User, bool, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return auth.User{}, false, err
	}
	user, err := pgx.CollectOneRow(rows, scanUser)
	if errors.Is(err, pgx.ErrNoRows) {
		return auth.User{}, false, nil
	}
	if err != nil {
		return auth.User{}, false, err
	}
	return user, true, nil
}

// Update rewrites every mutable column.
func (r *PostgresRepository) Update(ctx context.Context, user auth.User) (auth.User, error) {
	rows, err := r.pool.Query(ctx, `
		UPDATE users SET
			first_name = $2, last_name = $3, email = $4, date_of_birth = $5,
			password_hash = $6, role = $7, is_active = $8, last_login = $9, updated_at = $10
		WHERE id = $1
		RETURNING`+userColumns,
		user.ID, user.FirstName, user.LastName, user.Email, user.DateOfBirth,
		user.PasswordHash, user.Role, user.IsActive, user.LastLogin, user.UpdatedAt)
	if err != nil {
		return auth.User{}, translateError(err)
	}
	updated, err := pgx.CollectOneRow(rows, scanUser)
	if err != nil {
		return auth.User{}, translateError(err)
	}
	return updated, nil
}

func scanUser(row pgx.CollectableRow) (auth.User, error) {
	var user auth.User
	var lastLogin *time.Time
	var dob, created, updated time.Time
	err := row.Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email, &dob, &user.PasswordHash,
		&user.Role, &user.IsActive, &lastLogin, &created, &updated,
	)
	if err != nil {
		return auth.User{}, err
	}
	user.DateOfBirth = dob.UTC()
	user.CreatedAt = created.UTC()
	user.UpdatedAt = updated.UTC()
	if lastLogin != nil {
		t := lastLogin.UTC()
		user.LastLogin = &t
	}
	return user, nil
}

func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return auth.ErrEmailExists
	}
	return err
}

var _ auth.Repository = (*PostgresRepository)(nil)
