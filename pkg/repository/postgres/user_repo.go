package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kartik2406/accounts/pkg/auth"
)

// DB is the subset of pgxpool.Pool the repository needs. Tests satisfy it
// with pgxmock.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository implements auth.UserRepository backed by PostgreSQL (pgx).
// The unique index on email is the final arbiter for concurrent
// registrations with the same address.
type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) (*UserRepository, error) {
	repo := &UserRepository{db: db}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *UserRepository) ensureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			phone_no TEXT NOT NULL,
			zip_code TEXT NOT NULL,
			country TEXT NOT NULL,
			date_of_birth DATE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
	`)
	return err
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, first_name, last_name, email, password_hash, phone_no, zip_code, country, date_of_birth, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash,
		user.PhoneNo, user.ZipCode, user.Country, user.DateOfBirth, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return auth.ErrEmailExists
		}
		return err
	}
	return nil
}

// GetByEmail matches the email exactly as stored; no case normalization.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, password_hash, phone_no, zip_code, country, date_of_birth, created_at
		FROM users WHERE email = $1
	`, email)
	var user auth.User
	var dob, createdAt time.Time
	if err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.PasswordHash, &user.PhoneNo, &user.ZipCode, &user.Country, &dob, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrNotFound
		}
		return auth.User{}, err
	}
	user.DateOfBirth = dob.UTC()
	user.CreatedAt = createdAt.UTC()
	return user, nil
}
