package auth

import (
	"context"
	"errors"
)

// Common errors used by repository/use cases
var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailExists        = errors.New("email already exists")
	ErrMissingFields      = errors.New("all fields are required")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrInvalidDateOfBirth = errors.New("invalid date of birth")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserRepository abstracts persistence concerns from the domain layer.
// Implementations may be in-memory, SQL, NoSQL, etc.
type UserRepository interface {
	// Create persists a new user. Returns ErrEmailExists when the email is
	// already taken; the store's unique constraint is the final arbiter
	// even when two registrations race past the pre-check.
	Create(ctx context.Context, user User) error
	// GetByEmail looks up a user by exact email match (case-sensitive,
	// as stored). Returns ErrNotFound when absent.
	GetByEmail(ctx context.Context, email string) (User, error)
}
