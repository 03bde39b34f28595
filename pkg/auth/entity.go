package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a domain entity representing a registered account.
type User struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	PhoneNo      string
	ZipCode      string
	Country      string
	DateOfBirth  time.Time
	CreatedAt    time.Time
}

// PublicUser is the projection of a User that may appear in responses.
// The password hash never leaves the domain layer.
type PublicUser struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Public returns the response-safe projection of the user.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID.String(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}
