package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is enforced at registration only. Existing accounts
// with shorter passwords still authenticate.
const MinPasswordLength = 6

// RegisterInput carries the candidate account fields for registration.
// DateOfBirth is the raw client value; parsing happens in Register.
type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	PhoneNo     string
	ZipCode     string
	Country     string
	DateOfBirth string
}

// LoginResult bundles the authenticated user with a freshly issued token.
type LoginResult struct {
	User  User
	Token string
}

// AuthUseCase describes registration/authentication behavior.
type AuthUseCase interface {
	Register(ctx context.Context, in RegisterInput) (User, error)
	Login(ctx context.Context, email, password string) (LoginResult, error)
	Account(ctx context.Context, email string) (User, error)
}

type authService struct {
	repo       UserRepository
	tokens     TokenGenerator
	bcryptCost int
}

// NewAuthService returns default implementation of AuthUseCase.
// bcryptCost below bcrypt.MinCost falls back to bcrypt.DefaultCost.
func NewAuthService(repo UserRepository, tokens TokenGenerator, bcryptCost int) AuthUseCase {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authService{repo: repo, tokens: tokens, bcryptCost: bcryptCost}
}

// Register validates input, hashes the password, and persists the account.
// No token is issued at registration; login is a separate step.
func (s *authService) Register(ctx context.Context, in RegisterInput) (User, error) {
	for _, field := range []string{
		in.FirstName, in.LastName, in.Email,
		in.PhoneNo, in.ZipCode, in.Country, in.DateOfBirth,
	} {
		if strings.TrimSpace(field) == "" {
			return User{}, ErrMissingFields
		}
	}
	if in.Password == "" {
		return User{}, ErrMissingFields
	}
	if len([]rune(in.Password)) < MinPasswordLength {
		return User{}, ErrPasswordTooShort
	}

	dob, err := parseDateOfBirth(in.DateOfBirth)
	if err != nil {
		return User{}, ErrInvalidDateOfBirth
	}

	// Best-effort fast path; the insert's unique constraint closes the race.
	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return User{}, ErrEmailExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.New(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(passwordHash),
		PhoneNo:      in.PhoneNo,
		ZipCode:      in.ZipCode,
		Country:      in.Country,
		DateOfBirth:  dob,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Login verifies credentials and issues a session token on success.
// Unknown email and wrong password fail distinctly (ErrNotFound vs
// ErrInvalidCredentials).
func (s *authService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return LoginResult{}, ErrMissingFields
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return LoginResult{}, ErrInvalidCredentials
	}
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: user, Token: token}, nil
}

// Account resolves the account behind a verified token's email claim.
func (s *authService) Account(ctx context.Context, email string) (User, error) {
	if strings.TrimSpace(email) == "" {
		return User{}, ErrNotFound
	}
	return s.repo.GetByEmail(ctx, email)
}

func parseDateOfBirth(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDateOfBirth
}
