package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kartik2406/accounts/pkg/auth"
)

type memoryRepo struct {
	mu        sync.Mutex
	users     map[string]auth.User
	createErr error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[string]auth.User)}
}

func (r *memoryRepo) Create(_ context.Context, user auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.users[user.Email]; ok {
		return auth.ErrEmailExists
	}
	r.users[user.Email] = user
	return nil
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[email]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return user, nil
}

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Generate(_ context.Context, _ auth.User) (string, error) {
	return s.token, s.err
}

func validInput() auth.RegisterInput {
	return auth.RegisterInput{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "a@x.com",
		Password:    "pass1234",
		PhoneNo:     "5551234567",
		ZipCode:     "10001",
		Country:     "UK",
		DateOfBirth: "1990-12-10",
	}
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	repo := newMemoryRepo()
	svc := auth.NewAuthService(repo, staticTokens{token: "tok"}, bcrypt.MinCost)

	user, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEqual(t, "pass1234", user.PasswordHash, "plaintext must never be stored")
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass1234")))
	assert.Equal(t, "a@x.com", user.Email)
	assert.False(t, user.DateOfBirth.IsZero())

	stored, err := repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestRegister_MissingFields(t *testing.T) {
	t.Parallel()

	mutations := map[string]func(*auth.RegisterInput){
		"firstName":   func(in *auth.RegisterInput) { in.FirstName = "" },
		"lastName":    func(in *auth.RegisterInput) { in.LastName = "" },
		"email":       func(in *auth.RegisterInput) { in.Email = "" },
		"password":    func(in *auth.RegisterInput) { in.Password = "" },
		"phoneNo":     func(in *auth.RegisterInput) { in.PhoneNo = "" },
		"zipCode":     func(in *auth.RegisterInput) { in.ZipCode = "" },
		"country":     func(in *auth.RegisterInput) { in.Country = "" },
		"dateOfBirth": func(in *auth.RegisterInput) { in.DateOfBirth = "" },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			svc := auth.NewAuthService(newMemoryRepo(), staticTokens{token: "tok"}, bcrypt.MinCost)
			in := validInput()
			mutate(&in)
			_, err := svc.Register(context.Background(), in)
			assert.ErrorIs(t, err, auth.ErrMissingFields)
		})
	}
}

func TestRegister_PasswordTooShort(t *testing.T) {
	t.Parallel()

	svc := auth.NewAuthService(newMemoryRepo(), staticTokens{token: "tok"}, bcrypt.MinCost)
	in := validInput()
	in.Password = "abcde"

	_, err := svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, auth.ErrPasswordTooShort)
}

func TestRegister_InvalidDateOfBirth(t *testing.T) {
	t.Parallel()

	svc := auth.NewAuthService(newMemoryRepo(), staticTokens{token: "tok"}, bcrypt.MinCost)
	in := validInput()
	in.DateOfBirth = "not-a-date"

	_, err := svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, auth.ErrInvalidDateOfBirth)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := newMemoryRepo()
	svc := auth.NewAuthService(repo, staticTokens{token: "tok"}, bcrypt.MinCost)

	_, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validInput())
	assert.ErrorIs(t, err, auth.ErrEmailExists)
}

// The pre-check can race; the store's unique constraint is the final
// arbiter and its error must surface unchanged.
func TestRegister_InsertRaceLosesToConstraint(t *testing.T) {
	t.Parallel()

	repo := newMemoryRepo()
	repo.createErr = auth.ErrEmailExists
	svc := auth.NewAuthService(repo, staticTokens{token: "tok"}, bcrypt.MinCost)

	_, err := svc.Register(context.Background(), validInput())
	assert.ErrorIs(t, err, auth.ErrEmailExists)
}

func TestRegister_EmailIsCaseSensitive(t *testing.T) {
	t.Parallel()

	repo := newMemoryRepo()
	svc := auth.NewAuthService(repo, staticTokens{token: "tok"}, bcrypt.MinCost)

	_, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	in := validInput()
	in.Email = "A@X.COM"
	_, err = svc.Register(context.Background(), in)
	assert.NoError(t, err, "emails match exactly as stored")
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	repo := newMemoryRepo()
	svc := auth.NewAuthService(repo, staticTokens{token: "signed-token"}, bcrypt.MinCost)

	registered, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), "a@x.com", "pass1234")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", result.Token)
	assert.Equal(t, registered.ID, result.User.ID)

	// verification is idempotent
	again, err := svc.Login(context.Background(), "a@x.com", "pass1234")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, again.User.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	svc := auth.NewAuthService(newMemoryRepo(), staticTokens{token: "tok"}, bcrypt.MinCost)
	_, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "a@x.com", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Parallel()

	svc := auth.NewAuthService(newMemoryRepo(), staticTokens{token: "tok"}, bcrypt.MinCost)
	_, err := svc.Login(context.Background(), "nobody@x.com", "pass1234")
	assert.ErrorIs(t, err, auth.ErrNotFound)
}

func TestLogin_MissingFields(t *testing.T) {
	t.Parallel()

	svc := auth.NewAuthService(newMemoryRepo(), staticTokens{token: "tok"}, bcrypt.MinCost)

	_, err := svc.Login(context.Background(), "", "pass1234")
	assert.ErrorIs(t, err, auth.ErrMissingFields)

	_, err = svc.Login(context.Background(), "a@x.com", "")
	assert.ErrorIs(t, err, auth.ErrMissingFields)
}

func TestLogin_TokenGenerationFailure(t *testing.T) {
	t.Parallel()

	repo := newMemoryRepo()
	svc := auth.NewAuthService(repo, staticTokens{err: errors.New("signing failed")}, bcrypt.MinCost)
	_, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "a@x.com", "pass1234")
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAccount(t *testing.T) {
	t.Parallel()

	repo := newMemoryRepo()
	svc := auth.NewAuthService(repo, staticTokens{token: "tok"}, bcrypt.MinCost)
	registered, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	user, err := svc.Account(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = svc.Account(context.Background(), "gone@x.com")
	assert.ErrorIs(t, err, auth.ErrNotFound)

	_, err = svc.Account(context.Background(), "")
	assert.ErrorIs(t, err, auth.ErrNotFound)
}

func TestPublicProjectionOmitsHash(t *testing.T) {
	t.Parallel()

	svc := auth.NewAuthService(newMemoryRepo(), staticTokens{token: "tok"}, bcrypt.MinCost)
	user, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	pub := user.Public()
	assert.Equal(t, user.ID.String(), pub.ID)
	assert.Equal(t, "Ada", pub.FirstName)
	assert.Equal(t, "Lovelace", pub.LastName)
	assert.Equal(t, "a@x.com", pub.Email)
}
