package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manu2954/Buildora-sub000/internal/auth"
	"github.com/Manu2954/Buildora-sub000/internal/domain"
)

func newAuthForTest(users ...*domain.User) *AuthService {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(newFakeUserRepo(users...), tokens, zerolog.Nop())
}

func hashedUser(t *testing.T, email, password string, role domain.Role, active bool) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &domain.User{
		ID:           "user-" + email,
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     active,
	}
}

func TestRegisterIssuesCustomerToken(t *testing.T) {
	svc := newAuthForTest()

	user, token, err := svc.Register(context.Background(), "Ravi", "ravi@example.com", "s3cret!")
	require.NoError(t, err)

	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEmpty(t, token)
	// Password never leaves as plaintext.
	assert.NotEqual(t, "s3cret!", user.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthForTest(hashedUser(t, "ravi@example.com", "whatever", domain.RoleCustomer, true))

	_, _, err := svc.Register(context.Background(), "Ravi", "ravi@example.com", "s3cret!")
	assert.Error(t, err)
}

func TestRegisterWeakPassword(t *testing.T) {
	svc := newAuthForTest()

	_, _, err := svc.Register(context.Background(), "Ravi", "ravi@example.com", "12345")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthForTest(hashedUser(t, "ravi@example.com", "correct-horse", domain.RoleCustomer, true))

	_, _, err := svc.Login(context.Background(), "ravi@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmailLooksLikeBadPassword(t *testing.T) {
	svc := newAuthForTest()

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	svc := newAuthForTest(hashedUser(t, "ravi@example.com", "correct-horse", domain.RoleCustomer, false))

	_, _, err := svc.Login(context.Background(), "ravi@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestLoginNormalizesEmail(t *testing.T) {
	svc := newAuthForTest(hashedUser(t, "ravi@example.com", "correct-horse", domain.RoleCustomer, true))

	user, token, err := svc.Login(context.Background(), "  Ravi@Example.COM ", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "ravi@example.com", user.Email)
	assert.NotEmpty(t, token)
}

func TestAdminLoginRejectsCustomerWithoutRevealingRole(t *testing.T) {
	svc := newAuthForTest(hashedUser(t, "ravi@example.com", "correct-horse", domain.RoleCustomer, true))

	_, _, err := svc.AdminLogin(context.Background(), "ravi@example.com", "correct-horse")
	// Same error as a wrong password so the endpoint can't be used to
	// probe which accounts are admins.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminLoginAcceptsAdmin(t *testing.T) {
	svc := newAuthForTest(hashedUser(t, "ops@example.com", "correct-horse", domain.RoleAdmin, true))

	user, token, err := svc.AdminLogin(context.Background(), "ops@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.NotEmpty(t, token)
}

func TestProfileDisabledAccount(t *testing.T) {
	u := hashedUser(t, "ravi@example.com", "correct-horse", domain.RoleCustomer, false)
	svc := newAuthForTest(u)

	_, err := svc.Profile(context.Background(), u.ID)
	assert.ErrorIs(t, err, ErrAccountDisabled)
}
