package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Manu2954/Buildora-sub000/internal/auth"
	"github.com/Manu2954/Buildora-sub000/internal/domain"
	"github.com/Manu2954/Buildora-sub000/internal/repository"
)

// AuthService backs both token audiences, shoppers and admin operators.
// The flows are identical; only the role claim differs.
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
	log    zerolog.Logger
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, "", ErrInvalidCredentials
	}
	if len(password) < 6 {
		return nil, "", ErrWeakPassword
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
		IsActive:     true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	return s.login(ctx, email, password, false)
}

// AdminLogin rejects non-admin accounts with the same error as a bad
// password so the endpoint doesn't reveal which emails hold admin roles.
func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*domain.User, string, error) {
	return s.login(ctx, email, password, true)
}

func (s *AuthService) login(ctx context.Context, email, password string, wantAdmin bool) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}
	if wantAdmin && user.Role != domain.RoleAdmin {
		return nil, "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", ErrAccountDisabled
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login succeeded")
	return user, token, nil
}

// Profile exchanges a verified token subject for the current identity.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	return user, nil
}
