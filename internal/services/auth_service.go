package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"saldo/internal/auth"
	"saldo/internal/core"
	applog "saldo/internal/log"
	"saldo/internal/store"
)

// Session is returned by Register and Login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      core.User
}

// AuthService registers users and exchanges credentials for tokens.
type AuthService struct {
	users  store.UserStore
	tokens *auth.TokenManager
	logger *applog.Logger
}

func NewAuthService(users store.UserStore, tokens *auth.TokenManager, logger *applog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger.WithComponent(applog.ComponentAuth)}
}

func (s *AuthService) Register(ctx context.Context, in core.NewUserInput) (Session, error) {
	if err := in.Validate(); err != nil {
		return Session{}, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return Session{}, err
	}

	u, err := s.users.CreateUser(ctx, core.User{
		FullName:        strings.TrimSpace(in.FullName),
		Email:           core.NormalizeEmail(in.Email),
		PasswordHash:    hash,
		ProfileImageURL: strings.TrimSpace(in.ProfileImageURL),
	})
	if err != nil {
		return Session{}, err
	}

	s.logger.InfoContext(ctx, "User registered", applog.NewFields().WithOwner(u.ID).WithOperation(applog.OpRegister).Args()...)
	return s.session(u)
}

// Login returns core.ErrInvalidCredentials for an unknown email or a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return Session{}, core.ErrInvalidCredentials
	}
	u, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, core.ErrNotFound) {
		return Session{}, core.ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("find user: %w", err)
	}
	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return Session{}, core.ErrInvalidCredentials
		}
		return Session{}, err
	}

	s.logger.InfoContext(ctx, "User logged in", applog.NewFields().WithOwner(u.ID).WithOperation(applog.OpLogin).Args()...)
	return s.session(u)
}

// User returns the account of an authenticated owner.
func (s *AuthService) User(ctx context.Context, ownerID string) (core.User, error) {
	return s.users.GetUser(ctx, ownerID)
}

func (s *AuthService) session(u core.User) (Session, error) {
	token, expires, err := s.tokens.Issue(u.ID)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: expires, User: u}, nil
}
