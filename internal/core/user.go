package core

import (
	"errors"
	"strings"
	"time"

	"github.com/badoux/checkmail"
)

const minPasswordLength = 8

var (
	ErrEmptyFullName      = errors.New("full name is required")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User is an account owning transactions.
type User struct {
	ID              string
	FullName        string
	Email           string
	PasswordHash    string
	ProfileImageURL string
	CreatedAt       time.Time
}

// NewUserInput carries registration data before hashing.
type NewUserInput struct {
	FullName        string
	Email           string
	Password        string
	ProfileImageURL string
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (in NewUserInput) Validate() error {
	if strings.TrimSpace(in.FullName) == "" {
		return ErrEmptyFullName
	}
	if err := checkmail.ValidateFormat(NormalizeEmail(in.Email)); err != nil {
		return ErrInvalidEmail
	}
	if len(in.Password) < minPasswordLength {
		return ErrWeakPassword
	}
	return nil
}
