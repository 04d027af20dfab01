package users

import (
	"context"
	"errors"
)

// Sentinel errors for registration and authentication.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUser      = errors.New("username or email already registered")
	ErrWeakPassword       = errors.New("password_weak")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles registration, login and token verification.
type AuthService interface {
	// Register creates a new account. Passwords shorter than 12 characters
	// or missing a letter/digit mix fail with ErrWeakPassword; duplicate
	// username or email fails with ErrDuplicateUser.
	Register(ctx context.Context, username, email, password string, role Role, organizationID string) (*User, error)

	// Login verifies credentials and returns a signed JWT valid for the
	// configured TTL together with the account.
	Login(ctx context.Context, username, password string) (string, *User, error)

	// VerifyToken parses and validates a JWT, returning its claims.
	VerifyToken(token string) (*TokenClaims, error)
}

// Repository persists user accounts.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
