package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/users"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"
)

// minPasswordLength is the minimum accepted password length. Shorter
// passwords are rejected with users.ErrWeakPassword.
const minPasswordLength = 12

// authClaims is the JWT payload issued at login.
type authClaims struct {
	UserID                string `json:"userId"`
	Username              string `json:"username"`
	Email                 string `json:"email"`
	Role                  string `json:"role"`
	QuantumClearanceLevel int    `json:"quantumClearanceLevel"`
	OrganizationID        string `json:"organizationId,omitempty"`
	jwt.RegisteredClaims
}

// authService implements users.AuthService with bcrypt password hashing and
// HMAC-signed JWTs.
type authService struct {
	repo     users.Repository
	secret   []byte
	tokenTTL time.Duration
	logger   logger.Logger
	now      func() time.Time
}

// NewAuthService creates a new authService instance.
func NewAuthService(repo users.Repository, jwtSecret string, tokenTTL time.Duration, logger logger.Logger) (users.AuthService, error) {
	if jwtSecret == "" {
		return nil, fmt.Errorf("jwt secret must not be empty")
	}
	return &authService{
		repo:     repo,
		secret:   []byte(jwtSecret),
		tokenTTL: tokenTTL,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Register creates a new account after validating password strength and
// uniqueness.
func (s *authService) Register(ctx context.Context, username, email, password string, role users.Role, organizationID string) (*users.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || email == "" {
		return nil, fmt.Errorf("username and email are required")
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	if role == "" {
		role = users.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("unsupported role: %s", role)
	}

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%w", users.ErrDuplicateUser)
	} else if !errors.Is(err, users.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w", users.ErrDuplicateUser)
	} else if !errors.Is(err, users.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &users.User{
		ID:             uuid.New().String(),
		Username:       username,
		Email:          email,
		PasswordHash:   string(hash),
		Role:           role,
		ClearanceLevel: users.ClearanceForRole(role),
		OrganizationID: organizationID,
		CreatedAt:      s.now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("Registered user ", user.Username, " with role ", user.Role)
	return user, nil
}

// validatePassword enforces the minimum password policy: at least 12
// characters containing both a letter and a digit.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", users.ErrWeakPassword, minPasswordLength)
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("%w: must contain letters and digits", users.ErrWeakPassword)
	}

	return nil
}

// Login verifies credentials and issues a signed JWT.
func (s *authService) Login(ctx context.Context, username, password string) (string, *users.User, error) {
	user, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return "", nil, fmt.Errorf("%w", users.ErrInvalidCredentials)
		}
		return "", nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("%w", users.ErrInvalidCredentials)
	}

	now := s.now()
	claims := authClaims{
		UserID:                user.ID,
		Username:              user.Username,
		Email:                 user.Email,
		Role:                  string(user.Role),
		QuantumClearanceLevel: user.ClearanceLevel,
		OrganizationID:        user.OrganizationID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Info("User ", user.Username, " logged in")
	return token, user, nil
}

// VerifyToken parses and validates a JWT issued by Login.
func (s *authService) VerifyToken(tokenString string) (*users.TokenClaims, error) {
	var claims authClaims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w", users.ErrInvalidToken)
	}

	return &users.TokenClaims{
		UserID:                claims.UserID,
		Username:              claims.Username,
		Email:                 claims.Email,
		Role:                  users.Role(claims.Role),
		QuantumClearanceLevel: claims.QuantumClearanceLevel,
		OrganizationID:        claims.OrganizationID,
	}, nil
}
