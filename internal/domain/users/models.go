package users

import (
	"time"
)

// Role is the coarse authorization role of a user.
type Role string

// Role constants
const (
	RoleAdmin   Role = "admin"
	RoleAnalyst Role = "analyst"
	RoleUser    Role = "user"
)

// Valid reports whether the role is one of the supported values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAnalyst, RoleUser:
		return true
	}
	return false
}

// ClearanceForRole maps a role to its quantum clearance level. Clearance is
// an integer 1-5 gating access to sensitive fields independent of role
// checks on individual routes.
func ClearanceForRole(r Role) int {
	switch r {
	case RoleAdmin:
		return 5
	case RoleAnalyst:
		return 3
	default:
		return 1
	}
}

// User is one registered account.
type User struct {
	ID             string
	Username       string
	Email          string
	PasswordHash   string
	Role           Role
	ClearanceLevel int
	OrganizationID string
	CreatedAt      time.Time
}

// TokenClaims is the decoded JWT payload carried on authenticated requests.
type TokenClaims struct {
	UserID                string
	Username              string
	Email                 string
	Role                  Role
	QuantumClearanceLevel int
	OrganizationID        string
}
