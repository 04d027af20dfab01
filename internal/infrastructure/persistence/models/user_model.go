package models

import (
	"time"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/users"
)

// UserModel is the GORM database model for registered accounts.
type UserModel struct {
	ID             string    `gorm:"primaryKey;type:uuid"`
	Username       string    `gorm:"not null;uniqueIndex;type:varchar(64)"`
	Email          string    `gorm:"not null;uniqueIndex;type:varchar(255)"`
	PasswordHash   string    `gorm:"not null;type:varchar(255)"`
	Role           string    `gorm:"not null;type:varchar(20)"`
	ClearanceLevel int       `gorm:"not null"`
	OrganizationID string    `gorm:"index;type:varchar(128)"`
	CreatedAt      time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts GORM model to domain entity
func (m *UserModel) ToDomain() *users.User {
	return &users.User{
		ID:             m.ID,
		Username:       m.Username,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		Role:           users.Role(m.Role),
		ClearanceLevel: m.ClearanceLevel,
		OrganizationID: m.OrganizationID,
		CreatedAt:      m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *UserModel) FromDomain(u *users.User) {
	m.ID = u.ID
	m.Username = u.Username
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.Role = string(u.Role)
	m.ClearanceLevel = u.ClearanceLevel
	m.OrganizationID = u.OrganizationID
	m.CreatedAt = u.CreatedAt
}
