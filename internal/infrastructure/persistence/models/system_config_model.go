package models

import (
	"time"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/system"
)

// SystemConfigurationModel is the GORM database model for per-user system
// configurations.
type SystemConfigurationModel struct {
	ID                    string    `gorm:"primaryKey;type:uuid"`
	UserID                string    `gorm:"not null;uniqueIndex;type:uuid"`
	OrganizationID        string    `gorm:"index;type:varchar(128)"`
	CurrentAlgorithm      string    `gorm:"type:varchar(64)"`
	BackupAlgorithm       string    `gorm:"type:varchar(64)"`
	CurrentKeyID          string    `gorm:"type:uuid"`
	RotationIntervalHours int       `gorm:"not null"`
	ThreatSensitivity     int       `gorm:"not null"`
	AutoRotation          bool      `gorm:"not null;index"`
	UpdatedAt             time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (SystemConfigurationModel) TableName() string {
	return "system_configurations"
}

// ToDomain converts GORM model to domain entity
func (m *SystemConfigurationModel) ToDomain() *system.Configuration {
	return &system.Configuration{
		ID:                    m.ID,
		UserID:                m.UserID,
		OrganizationID:        m.OrganizationID,
		CurrentAlgorithm:      m.CurrentAlgorithm,
		BackupAlgorithm:       m.BackupAlgorithm,
		CurrentKeyID:          m.CurrentKeyID,
		RotationIntervalHours: m.RotationIntervalHours,
		ThreatSensitivity:     m.ThreatSensitivity,
		AutoRotation:          m.AutoRotation,
		UpdatedAt:             m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *SystemConfigurationModel) FromDomain(c *system.Configuration) {
	m.ID = c.ID
	m.UserID = c.UserID
	m.OrganizationID = c.OrganizationID
	m.CurrentAlgorithm = c.CurrentAlgorithm
	m.BackupAlgorithm = c.BackupAlgorithm
	m.CurrentKeyID = c.CurrentKeyID
	m.RotationIntervalHours = c.RotationIntervalHours
	m.ThreatSensitivity = c.ThreatSensitivity
	m.AutoRotation = c.AutoRotation
	m.UpdatedAt = c.UpdatedAt
}
