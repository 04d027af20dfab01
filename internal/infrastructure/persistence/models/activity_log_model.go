package models

import (
	"time"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/system"
)

// ActivityLogModel is the GORM database model for audit-trail entries.
type ActivityLogModel struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	UserID    string    `gorm:"index;type:uuid"`
	Action    string    `gorm:"not null;type:varchar(64)"`
	Detail    string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (ActivityLogModel) TableName() string {
	return "activity_logs"
}

// ToDomain converts GORM model to domain entity
func (m *ActivityLogModel) ToDomain() *system.ActivityLog {
	return &system.ActivityLog{
		ID:        m.ID,
		UserID:    m.UserID,
		Action:    m.Action,
		Detail:    m.Detail,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ActivityLogModel) FromDomain(a *system.ActivityLog) {
	m.ID = a.ID
	m.UserID = a.UserID
	m.Action = a.Action
	m.Detail = a.Detail
	m.CreatedAt = a.CreatedAt
}
