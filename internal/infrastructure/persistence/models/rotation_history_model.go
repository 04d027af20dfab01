package models

import (
	"time"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/keys"
)

// RotationHistoryModel is the GORM database model for append-only rotation
// history rows.
type RotationHistoryModel struct {
	ID             string                  `gorm:"primaryKey;type:uuid"`
	UserID         string                  `gorm:"index;type:uuid"`
	OrganizationID string                  `gorm:"index;type:varchar(128)"`
	OldKeyID       string                  `gorm:"index;type:uuid"`
	NewKeyID       string                  `gorm:"type:uuid"`
	OldAlgorithm   string                  `gorm:"type:varchar(64)"`
	NewAlgorithm   string                  `gorm:"type:varchar(64)"`
	TriggeredBy    string                  `gorm:"not null;type:varchar(32)"`
	Reason         string                  `gorm:"type:text"`
	Status         string                  `gorm:"not null;index;type:varchar(20)"`
	StartedAt      time.Time               `gorm:"not null;index"`
	CompletedAt    *time.Time              `gorm:""`
	Impact         *keys.PerformanceImpact `gorm:"serializer:json"`
}

// TableName specifies the table name for GORM
func (RotationHistoryModel) TableName() string {
	return "key_rotation_history"
}

// ToDomain converts GORM model to domain entity
func (m *RotationHistoryModel) ToDomain() *keys.RotationRecord {
	record := &keys.RotationRecord{
		ID:             m.ID,
		UserID:         m.UserID,
		OrganizationID: m.OrganizationID,
		OldKeyID:       m.OldKeyID,
		NewKeyID:       m.NewKeyID,
		OldAlgorithm:   m.OldAlgorithm,
		NewAlgorithm:   m.NewAlgorithm,
		TriggeredBy:    m.TriggeredBy,
		Reason:         m.Reason,
		Status:         m.Status,
		StartedAt:      m.StartedAt,
		Impact:         m.Impact,
	}
	if m.CompletedAt != nil {
		record.CompletedAt = *m.CompletedAt
	}
	return record
}

// FromDomain converts domain entity to GORM model
func (m *RotationHistoryModel) FromDomain(r *keys.RotationRecord) {
	m.ID = r.ID
	m.UserID = r.UserID
	m.OrganizationID = r.OrganizationID
	m.OldKeyID = r.OldKeyID
	m.NewKeyID = r.NewKeyID
	m.OldAlgorithm = r.OldAlgorithm
	m.NewAlgorithm = r.NewAlgorithm
	m.TriggeredBy = r.TriggeredBy
	m.Reason = r.Reason
	m.Status = r.Status
	m.StartedAt = r.StartedAt
	if !r.CompletedAt.IsZero() {
		completed := r.CompletedAt
		m.CompletedAt = &completed
	}
	m.Impact = r.Impact
}
