package models

import (
	"time"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/threats"
)

// ThreatModel is the GORM database model for threat intelligence records.
// The unique title index gives the randomized detector first-write-wins
// semantics for its fixed candidate corpus.
type ThreatModel struct {
	ID                  string    `gorm:"primaryKey;type:uuid"`
	Type                string    `gorm:"not null;index;type:varchar(64)"`
	Severity            int       `gorm:"not null;index"`
	Confidence          float64   `gorm:"not null"`
	Source              string    `gorm:"not null;type:varchar(64)"`
	Title               string    `gorm:"not null;uniqueIndex;type:varchar(255)"`
	Description         string    `gorm:"type:text"`
	AffectedAlgorithms  []string  `gorm:"serializer:json"`
	PredictedImpactDate time.Time `gorm:""`
	Mitigations         []string  `gorm:"serializer:json"`
	Active              bool      `gorm:"not null;index"`
	CreatedAt           time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (ThreatModel) TableName() string {
	return "threat_intelligence"
}

// ToDomain converts GORM model to domain entity
func (m *ThreatModel) ToDomain() *threats.ThreatIntelligence {
	return &threats.ThreatIntelligence{
		ID:                  m.ID,
		Type:                m.Type,
		Severity:            m.Severity,
		Confidence:          m.Confidence,
		Source:              m.Source,
		Title:               m.Title,
		Description:         m.Description,
		AffectedAlgorithms:  m.AffectedAlgorithms,
		PredictedImpactDate: m.PredictedImpactDate,
		Mitigations:         m.Mitigations,
		Active:              m.Active,
		CreatedAt:           m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ThreatModel) FromDomain(t *threats.ThreatIntelligence) {
	m.ID = t.ID
	m.Type = t.Type
	m.Severity = t.Severity
	m.Confidence = t.Confidence
	m.Source = t.Source
	m.Title = t.Title
	m.Description = t.Description
	m.AffectedAlgorithms = t.AffectedAlgorithms
	m.PredictedImpactDate = t.PredictedImpactDate
	m.Mitigations = t.Mitigations
	m.Active = t.Active
	m.CreatedAt = t.CreatedAt
}
