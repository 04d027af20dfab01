package models

import (
	"time"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/system"
)

// RecommendationModel is the GORM database model for persisted AI
// recommendation outcomes.
type RecommendationModel struct {
	ID         string    `gorm:"primaryKey;type:uuid"`
	UserID     string    `gorm:"index;type:uuid"`
	Algorithm  string    `gorm:"not null;type:varchar(64)"`
	Score      float64   `gorm:"not null"`
	Confidence float64   `gorm:"not null"`
	Reasoning  []string  `gorm:"serializer:json"`
	CreatedAt  time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (RecommendationModel) TableName() string {
	return "ai_recommendations"
}

// ToDomain converts GORM model to domain entity
func (m *RecommendationModel) ToDomain() *system.RecommendationRecord {
	return &system.RecommendationRecord{
		ID:         m.ID,
		UserID:     m.UserID,
		Algorithm:  m.Algorithm,
		Score:      m.Score,
		Confidence: m.Confidence,
		Reasoning:  m.Reasoning,
		CreatedAt:  m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *RecommendationModel) FromDomain(r *system.RecommendationRecord) {
	m.ID = r.ID
	m.UserID = r.UserID
	m.Algorithm = r.Algorithm
	m.Score = r.Score
	m.Confidence = r.Confidence
	m.Reasoning = r.Reasoning
	m.CreatedAt = r.CreatedAt
}
