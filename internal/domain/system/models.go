package system

import (
	"time"
)

// Configuration is the per-user system configuration driving the background
// rotation scheduler.
type Configuration struct {
	ID                    string
	UserID                string
	OrganizationID        string
	CurrentAlgorithm      string
	BackupAlgorithm       string
	CurrentKeyID          string
	RotationIntervalHours int
	ThreatSensitivity     int
	AutoRotation          bool
	UpdatedAt             time.Time
}

// ActivityLog is one audit-trail entry for a user action.
type ActivityLog struct {
	ID        string
	UserID    string
	Action    string
	Detail    string
	CreatedAt time.Time
}

// Status is the synthesized platform health snapshot pushed to the
// dashboard. The figures are display-only simulations.
type Status struct {
	QuantumShieldStatus string
	ActiveKeys          int
	QuantumResistant    int
	ActiveThreats       int
	ThreatLevel         float64
	CPUPercent          float64
	MemoryPercent       float64
	GeneratedAt         time.Time
}

// RecommendationRecord is a persisted AI recommendation outcome.
type RecommendationRecord struct {
	ID         string
	UserID     string
	Algorithm  string
	Score      float64
	Confidence float64
	Reasoning  []string
	CreatedAt  time.Time
}
