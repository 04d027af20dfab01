package keys

import (
	"time"
)

// KeyPurpose describes what a cryptographic key is used for.
type KeyPurpose string

// Key purpose constants
const (
	PurposeEncryption  KeyPurpose = "encryption"
	PurposeSigning     KeyPurpose = "signing"
	PurposeKeyExchange KeyPurpose = "key-exchange"
)

// Valid reports whether the purpose is one of the supported values.
func (p KeyPurpose) Valid() bool {
	switch p {
	case PurposeEncryption, PurposeSigning, PurposeKeyExchange:
		return true
	}
	return false
}

// KeyStatus is the lifecycle state of a key record.
type KeyStatus string

// Key status constants. Rotated keys are superseded, not deleted; they keep
// a 7-day grace expiration so in-flight consumers can drain.
const (
	StatusActive     KeyStatus = "active"
	StatusSuperseded KeyStatus = "superseded"
)

// TriggerType identifies one kind of rotation trigger.
type TriggerType string

// Rotation trigger type constants
const (
	TriggerTimeBased  TriggerType = "time-based"
	TriggerUsageCount TriggerType = "usage-count"
	TriggerThreat     TriggerType = "threat-level"
	TriggerCompliance TriggerType = "compliance-requirement"
)

// RotationTrigger is one condition that can force a key to be replaced.
type RotationTrigger struct {
	Type      TriggerType
	Threshold float64
	Enabled   bool
}

// RotationSchedule drives adaptive rotation of a key.
type RotationSchedule struct {
	IntervalHours    int
	NextRotation     time.Time
	AutoRotate       bool
	AdaptiveRotation bool
	Triggers         []RotationTrigger
}

// PerformanceSample is one rolling usage measurement.
type PerformanceSample struct {
	Operation  string
	DataSize   int64
	RecordedAt time.Time
}

// UsageWindowSize caps the rolling performance sample window per key.
const UsageWindowSize = 100

// UsageStats accumulates how a key has been used.
type UsageStats struct {
	Operations      int64
	DataVolumeBytes int64
	LastUsed        time.Time
	Samples         []PerformanceSample
}

// CryptographicKey is a managed key record. Key material itself is held by
// the organization's HSM or KMS; this service manages lifecycle metadata.
type CryptographicKey struct {
	ID               string
	Algorithm        string
	KeySize          uint32
	Purpose          KeyPurpose
	OrganizationID   string
	QuantumResistant bool
	Status           KeyStatus
	CreatedAt        time.Time
	ExpiresAt        time.Time
	PredecessorID    string
	Schedule         RotationSchedule
	Usage            UsageStats
}

// TriggerEvaluation is the outcome of checking a key's rotation triggers.
type TriggerEvaluation struct {
	Due     bool
	Reasons []string
}

// Rotation status constants for history records.
const (
	RotationStatusInitiated  = "initiated"
	RotationStatusInProgress = "in_progress"
	RotationStatusCompleted  = "completed"
	RotationStatusFailed     = "failed"
)

// Rotation trigger source constants used by the background scheduler.
const (
	RotationTriggerScheduled      = "scheduled"
	RotationTriggerThreatDetected = "threat_detected"
	RotationTriggerManual         = "manual"
	RotationTriggerUsage          = "usage"
)

// PerformanceImpact is the synthesized cost of one rotation run. The values
// are informational only and never feed back into rotation decisions.
type PerformanceImpact struct {
	DurationMs      int64   `json:"durationMs"`
	CPUSpikePercent float64 `json:"cpuSpikePercent"`
	MemoryMB        float64 `json:"memoryMb"`
	NetworkKB       float64 `json:"networkKb"`
}

// RotationRecord is one append-only rotation-history row.
type RotationRecord struct {
	ID             string
	UserID         string
	OrganizationID string
	OldKeyID       string
	NewKeyID       string
	OldAlgorithm   string
	NewAlgorithm   string
	TriggeredBy    string
	Reason         string
	Status         string
	StartedAt      time.Time
	CompletedAt    time.Time
	Impact         *PerformanceImpact
}
