package threats

import (
	"time"
)

// Severity bounds for threat intelligence records.
const (
	SeverityMin = 1
	SeverityMax = 5

	// CriticalSeverity is the level at which the background scheduler
	// reacts with immediate key rotation.
	CriticalSeverity = 4
)

// ThreatIntelligence is one detected or reported threat. Records are marked
// inactive rather than deleted.
type ThreatIntelligence struct {
	ID                  string
	Type                string
	Severity            int
	Confidence          float64
	Source              string
	Title               string
	Description         string
	AffectedAlgorithms  []string
	PredictedImpactDate time.Time
	Mitigations         []string
	Active              bool
	CreatedAt           time.Time
}

// Affects reports whether the threat lists the given algorithm name.
func (t *ThreatIntelligence) Affects(algorithm string) bool {
	for _, a := range t.AffectedAlgorithms {
		if a == algorithm {
			return true
		}
	}
	return false
}

// Stats summarizes the threat landscape for the dashboard.
type Stats struct {
	TotalActive   int
	BySeverity    map[int]int
	CriticalLast7 int
}
