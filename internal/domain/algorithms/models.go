package algorithms

import (
	"time"
)

// AlgorithmType classifies an algorithm by its cryptographic role.
type AlgorithmType string

// Algorithm type constants
const (
	TypeAsymmetric AlgorithmType = "asymmetric"
	TypeSignature  AlgorithmType = "signature"
	TypeSymmetric  AlgorithmType = "symmetric"
)

// Maturity is the lifecycle stage of an algorithm specification.
type Maturity string

// Maturity stage constants
const (
	MaturityExperimental Maturity = "experimental"
	MaturityDraft        Maturity = "draft"
	MaturityStandardized Maturity = "standardized"
	MaturityDeprecated   Maturity = "deprecated"
)

// PerformanceMetrics holds measured performance characteristics of an
// algorithm implementation. Timings for signing and verification are only
// populated for signature algorithms.
type PerformanceMetrics struct {
	EncryptionSpeedMBps float64
	KeyGenerationMs     float64
	SignMs              float64
	VerifyMs            float64
	MemoryKB            int
	CPUPercent          float64
}

// SecurityMetrics holds the security posture of an algorithm.
type SecurityMetrics struct {
	QuantumBitStrength   int
	ClassicalBitStrength int
	KnownVulnerabilities []string
	LastReviewed         time.Time
	RecommendedUntil     time.Time
}

// AlgorithmProfile is the immutable reference record for a cataloged
// algorithm. Profiles are seeded at startup and never mutated at runtime.
type AlgorithmProfile struct {
	ID               string
	Name             string
	Type             AlgorithmType
	QuantumResistant bool
	KeySizes         []uint32
	Performance      PerformanceMetrics
	Security         SecurityMetrics
	Compliance       []string
	Maturity         Maturity
}

// MaxKeySize returns the largest cataloged key size for the profile.
func (p *AlgorithmProfile) MaxKeySize() uint32 {
	var max uint32
	for _, s := range p.KeySizes {
		if s > max {
			max = s
		}
	}
	return max
}

// HasCompliance reports whether the profile carries the given compliance tag.
func (p *AlgorithmProfile) HasCompliance(standard string) bool {
	for _, c := range p.Compliance {
		if c == standard {
			return true
		}
	}
	return false
}

// PerformancePriority expresses how heavily performance should weigh in a
// selection decision.
type PerformancePriority string

// Performance priority constants
const (
	PriorityHigh   PerformancePriority = "high"
	PriorityNormal PerformancePriority = "normal"
	PriorityLow    PerformancePriority = "low"
)

// Requirements describes what a caller needs from an algorithm. It is the
// input to all scoring functions.
type Requirements struct {
	Purpose             string
	QuantumResistance   bool
	PerformancePriority PerformancePriority
	ComplianceStandards []string
	Environment         []string
	HighCompliance      bool
}

// Weights holds the factor weights for the overall selection score.
type Weights struct {
	Performance   float64
	Security      float64
	Compliance    float64
	Compatibility float64
	Migration     float64
}

// DefaultWeights are used when the requirements do not shift priorities.
func DefaultWeights() Weights {
	return Weights{
		Performance:   0.25,
		Security:      0.35,
		Compliance:    0.2,
		Compatibility: 0.1,
		Migration:     0.1,
	}
}

// ComponentScores holds the individual factor scores for one algorithm.
// All values are in [0,1]; MigrationComplexity is inverted so that higher
// means easier migration.
type ComponentScores struct {
	Performance         float64
	Security            float64
	Compliance          float64
	Compatibility       float64
	MigrationComplexity float64
}

// Recommendation is one ranked selection result.
type Recommendation struct {
	Profile      *AlgorithmProfile
	OverallScore float64
	Scores       ComponentScores
	Reasoning    []string
}
