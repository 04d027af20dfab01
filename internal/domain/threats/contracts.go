package threats

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for threat intelligence storage.
var (
	// ErrThreatNotFound is returned when a threat lookup misses.
	ErrThreatNotFound = errors.New("threat not found")

	// ErrDuplicateThreat is returned when a threat with the same title is
	// already recorded. The background monitor treats it as a no-op.
	ErrDuplicateThreat = errors.New("threat already recorded")
)

// Detector produces threat intelligence. The production implementation
// samples a fixed candidate list with randomized severity/confidence; tests
// inject a deterministic double.
type Detector interface {
	// Detect returns a new threat or nil when nothing was observed during
	// this invocation.
	Detect(ctx context.Context) (*ThreatIntelligence, error)
}

// LevelSource reports the current simulated global threat level in [0,1].
// Key rotation triggers compare it against their thresholds.
type LevelSource interface {
	Current(at time.Time) float64
}

// Service exposes threat intelligence to the API layer.
type Service interface {
	// Report validates and persists a manually reported threat.
	Report(ctx context.Context, threat *ThreatIntelligence) (*ThreatIntelligence, error)

	// ListActive returns active threats at or above the given severity
	// created since the given time. A zero time means no cutoff.
	ListActive(ctx context.Context, minSeverity int, since time.Time) ([]*ThreatIntelligence, error)

	// Deactivate marks a threat inactive. Threats are never deleted.
	Deactivate(ctx context.Context, id string) error

	// Stats summarizes the current threat landscape.
	Stats(ctx context.Context) (*Stats, error)
}

// Repository persists threat intelligence records.
type Repository interface {
	Create(ctx context.Context, threat *ThreatIntelligence) error
	GetByID(ctx context.Context, id string) (*ThreatIntelligence, error)
	ListActive(ctx context.Context, minSeverity int, since time.Time) ([]*ThreatIntelligence, error)
	Deactivate(ctx context.Context, id string) error
	Stats(ctx context.Context) (*Stats, error)
}
