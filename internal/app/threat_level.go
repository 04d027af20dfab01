package app

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/threats"
)

// simulatedThreatLevel implements threats.LevelSource as a noisy function of
// a fixed base, randomness and a daily sinusoidal term. There is no real
// intelligence feed behind it.
type simulatedThreatLevel struct {
	base      float64
	noiseSpan float64
	mu        sync.Mutex
	rng       *rand.Rand
}

// NewSimulatedThreatLevel creates a threat level source seeded with the given
// value. Tests pass a fixed seed for reproducible levels.
func NewSimulatedThreatLevel(seed int64) threats.LevelSource {
	return &simulatedThreatLevel{
		base:      0.3,
		noiseSpan: 0.2,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

func (s *simulatedThreatLevel) Current(at time.Time) float64 {
	s.mu.Lock()
	noise := s.rng.Float64() * s.noiseSpan
	s.mu.Unlock()

	hourOfDay := float64(at.Hour()) + float64(at.Minute())/60
	daily := 0.15 * math.Sin(2*math.Pi*hourOfDay/24)

	return clamp01(s.base + noise + daily)
}
