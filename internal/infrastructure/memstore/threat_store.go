package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/threats"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"
)

// threatStore implements threats.Repository over a mutex-guarded slice.
// Titles are unique, mirroring the database schema.
type threatStore struct {
	mu      sync.RWMutex
	records []*threats.ThreatIntelligence
	logger  logger.Logger
}

// NewThreatStore creates a new in-memory threats.Repository implementation.
func NewThreatStore(logger logger.Logger) (threats.Repository, error) {
	return &threatStore{logger: logger}, nil
}

func (s *threatStore) Create(_ context.Context, threat *threats.ThreatIntelligence) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.records {
		if existing.Title == threat.Title {
			return threats.ErrDuplicateThreat
		}
	}

	s.records = append(s.records, cloneThreat(threat))
	return nil
}

func (s *threatStore) GetByID(_ context.Context, id string) (*threats.ThreatIntelligence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, threat := range s.records {
		if threat.ID == id {
			return cloneThreat(threat), nil
		}
	}
	return nil, threats.ErrThreatNotFound
}

func (s *threatStore) ListActive(_ context.Context, minSeverity int, since time.Time) ([]*threats.ThreatIntelligence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*threats.ThreatIntelligence
	for _, threat := range s.records {
		if !threat.Active || threat.Severity < minSeverity {
			continue
		}
		if !since.IsZero() && threat.CreatedAt.Before(since) {
			continue
		}
		out = append(out, cloneThreat(threat))
	}
	return out, nil
}

func (s *threatStore) Deactivate(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, threat := range s.records {
		if threat.ID == id {
			threat.Active = false
			return nil
		}
	}
	return threats.ErrThreatNotFound
}

func (s *threatStore) Stats(_ context.Context) (*threats.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &threats.Stats{BySeverity: make(map[int]int)}
	weekAgo := time.Now().AddDate(0, 0, -7)
	for _, threat := range s.records {
		if !threat.Active {
			continue
		}
		stats.TotalActive++
		stats.BySeverity[threat.Severity]++
		if threat.Severity >= threats.CriticalSeverity && threat.CreatedAt.After(weekAgo) {
			stats.CriticalLast7++
		}
	}
	return stats, nil
}

func cloneThreat(threat *threats.ThreatIntelligence) *threats.ThreatIntelligence {
	clone := *threat

	clone.AffectedAlgorithms = make([]string, len(threat.AffectedAlgorithms))
	copy(clone.AffectedAlgorithms, threat.AffectedAlgorithms)

	clone.Mitigations = make([]string, len(threat.Mitigations))
	copy(clone.Mitigations, threat.Mitigations)

	return &clone
}
