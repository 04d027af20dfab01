package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/keys"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"
)

// historyStore implements keys.HistoryRepository over a mutex-guarded slice.
type historyStore struct {
	mu      sync.RWMutex
	records []*keys.RotationRecord
	logger  logger.Logger
}

// NewHistoryStore creates a new in-memory keys.HistoryRepository implementation.
func NewHistoryStore(logger logger.Logger) (keys.HistoryRepository, error) {
	return &historyStore{logger: logger}, nil
}

func (s *historyStore) Create(_ context.Context, record *keys.RotationRecord) error {
	if record.ID == "" {
		return fmt.Errorf("rotation record missing id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, cloneRecord(record))
	return nil
}

func (s *historyStore) Update(_ context.Context, record *keys.RotationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.records {
		if existing.ID == record.ID {
			s.records[i] = cloneRecord(record)
			return nil
		}
	}
	return fmt.Errorf("rotation record with ID %s not found", record.ID)
}

func (s *historyStore) UpdateStatus(_ context.Context, recordID string, status string, completedAt time.Time, impact *keys.PerformanceImpact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.records {
		if existing.ID == recordID {
			existing.Status = status
			if !completedAt.IsZero() {
				existing.CompletedAt = completedAt
			}
			if impact != nil {
				impactCopy := *impact
				existing.Impact = &impactCopy
			}
			return nil
		}
	}
	return fmt.Errorf("rotation record with ID %s not found", recordID)
}

func (s *historyStore) ListByKey(_ context.Context, keyID string) ([]*keys.RotationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*keys.RotationRecord
	for i := len(s.records) - 1; i >= 0; i-- {
		record := s.records[i]
		if record.OldKeyID == keyID || record.NewKeyID == keyID {
			out = append(out, cloneRecord(record))
		}
	}
	return out, nil
}

func (s *historyStore) ListByUser(_ context.Context, userID string, limit int) ([]*keys.RotationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*keys.RotationRecord
	for i := len(s.records) - 1; i >= 0; i-- {
		record := s.records[i]
		if record.UserID == userID {
			out = append(out, cloneRecord(record))
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *historyStore) LastCompletedForUser(_ context.Context, userID string) (*keys.RotationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *keys.RotationRecord
	for _, record := range s.records {
		if record.UserID != userID || record.Status != keys.RotationStatusCompleted {
			continue
		}
		if latest == nil || record.StartedAt.After(latest.StartedAt) {
			latest = record
		}
	}
	if latest == nil {
		return nil, nil
	}
	return cloneRecord(latest), nil
}

func cloneRecord(record *keys.RotationRecord) *keys.RotationRecord {
	clone := *record
	if record.Impact != nil {
		impact := *record.Impact
		clone.Impact = &impact
	}
	return &clone
}
