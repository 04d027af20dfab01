// Package memstore provides mutex-guarded in-memory repository
// implementations for state that does not need to survive restarts.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/keys"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"
)

// keyStore implements keys.Repository over a mutex-guarded map. Records are
// copied on the way in and out so callers never share mutable state with the
// store.
type keyStore struct {
	mu     sync.RWMutex
	byID   map[string]*keys.CryptographicKey
	order  []string
	logger logger.Logger
}

// NewKeyStore creates a new in-memory keys.Repository implementation.
func NewKeyStore(logger logger.Logger) (keys.Repository, error) {
	return &keyStore{
		byID:   make(map[string]*keys.CryptographicKey),
		logger: logger,
	}, nil
}

func (s *keyStore) Save(_ context.Context, key *keys.CryptographicKey) error {
	if key.ID == "" {
		return fmt.Errorf("%w: missing id", keys.ErrInvalidKey)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[key.ID]; exists {
		return fmt.Errorf("key %s already stored", key.ID)
	}

	s.byID[key.ID] = cloneKey(key)
	s.order = append(s.order, key.ID)
	return nil
}

func (s *keyStore) GetByID(_ context.Context, keyID string) (*keys.CryptographicKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key, ok := s.byID[keyID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", keys.ErrKeyNotFound, keyID)
	}
	return cloneKey(key), nil
}

func (s *keyStore) List(_ context.Context, organizationID string) ([]*keys.CryptographicKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*keys.CryptographicKey
	for _, id := range s.order {
		key := s.byID[id]
		if organizationID == "" || key.OrganizationID == organizationID {
			out = append(out, cloneKey(key))
		}
	}
	return out, nil
}

func (s *keyStore) Update(_ context.Context, key *keys.CryptographicKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[key.ID]; !ok {
		return fmt.Errorf("%w: %s", keys.ErrKeyNotFound, key.ID)
	}

	s.byID[key.ID] = cloneKey(key)
	return nil
}

func cloneKey(key *keys.CryptographicKey) *keys.CryptographicKey {
	clone := *key

	clone.Schedule.Triggers = make([]keys.RotationTrigger, len(key.Schedule.Triggers))
	copy(clone.Schedule.Triggers, key.Schedule.Triggers)

	clone.Usage.Samples = make([]keys.PerformanceSample, len(key.Usage.Samples))
	copy(clone.Usage.Samples, key.Usage.Samples)

	return &clone
}
