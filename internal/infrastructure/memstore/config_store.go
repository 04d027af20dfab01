package memstore

import (
	"context"
	"sync"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/system"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"
)

// configStore implements system.ConfigRepository over a mutex-guarded map
// keyed by user ID.
type configStore struct {
	mu     sync.RWMutex
	byUser map[string]*system.Configuration
	order  []string
	logger logger.Logger
}

// NewConfigStore creates a new in-memory system.ConfigRepository implementation.
func NewConfigStore(logger logger.Logger) (system.ConfigRepository, error) {
	return &configStore{
		byUser: make(map[string]*system.Configuration),
		logger: logger,
	}, nil
}

func (s *configStore) Upsert(_ context.Context, cfg *system.Configuration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUser[cfg.UserID]; !exists {
		s.order = append(s.order, cfg.UserID)
	}
	clone := *cfg
	s.byUser[cfg.UserID] = &clone
	return nil
}

func (s *configStore) GetByUserID(_ context.Context, userID string) (*system.Configuration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, ok := s.byUser[userID]
	if !ok {
		return nil, system.ErrConfigurationNotFound
	}
	clone := *cfg
	return &clone, nil
}

func (s *configStore) ListAutoRotation(_ context.Context) ([]*system.Configuration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*system.Configuration
	for _, userID := range s.order {
		cfg := s.byUser[userID]
		if cfg.AutoRotation {
			clone := *cfg
			out = append(out, &clone)
		}
	}
	return out, nil
}
