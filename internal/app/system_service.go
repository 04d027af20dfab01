package app

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/algorithms"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/keys"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/system"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/threats"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"
)

// systemService implements system.Service.
type systemService struct {
	configRepo  system.ConfigRepository
	keyRepo     keys.Repository
	threatRepo  threats.Repository
	catalog     algorithms.Catalog
	threatLevel threats.LevelSource
	logger      logger.Logger
	now         func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewSystemService creates a new systemService instance. The rng seed drives
// the simulated host metrics in status snapshots.
func NewSystemService(
	configRepo system.ConfigRepository,
	keyRepo keys.Repository,
	threatRepo threats.Repository,
	catalog algorithms.Catalog,
	threatLevel threats.LevelSource,
	seed int64,
	logger logger.Logger,
) (system.Service, error) {
	return &systemService{
		configRepo:  configRepo,
		keyRepo:     keyRepo,
		threatRepo:  threatRepo,
		catalog:     catalog,
		threatLevel: threatLevel,
		logger:      logger,
		now:         time.Now,
		rng:         rand.New(rand.NewSource(seed)),
	}, nil
}

func (s *systemService) GetConfiguration(ctx context.Context, userID string) (*system.Configuration, error) {
	return s.configRepo.GetByUserID(ctx, userID)
}

// UpdateConfiguration validates the referenced algorithms and upserts the
// caller's configuration.
func (s *systemService) UpdateConfiguration(ctx context.Context, cfg *system.Configuration) (*system.Configuration, error) {
	if cfg.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if cfg.RotationIntervalHours < 1 {
		return nil, fmt.Errorf("rotation interval must be at least one hour")
	}
	if cfg.ThreatSensitivity < 1 || cfg.ThreatSensitivity > 5 {
		return nil, fmt.Errorf("threat sensitivity must be between 1 and 5")
	}
	if cfg.CurrentAlgorithm != "" {
		if _, err := s.catalog.GetByName(ctx, cfg.CurrentAlgorithm); err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}
	if cfg.BackupAlgorithm != "" {
		if _, err := s.catalog.GetByName(ctx, cfg.BackupAlgorithm); err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	if cfg.ID == "" {
		cfg.ID = uuid.New().String()
	}
	cfg.UpdatedAt = s.now()

	if err := s.configRepo.Upsert(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to store configuration: %w", err)
	}

	s.logger.Info("Updated system configuration for user ", cfg.UserID)
	return cfg, nil
}

// Status synthesizes the platform health snapshot. Host metrics are
// simulated for display; only key and threat counts reflect real state.
func (s *systemService) Status(ctx context.Context) (*system.Status, error) {
	allKeys, err := s.keyRepo.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	active := 0
	resistant := 0
	for _, k := range allKeys {
		if k.Status == keys.StatusActive {
			active++
			if k.QuantumResistant {
				resistant++
			}
		}
	}

	activeThreats, err := s.threatRepo.ListActive(ctx, threats.SeverityMin, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to list threats: %w", err)
	}

	now := s.now()
	level := s.threatLevel.Current(now)

	status := "operational"
	if level >= 0.6 {
		status = "elevated"
	}

	s.rngMu.Lock()
	cpu := 15 + s.rng.Float64()*40
	mem := 30 + s.rng.Float64()*35
	s.rngMu.Unlock()

	return &system.Status{
		QuantumShieldStatus: status,
		ActiveKeys:          active,
		QuantumResistant:    resistant,
		ActiveThreats:       len(activeThreats),
		ThreatLevel:         level,
		CPUPercent:          cpu,
		MemoryPercent:       mem,
		GeneratedAt:         now,
	}, nil
}
