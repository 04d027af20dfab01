package app

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/algorithms"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/keys"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/threats"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"
)

// Base key lifetimes per purpose. Non-quantum-resistant algorithms get half
// of these.
var baseLifetimes = map[keys.KeyPurpose]time.Duration{
	keys.PurposeEncryption:  365 * 24 * time.Hour,
	keys.PurposeSigning:     2 * 365 * 24 * time.Hour,
	keys.PurposeKeyExchange: 30 * 24 * time.Hour,
}

// Base rotation intervals in hours per purpose. Non-quantum-resistant
// algorithms rotate four times as often.
var baseIntervalHours = map[keys.KeyPurpose]int{
	keys.PurposeEncryption:  168,
	keys.PurposeSigning:     720,
	keys.PurposeKeyExchange: 24,
}

// Usage-count rotation thresholds per purpose.
var usageThresholds = map[keys.KeyPurpose]float64{
	keys.PurposeEncryption:  1_000_000,
	keys.PurposeSigning:     500_000,
	keys.PurposeKeyExchange: 10_000,
}

// threatTriggerThreshold is the global threat level above which keys rotate.
const threatTriggerThreshold = 0.7

// supersededGracePeriod keeps rotated keys resolvable while consumers drain.
const supersededGracePeriod = 7 * 24 * time.Hour

// successorPreference is the quantum-first algorithm ordering used when
// rotating a key. The first cataloged quantum-resistant entry wins; the
// current algorithm is kept only when none is cataloged.
var successorPreference = map[keys.KeyPurpose][]string{
	keys.PurposeSigning:     {"CRYSTALS-Dilithium", "FALCON", "SPHINCS+"},
	keys.PurposeEncryption:  {"CRYSTALS-Kyber", "AES-256-GCM"},
	keys.PurposeKeyExchange: {"CRYSTALS-Kyber"},
}

// complianceIssueProbability is the per-check chance that the simulated
// compliance scan flags a key.
const complianceIssueProbability = 0.05

// lifecycleService implements keys.LifecycleService. All rotation paths for
// one key serialize on a per-key mutex, so two near-simultaneous rotations
// cannot both create successors.
type lifecycleService struct {
	catalog     algorithms.Catalog
	repo        keys.Repository
	history     keys.HistoryRepository
	threatLevel threats.LevelSource
	logger      logger.Logger
	now         func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand

	locks sync.Map // key ID -> *sync.Mutex
}

// NewKeyLifecycleService creates a new lifecycleService instance. The rng
// seed drives the simulated compliance checks; tests pass a fixed seed.
func NewKeyLifecycleService(
	catalog algorithms.Catalog,
	repo keys.Repository,
	history keys.HistoryRepository,
	threatLevel threats.LevelSource,
	seed int64,
	logger logger.Logger,
) (keys.LifecycleService, error) {
	return &lifecycleService{
		catalog:     catalog,
		repo:        repo,
		history:     history,
		threatLevel: threatLevel,
		logger:      logger,
		now:         time.Now,
		rng:         rand.New(rand.NewSource(seed)),
	}, nil
}

func (s *lifecycleService) keyLock(keyID string) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(keyID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// Create generates a new managed key record with an adaptive rotation
// schedule.
func (s *lifecycleService) Create(ctx context.Context, algorithm string, keySize uint32, purpose keys.KeyPurpose, organizationID string) (*keys.CryptographicKey, error) {
	if !purpose.Valid() {
		return nil, fmt.Errorf("%w: unsupported purpose %q", keys.ErrInvalidKey, purpose)
	}

	profile, err := s.catalog.GetByName(ctx, algorithm)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if !containsSize(profile.KeySizes, keySize) {
		return nil, fmt.Errorf("%w: key size %d not supported for %s", keys.ErrInvalidKey, keySize, algorithm)
	}

	now := s.now()

	lifetime := baseLifetimes[purpose]
	intervalHours := baseIntervalHours[purpose]
	if !profile.QuantumResistant {
		lifetime /= 2
		intervalHours /= 4
	}

	key := &keys.CryptographicKey{
		ID:               uuid.New().String(),
		Algorithm:        profile.Name,
		KeySize:          keySize,
		Purpose:          purpose,
		OrganizationID:   organizationID,
		QuantumResistant: profile.QuantumResistant,
		Status:           keys.StatusActive,
		CreatedAt:        now,
		ExpiresAt:        now.Add(lifetime),
		Schedule: keys.RotationSchedule{
			IntervalHours:    intervalHours,
			NextRotation:     now.Add(time.Duration(intervalHours) * time.Hour),
			AutoRotate:       true,
			AdaptiveRotation: true,
			Triggers:         buildTriggers(purpose, intervalHours, organizationID),
		},
	}

	if err := s.repo.Save(ctx, key); err != nil {
		return nil, fmt.Errorf("failed to store key: %w", err)
	}

	s.logger.Info("Created ", purpose, " key ", key.ID, " using ", key.Algorithm)
	return key, nil
}

func buildTriggers(purpose keys.KeyPurpose, intervalHours int, organizationID string) []keys.RotationTrigger {
	triggers := []keys.RotationTrigger{
		{Type: keys.TriggerTimeBased, Threshold: float64(intervalHours), Enabled: true},
		{Type: keys.TriggerUsageCount, Threshold: usageThresholds[purpose], Enabled: true},
		{Type: keys.TriggerThreat, Threshold: threatTriggerThreshold, Enabled: true},
	}

	if isEnterpriseOrganization(organizationID) {
		triggers = append(triggers, keys.RotationTrigger{
			Type:      keys.TriggerCompliance,
			Threshold: 1,
			Enabled:   true,
		})
	}

	return triggers
}

func isEnterpriseOrganization(organizationID string) bool {
	return strings.Contains(strings.ToLower(organizationID), "enterprise")
}

func (s *lifecycleService) GetByID(ctx context.Context, keyID string) (*keys.CryptographicKey, error) {
	return s.repo.GetByID(ctx, keyID)
}

func (s *lifecycleService) List(ctx context.Context, organizationID string) ([]*keys.CryptographicKey, error) {
	return s.repo.List(ctx, organizationID)
}

// CheckRotationTriggers evaluates every enabled trigger against the current
// state of the key.
func (s *lifecycleService) CheckRotationTriggers(ctx context.Context, keyID string) (*keys.TriggerEvaluation, error) {
	key, err := s.repo.GetByID(ctx, keyID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return s.evaluateTriggers(key, s.now()), nil
}

func (s *lifecycleService) evaluateTriggers(key *keys.CryptographicKey, now time.Time) *keys.TriggerEvaluation {
	eval := &keys.TriggerEvaluation{}

	if key.Status == keys.StatusSuperseded {
		return eval
	}

	for _, trigger := range key.Schedule.Triggers {
		if !trigger.Enabled {
			continue
		}

		switch trigger.Type {
		case keys.TriggerTimeBased:
			if !now.Before(key.Schedule.NextRotation) {
				eval.Due = true
				eval.Reasons = append(eval.Reasons,
					fmt.Sprintf("scheduled rotation interval of %dh elapsed", key.Schedule.IntervalHours))
			}
		case keys.TriggerUsageCount:
			if float64(key.Usage.Operations) >= trigger.Threshold {
				eval.Due = true
				eval.Reasons = append(eval.Reasons,
					fmt.Sprintf("operation count %d reached threshold %.0f", key.Usage.Operations, trigger.Threshold))
			}
		case keys.TriggerThreat:
			level := s.threatLevel.Current(now)
			if level >= trigger.Threshold {
				eval.Due = true
				eval.Reasons = append(eval.Reasons,
					fmt.Sprintf("global threat level %.2f exceeds threshold %.2f", level, trigger.Threshold))
			}
		case keys.TriggerCompliance:
			if s.complianceIssueDetected() {
				eval.Due = true
				eval.Reasons = append(eval.Reasons, "compliance review flagged key for rotation")
			}
		}
	}

	return eval
}

func (s *lifecycleService) complianceIssueDetected() bool {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Float64() < complianceIssueProbability
}

// Rotate replaces the key with a successor carrying a quantum-resistant
// algorithm whenever one is cataloged for the key's purpose.
func (s *lifecycleService) Rotate(ctx context.Context, keyID string, reason string) (*keys.CryptographicKey, error) {
	lock := s.keyLock(keyID)
	lock.Lock()
	defer lock.Unlock()

	return s.rotateLocked(ctx, keyID, reason, keys.RotationTriggerManual)
}

func (s *lifecycleService) rotateLocked(ctx context.Context, keyID string, reason string, triggeredBy string) (*keys.CryptographicKey, error) {
	key, err := s.repo.GetByID(ctx, keyID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if key.Status == keys.StatusSuperseded {
		return nil, fmt.Errorf("%w: %s", keys.ErrKeySuperseded, keyID)
	}

	successor, err := s.successorProfile(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to select successor algorithm: %w", err)
	}

	newKey, err := s.Create(ctx, successor.Name, successor.MaxKeySize(), key.Purpose, key.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to create successor key: %w", err)
	}

	newKey.PredecessorID = key.ID
	if err := s.repo.Update(ctx, newKey); err != nil {
		return nil, fmt.Errorf("failed to link successor key: %w", err)
	}

	now := s.now()
	key.Status = keys.StatusSuperseded
	key.ExpiresAt = now.Add(supersededGracePeriod)
	if err := s.repo.Update(ctx, key); err != nil {
		return nil, fmt.Errorf("failed to supersede key: %w", err)
	}

	if !managedRotationRecord(ctx) {
		if source := rotationSourceFromContext(ctx); source != "" {
			triggeredBy = source
		}
		record := &keys.RotationRecord{
			ID:             uuid.New().String(),
			OrganizationID: key.OrganizationID,
			UserID:         userIDFromContext(ctx),
			OldKeyID:       key.ID,
			NewKeyID:       newKey.ID,
			OldAlgorithm:   key.Algorithm,
			NewAlgorithm:   newKey.Algorithm,
			TriggeredBy:    triggeredBy,
			Reason:         reason,
			Status:         keys.RotationStatusCompleted,
			StartedAt:      now,
			CompletedAt:    now,
		}
		if err := s.history.Create(ctx, record); err != nil {
			s.logger.Error("failed to append rotation history for key ", key.ID, ": ", err)
		}
	}

	s.logger.Info("Rotated key ", key.ID, " -> ", newKey.ID, " (", key.Algorithm, " -> ", newKey.Algorithm, ")")
	return newKey, nil
}

// successorProfile picks the rotation target: the first cataloged
// quantum-resistant algorithm in the purpose's preference order, falling back
// to the key's current algorithm.
func (s *lifecycleService) successorProfile(ctx context.Context, key *keys.CryptographicKey) (*algorithms.AlgorithmProfile, error) {
	for _, name := range successorPreference[key.Purpose] {
		profile, err := s.catalog.GetByName(ctx, name)
		if err != nil {
			continue
		}
		if profile.QuantumResistant {
			return profile, nil
		}
	}

	return s.catalog.GetByName(ctx, key.Algorithm)
}

// RecordUsage updates usage counters and synchronously rotates the key when
// a trigger fires.
func (s *lifecycleService) RecordUsage(ctx context.Context, keyID string, operation string, dataSize int64) (*keys.CryptographicKey, error) {
	lock := s.keyLock(keyID)
	lock.Lock()
	defer lock.Unlock()

	key, err := s.repo.GetByID(ctx, keyID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if key.Status == keys.StatusSuperseded {
		return nil, fmt.Errorf("%w: %s", keys.ErrKeySuperseded, keyID)
	}

	now := s.now()
	key.Usage.Operations++
	key.Usage.DataVolumeBytes += dataSize
	key.Usage.LastUsed = now
	key.Usage.Samples = append(key.Usage.Samples, keys.PerformanceSample{
		Operation:  operation,
		DataSize:   dataSize,
		RecordedAt: now,
	})
	if len(key.Usage.Samples) > keys.UsageWindowSize {
		key.Usage.Samples = key.Usage.Samples[len(key.Usage.Samples)-keys.UsageWindowSize:]
	}

	if err := s.repo.Update(ctx, key); err != nil {
		return nil, fmt.Errorf("failed to update key usage: %w", err)
	}

	eval := s.evaluateTriggers(key, now)
	if eval.Due {
		reason := "usage-triggered rotation"
		if len(eval.Reasons) > 0 {
			reason = eval.Reasons[0]
		}
		newKey, err := s.rotateLocked(ctx, keyID, reason, keys.RotationTriggerUsage)
		if err != nil {
			return nil, fmt.Errorf("usage-triggered rotation failed: %w", err)
		}
		return newKey, nil
	}

	return key, nil
}

func containsSize(sizes []uint32, size uint32) bool {
	for _, s := range sizes {
		if s == size {
			return true
		}
	}
	return false
}

