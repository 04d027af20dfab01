package jobs

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/app"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/events"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/keys"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/system"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"
)

// Simulated migration window for one background rotation run.
const (
	migrationDelayBase = 1 * time.Second
	migrationDelaySpan = 2 * time.Second
)

// RotationExecutor performs one background key rotation for a system
// configuration. At most one run per user is in flight at any time; the scan
// jobs share a single executor so the time-based and threat-based paths
// cannot double-rotate the same system.
type RotationExecutor struct {
	lifecycle keys.LifecycleService
	history   keys.HistoryRepository
	configs   system.ConfigRepository
	publisher events.Publisher
	logger    logger.Logger
	sleep     func(time.Duration)
	now       func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand

	inFlight sync.Map // user ID -> struct{}
}

// NewRotationExecutor creates a new RotationExecutor instance.
func NewRotationExecutor(
	lifecycle keys.LifecycleService,
	history keys.HistoryRepository,
	configs system.ConfigRepository,
	publisher events.Publisher,
	seed int64,
	logger logger.Logger,
) (*RotationExecutor, error) {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &RotationExecutor{
		lifecycle: lifecycle,
		history:   history,
		configs:   configs,
		publisher: publisher,
		logger:    logger,
		sleep:     time.Sleep,
		now:       time.Now,
		rng:       rand.New(rand.NewSource(seed)),
	}, nil
}

// Execute rotates the configuration's current key and records the run in the
// rotation history. Returns nil without error when the run was skipped
// because another rotation for the same user is already in flight or the
// configuration has no current key.
func (e *RotationExecutor) Execute(ctx context.Context, cfg *system.Configuration, triggeredBy string, reason string) (*keys.RotationRecord, error) {
	if cfg.CurrentKeyID == "" {
		e.logger.Warn("skipping rotation for user ", cfg.UserID, ": no current key configured")
		return nil, nil
	}

	if _, loaded := e.inFlight.LoadOrStore(cfg.UserID, struct{}{}); loaded {
		e.logger.Info("rotation already in flight for user ", cfg.UserID, ", skipping")
		return nil, nil
	}
	defer e.inFlight.Delete(cfg.UserID)

	started := e.now()
	record := &keys.RotationRecord{
		ID:             uuid.New().String(),
		UserID:         cfg.UserID,
		OrganizationID: cfg.OrganizationID,
		OldKeyID:       cfg.CurrentKeyID,
		OldAlgorithm:   cfg.CurrentAlgorithm,
		TriggeredBy:    triggeredBy,
		Reason:         reason,
		Status:         keys.RotationStatusInitiated,
		StartedAt:      started,
	}
	if err := e.history.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to open rotation record: %w", err)
	}

	if err := e.history.UpdateStatus(ctx, record.ID, keys.RotationStatusInProgress, time.Time{}, nil); err != nil {
		e.logger.Error("failed to mark rotation in progress: ", err)
	}

	e.sleep(e.migrationDelay())

	rotateCtx := app.WithManagedRotationRecord(app.WithUserID(ctx, cfg.UserID))
	newKey, err := e.lifecycle.Rotate(rotateCtx, cfg.CurrentKeyID, reason)
	if err != nil {
		if histErr := e.history.UpdateStatus(ctx, record.ID, keys.RotationStatusFailed, e.now(), nil); histErr != nil {
			e.logger.Error("failed to mark rotation failed: ", histErr)
		}
		return nil, fmt.Errorf("background rotation failed for user %s: %w", cfg.UserID, err)
	}

	completed := e.now()
	record.NewKeyID = newKey.ID
	record.NewAlgorithm = newKey.Algorithm
	record.Status = keys.RotationStatusCompleted
	record.CompletedAt = completed
	record.Impact = e.synthesizeImpact(completed.Sub(started))
	if err := e.history.Update(ctx, record); err != nil {
		e.logger.Error("failed to close rotation record: ", err)
	}

	cfg.CurrentKeyID = newKey.ID
	cfg.CurrentAlgorithm = newKey.Algorithm
	cfg.UpdatedAt = completed
	if err := e.configs.Upsert(ctx, cfg); err != nil {
		e.logger.Error("failed to update system configuration after rotation: ", err)
	}

	e.publisher.Publish(events.Event{
		Type:           events.TypeRotationCompleted,
		OrganizationID: cfg.OrganizationID,
		Payload: map[string]interface{}{
			"userId":       cfg.UserID,
			"oldKeyId":     record.OldKeyID,
			"newKeyId":     record.NewKeyID,
			"oldAlgorithm": record.OldAlgorithm,
			"newAlgorithm": record.NewAlgorithm,
			"triggeredBy":  record.TriggeredBy,
			"reason":       record.Reason,
			"impact":       record.Impact,
		},
		Timestamp: completed,
	})

	e.logger.Info("Background rotation completed for user ", cfg.UserID,
		" (", record.OldAlgorithm, " -> ", record.NewAlgorithm, ")")
	return record, nil
}

func (e *RotationExecutor) migrationDelay() time.Duration {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return migrationDelayBase + time.Duration(e.rng.Float64()*float64(migrationDelaySpan))
}

// synthesizeImpact fabricates a plausible cost figure for the dashboard. The
// duration is real; the resource spikes are simulated.
func (e *RotationExecutor) synthesizeImpact(elapsed time.Duration) *keys.PerformanceImpact {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()

	return &keys.PerformanceImpact{
		DurationMs:      elapsed.Milliseconds(),
		CPUSpikePercent: 10 + e.rng.Float64()*30,
		MemoryMB:        32 + e.rng.Float64()*96,
		NetworkKB:       4 + e.rng.Float64()*60,
	}
}
