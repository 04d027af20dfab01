package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/keys"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/system"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"
)

// RotationScanJob walks every auto-rotation system configuration and rotates
// the ones whose configured interval has elapsed since the last completed
// rotation.
type RotationScanJob struct {
	configs  system.ConfigRepository
	history  keys.HistoryRepository
	executor *RotationExecutor
	logger   logger.Logger
	now      func() time.Time
}

// NewRotationScanJob creates a new RotationScanJob instance.
func NewRotationScanJob(
	configs system.ConfigRepository,
	history keys.HistoryRepository,
	executor *RotationExecutor,
	logger logger.Logger,
) (*RotationScanJob, error) {
	return &RotationScanJob{
		configs:  configs,
		history:  history,
		executor: executor,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Run implements cron.Job.
func (j *RotationScanJob) Run() {
	ctx := context.Background()

	configs, err := j.configs.ListAutoRotation(ctx)
	if err != nil {
		j.logger.Error("rotation scan: failed to list configurations: ", err)
		return
	}

	now := j.now()
	for _, cfg := range configs {
		due, elapsed, err := j.rotationDue(ctx, cfg, now)
		if err != nil {
			j.logger.Error("rotation scan: ", err)
			continue
		}
		if !due {
			continue
		}

		reason := fmt.Sprintf("rotation interval of %dh elapsed (%.1fh since last rotation)",
			cfg.RotationIntervalHours, elapsed.Hours())
		if _, err := j.executor.Execute(ctx, cfg, keys.RotationTriggerScheduled, reason); err != nil {
			j.logger.Error("rotation scan: ", err)
		}
	}
}

// rotationDue measures elapsed time since the user's last completed rotation,
// falling back to the configuration's last update when no rotation has run yet.
func (j *RotationScanJob) rotationDue(ctx context.Context, cfg *system.Configuration, now time.Time) (bool, time.Duration, error) {
	if cfg.RotationIntervalHours <= 0 {
		return false, 0, nil
	}

	last, err := j.history.LastCompletedForUser(ctx, cfg.UserID)
	if err != nil {
		return false, 0, fmt.Errorf("failed to fetch last rotation for user %s: %w", cfg.UserID, err)
	}

	since := cfg.UpdatedAt
	if last != nil {
		since = last.CompletedAt
	}

	elapsed := now.Sub(since)
	interval := time.Duration(cfg.RotationIntervalHours) * time.Hour
	return elapsed >= interval, elapsed, nil
}
