package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/keys"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/system"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/threats"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"
)

// recentThreatWindow bounds how far back the scan looks for critical threats.
const recentThreatWindow = 24 * time.Hour

// ThreatScanJob rotates systems whose current algorithm is named by a recent
// critical threat, regardless of the regular rotation interval.
type ThreatScanJob struct {
	configs  system.ConfigRepository
	threats  threats.Repository
	executor *RotationExecutor
	logger   logger.Logger
	now      func() time.Time
}

// NewThreatScanJob creates a new ThreatScanJob instance.
func NewThreatScanJob(
	configs system.ConfigRepository,
	threatRepo threats.Repository,
	executor *RotationExecutor,
	logger logger.Logger,
) (*ThreatScanJob, error) {
	return &ThreatScanJob{
		configs:  configs,
		threats:  threatRepo,
		executor: executor,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Run implements cron.Job.
func (j *ThreatScanJob) Run() {
	ctx := context.Background()

	cutoff := j.now().Add(-recentThreatWindow)
	critical, err := j.threats.ListActive(ctx, threats.CriticalSeverity, cutoff)
	if err != nil {
		j.logger.Error("threat scan: failed to list critical threats: ", err)
		return
	}
	if len(critical) == 0 {
		return
	}

	configs, err := j.configs.ListAutoRotation(ctx)
	if err != nil {
		j.logger.Error("threat scan: failed to list configurations: ", err)
		return
	}

	for _, cfg := range configs {
		threat := firstAffecting(critical, cfg.CurrentAlgorithm)
		if threat == nil {
			continue
		}

		reason := fmt.Sprintf("critical threat %q affects %s", threat.Title, cfg.CurrentAlgorithm)
		if _, err := j.executor.Execute(ctx, cfg, keys.RotationTriggerThreatDetected, reason); err != nil {
			j.logger.Error("threat scan: ", err)
		}
	}
}

func firstAffecting(candidates []*threats.ThreatIntelligence, algorithm string) *threats.ThreatIntelligence {
	if algorithm == "" {
		return nil
	}
	for _, threat := range candidates {
		if threat.Affects(algorithm) {
			return threat
		}
	}
	return nil
}
