package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/threats"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"
)

// ThreatMonitorJob polls the threat detector and records whatever it finds.
// Persisting and realtime fan-out go through the threat service, so detected
// and manually reported threats follow the same path.
type ThreatMonitorJob struct {
	detector threats.Detector
	service  threats.Service
	logger   logger.Logger
}

// NewThreatMonitorJob creates a new ThreatMonitorJob instance.
func NewThreatMonitorJob(detector threats.Detector, service threats.Service, logger logger.Logger) (*ThreatMonitorJob, error) {
	return &ThreatMonitorJob{
		detector: detector,
		service:  service,
		logger:   logger,
	}, nil
}

// Run implements cron.Job.
func (j *ThreatMonitorJob) Run() {
	ctx := context.Background()

	threat, err := j.detector.Detect(ctx)
	if err != nil {
		j.logger.Error("threat monitor: detection failed: ", err)
		return
	}
	if threat == nil {
		return
	}

	if _, err := j.service.Report(ctx, threat); err != nil {
		// The detector draws from a fixed candidate corpus, so re-detecting
		// an already recorded threat is expected.
		if errors.Is(err, threats.ErrDuplicateThreat) {
			return
		}
		j.logger.Error("threat monitor: failed to record threat: ", err)
	}
}

// Kickoff schedules one early run shortly after startup so a fresh deployment
// has threat data before the first cron tick.
func (j *ThreatMonitorJob) Kickoff(delay time.Duration) *time.Timer {
	return time.AfterFunc(delay, j.Run)
}
