// Package jobs contains the cron-driven background workers: the rotation
// scan, the critical-threat scan and the threat intelligence monitor.
package jobs

import (
	"fmt"
	"strings"
	"time"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// JobScheduler wraps one cron entry. Each background worker gets its own
// scheduler so frequencies stay independently configurable.
type JobScheduler struct {
	cronInstance *cron.Cron
	logger       logger.Logger
	job          cron.Job
	jobID        cron.EntryID
	enabled      bool
}

// NewJobScheduler registers the job under the given cron expression. A
// six-field expression enables second-level scheduling, which is intended for
// tests only.
func NewJobScheduler(enabled bool, frequency string, logger logger.Logger, job cron.Job) (*JobScheduler, error) {
	cronInstance := cron.New()

	var jobID cron.EntryID
	if enabled {
		if strings.Count(frequency, " ") == 5 {
			logger.Warn("cron expression ", frequency, " uses second-level scheduling")
			cronInstance = cron.New(cron.WithSeconds())
		}

		var err error
		jobID, err = cronInstance.AddJob(frequency, job)
		if err != nil {
			return nil, fmt.Errorf("could not register scheduled job: %w", err)
		}
		logger.Info("Registered background job with cron expression ", frequency)
	} else {
		logger.Warn("background job is disabled")
	}

	return &JobScheduler{
		cronInstance: cronInstance,
		logger:       logger,
		job:          job,
		jobID:        jobID,
		enabled:      enabled,
	}, nil
}

// Start begins periodic execution. A disabled scheduler is a no-op.
func (js *JobScheduler) Start() {
	if len(js.cronInstance.Entries()) == 0 {
		js.logger.Warn("no scheduled jobs found")
		return
	}
	js.cronInstance.Start()
}

// NextRun reports when the job fires next.
func (js *JobScheduler) NextRun() time.Time {
	return js.cronInstance.Entry(js.jobID).Next
}

// Stop removes the job and waits for an in-flight run to finish.
func (js *JobScheduler) Stop() {
	js.cronInstance.Remove(js.jobID)
	<-js.cronInstance.Stop().Done()
}
