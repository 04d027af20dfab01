//go:build unit
// +build unit

package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/keys"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/threats"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedThreat(t *testing.T, env *testEnv, severity int, affected []string, createdAt time.Time) {
	t.Helper()

	id := uuid.NewString()
	require.NoError(t, env.threatRepo.Create(context.Background(), &threats.ThreatIntelligence{
		ID:                 id,
		Type:               "cryptanalysis",
		Severity:           severity,
		Confidence:         0.9,
		Source:             "test-feed",
		Title:              "threat-" + id[:8],
		AffectedAlgorithms: affected,
		Active:             true,
		CreatedAt:          createdAt,
	}))
}

func TestThreatScanJob_RotatesAffectedSystem(t *testing.T) {
	env := newTestEnv(t)
	cfg, _ := env.newConfiguredSystem(t, 168, time.Now())
	seedThreat(t, env, 5, []string{"RSA-2048"}, time.Now())

	job, err := NewThreatScanJob(env.configs, env.threatRepo, env.executor, env.logger)
	require.NoError(t, err)
	job.Run()

	listed, err := env.history.ListByUser(context.Background(), cfg.UserID, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, keys.RotationTriggerThreatDetected, listed[0].TriggeredBy)
	assert.Equal(t, keys.RotationStatusCompleted, listed[0].Status)
	assert.Contains(t, listed[0].Reason, "RSA-2048")
}

func TestThreatScanJob_IgnoresUnrelatedAlgorithms(t *testing.T) {
	env := newTestEnv(t)
	cfg, _ := env.newConfiguredSystem(t, 168, time.Now())
	seedThreat(t, env, 5, []string{"ECDSA-P256"}, time.Now())

	job, err := NewThreatScanJob(env.configs, env.threatRepo, env.executor, env.logger)
	require.NoError(t, err)
	job.Run()

	listed, err := env.history.ListByUser(context.Background(), cfg.UserID, 0)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestThreatScanJob_IgnoresSubCriticalAndStaleThreats(t *testing.T) {
	env := newTestEnv(t)
	cfg, _ := env.newConfiguredSystem(t, 168, time.Now())
	seedThreat(t, env, 3, []string{"RSA-2048"}, time.Now())
	seedThreat(t, env, 5, []string{"RSA-2048"}, time.Now().Add(-48*time.Hour))

	job, err := NewThreatScanJob(env.configs, env.threatRepo, env.executor, env.logger)
	require.NoError(t, err)
	job.Run()

	listed, err := env.history.ListByUser(context.Background(), cfg.UserID, 0)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
