//go:build unit
// +build unit

package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/keys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotationExecutor_Execute_CompletesRecordAndUpdatesConfig(t *testing.T) {
	env := newTestEnv(t)
	cfg, oldKey := env.newConfiguredSystem(t, 168, time.Now())

	record, err := env.executor.Execute(context.Background(), cfg, keys.RotationTriggerScheduled, "interval elapsed")
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, keys.RotationStatusCompleted, record.Status)
	assert.Equal(t, keys.RotationTriggerScheduled, record.TriggeredBy)
	assert.Equal(t, oldKey.ID, record.OldKeyID)
	assert.NotEmpty(t, record.NewKeyID)
	assert.Equal(t, "CRYSTALS-Dilithium", record.NewAlgorithm)
	require.NotNil(t, record.Impact)
	assert.GreaterOrEqual(t, record.Impact.CPUSpikePercent, 10.0)

	// Configuration now points at the successor key.
	updated, err := env.configs.GetByUserID(context.Background(), cfg.UserID)
	require.NoError(t, err)
	assert.Equal(t, record.NewKeyID, updated.CurrentKeyID)
	assert.Equal(t, "CRYSTALS-Dilithium", updated.CurrentAlgorithm)

	// The old key is superseded with a grace expiration, not deleted.
	superseded, err := env.keyRepo.GetByID(context.Background(), oldKey.ID)
	require.NoError(t, err)
	assert.Equal(t, keys.StatusSuperseded, superseded.Status)
	assert.True(t, superseded.ExpiresAt.Before(time.Now().Add(8*24*time.Hour)))
}

func TestRotationExecutor_Execute_SingleHistoryRecordPerRun(t *testing.T) {
	env := newTestEnv(t)
	cfg, _ := env.newConfiguredSystem(t, 168, time.Now())

	record, err := env.executor.Execute(context.Background(), cfg, keys.RotationTriggerScheduled, "interval elapsed")
	require.NoError(t, err)
	require.NotNil(t, record)

	listed, err := env.history.ListByUser(context.Background(), cfg.UserID, 0)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestRotationExecutor_Execute_SkipsWithoutCurrentKey(t *testing.T) {
	env := newTestEnv(t)
	cfg, _ := env.newConfiguredSystem(t, 168, time.Now())
	cfg.CurrentKeyID = ""

	record, err := env.executor.Execute(context.Background(), cfg, keys.RotationTriggerScheduled, "interval elapsed")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestRotationExecutor_Execute_FailsOnSupersededKey(t *testing.T) {
	env := newTestEnv(t)
	cfg, oldKey := env.newConfiguredSystem(t, 168, time.Now())

	_, err := env.lifecycle.Rotate(context.Background(), oldKey.ID, "manual")
	require.NoError(t, err)

	// The configuration still points at the now-superseded key.
	record, err := env.executor.Execute(context.Background(), cfg, keys.RotationTriggerScheduled, "interval elapsed")
	assert.Nil(t, record)
	assert.ErrorIs(t, err, keys.ErrKeySuperseded)

	listed, err := env.history.ListByUser(context.Background(), cfg.UserID, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, keys.RotationStatusFailed, listed[0].Status)
}

func TestRotationExecutor_Execute_ConcurrentRunsRotateOnce(t *testing.T) {
	env := newTestEnv(t)
	cfg, _ := env.newConfiguredSystem(t, 168, time.Now())

	// Hold every run inside the migration window so the runs overlap.
	release := make(chan struct{})
	env.executor.sleep = func(time.Duration) { <-release }

	const runs = 4
	results := make([]*keys.RotationRecord, runs)
	var wg sync.WaitGroup
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cfgCopy := *cfg
			record, err := env.executor.Execute(context.Background(), &cfgCopy, keys.RotationTriggerScheduled, "interval elapsed")
			assert.NoError(t, err)
			results[i] = record
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	var executed int
	for _, record := range results {
		if record != nil {
			executed++
		}
	}
	assert.Equal(t, 1, executed)
}
