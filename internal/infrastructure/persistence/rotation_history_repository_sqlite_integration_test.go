//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/keys"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRotationRecord(userID string, status string, startedAt time.Time) *keys.RotationRecord {
	return &keys.RotationRecord{
		ID:             uuid.NewString(),
		UserID:         userID,
		OrganizationID: "org-test",
		OldKeyID:       uuid.NewString(),
		NewKeyID:       uuid.NewString(),
		OldAlgorithm:   "RSA-2048",
		NewAlgorithm:   "CRYSTALS-Dilithium",
		TriggeredBy:    keys.RotationTriggerScheduled,
		Reason:         "interval elapsed",
		Status:         status,
		StartedAt:      startedAt,
	}
}

func TestRotationHistorySqliteRepository_CreateAndListByKey(t *testing.T) {
	ctx := SetupTestDB(t)

	record := testRotationRecord(uuid.NewString(), keys.RotationStatusCompleted, time.Now())
	require.NoError(t, ctx.HistoryRepo.Create(context.Background(), record))

	byOld, err := ctx.HistoryRepo.ListByKey(context.Background(), record.OldKeyID)
	require.NoError(t, err)
	require.Len(t, byOld, 1)

	byNew, err := ctx.HistoryRepo.ListByKey(context.Background(), record.NewKeyID)
	require.NoError(t, err)
	require.Len(t, byNew, 1)
	assert.Equal(t, record.ID, byNew[0].ID)
}

func TestRotationHistorySqliteRepository_UpdateStatus(t *testing.T) {
	ctx := SetupTestDB(t)

	record := testRotationRecord(uuid.NewString(), keys.RotationStatusInitiated, time.Now())
	require.NoError(t, ctx.HistoryRepo.Create(context.Background(), record))

	completedAt := time.Now().UTC()
	impact := &keys.PerformanceImpact{DurationMs: 1500, CPUSpikePercent: 12.5, MemoryMB: 64, NetworkKB: 8}
	require.NoError(t, ctx.HistoryRepo.UpdateStatus(
		context.Background(), record.ID, keys.RotationStatusCompleted, completedAt, impact))

	listed, err := ctx.HistoryRepo.ListByUser(context.Background(), record.UserID, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, keys.RotationStatusCompleted, listed[0].Status)
	require.NotNil(t, listed[0].Impact)
	assert.Equal(t, int64(1500), listed[0].Impact.DurationMs)
	assert.False(t, listed[0].CompletedAt.IsZero())
}

func TestRotationHistorySqliteRepository_UpdateStatus_NotFound(t *testing.T) {
	ctx := SetupTestDB(t)

	err := ctx.HistoryRepo.UpdateStatus(
		context.Background(), uuid.NewString(), keys.RotationStatusFailed, time.Now(), nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRotationHistorySqliteRepository_LastCompletedForUser(t *testing.T) {
	ctx := SetupTestDB(t)

	userID := uuid.NewString()

	none, err := ctx.HistoryRepo.LastCompletedForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Nil(t, none)

	older := testRotationRecord(userID, keys.RotationStatusCompleted, time.Now().Add(-48*time.Hour))
	newer := testRotationRecord(userID, keys.RotationStatusCompleted, time.Now().Add(-1*time.Hour))
	failed := testRotationRecord(userID, keys.RotationStatusFailed, time.Now())

	require.NoError(t, ctx.HistoryRepo.Create(context.Background(), older))
	require.NoError(t, ctx.HistoryRepo.Create(context.Background(), newer))
	require.NoError(t, ctx.HistoryRepo.Create(context.Background(), failed))

	last, err := ctx.HistoryRepo.LastCompletedForUser(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, newer.ID, last.ID)
}

func TestRotationHistorySqliteRepository_ListByUser_Limit(t *testing.T) {
	ctx := SetupTestDB(t)

	userID := uuid.NewString()
	for i := 0; i < 5; i++ {
		record := testRotationRecord(userID, keys.RotationStatusCompleted, time.Now().Add(time.Duration(-i)*time.Hour))
		require.NoError(t, ctx.HistoryRepo.Create(context.Background(), record))
	}

	listed, err := ctx.HistoryRepo.ListByUser(context.Background(), userID, 3)
	require.NoError(t, err)
	assert.Len(t, listed, 3)
}
