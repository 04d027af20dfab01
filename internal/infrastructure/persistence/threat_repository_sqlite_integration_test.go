//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/threats"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreatSqliteRepository_CreateAndGet(t *testing.T) {
	ctx := SetupTestDB(t)

	threat := CreateTestThreat(t, 3)
	require.NoError(t, ctx.ThreatRepo.Create(context.Background(), threat))

	fetched, err := ctx.ThreatRepo.GetByID(context.Background(), threat.ID)
	require.NoError(t, err)
	assert.Equal(t, threat.Title, fetched.Title)
	assert.Equal(t, []string{"RSA-2048"}, fetched.AffectedAlgorithms)
	assert.True(t, fetched.Active)
}

func TestThreatSqliteRepository_Create_DuplicateTitle(t *testing.T) {
	ctx := SetupTestDB(t)

	first := CreateTestThreat(t, 3)
	require.NoError(t, ctx.ThreatRepo.Create(context.Background(), first))

	second := CreateTestThreat(t, 4)
	second.Title = first.Title

	err := ctx.ThreatRepo.Create(context.Background(), second)
	assert.ErrorIs(t, err, threats.ErrDuplicateThreat)
}

func TestThreatSqliteRepository_ListActive_FiltersSeverityAndCutoff(t *testing.T) {
	ctx := SetupTestDB(t)

	low := CreateTestThreat(t, 2)
	high := CreateTestThreat(t, 5)
	old := CreateTestThreat(t, 5)
	old.CreatedAt = time.Now().AddDate(0, 0, -30)

	require.NoError(t, ctx.ThreatRepo.Create(context.Background(), low))
	require.NoError(t, ctx.ThreatRepo.Create(context.Background(), high))
	require.NoError(t, ctx.ThreatRepo.Create(context.Background(), old))

	listed, err := ctx.ThreatRepo.ListActive(context.Background(), threats.CriticalSeverity, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, high.ID, listed[0].ID)
}

func TestThreatSqliteRepository_Deactivate(t *testing.T) {
	ctx := SetupTestDB(t)

	threat := CreateTestThreat(t, 4)
	require.NoError(t, ctx.ThreatRepo.Create(context.Background(), threat))
	require.NoError(t, ctx.ThreatRepo.Deactivate(context.Background(), threat.ID))

	fetched, err := ctx.ThreatRepo.GetByID(context.Background(), threat.ID)
	require.NoError(t, err)
	assert.False(t, fetched.Active)

	listed, err := ctx.ThreatRepo.ListActive(context.Background(), threats.SeverityMin, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestThreatSqliteRepository_Deactivate_NotFound(t *testing.T) {
	ctx := SetupTestDB(t)

	err := ctx.ThreatRepo.Deactivate(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, threats.ErrThreatNotFound)
}

func TestThreatSqliteRepository_Stats(t *testing.T) {
	ctx := SetupTestDB(t)

	require.NoError(t, ctx.ThreatRepo.Create(context.Background(), CreateTestThreat(t, 2)))
	require.NoError(t, ctx.ThreatRepo.Create(context.Background(), CreateTestThreat(t, 4)))
	require.NoError(t, ctx.ThreatRepo.Create(context.Background(), CreateTestThreat(t, 4)))

	inactive := CreateTestThreat(t, 5)
	require.NoError(t, ctx.ThreatRepo.Create(context.Background(), inactive))
	require.NoError(t, ctx.ThreatRepo.Deactivate(context.Background(), inactive.ID))

	stats, err := ctx.ThreatRepo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalActive)
	assert.Equal(t, 1, stats.BySeverity[2])
	assert.Equal(t, 2, stats.BySeverity[4])
	assert.Equal(t, 2, stats.CriticalLast7)
}
