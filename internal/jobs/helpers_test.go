//go:build unit
// +build unit

package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/app"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/keys"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/system"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/threats"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/infrastructure/memstore"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/config"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// testEnv wires the lifecycle service and executor over in-memory stores.
type testEnv struct {
	keyRepo    keys.Repository
	history    keys.HistoryRepository
	configs    system.ConfigRepository
	threatRepo threats.Repository
	lifecycle  keys.LifecycleService
	executor   *RotationExecutor
	logger     logger.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := logger.NewConsoleLogger(config.LogLevelError)

	catalog, err := app.NewAlgorithmCatalog(log)
	require.NoError(t, err)
	keyRepo, err := memstore.NewKeyStore(log)
	require.NoError(t, err)
	history, err := memstore.NewHistoryStore(log)
	require.NoError(t, err)
	configs, err := memstore.NewConfigStore(log)
	require.NoError(t, err)
	threatRepo, err := memstore.NewThreatStore(log)
	require.NoError(t, err)

	lifecycle, err := app.NewKeyLifecycleService(catalog, keyRepo, history, app.NewSimulatedThreatLevel(7), 1, log)
	require.NoError(t, err)

	executor, err := NewRotationExecutor(lifecycle, history, configs, nil, 1, log)
	require.NoError(t, err)
	executor.sleep = func(time.Duration) {}

	return &testEnv{
		keyRepo:    keyRepo,
		history:    history,
		configs:    configs,
		threatRepo: threatRepo,
		lifecycle:  lifecycle,
		executor:   executor,
		logger:     log,
	}
}

// newConfiguredSystem creates a signing key plus a matching auto-rotation
// configuration and returns both.
func (env *testEnv) newConfiguredSystem(t *testing.T, intervalHours int, updatedAt time.Time) (*system.Configuration, *keys.CryptographicKey) {
	t.Helper()

	key, err := env.lifecycle.Create(context.Background(), "RSA-2048", 2048, keys.PurposeSigning, "org-test")
	require.NoError(t, err)

	cfg := &system.Configuration{
		ID:                    uuid.NewString(),
		UserID:                uuid.NewString(),
		OrganizationID:        "org-test",
		CurrentAlgorithm:      key.Algorithm,
		CurrentKeyID:          key.ID,
		RotationIntervalHours: intervalHours,
		ThreatSensitivity:     3,
		AutoRotation:          true,
		UpdatedAt:             updatedAt,
	}
	require.NoError(t, env.configs.Upsert(context.Background(), cfg))
	return cfg, key
}
