//go:build integration
// +build integration

package persistence

import (
	"testing"
	"time"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/keys"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/system"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/threats"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/users"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/config"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext bundles an in-memory database with every repository under test.
type TestContext struct {
	DB           *gorm.DB
	UserRepo     users.Repository
	ConfigRepo   system.ConfigRepository
	ThreatRepo   threats.Repository
	HistoryRepo  keys.HistoryRepository
	RecRepo      system.RecommendationRepository
	ActivityRepo system.ActivityRepository
}

// SetupTestDB opens an in-memory SQLite database, migrates the schema and
// wires all repositories.
func SetupTestDB(t *testing.T) *TestContext {
	t.Helper()

	settings := config.DatabaseSettings{Type: config.SqliteDbType, DSN: ":memory:"}
	db, err := NewDBConnection(settings)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, CloseDB(db))
	})

	require.NoError(t, AutoMigrate(db))

	log := newTestLogger(t)

	userRepo, err := NewGormUserRepository(db, log)
	require.NoError(t, err)
	configRepo, err := NewGormSystemConfigRepository(db, log)
	require.NoError(t, err)
	threatRepo, err := NewGormThreatRepository(db, log)
	require.NoError(t, err)
	historyRepo, err := NewGormRotationHistoryRepository(db, log)
	require.NoError(t, err)
	recRepo, err := NewGormRecommendationRepository(db, log)
	require.NoError(t, err)
	activityRepo, err := NewGormActivityLogRepository(db, log)
	require.NoError(t, err)

	return &TestContext{
		DB:           db,
		UserRepo:     userRepo,
		ConfigRepo:   configRepo,
		ThreatRepo:   threatRepo,
		HistoryRepo:  historyRepo,
		RecRepo:      recRepo,
		ActivityRepo: activityRepo,
	}
}

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	return logger.NewConsoleLogger(config.LogLevelError)
}

// CreateTestUser builds a valid account record with unique username and email.
func CreateTestUser(t *testing.T) *users.User {
	t.Helper()

	id := uuid.NewString()
	return &users.User{
		ID:             id,
		Username:       "user-" + id[:8],
		Email:          "user-" + id[:8] + "@example.com",
		PasswordHash:   "$2a$10$abcdefghijklmnopqrstuv",
		Role:           users.RoleUser,
		ClearanceLevel: 1,
		OrganizationID: "org-test",
		CreatedAt:      time.Now().UTC(),
	}
}

// CreateTestThreat builds a valid active threat record with a unique title.
func CreateTestThreat(t *testing.T, severity int) *threats.ThreatIntelligence {
	t.Helper()

	id := uuid.NewString()
	return &threats.ThreatIntelligence{
		ID:                  id,
		Type:                "cryptanalysis",
		Severity:            severity,
		Confidence:          0.8,
		Source:              "test-feed",
		Title:               "threat-" + id[:8],
		Description:         "synthetic record",
		AffectedAlgorithms:  []string{"RSA-2048"},
		PredictedImpactDate: time.Now().AddDate(0, 1, 0),
		Mitigations:         []string{"migrate to CRYSTALS-Kyber"},
		Active:              true,
		CreatedAt:           time.Now().UTC(),
	}
}
