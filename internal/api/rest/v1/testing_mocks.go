//go:build unit
// +build unit

package v1

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/algorithms"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/keys"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/system"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/threats"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/users"
)

// MockAuthService is a mock implementation of users.AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, email, password string, role users.Role, organizationID string) (*users.User, error) {
	args := m.Called(ctx, username, email, password, role, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, *users.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*users.User), args.Error(2)
}

func (m *MockAuthService) VerifyToken(token string) (*users.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.TokenClaims), args.Error(1)
}

// MockUserRepository is a mock implementation of users.Repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *users.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*users.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

// MockCatalog is a mock implementation of algorithms.Catalog
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) List(ctx context.Context) []*algorithms.AlgorithmProfile {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*algorithms.AlgorithmProfile)
}

func (m *MockCatalog) GetByID(ctx context.Context, id string) (*algorithms.AlgorithmProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*algorithms.AlgorithmProfile), args.Error(1)
}

func (m *MockCatalog) GetByName(ctx context.Context, name string) (*algorithms.AlgorithmProfile, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*algorithms.AlgorithmProfile), args.Error(1)
}

func (m *MockCatalog) ListByType(ctx context.Context, t algorithms.AlgorithmType) []*algorithms.AlgorithmProfile {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*algorithms.AlgorithmProfile)
}

// MockSelectionService is a mock implementation of algorithms.SelectionService
type MockSelectionService struct {
	mock.Mock
}

func (m *MockSelectionService) Recommend(ctx context.Context, req *algorithms.Requirements) ([]*algorithms.Recommendation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*algorithms.Recommendation), args.Error(1)
}

func (m *MockSelectionService) Compare(ctx context.Context, ids []string, req *algorithms.Requirements) ([]*algorithms.Recommendation, error) {
	args := m.Called(ctx, ids, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*algorithms.Recommendation), args.Error(1)
}

// MockLifecycleService is a mock implementation of keys.LifecycleService
type MockLifecycleService struct {
	mock.Mock
}

func (m *MockLifecycleService) Create(ctx context.Context, algorithm string, keySize uint32, purpose keys.KeyPurpose, organizationID string) (*keys.CryptographicKey, error) {
	args := m.Called(ctx, algorithm, keySize, purpose, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.CryptographicKey), args.Error(1)
}

func (m *MockLifecycleService) GetByID(ctx context.Context, keyID string) (*keys.CryptographicKey, error) {
	args := m.Called(ctx, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.CryptographicKey), args.Error(1)
}

func (m *MockLifecycleService) List(ctx context.Context, organizationID string) ([]*keys.CryptographicKey, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*keys.CryptographicKey), args.Error(1)
}

func (m *MockLifecycleService) CheckRotationTriggers(ctx context.Context, keyID string) (*keys.TriggerEvaluation, error) {
	args := m.Called(ctx, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.TriggerEvaluation), args.Error(1)
}

func (m *MockLifecycleService) Rotate(ctx context.Context, keyID string, reason string) (*keys.CryptographicKey, error) {
	args := m.Called(ctx, keyID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.CryptographicKey), args.Error(1)
}

func (m *MockLifecycleService) RecordUsage(ctx context.Context, keyID string, operation string, dataSize int64) (*keys.CryptographicKey, error) {
	args := m.Called(ctx, keyID, operation, dataSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.CryptographicKey), args.Error(1)
}

// MockThreatService is a mock implementation of threats.Service
type MockThreatService struct {
	mock.Mock
}

func (m *MockThreatService) Report(ctx context.Context, threat *threats.ThreatIntelligence) (*threats.ThreatIntelligence, error) {
	args := m.Called(ctx, threat)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*threats.ThreatIntelligence), args.Error(1)
}

func (m *MockThreatService) ListActive(ctx context.Context, minSeverity int, since time.Time) ([]*threats.ThreatIntelligence, error) {
	args := m.Called(ctx, minSeverity, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*threats.ThreatIntelligence), args.Error(1)
}

func (m *MockThreatService) Deactivate(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockThreatService) Stats(ctx context.Context) (*threats.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*threats.Stats), args.Error(1)
}

// MockSystemService is a mock implementation of system.Service
type MockSystemService struct {
	mock.Mock
}

func (m *MockSystemService) GetConfiguration(ctx context.Context, userID string) (*system.Configuration, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*system.Configuration), args.Error(1)
}

func (m *MockSystemService) UpdateConfiguration(ctx context.Context, cfg *system.Configuration) (*system.Configuration, error) {
	args := m.Called(ctx, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*system.Configuration), args.Error(1)
}

func (m *MockSystemService) Status(ctx context.Context) (*system.Status, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*system.Status), args.Error(1)
}

// MockHistoryRepository is a mock implementation of keys.HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Create(ctx context.Context, record *keys.RotationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockHistoryRepository) Update(ctx context.Context, record *keys.RotationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockHistoryRepository) UpdateStatus(ctx context.Context, recordID string, status string, completedAt time.Time, impact *keys.PerformanceImpact) error {
	args := m.Called(ctx, recordID, status, completedAt, impact)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListByKey(ctx context.Context, keyID string) ([]*keys.RotationRecord, error) {
	args := m.Called(ctx, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*keys.RotationRecord), args.Error(1)
}

func (m *MockHistoryRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*keys.RotationRecord, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*keys.RotationRecord), args.Error(1)
}

func (m *MockHistoryRepository) LastCompletedForUser(ctx context.Context, userID string) (*keys.RotationRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.RotationRecord), args.Error(1)
}

// MockActivityRepository is a mock implementation of system.ActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, entry *system.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockActivityRepository) ListRecent(ctx context.Context, limit int) ([]*system.ActivityLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*system.ActivityLog), args.Error(1)
}
