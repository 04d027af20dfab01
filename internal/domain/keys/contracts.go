package keys

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for key lifecycle operations.
var (
	ErrKeyNotFound   = errors.New("key not found")
	ErrKeySuperseded = errors.New("key already superseded")
	ErrInvalidKey    = errors.New("invalid key parameters")
)

// LifecycleService manages cryptographic key records from creation through
// rotation and soft decommission.
type LifecycleService interface {
	// Create generates a new key record for the given algorithm, key size,
	// purpose and organization, with an adaptive rotation schedule attached.
	Create(ctx context.Context, algorithm string, keySize uint32, purpose KeyPurpose, organizationID string) (*CryptographicKey, error)

	// GetByID retrieves a key record by ID. Returns ErrKeyNotFound when missing.
	GetByID(ctx context.Context, keyID string) (*CryptographicKey, error)

	// List returns all key records for an organization; empty organizationID
	// lists every key.
	List(ctx context.Context, organizationID string) ([]*CryptographicKey, error)

	// CheckRotationTriggers evaluates every enabled trigger of the key and
	// returns whether rotation is due plus human-readable reasons.
	CheckRotationTriggers(ctx context.Context, keyID string) (*TriggerEvaluation, error)

	// Rotate replaces the key with a successor. The successor always carries
	// a quantum-resistant algorithm when one is cataloged for the key's
	// purpose. The old key is kept with a 7-day grace expiration. A second
	// rotation of an already superseded key returns ErrKeySuperseded.
	Rotate(ctx context.Context, keyID string, reason string) (*CryptographicKey, error)

	// RecordUsage increments usage counters, appends a performance sample and
	// re-checks rotation triggers; a due trigger rotates synchronously. The
	// returned key is the record that should serve subsequent operations
	// (the successor when rotation happened).
	RecordUsage(ctx context.Context, keyID string, operation string, dataSize int64) (*CryptographicKey, error)
}

// Repository is the storage capability set for key records. Implementations
// must be safe for concurrent use.
type Repository interface {
	Save(ctx context.Context, key *CryptographicKey) error
	GetByID(ctx context.Context, keyID string) (*CryptographicKey, error)
	List(ctx context.Context, organizationID string) ([]*CryptographicKey, error)
	Update(ctx context.Context, key *CryptographicKey) error
}

// HistoryRepository persists rotation-history records. Records are append
// only apart from status transitions while a rotation run is in flight.
type HistoryRepository interface {
	Create(ctx context.Context, record *RotationRecord) error
	Update(ctx context.Context, record *RotationRecord) error
	UpdateStatus(ctx context.Context, recordID string, status string, completedAt time.Time, impact *PerformanceImpact) error
	ListByKey(ctx context.Context, keyID string) ([]*RotationRecord, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*RotationRecord, error)
	LastCompletedForUser(ctx context.Context, userID string) (*RotationRecord, error)
}
