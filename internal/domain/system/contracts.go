package system

import (
	"context"
	"errors"
)

// ErrConfigurationNotFound is returned when a user has no system configuration.
var ErrConfigurationNotFound = errors.New("system configuration not found")

// Service exposes system configuration and platform status to the API layer.
type Service interface {
	// GetConfiguration returns the caller's system configuration, or
	// ErrConfigurationNotFound when none exists yet.
	GetConfiguration(ctx context.Context, userID string) (*Configuration, error)

	// UpdateConfiguration validates and upserts the caller's configuration.
	UpdateConfiguration(ctx context.Context, cfg *Configuration) (*Configuration, error)

	// Status synthesizes the platform health snapshot.
	Status(ctx context.Context) (*Status, error)
}

// ConfigRepository persists per-user system configurations.
type ConfigRepository interface {
	Upsert(ctx context.Context, cfg *Configuration) error
	GetByUserID(ctx context.Context, userID string) (*Configuration, error)
	ListAutoRotation(ctx context.Context) ([]*Configuration, error)
}

// ActivityRepository persists audit-trail entries.
type ActivityRepository interface {
	Create(ctx context.Context, entry *ActivityLog) error
	ListRecent(ctx context.Context, limit int) ([]*ActivityLog, error)
}

// RecommendationRepository persists AI recommendation outcomes.
type RecommendationRepository interface {
	Create(ctx context.Context, rec *RecommendationRecord) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*RecommendationRecord, error)
}
