package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/system"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/infrastructure/persistence/models"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormSystemConfigRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormSystemConfigRepository creates a new GORM-based system.ConfigRepository implementation
func NewGormSystemConfigRepository(db *gorm.DB, logger logger.Logger) (system.ConfigRepository, error) {
	return &gormSystemConfigRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormSystemConfigRepository) Upsert(ctx context.Context, cfg *system.Configuration) error {
	model := &models.SystemConfigurationModel{}
	model.FromDomain(cfg)

	// One configuration row per user; a second write replaces the first.
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"organization_id", "current_algorithm", "backup_algorithm",
			"current_key_id", "rotation_interval_hours", "threat_sensitivity",
			"auto_rotation", "updated_at",
		}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert system configuration: %w", err)
	}

	r.logger.Info("Saved system configuration for user ", cfg.UserID)
	return nil
}

func (r *gormSystemConfigRepository) GetByUserID(ctx context.Context, userID string) (*system.Configuration, error) {
	var model models.SystemConfigurationModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, system.ErrConfigurationNotFound
		}
		return nil, fmt.Errorf("failed to fetch system configuration: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormSystemConfigRepository) ListAutoRotation(ctx context.Context) ([]*system.Configuration, error) {
	var modelList []*models.SystemConfigurationModel
	err := r.db.WithContext(ctx).
		Where("auto_rotation = ?", true).
		Order("updated_at asc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch auto-rotation configurations: %w", err)
	}

	domainList := make([]*system.Configuration, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}
