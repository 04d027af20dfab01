package persistence

import (
	"context"
	"fmt"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/system"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/infrastructure/persistence/models"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormActivityLogRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormActivityLogRepository creates a new GORM-based system.ActivityRepository implementation
func NewGormActivityLogRepository(db *gorm.DB, logger logger.Logger) (system.ActivityRepository, error) {
	return &gormActivityLogRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormActivityLogRepository) Create(ctx context.Context, entry *system.ActivityLog) error {
	model := &models.ActivityLogModel{}
	model.FromDomain(entry)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create activity entry: %w", err)
	}
	return nil
}

func (r *gormActivityLogRepository) ListRecent(ctx context.Context, limit int) ([]*system.ActivityLog, error) {
	var modelList []*models.ActivityLogModel
	dbQuery := r.db.WithContext(ctx).Order("created_at desc")
	if limit > 0 {
		dbQuery = dbQuery.Limit(limit)
	}
	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch activity entries: %w", err)
	}

	domainList := make([]*system.ActivityLog, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}
