package persistence

import (
	"context"
	"fmt"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/system"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/infrastructure/persistence/models"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormRecommendationRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormRecommendationRepository creates a new GORM-based system.RecommendationRepository implementation
func NewGormRecommendationRepository(db *gorm.DB, logger logger.Logger) (system.RecommendationRepository, error) {
	return &gormRecommendationRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormRecommendationRepository) Create(ctx context.Context, rec *system.RecommendationRecord) error {
	model := &models.RecommendationModel{}
	model.FromDomain(rec)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create recommendation record: %w", err)
	}
	return nil
}

func (r *gormRecommendationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*system.RecommendationRecord, error) {
	var modelList []*models.RecommendationModel
	dbQuery := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc")
	if limit > 0 {
		dbQuery = dbQuery.Limit(limit)
	}
	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recommendation records: %w", err)
	}

	domainList := make([]*system.RecommendationRecord, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}
