package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/keys"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/infrastructure/persistence/models"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormRotationHistoryRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormRotationHistoryRepository creates a new GORM-based keys.HistoryRepository implementation
func NewGormRotationHistoryRepository(db *gorm.DB, logger logger.Logger) (keys.HistoryRepository, error) {
	return &gormRotationHistoryRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormRotationHistoryRepository) Create(ctx context.Context, record *keys.RotationRecord) error {
	model := &models.RotationHistoryModel{}
	model.FromDomain(record)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create rotation record: %w", err)
	}

	r.logger.Info("Created rotation record with id ", record.ID)
	return nil
}

func (r *gormRotationHistoryRepository) Update(ctx context.Context, record *keys.RotationRecord) error {
	model := &models.RotationHistoryModel{}
	model.FromDomain(record)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update rotation record: %w", err)
	}
	return nil
}

func (r *gormRotationHistoryRepository) UpdateStatus(ctx context.Context, recordID string, status string, completedAt time.Time, impact *keys.PerformanceImpact) error {
	// Update through the model struct so the json serializer on Impact applies.
	update := models.RotationHistoryModel{Status: status}
	columns := []string{"status"}
	if !completedAt.IsZero() {
		update.CompletedAt = &completedAt
		columns = append(columns, "completed_at")
	}
	if impact != nil {
		update.Impact = impact
		columns = append(columns, "impact")
	}

	result := r.db.WithContext(ctx).
		Model(&models.RotationHistoryModel{}).
		Where("id = ?", recordID).
		Select(columns).
		Updates(update)
	if result.Error != nil {
		return fmt.Errorf("failed to update rotation record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("rotation record with ID %s not found", recordID)
	}
	return nil
}

func (r *gormRotationHistoryRepository) ListByKey(ctx context.Context, keyID string) ([]*keys.RotationRecord, error) {
	var modelList []*models.RotationHistoryModel
	err := r.db.WithContext(ctx).
		Where("old_key_id = ? OR new_key_id = ?", keyID, keyID).
		Order("started_at desc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rotation history: %w", err)
	}
	return toRotationRecords(modelList), nil
}

func (r *gormRotationHistoryRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*keys.RotationRecord, error) {
	var modelList []*models.RotationHistoryModel
	dbQuery := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at desc")
	if limit > 0 {
		dbQuery = dbQuery.Limit(limit)
	}
	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch rotation history: %w", err)
	}
	return toRotationRecords(modelList), nil
}

func (r *gormRotationHistoryRepository) LastCompletedForUser(ctx context.Context, userID string) (*keys.RotationRecord, error) {
	var model models.RotationHistoryModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, keys.RotationStatusCompleted).
		Order("started_at desc").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch last completed rotation: %w", err)
	}
	return model.ToDomain(), nil
}

func toRotationRecords(modelList []*models.RotationHistoryModel) []*keys.RotationRecord {
	domainList := make([]*keys.RotationRecord, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList
}
