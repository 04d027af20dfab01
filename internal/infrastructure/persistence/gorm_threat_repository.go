package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/threats"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/infrastructure/persistence/models"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormThreatRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormThreatRepository creates a new GORM-based threats.Repository implementation
func NewGormThreatRepository(db *gorm.DB, logger logger.Logger) (threats.Repository, error) {
	return &gormThreatRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormThreatRepository) Create(ctx context.Context, threat *threats.ThreatIntelligence) error {
	model := &models.ThreatModel{}
	model.FromDomain(threat)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return threats.ErrDuplicateThreat
		}
		return fmt.Errorf("failed to create threat record: %w", err)
	}

	r.logger.Info("Recorded threat with id ", threat.ID)
	return nil
}

func (r *gormThreatRepository) GetByID(ctx context.Context, id string) (*threats.ThreatIntelligence, error) {
	var model models.ThreatModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, threats.ErrThreatNotFound
		}
		return nil, fmt.Errorf("failed to fetch threat record: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormThreatRepository) ListActive(ctx context.Context, minSeverity int, since time.Time) ([]*threats.ThreatIntelligence, error) {
	var modelList []*models.ThreatModel
	dbQuery := r.db.WithContext(ctx).Where("active = ?", true)

	if minSeverity > threats.SeverityMin {
		dbQuery = dbQuery.Where("severity >= ?", minSeverity)
	}
	if !since.IsZero() {
		dbQuery = dbQuery.Where("created_at >= ?", since)
	}

	if err := dbQuery.Order("severity desc, created_at desc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch active threats: %w", err)
	}

	domainList := make([]*threats.ThreatIntelligence, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormThreatRepository) Deactivate(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&models.ThreatModel{}).
		Where("id = ?", id).
		Update("active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate threat: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return threats.ErrThreatNotFound
	}

	r.logger.Info("Deactivated threat with id ", id)
	return nil
}

func (r *gormThreatRepository) Stats(ctx context.Context) (*threats.Stats, error) {
	stats := &threats.Stats{BySeverity: make(map[int]int)}

	type severityCount struct {
		Severity int
		Count    int
	}
	var counts []severityCount
	err := r.db.WithContext(ctx).
		Model(&models.ThreatModel{}).
		Select("severity, count(*) as count").
		Where("active = ?", true).
		Group("severity").
		Find(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate threat severities: %w", err)
	}
	for _, c := range counts {
		stats.BySeverity[c.Severity] = c.Count
		stats.TotalActive += c.Count
	}

	var critical int64
	err = r.db.WithContext(ctx).
		Model(&models.ThreatModel{}).
		Where("active = ? AND severity >= ? AND created_at >= ?",
			true, threats.CriticalSeverity, time.Now().AddDate(0, 0, -7)).
		Count(&critical).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count critical threats: %w", err)
	}
	stats.CriticalLast7 = int(critical)

	return stats, nil
}
