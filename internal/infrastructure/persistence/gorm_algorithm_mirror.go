package persistence

import (
	"context"
	"fmt"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/algorithms"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/infrastructure/persistence/models"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AlgorithmMirror keeps a queryable copy of the in-memory algorithm catalog
// in the database. The catalog stays authoritative; the mirror exists so
// reporting queries can join algorithm metadata against key and threat rows.
type AlgorithmMirror struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormAlgorithmMirror creates a database mirror of the algorithm catalog
func NewGormAlgorithmMirror(db *gorm.DB, logger logger.Logger) (*AlgorithmMirror, error) {
	return &AlgorithmMirror{
		db:     db,
		logger: logger,
	}, nil
}

// Seed writes every cataloged profile, replacing rows that already exist.
func (m *AlgorithmMirror) Seed(ctx context.Context, catalog algorithms.Catalog) error {
	profiles := catalog.List(ctx)

	for _, profile := range profiles {
		model := &models.AlgorithmModel{}
		model.FromDomain(profile)

		err := m.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(model).Error
		if err != nil {
			return fmt.Errorf("failed to mirror algorithm %s: %w", profile.ID, err)
		}
	}

	m.logger.Info("Mirrored ", len(profiles), " algorithm profiles to the database")
	return nil
}

// List returns the mirrored profiles ordered by name.
func (m *AlgorithmMirror) List(ctx context.Context) ([]*algorithms.AlgorithmProfile, error) {
	var modelList []*models.AlgorithmModel
	if err := m.db.WithContext(ctx).Order("name asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch mirrored algorithms: %w", err)
	}

	domainList := make([]*algorithms.AlgorithmProfile, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}
