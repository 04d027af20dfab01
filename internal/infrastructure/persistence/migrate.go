package persistence

import (
	"fmt"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/infrastructure/persistence/models"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every persisted aggregate.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.UserModel{},
		&models.AlgorithmModel{},
		&models.SystemConfigurationModel{},
		&models.ThreatModel{},
		&models.RotationHistoryModel{},
		&models.RecommendationModel{},
		&models.ActivityLogModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}
	return nil
}
