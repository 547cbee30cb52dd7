package migration

import (
	"fmt"

	"gorm.io/gorm"

	"studia/internal/infrastructure/persistence/models"
	"studia/internal/shared/logger"
)

// AutoMigrateModels lists every persistence model in dependency order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.CourseModel{},
		&models.OrderModel{},
		&models.EntitlementModel{},
		&models.PlanModel{},
		&models.SubscriptionModel{},
		&models.ProcessedStripeEventModel{},
	}
}

// GormAutoMigrateStrategy migrates the schema straight from the model
// structs. Development only; versioned scripts own test and production.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.gorm"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	if len(models) == 0 {
		models = AutoMigrateModels()
	}

	s.logger.Infow("starting gorm auto-migration", "models_count", len(models))

	if err := db.AutoMigrate(models...); err != nil {
		s.logger.Errorw("auto-migration failed", "error", err)
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}

	s.logger.Infow("auto-migration completed successfully")
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}
