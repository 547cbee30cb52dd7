package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"studia/internal/domain/billing"
	"studia/internal/infrastructure/persistence/mappers"
	"studia/internal/infrastructure/persistence/models"
	"studia/internal/shared/logger"
)

// PlanRepository implements the plan repository interface
type PlanRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *gorm.DB, logger logger.Interface) billing.PlanRepository {
	return &PlanRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a plan by identifier
func (r *PlanRepository) GetByID(ctx context.Context, id string) (*billing.Plan, error) {
	var model models.PlanModel

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billing.ErrPlanNotFound
		}
		r.logger.Errorw("failed to get plan", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return mappers.PlanToDomain(&model)
}

// ListActive returns subscribable plans ordered by price
func (r *PlanRepository) ListActive(ctx context.Context) ([]*billing.Plan, error) {
	var planModels []*models.PlanModel

	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("price_cents ASC").
		Find(&planModels).Error; err != nil {
		r.logger.Errorw("failed to list active plans", "error", err)
		return nil, fmt.Errorf("failed to list active plans: %w", err)
	}

	plans := make([]*billing.Plan, 0, len(planModels))
	for _, model := range planModels {
		plan, err := mappers.PlanToDomain(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map plan %s: %w", model.ID, err)
		}
		plans = append(plans, plan)
	}

	return plans, nil
}

// Upsert inserts the plan or refreshes the existing definition. Used by
// the seed step so configuration stays the source of truth.
func (r *PlanRepository) Upsert(ctx context.Context, plan *billing.Plan) error {
	model := mappers.PlanToModel(plan)

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name",
			"description",
			"price_cents",
			"currency",
			"stripe_price_id",
			"max_courses",
			"active",
			"updated_at",
		}),
	}).Create(model)
	if result.Error != nil {
		r.logger.Errorw("failed to upsert plan", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to upsert plan: %w", result.Error)
	}

	return nil
}
