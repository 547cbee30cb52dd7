package mappers

import (
	"fmt"

	"studia/internal/domain/billing"
	"studia/internal/infrastructure/persistence/models"
)

// PlanToModel converts a plan to its persistence model.
func PlanToModel(p *billing.Plan) *models.PlanModel {
	return &models.PlanModel{
		ID:            p.ID(),
		Name:          p.Name(),
		Description:   p.Description(),
		PriceCents:    p.PriceCents(),
		Currency:      p.Currency(),
		StripePriceID: p.StripePriceID(),
		MaxCourses:    p.MaxCourses(),
		Active:        p.IsActive(),
	}
}

// PlanToDomain converts a persistence model back to the plan.
func PlanToDomain(model *models.PlanModel) (*billing.Plan, error) {
	p, err := billing.NewPlan(
		model.ID,
		model.Name,
		model.Description,
		model.PriceCents,
		model.Currency,
		model.StripePriceID,
		model.MaxCourses,
		model.Active,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct plan: %w", err)
	}
	return p, nil
}
