package usecases

import (
	"context"

	"studia/internal/domain/billing"
	"studia/internal/shared/logger"
	"studia/internal/shared/utils"
)

// PlanView is the read model for a subscribable plan.
type PlanView struct {
	ID             string
	Name           string
	Description    string
	PriceCents     int64
	Currency       string
	PriceFormatted string
	MaxCourses     int
}

// ListPlansUseCase returns the active plans for the public pricing page.
type ListPlansUseCase struct {
	planRepo billing.PlanRepository
	logger   logger.Interface
}

// NewListPlansUseCase creates the use case.
func NewListPlansUseCase(planRepo billing.PlanRepository, logger logger.Interface) *ListPlansUseCase {
	return &ListPlansUseCase{planRepo: planRepo, logger: logger}
}

// Execute lists the active plans.
func (uc *ListPlansUseCase) Execute(ctx context.Context) ([]PlanView, error) {
	plans, err := uc.planRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]PlanView, 0, len(plans))
	for _, p := range plans {
		views = append(views, PlanView{
			ID:             p.ID(),
			Name:           p.Name(),
			Description:    p.Description(),
			PriceCents:     p.PriceCents(),
			Currency:       p.Currency(),
			PriceFormatted: utils.FormatPrice(p.PriceCents(), p.Currency()),
			MaxCourses:     p.MaxCourses(),
		})
	}
	return views, nil
}
