package usecases

import (
	"context"
	"errors"
	"time"

	"studia/internal/domain/billing"
	"studia/internal/shared/logger"
)

// GetMySubscriptionCommand identifies the requesting user.
type GetMySubscriptionCommand struct {
	UserID uint
}

// SubscriptionView is the read model returned to the API layer.
type SubscriptionView struct {
	SID               string
	PlanID            string
	EffectivePlan     string
	Status            string
	CurrentPeriodEnd  *time.Time
	CancelAtPeriodEnd bool
}

// GetMySubscriptionUseCase returns the user's subscription state. Users
// without a row are on the free plan.
type GetMySubscriptionUseCase struct {
	subscriptionRepo billing.SubscriptionRepository
	logger           logger.Interface
}

// NewGetMySubscriptionUseCase creates the use case.
func NewGetMySubscriptionUseCase(subscriptionRepo billing.SubscriptionRepository, logger logger.Interface) *GetMySubscriptionUseCase {
	return &GetMySubscriptionUseCase{subscriptionRepo: subscriptionRepo, logger: logger}
}

// Execute loads the subscription view.
func (uc *GetMySubscriptionUseCase) Execute(ctx context.Context, cmd GetMySubscriptionCommand) (*SubscriptionView, error) {
	row, err := uc.subscriptionRepo.GetByUserID(ctx, cmd.UserID)
	if err != nil {
		if errors.Is(err, billing.ErrSubscriptionNotFound) {
			return &SubscriptionView{
				PlanID:        billing.PlanFree,
				EffectivePlan: billing.PlanFree,
				Status:        billing.StatusCanceled.String(),
			}, nil
		}
		return nil, err
	}

	return &SubscriptionView{
		SID:               row.SID(),
		PlanID:            row.PlanID(),
		EffectivePlan:     row.EffectivePlan(),
		Status:            row.Status().String(),
		CurrentPeriodEnd:  row.CurrentPeriodEnd(),
		CancelAtPeriodEnd: row.CancelAtPeriodEnd(),
	}, nil
}
