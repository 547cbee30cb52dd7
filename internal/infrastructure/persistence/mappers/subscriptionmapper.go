package mappers

import (
	"fmt"

	"studia/internal/domain/billing"
	"studia/internal/infrastructure/persistence/models"
)

// SubscriptionToModel converts a subscription aggregate to its persistence model.
func SubscriptionToModel(s *billing.Subscription) *models.SubscriptionModel {
	return &models.SubscriptionModel{
		ID:                   s.ID(),
		SID:                  s.SID(),
		UserID:               s.UserID(),
		PlanID:               s.PlanID(),
		Status:               s.Status().String(),
		StripeCustomerID:     s.StripeCustomerID(),
		StripeSubscriptionID: s.StripeSubscriptionID(),
		CurrentPeriodEnd:     s.CurrentPeriodEnd(),
		CancelAtPeriodEnd:    s.CancelAtPeriodEnd(),
		Version:              s.Version(),
		CreatedAt:            s.CreatedAt(),
		UpdatedAt:            s.UpdatedAt(),
	}
}

// SubscriptionToDomain converts a persistence model back to the aggregate.
func SubscriptionToDomain(model *models.SubscriptionModel) (*billing.Subscription, error) {
	s, err := billing.ReconstructSubscription(billing.SubscriptionReconstructParams{
		ID:                   model.ID,
		SID:                  model.SID,
		UserID:               model.UserID,
		PlanID:               model.PlanID,
		Status:               billing.SubscriptionStatus(model.Status),
		StripeCustomerID:     model.StripeCustomerID,
		StripeSubscriptionID: model.StripeSubscriptionID,
		CurrentPeriodEnd:     model.CurrentPeriodEnd,
		CancelAtPeriodEnd:    model.CancelAtPeriodEnd,
		Version:              model.Version,
		CreatedAt:            model.CreatedAt,
		UpdatedAt:            model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription entity: %w", err)
	}
	return s, nil
}
