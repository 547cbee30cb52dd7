package usecases

import (
	"context"
	"errors"
	"fmt"

	"studia/internal/application/billing/paymentgateway"
	"studia/internal/domain/billing"
	"studia/internal/domain/user"
	"studia/internal/shared/constants"
	"studia/internal/shared/logger"
)

// ErrMissingMetadata is returned when a provider object lacks the
// metadata needed to attribute it to a user or plan. Retrying cannot
// fix it, so callers acknowledge the event.
var ErrMissingMetadata = errors.New("provider object is missing required metadata")

// SyncSubscriptionCommand carries the provider subscription to mirror.
// When Subscription is nil the object is fetched by SubscriptionID so
// the freshest provider state wins.
type SyncSubscriptionCommand struct {
	SubscriptionID string
	Subscription   *paymentgateway.SubscriptionObject
	Deleted        bool
}

// SyncSubscriptionUseCase mirrors the provider's subscription state into
// the local one-row-per-user subscription table.
type SyncSubscriptionUseCase struct {
	subscriptionRepo billing.SubscriptionRepository
	planRepo         billing.PlanRepository
	userRepo         user.Repository
	gateway          paymentgateway.PaymentGateway
	logger           logger.Interface
}

// NewSyncSubscriptionUseCase creates the use case.
func NewSyncSubscriptionUseCase(
	subscriptionRepo billing.SubscriptionRepository,
	planRepo billing.PlanRepository,
	userRepo user.Repository,
	gateway paymentgateway.PaymentGateway,
	logger logger.Interface,
) *SyncSubscriptionUseCase {
	return &SyncSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		userRepo:         userRepo,
		gateway:          gateway,
		logger:           logger,
	}
}

// Execute resolves the subscribing user from the subscription object's
// own metadata and overwrites the local row with provider state.
func (uc *SyncSubscriptionUseCase) Execute(ctx context.Context, cmd SyncSubscriptionCommand) error {
	sub := cmd.Subscription
	if sub == nil {
		if cmd.SubscriptionID == "" {
			return ErrMissingMetadata
		}
		fetched, err := uc.gateway.GetSubscription(ctx, cmd.SubscriptionID)
		if err != nil {
			return fmt.Errorf("failed to fetch provider subscription: %w", err)
		}
		sub = fetched
	}

	userSID := sub.Metadata[constants.MetadataKeyUserID]
	if userSID == "" {
		uc.logger.Warnw("subscription has no user metadata", "provider_subscription_id", sub.ID)
		return ErrMissingMetadata
	}

	subscriber, err := uc.userRepo.GetBySID(ctx, userSID)
	if err != nil {
		return fmt.Errorf("failed to load subscriber: %w", err)
	}

	row, err := uc.subscriptionRepo.GetByUserID(ctx, subscriber.ID())
	if err != nil {
		if !errors.Is(err, billing.ErrSubscriptionNotFound) {
			return fmt.Errorf("failed to load subscription row: %w", err)
		}
		row, err = billing.NewPlaceholderSubscription(subscriber.ID(), sub.CustomerID)
		if err != nil {
			return err
		}
	}

	if cmd.Deleted {
		row.MarkCanceled()
		if err := uc.subscriptionRepo.UpsertByUserID(ctx, row); err != nil {
			return fmt.Errorf("failed to persist canceled subscription: %w", err)
		}
		uc.logger.Infow("subscription canceled", "user_sid", userSID, "provider_subscription_id", sub.ID)
		return nil
	}

	planID := sub.Metadata[constants.MetadataKeyPlanID]
	if planID == "" {
		uc.logger.Warnw("subscription has no plan metadata", "provider_subscription_id", sub.ID)
		return ErrMissingMetadata
	}

	if _, err := uc.planRepo.GetByID(ctx, planID); err != nil {
		if errors.Is(err, billing.ErrPlanNotFound) {
			uc.logger.Warnw("subscription references unknown plan", "plan_id", planID, "provider_subscription_id", sub.ID)
		}
		return err
	}

	status := billing.SubscriptionStatus(sub.Status)
	if !status.IsValid() {
		uc.logger.Warnw("unknown provider subscription status, treating as unpaid",
			"status", sub.Status,
			"provider_subscription_id", sub.ID,
		)
		status = billing.StatusUnpaid
	}

	if err := row.SyncFromProvider(planID, status, sub.ID, sub.CurrentPeriodEnd, sub.CancelAtPeriodEnd); err != nil {
		return err
	}

	if err := uc.subscriptionRepo.UpsertByUserID(ctx, row); err != nil {
		return fmt.Errorf("failed to persist subscription: %w", err)
	}

	uc.logger.Infow("subscription synchronized",
		"user_sid", userSID,
		"plan_id", planID,
		"status", status,
	)
	return nil
}
