package usecases

import (
	"context"
	"errors"
	"fmt"

	"studia/internal/application/billing/paymentgateway"
	"studia/internal/domain/billing"
	"studia/internal/domain/user"
	"studia/internal/shared/constants"
	apperrors "studia/internal/shared/errors"
	"studia/internal/shared/logger"
)

// CreateSubscriptionCheckoutCommand starts a plan subscription.
type CreateSubscriptionCheckoutCommand struct {
	UserID uint
	PlanID string
}

// CreateSubscriptionCheckoutUseCase creates a hosted checkout session
// for a paid plan. A provider customer is provisioned on first use and
// remembered through a placeholder subscription row, so later webhooks
// can always be attributed.
type CreateSubscriptionCheckoutUseCase struct {
	subscriptionRepo billing.SubscriptionRepository
	planRepo         billing.PlanRepository
	userRepo         user.Repository
	gateway          paymentgateway.PaymentGateway
	urls             CheckoutURLs
	logger           logger.Interface
}

// NewCreateSubscriptionCheckoutUseCase creates the use case.
func NewCreateSubscriptionCheckoutUseCase(
	subscriptionRepo billing.SubscriptionRepository,
	planRepo billing.PlanRepository,
	userRepo user.Repository,
	gateway paymentgateway.PaymentGateway,
	urls CheckoutURLs,
	logger logger.Interface,
) *CreateSubscriptionCheckoutUseCase {
	return &CreateSubscriptionCheckoutUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		userRepo:         userRepo,
		gateway:          gateway,
		urls:             urls,
		logger:           logger,
	}
}

// Execute validates the plan, ensures a provider customer exists and
// starts the hosted checkout.
func (uc *CreateSubscriptionCheckoutUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCheckoutCommand) (*CheckoutResult, error) {
	subscriber, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	plan, err := uc.planRepo.GetByID(ctx, cmd.PlanID)
	if err != nil {
		return nil, err
	}
	if plan.IsFree() || !plan.IsActive() || plan.StripePriceID() == "" {
		return nil, apperrors.NewValidationError("plan cannot be subscribed to")
	}

	customerID, err := uc.ensureCustomer(ctx, subscriber)
	if err != nil {
		return nil, err
	}

	session, err := uc.gateway.CreateCheckoutSession(ctx, paymentgateway.CreateCheckoutSessionRequest{
		Mode:       paymentgateway.ModeSubscription,
		CustomerID: customerID,
		SuccessURL: uc.urls.SuccessURL,
		CancelURL:  uc.urls.CancelURL,
		PriceID:    plan.StripePriceID(),
		Metadata: map[string]string{
			constants.MetadataKeyUserID: subscriber.SID(),
			constants.MetadataKeyPlanID: plan.ID(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription checkout session: %w", err)
	}

	uc.logger.Infow("subscription checkout created",
		"user_sid", subscriber.SID(),
		"plan_id", plan.ID(),
		"session_id", session.SessionID,
	)
	return &CheckoutResult{SessionID: session.SessionID, CheckoutURL: session.CheckoutURL}, nil
}

// ensureCustomer returns the user's provider customer ID, provisioning
// one and writing the placeholder subscription row on first use.
func (uc *CreateSubscriptionCheckoutUseCase) ensureCustomer(ctx context.Context, subscriber *user.User) (string, error) {
	row, err := uc.subscriptionRepo.GetByUserID(ctx, subscriber.ID())
	if err == nil {
		return row.StripeCustomerID(), nil
	}
	if !errors.Is(err, billing.ErrSubscriptionNotFound) {
		return "", fmt.Errorf("failed to load subscription row: %w", err)
	}

	customerID, err := uc.gateway.CreateCustomer(ctx, paymentgateway.CreateCustomerRequest{
		Email: subscriber.Email().String(),
		Name:  subscriber.Name().String(),
		Metadata: map[string]string{
			constants.MetadataKeyUserID: subscriber.SID(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create provider customer: %w", err)
	}

	placeholder, err := billing.NewPlaceholderSubscription(subscriber.ID(), customerID)
	if err != nil {
		return "", err
	}
	if err := uc.subscriptionRepo.UpsertByUserID(ctx, placeholder); err != nil {
		return "", fmt.Errorf("failed to persist placeholder subscription: %w", err)
	}

	return customerID, nil
}
