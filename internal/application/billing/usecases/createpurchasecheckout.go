package usecases

import (
	"context"
	"fmt"

	"studia/internal/application/billing/paymentgateway"
	"studia/internal/domain/course"
	"studia/internal/domain/entitlement"
	"studia/internal/domain/user"
	"studia/internal/shared/constants"
	apperrors "studia/internal/shared/errors"
	"studia/internal/shared/logger"
)

// CheckoutURLs are the redirect targets for hosted checkout flows.
type CheckoutURLs struct {
	SuccessURL string
	CancelURL  string
}

// CreatePurchaseCheckoutCommand starts a one-off course purchase.
type CreatePurchaseCheckoutCommand struct {
	UserID    uint
	CourseSID string
}

// CheckoutResult is the created hosted checkout session.
type CheckoutResult struct {
	SessionID   string
	CheckoutURL string
}

// CreatePurchaseCheckoutUseCase creates a hosted checkout session for a
// course purchase. The session carries the buyer and course SIDs as
// metadata so the webhook reconciler can attribute the payment.
type CreatePurchaseCheckoutUseCase struct {
	courseRepo      course.Repository
	userRepo        user.Repository
	entitlementRepo entitlement.Repository
	gateway         paymentgateway.PaymentGateway
	urls            CheckoutURLs
	logger          logger.Interface
}

// NewCreatePurchaseCheckoutUseCase creates the use case.
func NewCreatePurchaseCheckoutUseCase(
	courseRepo course.Repository,
	userRepo user.Repository,
	entitlementRepo entitlement.Repository,
	gateway paymentgateway.PaymentGateway,
	urls CheckoutURLs,
	logger logger.Interface,
) *CreatePurchaseCheckoutUseCase {
	return &CreatePurchaseCheckoutUseCase{
		courseRepo:      courseRepo,
		userRepo:        userRepo,
		entitlementRepo: entitlementRepo,
		gateway:         gateway,
		urls:            urls,
		logger:          logger,
	}
}

// Execute validates the purchase and starts the hosted checkout.
func (uc *CreatePurchaseCheckoutUseCase) Execute(ctx context.Context, cmd CreatePurchaseCheckoutCommand) (*CheckoutResult, error) {
	buyer, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	target, err := uc.courseRepo.GetBySID(ctx, cmd.CourseSID)
	if err != nil {
		return nil, err
	}

	if !target.IsPublished() {
		return nil, apperrors.NewNotFoundError("course not found")
	}
	if target.IsOwnedBy(buyer.ID()) {
		return nil, apperrors.NewConflictError("you already own this course")
	}

	owned, err := uc.entitlementRepo.Exists(ctx, buyer.ID(), target.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to check entitlement: %w", err)
	}
	if owned {
		return nil, apperrors.NewConflictError("course already purchased")
	}

	session, err := uc.gateway.CreateCheckoutSession(ctx, paymentgateway.CreateCheckoutSessionRequest{
		Mode:        paymentgateway.ModePayment,
		SuccessURL:  uc.urls.SuccessURL,
		CancelURL:   uc.urls.CancelURL,
		AmountCents: target.PriceCents(),
		Currency:    target.Currency(),
		ProductName: target.Title(),
		Metadata: map[string]string{
			constants.MetadataKeyType:     constants.CheckoutTypePurchase,
			constants.MetadataKeyUserID:   buyer.SID(),
			constants.MetadataKeyCourseID: target.SID(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	uc.logger.Infow("purchase checkout created",
		"user_sid", buyer.SID(),
		"course_sid", target.SID(),
		"session_id", session.SessionID,
	)
	return &CheckoutResult{SessionID: session.SessionID, CheckoutURL: session.CheckoutURL}, nil
}
