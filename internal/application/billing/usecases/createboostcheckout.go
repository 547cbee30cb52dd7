package usecases

import (
	"context"
	"fmt"

	"studia/internal/application/billing/paymentgateway"
	"studia/internal/domain/course"
	"studia/internal/domain/user"
	"studia/internal/shared/constants"
	apperrors "studia/internal/shared/errors"
	"studia/internal/shared/logger"
)

// CreateBoostCheckoutCommand starts a boost purchase for an owned course.
type CreateBoostCheckoutCommand struct {
	UserID    uint
	CourseSID string
}

// CreateBoostCheckoutUseCase creates a hosted checkout session for a
// course boost. Only the course author may boost their own course; the
// same check runs again at reconciliation time.
type CreateBoostCheckoutUseCase struct {
	courseRepo   course.Repository
	userRepo     user.Repository
	gateway      paymentgateway.PaymentGateway
	boostPriceID string
	urls         CheckoutURLs
	logger       logger.Interface
}

// NewCreateBoostCheckoutUseCase creates the use case.
func NewCreateBoostCheckoutUseCase(
	courseRepo course.Repository,
	userRepo user.Repository,
	gateway paymentgateway.PaymentGateway,
	boostPriceID string,
	urls CheckoutURLs,
	logger logger.Interface,
) *CreateBoostCheckoutUseCase {
	return &CreateBoostCheckoutUseCase{
		courseRepo:   courseRepo,
		userRepo:     userRepo,
		gateway:      gateway,
		boostPriceID: boostPriceID,
		urls:         urls,
		logger:       logger,
	}
}

// Execute validates ownership and starts the hosted checkout.
func (uc *CreateBoostCheckoutUseCase) Execute(ctx context.Context, cmd CreateBoostCheckoutCommand) (*CheckoutResult, error) {
	author, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	target, err := uc.courseRepo.GetBySID(ctx, cmd.CourseSID)
	if err != nil {
		return nil, err
	}

	if !target.IsOwnedBy(author.ID()) {
		return nil, apperrors.NewForbiddenError("only the course author can boost it")
	}

	session, err := uc.gateway.CreateCheckoutSession(ctx, paymentgateway.CreateCheckoutSessionRequest{
		Mode:       paymentgateway.ModePayment,
		SuccessURL: uc.urls.SuccessURL,
		CancelURL:  uc.urls.CancelURL,
		PriceID:    uc.boostPriceID,
		Metadata: map[string]string{
			constants.MetadataKeyType:     constants.CheckoutTypeBoost,
			constants.MetadataKeyUserID:   author.SID(),
			constants.MetadataKeyCourseID: target.SID(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create boost checkout session: %w", err)
	}

	uc.logger.Infow("boost checkout created",
		"user_sid", author.SID(),
		"course_sid", target.SID(),
		"session_id", session.SessionID,
	)
	return &CheckoutResult{SessionID: session.SessionID, CheckoutURL: session.CheckoutURL}, nil
}
