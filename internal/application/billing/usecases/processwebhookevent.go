package usecases

import (
	"context"
	"errors"
	"fmt"

	"studia/internal/application/billing/paymentgateway"
	"studia/internal/domain/billing"
	"studia/internal/domain/course"
	"studia/internal/domain/user"
	"studia/internal/shared/constants"
	"studia/internal/shared/logger"
)

// ProcessWebhookEventCommand carries one raw webhook delivery. Payload
// is the unmodified request body; the signature is verified against it
// before anything else happens.
type ProcessWebhookEventCommand struct {
	Payload         []byte
	SignatureHeader string
}

// ProcessWebhookEventUseCase is the reconciliation entry point for
// provider webhook deliveries. It verifies the signature, consults the
// idempotency ledger, dispatches to the matching reconciler and records
// the event as processed once every side effect has committed.
//
// Error contract: a returned paymentgateway.ErrInvalidSignature means
// the delivery must be rejected outright; any other returned error
// means processing failed transiently and the provider should redeliver;
// a nil return means the event is settled and replays will be
// acknowledged without side effects.
type ProcessWebhookEventUseCase struct {
	gateway            paymentgateway.PaymentGateway
	processedEventRepo billing.ProcessedEventRepository
	activateBoostUC    *ActivateCourseBoostUseCase
	grantPurchaseUC    *GrantCoursePurchaseUseCase
	syncSubscriptionUC *SyncSubscriptionUseCase
	logger             logger.Interface
}

// NewProcessWebhookEventUseCase creates the use case.
func NewProcessWebhookEventUseCase(
	gateway paymentgateway.PaymentGateway,
	processedEventRepo billing.ProcessedEventRepository,
	activateBoostUC *ActivateCourseBoostUseCase,
	grantPurchaseUC *GrantCoursePurchaseUseCase,
	syncSubscriptionUC *SyncSubscriptionUseCase,
	logger logger.Interface,
) *ProcessWebhookEventUseCase {
	return &ProcessWebhookEventUseCase{
		gateway:            gateway,
		processedEventRepo: processedEventRepo,
		activateBoostUC:    activateBoostUC,
		grantPurchaseUC:    grantPurchaseUC,
		syncSubscriptionUC: syncSubscriptionUC,
		logger:             logger,
	}
}

// Execute processes one webhook delivery end to end.
func (uc *ProcessWebhookEventUseCase) Execute(ctx context.Context, cmd ProcessWebhookEventCommand) error {
	event, err := uc.gateway.VerifyWebhook(cmd.Payload, cmd.SignatureHeader)
	if err != nil {
		if errors.Is(err, paymentgateway.ErrInvalidSignature) {
			uc.logger.Warnw("rejected webhook with invalid signature")
			return err
		}
		return fmt.Errorf("failed to verify webhook: %w", err)
	}

	processed, err := uc.processedEventRepo.IsProcessed(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("failed to consult idempotency ledger: %w", err)
	}
	if processed {
		uc.logger.Infow("webhook event already processed", "event_id", event.ID, "event_type", event.Type)
		return nil
	}

	if err := uc.dispatch(ctx, event); err != nil {
		if !isTerminal(err) {
			return err
		}
		// Retrying cannot change the outcome. Record the event so the
		// provider stops redelivering it.
		uc.logger.Warnw("webhook event settled without side effects",
			"event_id", event.ID,
			"event_type", event.Type,
			"reason", err,
		)
	}

	ledgerEntry, err := billing.NewProcessedEvent(event.ID, event.Type, cmd.Payload)
	if err != nil {
		return err
	}
	if err := uc.processedEventRepo.MarkProcessed(ctx, ledgerEntry); err != nil {
		// The mutations above are idempotent, so letting the provider
		// redeliver is safe.
		return fmt.Errorf("failed to record processed event: %w", err)
	}

	return nil
}

func (uc *ProcessWebhookEventUseCase) dispatch(ctx context.Context, event *paymentgateway.WebhookEvent) error {
	switch event.Type {
	case paymentgateway.EventCheckoutSessionCompleted:
		return uc.handleCheckoutCompleted(ctx, event)

	case paymentgateway.EventSubscriptionCreated, paymentgateway.EventSubscriptionUpdated:
		if event.Subscription == nil {
			return ErrMissingMetadata
		}
		return uc.syncSubscriptionUC.Execute(ctx, SyncSubscriptionCommand{
			SubscriptionID: event.Subscription.ID,
			Subscription:   event.Subscription,
		})

	case paymentgateway.EventSubscriptionDeleted:
		if event.Subscription == nil {
			return ErrMissingMetadata
		}
		return uc.syncSubscriptionUC.Execute(ctx, SyncSubscriptionCommand{
			SubscriptionID: event.Subscription.ID,
			Subscription:   event.Subscription,
			Deleted:        true,
		})

	default:
		return fmt.Errorf("%w: unhandled event type %s", errUnhandledEvent, event.Type)
	}
}

func (uc *ProcessWebhookEventUseCase) handleCheckoutCompleted(ctx context.Context, event *paymentgateway.WebhookEvent) error {
	session := event.Session
	if session == nil {
		return ErrMissingMetadata
	}

	if session.Mode == paymentgateway.ModeSubscription {
		// Subscription metadata lives on the subscription object, not
		// the session, so the object is fetched by ID.
		return uc.syncSubscriptionUC.Execute(ctx, SyncSubscriptionCommand{
			SubscriptionID: session.SubscriptionID,
		})
	}

	if !session.IsPaid() {
		return fmt.Errorf("%w: session %s completed with payment status %s",
			errUnhandledEvent, session.ID, session.PaymentStatus)
	}

	checkoutType := session.Metadata[constants.MetadataKeyType]
	userSID := session.Metadata[constants.MetadataKeyUserID]
	courseSID := session.Metadata[constants.MetadataKeyCourseID]

	switch checkoutType {
	case constants.CheckoutTypeBoost:
		if userSID == "" || courseSID == "" {
			return ErrMissingMetadata
		}
		return uc.activateBoostUC.Execute(ctx, ActivateCourseBoostCommand{
			CourseSID: courseSID,
			UserSID:   userSID,
		})

	case constants.CheckoutTypePurchase:
		if userSID == "" || courseSID == "" {
			return ErrMissingMetadata
		}
		return uc.grantPurchaseUC.Execute(ctx, GrantCoursePurchaseCommand{
			CheckoutSessionID: session.ID,
			UserSID:           userSID,
			CourseSID:         courseSID,
			AmountCents:       session.AmountTotal,
			Currency:          session.Currency,
			PaidAt:            event.CreatedAt,
		})

	default:
		return fmt.Errorf("%w: checkout type %q", errUnhandledEvent, checkoutType)
	}
}

// errUnhandledEvent marks event shapes the integration deliberately
// acknowledges without acting on.
var errUnhandledEvent = errors.New("unhandled webhook event")

// isTerminal reports whether retrying the event could ever succeed.
// Authorization failures, missing references and malformed metadata are
// settled outcomes; everything else is assumed transient.
func isTerminal(err error) bool {
	switch {
	case errors.Is(err, errUnhandledEvent),
		errors.Is(err, ErrMissingMetadata),
		errors.Is(err, course.ErrNotCourseOwner),
		errors.Is(err, course.ErrCourseNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, billing.ErrPlanNotFound),
		errors.Is(err, billing.ErrCustomerIDRequired):
		return true
	default:
		return false
	}
}
