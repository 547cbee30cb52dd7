// Package paymentgateway defines the gateway-neutral contract between
// the billing use cases and the payment provider. Use cases only see
// these types; the provider SDK stays behind the interface.
package paymentgateway

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidSignature is returned when a webhook payload fails
// signature verification. Handlers map it to a 400 response so the
// provider does not retry forged or misconfigured deliveries.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// Well-known webhook event types.
const (
	EventCheckoutSessionCompleted = "checkout.session.completed"
	EventSubscriptionCreated      = "customer.subscription.created"
	EventSubscriptionUpdated      = "customer.subscription.updated"
	EventSubscriptionDeleted      = "customer.subscription.deleted"
)

// Checkout session modes.
const (
	ModePayment      = "payment"
	ModeSubscription = "subscription"
)

// PaymentGateway defines the interface for payment provider integrations.
type PaymentGateway interface {
	// VerifyWebhook checks the signature header against the raw request
	// body and parses the event. It returns ErrInvalidSignature when
	// verification fails; no payload field may be trusted before this
	// call succeeds.
	VerifyWebhook(payload []byte, signatureHeader string) (*WebhookEvent, error)

	// GetSubscription fetches the provider's current view of a
	// subscription.
	GetSubscription(ctx context.Context, subscriptionID string) (*SubscriptionObject, error)

	// CreateCheckoutSession starts a hosted checkout flow.
	CreateCheckoutSession(ctx context.Context, req CreateCheckoutSessionRequest) (*CheckoutSessionResponse, error)

	// CreateCustomer provisions a provider customer and returns its ID.
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (string, error)
}

// WebhookEvent is a verified provider event. Exactly one of Session and
// Subscription is populated depending on the event type; both are nil
// for types the integration does not model.
type WebhookEvent struct {
	ID           string
	Type         string
	Session      *CheckoutSession
	Subscription *SubscriptionObject
	CreatedAt    time.Time
}

// CheckoutSession is the provider's checkout session object.
type CheckoutSession struct {
	ID             string
	Mode           string
	PaymentStatus  string
	AmountTotal    int64 // smallest currency unit
	Currency       string
	CustomerID     string
	SubscriptionID string
	Metadata       map[string]string
}

// IsPaid reports whether the session has settled. Sessions can complete
// unpaid, e.g. delayed payment methods.
func (s *CheckoutSession) IsPaid() bool {
	return s.PaymentStatus == "paid"
}

// SubscriptionObject is the provider's subscription object.
type SubscriptionObject struct {
	ID                string
	CustomerID        string
	Status            string
	PriceID           string
	CurrentPeriodEnd  *time.Time
	CancelAtPeriodEnd bool
	Metadata          map[string]string
}

// CreateCheckoutSessionRequest contains the data needed to start a
// hosted checkout.
type CreateCheckoutSessionRequest struct {
	Mode       string
	CustomerID string
	SuccessURL string
	CancelURL  string

	// One-off payments: ad-hoc price data.
	AmountCents int64
	Currency    string
	ProductName string

	// Fixed-price items (boosts, plans).
	PriceID string

	// Metadata is attached to the session for one-off payments and to
	// the subscription object for subscription mode, so every later
	// webhook carries it.
	Metadata map[string]string
}

// CheckoutSessionResponse is the created session.
type CheckoutSessionResponse struct {
	SessionID   string
	CheckoutURL string
}

// CreateCustomerRequest contains the data needed to provision a
// provider customer.
type CreateCustomerRequest struct {
	Email    string
	Name     string
	Metadata map[string]string
}
