package paymentgateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v82"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/customer"
	"github.com/stripe/stripe-go/v82/subscription"
	"github.com/stripe/stripe-go/v82/webhook"

	"studia/internal/shared/logger"
)

// StripeGatewayConfig holds the configuration for the Stripe gateway
type StripeGatewayConfig struct {
	SecretKey     string
	WebhookSecret string
}

// StripeGateway implements PaymentGateway backed by the Stripe API
type StripeGateway struct {
	webhookSecret string
	logger        logger.Interface
}

// NewStripeGateway creates a new Stripe payment gateway
func NewStripeGateway(config StripeGatewayConfig, logger logger.Interface) *StripeGateway {
	stripe.Key = config.SecretKey
	return &StripeGateway{
		webhookSecret: config.WebhookSecret,
		logger:        logger,
	}
}

// checkoutSessionPayload is the minimal wire shape of a checkout.session
// webhook object. Expandable fields arrive as plain string IDs.
type checkoutSessionPayload struct {
	ID            string            `json:"id"`
	Mode          string            `json:"mode"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	Customer      string            `json:"customer"`
	Subscription  string            `json:"subscription"`
	Metadata      map[string]string `json:"metadata"`
}

// subscriptionPayload is the minimal wire shape of a subscription webhook
// object. The billing period lives on the subscription item.
type subscriptionPayload struct {
	ID                string `json:"id"`
	Customer          string `json:"customer"`
	Status            string `json:"status"`
	CancelAtPeriodEnd bool   `json:"cancel_at_period_end"`
	CurrentPeriodEnd  int64  `json:"current_period_end"`
	Items             struct {
		Data []struct {
			CurrentPeriodEnd int64 `json:"current_period_end"`
			Price            struct {
				ID string `json:"id"`
			} `json:"price"`
		} `json:"data"`
	} `json:"items"`
	Metadata map[string]string `json:"metadata"`
}

// VerifyWebhook checks the Stripe signature against the raw body and
// parses the event into the gateway-neutral representation.
func (g *StripeGateway) VerifyWebhook(payload []byte, signatureHeader string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		g.logger.Warnw("stripe webhook signature verification failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	result := &WebhookEvent{
		ID:        event.ID,
		Type:      string(event.Type),
		CreatedAt: time.Unix(event.Created, 0),
	}

	switch event.Type {
	case EventCheckoutSessionCompleted:
		var session checkoutSessionPayload
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return nil, fmt.Errorf("failed to decode checkout session payload: %w", err)
		}
		result.Session = &CheckoutSession{
			ID:             session.ID,
			Mode:           session.Mode,
			PaymentStatus:  session.PaymentStatus,
			AmountTotal:    session.AmountTotal,
			Currency:       session.Currency,
			CustomerID:     session.Customer,
			SubscriptionID: session.Subscription,
			Metadata:       session.Metadata,
		}

	case EventSubscriptionCreated, EventSubscriptionUpdated, EventSubscriptionDeleted:
		var sub subscriptionPayload
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("failed to decode subscription payload: %w", err)
		}
		result.Subscription = g.toSubscriptionObject(sub)
	}

	return result, nil
}

// GetSubscription fetches the provider's current view of a subscription.
func (g *StripeGateway) GetSubscription(ctx context.Context, subscriptionID string) (*SubscriptionObject, error) {
	params := &stripe.SubscriptionParams{
		Params: stripe.Params{Context: ctx},
	}

	sub, err := subscription.Get(subscriptionID, params)
	if err != nil {
		g.logger.Errorw("failed to fetch stripe subscription", "subscription_id", subscriptionID, "error", err)
		return nil, fmt.Errorf("failed to fetch subscription %s: %w", subscriptionID, err)
	}

	obj := &SubscriptionObject{
		ID:                sub.ID,
		Status:            string(sub.Status),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
		Metadata:          sub.Metadata,
	}
	if sub.Customer != nil {
		obj.CustomerID = sub.Customer.ID
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 {
		item := sub.Items.Data[0]
		if item.Price != nil {
			obj.PriceID = item.Price.ID
		}
		if item.CurrentPeriodEnd > 0 {
			end := time.Unix(item.CurrentPeriodEnd, 0)
			obj.CurrentPeriodEnd = &end
		}
	}

	return obj, nil
}

// CreateCheckoutSession starts a hosted Stripe checkout flow.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req CreateCheckoutSessionRequest) (*CheckoutSessionResponse, error) {
	params := &stripe.CheckoutSessionParams{
		Params:     stripe.Params{Context: ctx},
		Mode:       stripe.String(req.Mode),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		Metadata:   req.Metadata,
	}
	if req.CustomerID != "" {
		params.Customer = stripe.String(req.CustomerID)
	}

	if req.PriceID != "" {
		params.LineItems = []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(1),
			},
		}
	} else {
		params.LineItems = []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(req.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ProductName),
					},
				},
			},
		}
	}

	// Subscription metadata must also live on the subscription object so
	// every later provider event carries the user identity.
	if req.Mode == ModeSubscription {
		params.SubscriptionData = &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: req.Metadata,
		}
	}

	session, err := checkoutsession.New(params)
	if err != nil {
		g.logger.Errorw("failed to create stripe checkout session", "mode", req.Mode, "error", err)
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	g.logger.Infow("stripe checkout session created", "session_id", session.ID, "mode", req.Mode)
	return &CheckoutSessionResponse{
		SessionID:   session.ID,
		CheckoutURL: session.URL,
	}, nil
}

// CreateCustomer provisions a Stripe customer and returns its ID.
func (g *StripeGateway) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (string, error) {
	params := &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
		Email:  stripe.String(req.Email),
		Name:   stripe.String(req.Name),
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	c, err := customer.New(params)
	if err != nil {
		g.logger.Errorw("failed to create stripe customer", "error", err)
		return "", fmt.Errorf("failed to create customer: %w", err)
	}

	g.logger.Infow("stripe customer created", "customer_id", c.ID)
	return c.ID, nil
}

func (g *StripeGateway) toSubscriptionObject(sub subscriptionPayload) *SubscriptionObject {
	obj := &SubscriptionObject{
		ID:                sub.ID,
		CustomerID:        sub.Customer,
		Status:            sub.Status,
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
		Metadata:          sub.Metadata,
	}

	periodEnd := sub.CurrentPeriodEnd
	if len(sub.Items.Data) > 0 {
		if sub.Items.Data[0].CurrentPeriodEnd > 0 {
			periodEnd = sub.Items.Data[0].CurrentPeriodEnd
		}
		obj.PriceID = sub.Items.Data[0].Price.ID
	}
	if periodEnd > 0 {
		end := time.Unix(periodEnd, 0)
		obj.CurrentPeriodEnd = &end
	}

	return obj
}
