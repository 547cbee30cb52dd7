package billing

import "context"

// SubscriptionRepository defines the persistence contract for
// subscription rows.
type SubscriptionRepository interface {
	// UpsertByUserID inserts the row or replaces the existing row for
	// the same user. The user ID is the natural key.
	UpsertByUserID(ctx context.Context, subscription *Subscription) error

	GetByUserID(ctx context.Context, userID uint) (*Subscription, error)
	GetByStripeCustomerID(ctx context.Context, customerID string) (*Subscription, error)
}

// PlanRepository defines the persistence contract for plans.
type PlanRepository interface {
	GetByID(ctx context.Context, id string) (*Plan, error)
	ListActive(ctx context.Context) ([]*Plan, error)
	Upsert(ctx context.Context, plan *Plan) error
}

// ProcessedEventRepository is the idempotency ledger for provider
// webhook events.
type ProcessedEventRepository interface {
	IsProcessed(ctx context.Context, eventID string) (bool, error)
	MarkProcessed(ctx context.Context, event *ProcessedEvent) error
}
