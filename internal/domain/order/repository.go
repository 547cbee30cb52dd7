package order

import "context"

// Repository defines the persistence contract for orders.
type Repository interface {
	// UpsertByCheckoutSession inserts the order, or refreshes the
	// existing row keyed by the provider checkout session ID. Replayed
	// provider events therefore never produce duplicate orders.
	UpsertByCheckoutSession(ctx context.Context, order *Order) error

	GetByID(ctx context.Context, id uint) (*Order, error)
	GetByCheckoutSessionID(ctx context.Context, sessionID string) (*Order, error)
	Update(ctx context.Context, order *Order) error

	ListByBuyer(ctx context.Context, buyerID uint) ([]*Order, error)

	// ListSalesForAuthor returns paid orders for courses owned by the
	// given author, newest first.
	ListSalesForAuthor(ctx context.Context, authorID uint) ([]*Order, error)
}
