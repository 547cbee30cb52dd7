// Package order provides the domain model for course purchase orders.
// An order records one completed checkout for one course and is the
// audit trail behind an entitlement grant.
package order

import (
	"fmt"
	"strings"
	"time"

	"studia/internal/shared/id"
)

// Status represents the lifecycle state of an order.
type Status string

const (
	// StatusPending is a checkout session created but not yet paid.
	StatusPending Status = "pending"
	// StatusPaid is a settled order.
	StatusPaid Status = "paid"
	// StatusFailed is a checkout that expired or was declined.
	StatusFailed Status = "failed"
	// StatusRefunded is a paid order later refunded.
	StatusRefunded Status = "refunded"
)

// IsValid checks if the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusFailed, StatusRefunded:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Order represents the order aggregate root.
type Order struct {
	id                uint
	sid               string
	checkoutSessionID string
	buyerID           uint
	courseID          uint
	amountCents       int64
	currency          string
	status            Status
	paidAt            *time.Time
	createdAt         time.Time
	updatedAt         time.Time
}

// NewPaidOrder creates an order already settled by the payment provider.
// Orders reconciled from provider events always arrive in this state.
func NewPaidOrder(buyerID, courseID uint, checkoutSessionID string, amountCents int64, currency string, paidAt time.Time) (*Order, error) {
	if buyerID == 0 {
		return nil, ErrBuyerIDRequired
	}
	if courseID == 0 {
		return nil, ErrCourseIDRequired
	}
	if checkoutSessionID == "" {
		return nil, ErrCheckoutSessionRequired
	}
	if amountCents < 0 {
		return nil, ErrNegativeAmount
	}

	sid, err := id.NewOrderSID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order SID: %w", err)
	}

	now := time.Now()
	return &Order{
		sid:               sid,
		checkoutSessionID: checkoutSessionID,
		buyerID:           buyerID,
		courseID:          courseID,
		amountCents:       amountCents,
		currency:          strings.ToUpper(currency),
		status:            StatusPaid,
		paidAt:            &paidAt,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

// OrderReconstructParams carries persisted state back into the aggregate.
type OrderReconstructParams struct {
	ID                uint
	SID               string
	CheckoutSessionID string
	BuyerID           uint
	CourseID          uint
	AmountCents       int64
	Currency          string
	Status            Status
	PaidAt            *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ReconstructOrder rebuilds an order from persistence.
func ReconstructOrder(p OrderReconstructParams) (*Order, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("order ID cannot be zero")
	}
	if !p.Status.IsValid() {
		return nil, fmt.Errorf("invalid order status: %s", p.Status)
	}

	return &Order{
		id:                p.ID,
		sid:               p.SID,
		checkoutSessionID: p.CheckoutSessionID,
		buyerID:           p.BuyerID,
		courseID:          p.CourseID,
		amountCents:       p.AmountCents,
		currency:          p.Currency,
		status:            p.Status,
		paidAt:            p.PaidAt,
		createdAt:         p.CreatedAt,
		updatedAt:         p.UpdatedAt,
	}, nil
}

// ID returns the internal order ID.
func (o *Order) ID() uint {
	return o.id
}

// SetID sets the order ID (only for persistence layer use)
func (o *Order) SetID(id uint) error {
	if o.id != 0 {
		return fmt.Errorf("order ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("order ID cannot be zero")
	}
	o.id = id
	return nil
}

// SID returns the public order identifier.
func (o *Order) SID() string {
	return o.sid
}

// CheckoutSessionID returns the provider checkout session this order settles.
func (o *Order) CheckoutSessionID() string {
	return o.checkoutSessionID
}

// BuyerID returns the purchasing user's ID.
func (o *Order) BuyerID() uint {
	return o.buyerID
}

// CourseID returns the purchased course's ID.
func (o *Order) CourseID() uint {
	return o.courseID
}

// AmountCents returns the settled amount in the smallest currency unit.
func (o *Order) AmountCents() int64 {
	return o.amountCents
}

// Currency returns the ISO currency code.
func (o *Order) Currency() string {
	return o.currency
}

// Status returns the order status.
func (o *Order) Status() Status {
	return o.status
}

// PaidAt returns the settlement time, nil while pending.
func (o *Order) PaidAt() *time.Time {
	return o.paidAt
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last modification timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsPaid reports whether the order has settled.
func (o *Order) IsPaid() bool {
	return o.status == StatusPaid
}

// MarkRefunded transitions a paid order to refunded.
func (o *Order) MarkRefunded() error {
	if o.status != StatusPaid {
		return ErrInvalidStatusTransition(o.status, StatusRefunded)
	}
	o.status = StatusRefunded
	o.updatedAt = time.Now()
	return nil
}
