// Package billing provides the domain model for creator subscriptions
// and payment provider reconciliation. The subscription aggregate
// mirrors the provider's view of a user's plan: exactly one row exists
// per user and it is updated in place as provider events arrive.
package billing

import (
	"fmt"
	"time"

	"studia/internal/shared/id"
)

// SubscriptionStatus represents the provider-reported subscription state.
type SubscriptionStatus string

const (
	StatusActive     SubscriptionStatus = "active"
	StatusTrialing   SubscriptionStatus = "trialing"
	StatusPastDue    SubscriptionStatus = "past_due"
	StatusCanceled   SubscriptionStatus = "canceled"
	StatusIncomplete SubscriptionStatus = "incomplete"
	StatusUnpaid     SubscriptionStatus = "unpaid"
)

// IsValid checks if the status is a known value.
func (s SubscriptionStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusTrialing, StatusPastDue, StatusCanceled, StatusIncomplete, StatusUnpaid:
		return true
	default:
		return false
	}
}

// IsEntitled reports whether the status grants the plan's features.
func (s SubscriptionStatus) IsEntitled() bool {
	return s == StatusActive || s == StatusTrialing
}

// String returns the string representation of the status.
func (s SubscriptionStatus) String() string {
	return string(s)
}

// Subscription represents the subscription aggregate root.
type Subscription struct {
	id                     uint
	sid                    string
	userID                 uint
	planID                 string
	status                 SubscriptionStatus
	stripeCustomerID       string
	stripeSubscriptionID   string
	currentPeriodEnd       *time.Time
	cancelAtPeriodEnd      bool
	version                int
	createdAt              time.Time
	updatedAt              time.Time
}

// NewPlaceholderSubscription creates the initial row written when a
// provider customer is provisioned for a user. It carries the free plan
// until the first provider event upgrades it.
func NewPlaceholderSubscription(userID uint, stripeCustomerID string) (*Subscription, error) {
	if userID == 0 {
		return nil, ErrUserIDRequired
	}
	if stripeCustomerID == "" {
		return nil, ErrCustomerIDRequired
	}

	sid, err := id.NewSubscriptionSID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate subscription SID: %w", err)
	}

	now := time.Now()
	return &Subscription{
		sid:              sid,
		userID:           userID,
		planID:           PlanFree,
		status:           StatusCanceled,
		stripeCustomerID: stripeCustomerID,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// SubscriptionReconstructParams carries persisted state back into the aggregate.
type SubscriptionReconstructParams struct {
	ID                   uint
	SID                  string
	UserID               uint
	PlanID               string
	Status               SubscriptionStatus
	StripeCustomerID     string
	StripeSubscriptionID string
	CurrentPeriodEnd     *time.Time
	CancelAtPeriodEnd    bool
	Version              int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ReconstructSubscription rebuilds a subscription from persistence.
func ReconstructSubscription(p SubscriptionReconstructParams) (*Subscription, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if p.UserID == 0 {
		return nil, ErrUserIDRequired
	}
	if !p.Status.IsValid() {
		return nil, fmt.Errorf("invalid subscription status: %s", p.Status)
	}

	return &Subscription{
		id:                   p.ID,
		sid:                  p.SID,
		userID:               p.UserID,
		planID:               p.PlanID,
		status:               p.Status,
		stripeCustomerID:     p.StripeCustomerID,
		stripeSubscriptionID: p.StripeSubscriptionID,
		currentPeriodEnd:     p.CurrentPeriodEnd,
		cancelAtPeriodEnd:    p.CancelAtPeriodEnd,
		version:              p.Version,
		createdAt:            p.CreatedAt,
		updatedAt:            p.UpdatedAt,
	}, nil
}

// ID returns the internal subscription ID.
func (s *Subscription) ID() uint {
	return s.id
}

// SetID sets the subscription ID (only for persistence layer use)
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// SID returns the public subscription identifier.
func (s *Subscription) SID() string {
	return s.sid
}

// UserID returns the subscribing user's ID.
func (s *Subscription) UserID() uint {
	return s.userID
}

// PlanID returns the plan identifier.
func (s *Subscription) PlanID() string {
	return s.planID
}

// Status returns the provider-reported status.
func (s *Subscription) Status() SubscriptionStatus {
	return s.status
}

// StripeCustomerID returns the provider customer this row tracks.
func (s *Subscription) StripeCustomerID() string {
	return s.stripeCustomerID
}

// StripeSubscriptionID returns the provider subscription, empty for
// placeholder rows.
func (s *Subscription) StripeSubscriptionID() string {
	return s.stripeSubscriptionID
}

// CurrentPeriodEnd returns the end of the current billing period.
func (s *Subscription) CurrentPeriodEnd() *time.Time {
	return s.currentPeriodEnd
}

// CancelAtPeriodEnd reports whether the subscription lapses at period end.
func (s *Subscription) CancelAtPeriodEnd() bool {
	return s.cancelAtPeriodEnd
}

// Version returns the aggregate version for optimistic locking.
func (s *Subscription) Version() int {
	return s.version
}

// CreatedAt returns the creation timestamp.
func (s *Subscription) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt returns the last modification timestamp.
func (s *Subscription) UpdatedAt() time.Time {
	return s.updatedAt
}

// EffectivePlan returns the plan the user actually holds. A paid plan
// only counts while the provider reports the subscription as entitled.
func (s *Subscription) EffectivePlan() string {
	if s.status.IsEntitled() {
		return s.planID
	}
	return PlanFree
}

// SyncFromProvider overwrites the row with the provider's current view
// of the subscription. Provider state always wins over local state.
func (s *Subscription) SyncFromProvider(planID string, status SubscriptionStatus, stripeSubscriptionID string, currentPeriodEnd *time.Time, cancelAtPeriodEnd bool) error {
	if planID == "" {
		return ErrPlanIDRequired
	}
	if !status.IsValid() {
		return fmt.Errorf("invalid subscription status: %s", status)
	}

	s.planID = planID
	s.status = status
	s.stripeSubscriptionID = stripeSubscriptionID
	s.currentPeriodEnd = currentPeriodEnd
	s.cancelAtPeriodEnd = cancelAtPeriodEnd
	s.touch()
	return nil
}

// MarkCanceled records a provider-side deletion. The row is kept and
// reverts to the free plan so the customer link survives.
func (s *Subscription) MarkCanceled() {
	s.planID = PlanFree
	s.status = StatusCanceled
	s.currentPeriodEnd = nil
	s.cancelAtPeriodEnd = false
	s.touch()
}

func (s *Subscription) touch() {
	s.updatedAt = time.Now()
	s.version++
}
