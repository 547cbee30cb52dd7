package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlaceholder(t *testing.T) *Subscription {
	t.Helper()
	s, err := NewPlaceholderSubscription(1, "cus_test_abc")
	require.NoError(t, err)
	return s
}

func TestNewPlaceholderSubscription(t *testing.T) {
	s := newPlaceholder(t)

	assert.Contains(t, s.SID(), "sub_")
	assert.Equal(t, PlanFree, s.PlanID())
	assert.Equal(t, StatusCanceled, s.Status())
	assert.Equal(t, "cus_test_abc", s.StripeCustomerID())
	assert.Empty(t, s.StripeSubscriptionID())
	assert.Equal(t, PlanFree, s.EffectivePlan())
}

func TestNewPlaceholderSubscription_Invalid(t *testing.T) {
	_, err := NewPlaceholderSubscription(0, "cus_x")
	assert.ErrorIs(t, err, ErrUserIDRequired)

	_, err = NewPlaceholderSubscription(1, "")
	assert.ErrorIs(t, err, ErrCustomerIDRequired)
}

func TestSyncFromProvider(t *testing.T) {
	s := newPlaceholder(t)
	periodEnd := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	err := s.SyncFromProvider(PlanCreator, StatusActive, "sub_stripe_1", &periodEnd, false)

	require.NoError(t, err)
	assert.Equal(t, PlanCreator, s.PlanID())
	assert.Equal(t, StatusActive, s.Status())
	assert.Equal(t, "sub_stripe_1", s.StripeSubscriptionID())
	require.NotNil(t, s.CurrentPeriodEnd())
	assert.Equal(t, periodEnd, *s.CurrentPeriodEnd())
	assert.Equal(t, PlanCreator, s.EffectivePlan())
}

func TestSyncFromProvider_Invalid(t *testing.T) {
	s := newPlaceholder(t)

	assert.ErrorIs(t, s.SyncFromProvider("", StatusActive, "sub_1", nil, false), ErrPlanIDRequired)
	assert.Error(t, s.SyncFromProvider(PlanPro, SubscriptionStatus("bogus"), "sub_1", nil, false))
}

func TestMarkCanceled_RevertsToFreeAndKeepsCustomer(t *testing.T) {
	s := newPlaceholder(t)
	periodEnd := time.Now().AddDate(0, 1, 0)
	require.NoError(t, s.SyncFromProvider(PlanPro, StatusActive, "sub_stripe_1", &periodEnd, true))

	s.MarkCanceled()

	assert.Equal(t, PlanFree, s.PlanID())
	assert.Equal(t, StatusCanceled, s.Status())
	assert.Nil(t, s.CurrentPeriodEnd())
	assert.False(t, s.CancelAtPeriodEnd())
	assert.Equal(t, "cus_test_abc", s.StripeCustomerID(), "customer link survives cancellation")
}

func TestEffectivePlan_ByStatus(t *testing.T) {
	tests := []struct {
		status SubscriptionStatus
		want   string
	}{
		{StatusActive, PlanPro},
		{StatusTrialing, PlanPro},
		{StatusPastDue, PlanFree},
		{StatusCanceled, PlanFree},
		{StatusIncomplete, PlanFree},
		{StatusUnpaid, PlanFree},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			s := newPlaceholder(t)
			require.NoError(t, s.SyncFromProvider(PlanPro, tt.status, "sub_1", nil, false))
			assert.Equal(t, tt.want, s.EffectivePlan())
		})
	}
}

func TestSubscriptionStatusIsEntitled(t *testing.T) {
	assert.True(t, StatusActive.IsEntitled())
	assert.True(t, StatusTrialing.IsEntitled())
	assert.False(t, StatusPastDue.IsEntitled())
	assert.False(t, StatusCanceled.IsEntitled())
}

func TestNewProcessedEvent(t *testing.T) {
	e, err := NewProcessedEvent("evt_123", "checkout.session.completed", []byte(`{"id":"evt_123"}`))

	require.NoError(t, err)
	assert.Equal(t, "evt_123", e.EventID())
	assert.Equal(t, "checkout.session.completed", e.EventType())
	assert.Equal(t, []byte(`{"id":"evt_123"}`), e.Payload())
	assert.False(t, e.ProcessedAt().IsZero())

	_, err = NewProcessedEvent("", "x", nil)
	assert.ErrorIs(t, err, ErrEventIDRequired)
}

func TestNewPlan(t *testing.T) {
	p, err := NewPlan(PlanCreator, "Creator", "For working creators", 900, "EUR", "price_abc", 10, true)

	require.NoError(t, err)
	assert.Equal(t, PlanCreator, p.ID())
	assert.False(t, p.IsFree())
	assert.True(t, p.IsActive())

	free, err := NewPlan(PlanFree, "Free", "", 0, "EUR", "", 1, true)
	require.NoError(t, err)
	assert.True(t, free.IsFree())

	_, err = NewPlan("", "x", "", 0, "EUR", "", 0, true)
	assert.ErrorIs(t, err, ErrPlanIDRequired)
}
