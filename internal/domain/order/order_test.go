package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaidOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewPaidOrder(1, 2, "cs_test_abc", 1999, "eur", time.Now())
	require.NoError(t, err)
	return o
}

func TestNewPaidOrder_ValidInput(t *testing.T) {
	paidAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	o, err := NewPaidOrder(1, 2, "cs_test_abc", 1999, "eur", paidAt)

	require.NoError(t, err)
	assert.Contains(t, o.SID(), "ord_")
	assert.Equal(t, StatusPaid, o.Status())
	assert.True(t, o.IsPaid())
	assert.Equal(t, "EUR", o.Currency())
	require.NotNil(t, o.PaidAt())
	assert.Equal(t, paidAt, *o.PaidAt())
}

func TestNewPaidOrder_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		buyerID   uint
		courseID  uint
		sessionID string
		amount    int64
		wantErr   error
	}{
		{"missing buyer", 0, 2, "cs_1", 100, ErrBuyerIDRequired},
		{"missing course", 1, 0, "cs_1", 100, ErrCourseIDRequired},
		{"missing session", 1, 2, "", 100, ErrCheckoutSessionRequired},
		{"negative amount", 1, 2, "cs_1", -1, ErrNegativeAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPaidOrder(tt.buyerID, tt.courseID, tt.sessionID, tt.amount, "EUR", time.Now())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewPaidOrder_FreeCourseAllowed(t *testing.T) {
	o, err := NewPaidOrder(1, 2, "cs_free", 0, "EUR", time.Now())

	require.NoError(t, err)
	assert.Equal(t, int64(0), o.AmountCents())
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusPaid.IsValid())
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusFailed.IsValid())
	assert.True(t, StatusRefunded.IsValid())
	assert.False(t, Status("settled").IsValid())
}

func TestMarkRefunded(t *testing.T) {
	o := newPaidOrder(t)

	require.NoError(t, o.MarkRefunded())
	assert.Equal(t, StatusRefunded, o.Status())
	assert.False(t, o.IsPaid())

	assert.Error(t, o.MarkRefunded(), "refunding twice is rejected")
}

func TestReconstructOrder(t *testing.T) {
	now := time.Now()
	o, err := ReconstructOrder(OrderReconstructParams{
		ID:                7,
		SID:               "ord_test1234567",
		CheckoutSessionID: "cs_test_abc",
		BuyerID:           1,
		CourseID:          2,
		AmountCents:       1999,
		Currency:          "EUR",
		Status:            StatusPaid,
		PaidAt:            &now,
		CreatedAt:         now,
		UpdatedAt:         now,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(7), o.ID())
	assert.Equal(t, "cs_test_abc", o.CheckoutSessionID())
}

func TestReconstructOrder_InvalidStatus(t *testing.T) {
	_, err := ReconstructOrder(OrderReconstructParams{ID: 1, Status: Status("bogus")})
	assert.Error(t, err)
}
