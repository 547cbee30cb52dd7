package entitlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntitlement_ValidInput(t *testing.T) {
	grantedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	e, err := NewEntitlement(1, 2, 3, grantedAt)

	require.NoError(t, err)
	assert.Contains(t, e.SID(), "ent_")
	assert.Equal(t, uint(1), e.UserID())
	assert.Equal(t, uint(2), e.CourseID())
	assert.Equal(t, uint(3), e.OrderID())
	assert.Equal(t, grantedAt, e.GrantedAt())
}

func TestNewEntitlement_Invalid(t *testing.T) {
	_, err := NewEntitlement(0, 2, 3, time.Now())
	assert.ErrorIs(t, err, ErrUserIDRequired)

	_, err = NewEntitlement(1, 0, 3, time.Now())
	assert.ErrorIs(t, err, ErrCourseIDRequired)
}

func TestReconstructEntitlement(t *testing.T) {
	now := time.Now()

	e, err := ReconstructEntitlement(5, "ent_test1234567", 1, 2, 3, now, now, now)

	require.NoError(t, err)
	assert.Equal(t, uint(5), e.ID())

	_, err = ReconstructEntitlement(0, "ent_x", 1, 2, 3, now, now, now)
	assert.Error(t, err, "zero ID is rejected")
}
