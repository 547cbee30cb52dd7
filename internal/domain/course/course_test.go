package course

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func newValidCourse(t *testing.T) *Course {
	t.Helper()
	c, err := NewCourse(1, "Intro to Baking", "Learn to bake bread.", 1999, "eur", "https://cdn/video.mp4", "https://cdn/notes.pdf")
	require.NoError(t, err)
	require.NotNil(t, c)
	return c
}

func reconstructCourse(t *testing.T, boostedUntil *time.Time) *Course {
	t.Helper()
	now := time.Now()
	c, err := ReconstructCourse(CourseReconstructParams{
		ID:           1,
		SID:          "crs_test12345678",
		AuthorID:     10,
		Title:        "Intro to Baking",
		Description:  "Learn to bake bread.",
		PriceCents:   1999,
		Currency:     "EUR",
		VideoURL:     "https://cdn/video.mp4",
		PDFURL:       "https://cdn/notes.pdf",
		Published:    true,
		BoostedUntil: boostedUntil,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	return c
}

func TestNewCourse_ValidInput(t *testing.T) {
	c := newValidCourse(t)

	assert.NotEmpty(t, c.SID())
	assert.Contains(t, c.SID(), "crs_")
	assert.Equal(t, uint(1), c.AuthorID())
	assert.Equal(t, "EUR", c.Currency(), "currency should be normalized to upper case")
	assert.Equal(t, int64(1999), c.PriceCents())
	assert.False(t, c.IsPublished())
	assert.Nil(t, c.BoostedUntil())
	assert.Equal(t, 1, c.Version())
}

func TestNewCourse_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		authorID uint
		title    string
		price    int64
		currency string
		wantErr  error
	}{
		{"missing author", 0, "Title", 100, "EUR", ErrAuthorIDRequired},
		{"empty title", 1, "   ", 100, "EUR", ErrTitleRequired},
		{"negative price", 1, "Title", -1, "EUR", ErrNegativePrice},
		{"missing currency", 1, "Title", 100, "", ErrCurrencyRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCourse(tt.authorID, tt.title, "desc", tt.price, tt.currency, "v", "p")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestActivateBoost_FirstBoostStartsFromNow(t *testing.T) {
	c := reconstructCourse(t, nil)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	expiry, err := c.ActivateBoost(now, 7*24*time.Hour)

	require.NoError(t, err)
	assert.Equal(t, now.Add(7*24*time.Hour), expiry)
	assert.True(t, c.IsBoostedAt(now))
	require.NotNil(t, c.LastBoostedAt())
	assert.Equal(t, now, *c.LastBoostedAt())
}

func TestActivateBoost_ActiveBoostStacksAdditively(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	current := now.Add(3 * 24 * time.Hour)
	c := reconstructCourse(t, &current)

	expiry, err := c.ActivateBoost(now, 7*24*time.Hour)

	require.NoError(t, err)
	assert.Equal(t, current.Add(7*24*time.Hour), expiry, "new window should append to the running one")
}

func TestActivateBoost_ExpiredBoostStartsFromNow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expired := now.Add(-2 * 24 * time.Hour)
	c := reconstructCourse(t, &expired)

	expiry, err := c.ActivateBoost(now, 7*24*time.Hour)

	require.NoError(t, err)
	assert.Equal(t, now.Add(7*24*time.Hour), expiry, "an expired window contributes nothing")
}

func TestActivateBoost_TwoBackToBackBoosts(t *testing.T) {
	c := reconstructCourse(t, nil)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := c.ActivateBoost(now, 7*24*time.Hour)
	require.NoError(t, err)
	expiry, err := c.ActivateBoost(now.Add(time.Hour), 7*24*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, now.Add(14*24*time.Hour), expiry, "a second purchase extends the first window")
}

func TestActivateBoost_NeverShortensExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	current := now.Add(30 * 24 * time.Hour)
	c := reconstructCourse(t, &current)

	expiry, err := c.ActivateBoost(now, 24*time.Hour)

	require.NoError(t, err)
	assert.True(t, expiry.After(current))
}

func TestActivateBoost_InvalidDuration(t *testing.T) {
	c := reconstructCourse(t, nil)

	_, err := c.ActivateBoost(time.Now(), 0)
	assert.ErrorIs(t, err, ErrInvalidBoostDuration)

	_, err = c.ActivateBoost(time.Now(), -time.Hour)
	assert.ErrorIs(t, err, ErrInvalidBoostDuration)
}

func TestIsBoostedAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, reconstructCourse(t, nil).IsBoostedAt(now), "never boosted")

	future := now.Add(time.Hour)
	assert.True(t, reconstructCourse(t, &future).IsBoostedAt(now))

	past := now.Add(-time.Hour)
	assert.False(t, reconstructCourse(t, &past).IsBoostedAt(now))

	assert.False(t, reconstructCourse(t, &now).IsBoostedAt(now), "expiry is exclusive")
}

func TestPublish(t *testing.T) {
	c := newValidCourse(t)

	require.NoError(t, c.Publish())
	assert.True(t, c.IsPublished())

	c.Unpublish()
	assert.False(t, c.IsPublished())
}

func TestPublish_MissingAssets(t *testing.T) {
	c, err := NewCourse(1, "Title", "desc", 100, "EUR", "", "")
	require.NoError(t, err)

	assert.ErrorIs(t, c.Publish(), ErrMissingAssets)
}

func TestUpdateDetails(t *testing.T) {
	c := newValidCourse(t)
	v := c.Version()

	err := c.UpdateDetails("New Title", "new desc", 2999, "v2", "p2")

	require.NoError(t, err)
	assert.Equal(t, "New Title", c.Title())
	assert.Equal(t, int64(2999), c.PriceCents())
	assert.Greater(t, c.Version(), v)
}

func TestIsOwnedBy(t *testing.T) {
	c := reconstructCourse(t, nil)

	assert.True(t, c.IsOwnedBy(10))
	assert.False(t, c.IsOwnedBy(11))
}
