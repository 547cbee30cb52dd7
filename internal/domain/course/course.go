// Package course provides the domain model for marketplace courses.
// A course bundles a video lesson and a PDF support document sold as a
// single unit, and may carry a time-limited promotional boost that
// raises its ranking in catalog searches.
package course

import (
	"fmt"
	"strings"
	"time"

	"studia/internal/shared/id"
)

const (
	// MaxTitleLength bounds the course title.
	MaxTitleLength = 200

	// MaxDescriptionLength bounds the markdown description.
	MaxDescriptionLength = 20000

	// DefaultBoostDuration is the promotional window granted by a
	// single boost purchase.
	DefaultBoostDuration = 7 * 24 * time.Hour
)

// Course represents the course aggregate root.
type Course struct {
	id             uint
	sid            string
	authorID       uint
	title          string
	description    string
	priceCents     int64
	currency       string
	videoURL       string
	pdfURL         string
	published      bool
	boostedUntil   *time.Time
	lastBoostedAt  *time.Time
	version        int
	createdAt      time.Time
	updatedAt      time.Time
}

// NewCourse creates a new unpublished course owned by the given author.
func NewCourse(authorID uint, title, description string, priceCents int64, currency, videoURL, pdfURL string) (*Course, error) {
	if authorID == 0 {
		return nil, ErrAuthorIDRequired
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if priceCents < 0 {
		return nil, ErrNegativePrice
	}
	if currency == "" {
		return nil, ErrCurrencyRequired
	}

	sid, err := id.NewCourseSID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate course SID: %w", err)
	}

	now := time.Now()
	return &Course{
		sid:         sid,
		authorID:    authorID,
		title:       strings.TrimSpace(title),
		description: description,
		priceCents:  priceCents,
		currency:    strings.ToUpper(currency),
		videoURL:    videoURL,
		pdfURL:      pdfURL,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// CourseReconstructParams carries persisted state back into the aggregate.
type CourseReconstructParams struct {
	ID            uint
	SID           string
	AuthorID      uint
	Title         string
	Description   string
	PriceCents    int64
	Currency      string
	VideoURL      string
	PDFURL        string
	Published     bool
	BoostedUntil  *time.Time
	LastBoostedAt *time.Time
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ReconstructCourse rebuilds a course from persistence.
func ReconstructCourse(p CourseReconstructParams) (*Course, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("course ID cannot be zero")
	}
	if p.AuthorID == 0 {
		return nil, ErrAuthorIDRequired
	}
	if p.SID == "" {
		return nil, fmt.Errorf("course SID is required")
	}

	return &Course{
		id:            p.ID,
		sid:           p.SID,
		authorID:      p.AuthorID,
		title:         p.Title,
		description:   p.Description,
		priceCents:    p.PriceCents,
		currency:      p.Currency,
		videoURL:      p.VideoURL,
		pdfURL:        p.PDFURL,
		published:     p.Published,
		boostedUntil:  p.BoostedUntil,
		lastBoostedAt: p.LastBoostedAt,
		version:       p.Version,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
	}, nil
}

// ID returns the internal course ID.
func (c *Course) ID() uint {
	return c.id
}

// SetID sets the course ID (only for persistence layer use)
func (c *Course) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("course ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("course ID cannot be zero")
	}
	c.id = id
	return nil
}

// SID returns the public course identifier.
func (c *Course) SID() string {
	return c.sid
}

// AuthorID returns the owning creator's user ID.
func (c *Course) AuthorID() uint {
	return c.authorID
}

// Title returns the course title.
func (c *Course) Title() string {
	return c.title
}

// Description returns the markdown description.
func (c *Course) Description() string {
	return c.description
}

// PriceCents returns the price in the smallest currency unit.
func (c *Course) PriceCents() int64 {
	return c.priceCents
}

// Currency returns the ISO currency code.
func (c *Course) Currency() string {
	return c.currency
}

// VideoURL returns the video asset location.
func (c *Course) VideoURL() string {
	return c.videoURL
}

// PDFURL returns the PDF asset location.
func (c *Course) PDFURL() string {
	return c.pdfURL
}

// IsPublished reports whether the course is visible in the catalog.
func (c *Course) IsPublished() bool {
	return c.published
}

// BoostedUntil returns the boost expiry, or nil when never boosted.
func (c *Course) BoostedUntil() *time.Time {
	return c.boostedUntil
}

// LastBoostedAt returns when the most recent boost was applied.
func (c *Course) LastBoostedAt() *time.Time {
	return c.lastBoostedAt
}

// Version returns the aggregate version for optimistic locking.
func (c *Course) Version() int {
	return c.version
}

// CreatedAt returns the creation timestamp.
func (c *Course) CreatedAt() time.Time {
	return c.createdAt
}

// UpdatedAt returns the last modification timestamp.
func (c *Course) UpdatedAt() time.Time {
	return c.updatedAt
}

// IsBoostedAt reports whether the course has an active boost at the
// given instant.
func (c *Course) IsBoostedAt(now time.Time) bool {
	return c.boostedUntil != nil && c.boostedUntil.After(now)
}

// IsOwnedBy reports whether the given user is the course author.
func (c *Course) IsOwnedBy(userID uint) bool {
	return c.authorID == userID
}

// ActivateBoost extends the boost window by the given duration. Boosts
// stack additively: when a boost is still running the new window is
// appended to the current expiry, otherwise it starts from now. The
// resulting expiry is never shortened.
func (c *Course) ActivateBoost(now time.Time, duration time.Duration) (time.Time, error) {
	if duration <= 0 {
		return time.Time{}, ErrInvalidBoostDuration
	}

	base := now
	if c.boostedUntil != nil && c.boostedUntil.After(now) {
		base = *c.boostedUntil
	}

	expiry := base.Add(duration)
	c.boostedUntil = &expiry
	c.lastBoostedAt = &now
	c.touch()
	return expiry, nil
}

// UpdateDetails replaces the editable course fields.
func (c *Course) UpdateDetails(title, description string, priceCents int64, videoURL, pdfURL string) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	if err := validateDescription(description); err != nil {
		return err
	}
	if priceCents < 0 {
		return ErrNegativePrice
	}

	c.title = strings.TrimSpace(title)
	c.description = description
	c.priceCents = priceCents
	c.videoURL = videoURL
	c.pdfURL = pdfURL
	c.touch()
	return nil
}

// Publish makes the course visible in the catalog.
func (c *Course) Publish() error {
	if c.videoURL == "" || c.pdfURL == "" {
		return ErrMissingAssets
	}
	if c.published {
		return nil
	}
	c.published = true
	c.touch()
	return nil
}

// Unpublish hides the course from the catalog without deleting it.
func (c *Course) Unpublish() {
	if !c.published {
		return
	}
	c.published = false
	c.touch()
}

func (c *Course) touch() {
	c.updatedAt = time.Now()
	c.version++
}

func validateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return ErrTitleRequired
	}
	if len(trimmed) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}
