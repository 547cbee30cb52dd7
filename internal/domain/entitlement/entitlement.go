// Package entitlement provides the domain model for course access.
// An entitlement records that a user has permanent access to one
// course, granted by a reconciled purchase.
package entitlement

import (
	"fmt"
	"time"

	"studia/internal/shared/id"
)

// Entitlement represents the entitlement aggregate root. One row exists
// per (user, course) pair regardless of how many times the purchase
// event is replayed.
type Entitlement struct {
	id        uint
	sid       string
	userID    uint
	courseID  uint
	orderID   uint
	grantedAt time.Time
	createdAt time.Time
	updatedAt time.Time
}

// NewEntitlement grants a user access to a course backed by an order.
func NewEntitlement(userID, courseID, orderID uint, grantedAt time.Time) (*Entitlement, error) {
	if userID == 0 {
		return nil, ErrUserIDRequired
	}
	if courseID == 0 {
		return nil, ErrCourseIDRequired
	}

	sid, err := id.NewEntitlementSID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate entitlement SID: %w", err)
	}

	now := time.Now()
	return &Entitlement{
		sid:       sid,
		userID:    userID,
		courseID:  courseID,
		orderID:   orderID,
		grantedAt: grantedAt,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructEntitlement rebuilds an entitlement from persistence.
func ReconstructEntitlement(id uint, sid string, userID, courseID, orderID uint, grantedAt, createdAt, updatedAt time.Time) (*Entitlement, error) {
	if id == 0 {
		return nil, fmt.Errorf("entitlement ID cannot be zero")
	}
	if userID == 0 {
		return nil, ErrUserIDRequired
	}
	if courseID == 0 {
		return nil, ErrCourseIDRequired
	}

	return &Entitlement{
		id:        id,
		sid:       sid,
		userID:    userID,
		courseID:  courseID,
		orderID:   orderID,
		grantedAt: grantedAt,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// ID returns the internal entitlement ID.
func (e *Entitlement) ID() uint {
	return e.id
}

// SetID sets the entitlement ID (only for persistence layer use)
func (e *Entitlement) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("entitlement ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("entitlement ID cannot be zero")
	}
	e.id = id
	return nil
}

// SID returns the public entitlement identifier.
func (e *Entitlement) SID() string {
	return e.sid
}

// UserID returns the entitled user's ID.
func (e *Entitlement) UserID() uint {
	return e.userID
}

// CourseID returns the entitled course's ID.
func (e *Entitlement) CourseID() uint {
	return e.courseID
}

// OrderID returns the order that granted this entitlement.
func (e *Entitlement) OrderID() uint {
	return e.orderID
}

// GrantedAt returns when access was granted.
func (e *Entitlement) GrantedAt() time.Time {
	return e.grantedAt
}

// CreatedAt returns the creation timestamp.
func (e *Entitlement) CreatedAt() time.Time {
	return e.createdAt
}

// UpdatedAt returns the last modification timestamp.
func (e *Entitlement) UpdatedAt() time.Time {
	return e.updatedAt
}
