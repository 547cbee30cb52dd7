package entitlement

import "context"

// Repository defines the persistence contract for entitlements.
type Repository interface {
	// Upsert inserts the entitlement or leaves the existing row for the
	// same (user, course) pair untouched. Granting access is idempotent.
	Upsert(ctx context.Context, entitlement *Entitlement) error

	GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*Entitlement, error)
	Exists(ctx context.Context, userID, courseID uint) (bool, error)
	ListByUser(ctx context.Context, userID uint) ([]*Entitlement, error)
	CountByCourse(ctx context.Context, courseID uint) (int64, error)
}
