package entitlement

import "errors"

var (
	// ErrEntitlementNotFound is returned when an entitlement is not found
	ErrEntitlementNotFound = errors.New("entitlement not found")

	// ErrUserIDRequired is returned when the user ID is missing
	ErrUserIDRequired = errors.New("user ID is required")

	// ErrCourseIDRequired is returned when the course ID is missing
	ErrCourseIDRequired = errors.New("course ID is required")

	// ErrAccessDenied is returned when a user does not have access to a course
	ErrAccessDenied = errors.New("access denied")
)
