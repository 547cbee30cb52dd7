package course

import "errors"

var (
	// ErrCourseNotFound is returned when a course is not found
	ErrCourseNotFound = errors.New("course not found")

	// ErrAuthorIDRequired is returned when the author ID is missing
	ErrAuthorIDRequired = errors.New("author ID is required")

	// ErrTitleRequired is returned when the course title is empty
	ErrTitleRequired = errors.New("course title is required")

	// ErrTitleTooLong is returned when the title exceeds the maximum length
	ErrTitleTooLong = errors.New("course title too long")

	// ErrDescriptionTooLong is returned when the description exceeds the maximum length
	ErrDescriptionTooLong = errors.New("course description too long")

	// ErrNegativePrice is returned when a negative price is provided
	ErrNegativePrice = errors.New("course price cannot be negative")

	// ErrCurrencyRequired is returned when the currency code is missing
	ErrCurrencyRequired = errors.New("currency is required")

	// ErrMissingAssets is returned when publishing without both assets
	ErrMissingAssets = errors.New("course requires a video and a PDF before publishing")

	// ErrInvalidBoostDuration is returned when a boost duration is not positive
	ErrInvalidBoostDuration = errors.New("boost duration must be positive")

	// ErrNotCourseOwner is returned when a user acts on a course they do not own
	ErrNotCourseOwner = errors.New("user is not the course owner")
)
