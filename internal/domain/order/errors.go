package order

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderNotFound is returned when an order is not found
	ErrOrderNotFound = errors.New("order not found")

	// ErrBuyerIDRequired is returned when the buyer ID is missing
	ErrBuyerIDRequired = errors.New("buyer ID is required")

	// ErrCourseIDRequired is returned when the course ID is missing
	ErrCourseIDRequired = errors.New("course ID is required")

	// ErrCheckoutSessionRequired is returned when the checkout session ID is missing
	ErrCheckoutSessionRequired = errors.New("checkout session ID is required")

	// ErrNegativeAmount is returned when a negative amount is provided
	ErrNegativeAmount = errors.New("order amount cannot be negative")
)

// ErrInvalidStatusTransition returns an error for invalid status transitions
func ErrInvalidStatusTransition(from, to Status) error {
	return fmt.Errorf("invalid order status transition from %s to %s", from, to)
}
