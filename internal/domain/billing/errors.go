package billing

import "errors"

var (
	// ErrSubscriptionNotFound is returned when a subscription is not found
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrPlanNotFound is returned when a plan is not found
	ErrPlanNotFound = errors.New("plan not found")

	// ErrUserIDRequired is returned when the user ID is missing
	ErrUserIDRequired = errors.New("user ID is required")

	// ErrCustomerIDRequired is returned when the provider customer ID is missing
	ErrCustomerIDRequired = errors.New("customer ID is required")

	// ErrPlanIDRequired is returned when the plan ID is missing
	ErrPlanIDRequired = errors.New("plan ID is required")

	// ErrEventIDRequired is returned when the provider event ID is missing
	ErrEventIDRequired = errors.New("event ID is required")

	// ErrPlanNotSubscribable is returned when checkout is attempted for an inactive or free plan
	ErrPlanNotSubscribable = errors.New("plan cannot be subscribed to")
)
