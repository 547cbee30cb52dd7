package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType     = "Content-Type"
	HeaderAuthorization   = "Authorization"
	HeaderXRequestID      = "X-Request-ID"
	HeaderXForwardedFor   = "X-Forwarded-For"
	HeaderStripeSignature = "Stripe-Signature"

	// Content Types
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableUsers                 = "users"
	TableCourses               = "courses"
	TableOrders                = "orders"
	TableEntitlements          = "entitlements"
	TableSubscriptions         = "subscriptions"
	TablePlans                 = "plans"
	TableProcessedStripeEvents = "processed_stripe_events"

	// Checkout metadata keys (shared between checkout creation and the
	// webhook reconciliation engine)
	MetadataKeyType     = "type"
	MetadataKeyCourseID = "course_id"
	MetadataKeyUserID   = "user_id"
	MetadataKeyPlanID   = "plan_id"

	// Checkout kinds carried in session metadata
	CheckoutTypeBoost        = "boost"
	CheckoutTypePurchase     = "purchase"
	CheckoutTypeSubscription = "subscription"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
)
