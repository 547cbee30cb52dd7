package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Authentication-specific error types
const (
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeAccountInactive    ErrorType = "account_inactive"
	ErrorTypeTokenExpired       ErrorType = "token_expired"
	ErrorTypeTokenInvalid       ErrorType = "token_invalid"
	ErrorTypeOAuthError         ErrorType = "oauth_error"
)

// AuthError is an AppError with authentication context. SecurityEvent
// marks failures worth tracking for abuse monitoring.
type AuthError struct {
	*AppError
	SecurityEvent bool
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return e.AppError.Error()
}

// Unwrap allows errors.Is and errors.As to work correctly
func (e *AuthError) Unwrap() error {
	return e.AppError
}

// NewInvalidCredentialsError creates an error for failed logins. The
// message never reveals whether the email or the password was wrong.
func NewInvalidCredentialsError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidCredentials,
			Message: "invalid email or password",
			Code:    http.StatusUnauthorized,
		},
		SecurityEvent: true,
	}
}

// NewAccountInactiveError creates an error for deactivated accounts.
func NewAccountInactiveError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeAccountInactive,
			Message: "account is not active",
			Code:    http.StatusForbidden,
		},
	}
}

// NewTokenExpiredError creates an error for expired tokens.
func NewTokenExpiredError(tokenType string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenExpired,
			Message: fmt.Sprintf("%s has expired", tokenType),
			Details: "please login again",
			Code:    http.StatusUnauthorized,
		},
	}
}

// NewTokenInvalidError creates an error for malformed or tampered
// tokens.
func NewTokenInvalidError(tokenType string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenInvalid,
			Message: fmt.Sprintf("invalid %s", tokenType),
			Code:    http.StatusUnauthorized,
		},
		SecurityEvent: true,
	}
}

// NewOAuthError creates an error for failed provider sign-ins.
func NewOAuthError(provider, details string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeOAuthError,
			Message: fmt.Sprintf("%s sign-in failed", provider),
			Details: details,
			Code:    http.StatusUnauthorized,
		},
	}
}

// IsSecurityEvent reports whether the error should be tracked for abuse
// monitoring (supports wrapped errors via errors.As).
func IsSecurityEvent(err error) bool {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return authErr.SecurityEvent
	}
	return false
}
