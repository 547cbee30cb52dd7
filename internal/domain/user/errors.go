package user

import "errors"

var (
	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailRequired is returned when the email is missing
	ErrEmailRequired = errors.New("email is required")

	// ErrNameRequired is returned when the name is missing
	ErrNameRequired = errors.New("name is required")

	// ErrPasswordHashRequired is returned when the password hash is missing
	ErrPasswordHashRequired = errors.New("password hash is required")

	// ErrGoogleIDRequired is returned when the Google account ID is missing
	ErrGoogleIDRequired = errors.New("google account ID is required")

	// ErrGoogleAccountMismatch is returned when linking a different Google account
	ErrGoogleAccountMismatch = errors.New("a different google account is already linked")

	// ErrEmailAlreadyExists is returned when registering an email already in use
	ErrEmailAlreadyExists = errors.New("email already registered")

	// ErrInvalidCredentials is returned when authentication fails
	ErrInvalidCredentials = errors.New("invalid email or password")
)
