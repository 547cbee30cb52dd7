package constants

// OAuthErrorCode represents OAuth error codes
type OAuthErrorCode string

const (
	// Codes reported by the provider on the callback redirect
	OAuthErrorAccessDenied       OAuthErrorCode = "access_denied"
	OAuthErrorInvalidRequest     OAuthErrorCode = "invalid_request"
	OAuthErrorUnauthorizedClient OAuthErrorCode = "unauthorized_client"
	OAuthErrorServerError        OAuthErrorCode = "server_error"

	// Codes raised by our own callback validation
	OAuthErrorMissingCode  OAuthErrorCode = "missing_code"
	OAuthErrorInvalidState OAuthErrorCode = "invalid_state"
)

// OAuthErrorMessages maps error codes to user-facing messages.
var OAuthErrorMessages = map[OAuthErrorCode]string{
	OAuthErrorAccessDenied:       "you denied the authorization request, please try again if you wish to continue",
	OAuthErrorInvalidRequest:     "invalid sign-in request, please contact support if this persists",
	OAuthErrorUnauthorizedClient: "this application is not authorized with the provider, please contact support",
	OAuthErrorServerError:        "the sign-in provider encountered an error, please try again later",

	OAuthErrorMissingCode:  "authorization code is missing, please try signing in again",
	OAuthErrorInvalidState: "sign-in security check failed, this link may have expired",
}

// GetOAuthErrorMessage returns the user-facing message for a code.
func GetOAuthErrorMessage(code OAuthErrorCode) string {
	if msg, ok := OAuthErrorMessages[code]; ok {
		return msg
	}
	return "an unexpected error occurred during sign-in, please try again"
}

// GetOAuthErrorMessageFromString returns the user-facing message for a
// raw code string, as received on the callback query.
func GetOAuthErrorMessageFromString(code string) string {
	return GetOAuthErrorMessage(OAuthErrorCode(code))
}
