package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studia/internal/interfaces/http/handlers/testutil"
	"studia/internal/shared/config"
	"studia/internal/shared/constants"
)

func newOAuthCallbackHandler() *AuthHandler {
	return NewAuthHandler(nil, nil, nil, nil, nil, nil,
		config.CookieConfig{}, config.JWTConfig{}, "https://studia.test", testutil.NewMockLogger())
}

func TestAuthHandler_GoogleCallback_ProviderErrorIsReported(t *testing.T) {
	h := newOAuthCallbackHandler()
	c, w := testutil.NewTestContext(http.MethodGet, "/auth/oauth/google/callback", nil)
	testutil.SetQueryParams(c, map[string]string{"error": "access_denied"})

	h.GoogleCallback(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, constants.GetOAuthErrorMessage(constants.OAuthErrorAccessDenied), resp.Error.Message)
}

func TestAuthHandler_GoogleCallback_StateMismatchIsRejected(t *testing.T) {
	h := newOAuthCallbackHandler()
	c, w := testutil.NewTestContext(http.MethodGet, "/auth/oauth/google/callback", nil)
	c.Request.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "expected"})
	testutil.SetQueryParams(c, map[string]string{"state": "forged", "code": "abc"})

	h.GoogleCallback(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, constants.GetOAuthErrorMessage(constants.OAuthErrorInvalidState), resp.Error.Message)
}

func TestAuthHandler_GoogleCallback_MissingCodeIsRejected(t *testing.T) {
	h := newOAuthCallbackHandler()
	c, w := testutil.NewTestContext(http.MethodGet, "/auth/oauth/google/callback", nil)
	c.Request.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "expected"})
	testutil.SetQueryParams(c, map[string]string{"state": "expected"})

	h.GoogleCallback(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, constants.GetOAuthErrorMessage(constants.OAuthErrorMissingCode), resp.Error.Message)
}
