package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	userUsecases "studia/internal/application/user/usecases"
	"studia/internal/shared/config"
	"studia/internal/shared/constants"
	"studia/internal/shared/logger"
	"studia/internal/shared/utils"
)

const oauthStateCookie = "oauth_state"

type AuthHandler struct {
	registerUC       *userUsecases.RegisterWithPasswordUseCase
	loginUC          *userUsecases.LoginWithPasswordUseCase
	googleCallbackUC *userUsecases.HandleGoogleCallbackUseCase
	getMeUC          *userUsecases.GetMeUseCase
	oauthService     userUsecases.GoogleOAuthService
	jwtService       userUsecases.JWTService
	cookieConfig     config.CookieConfig
	jwtConfig        config.JWTConfig
	baseURL          string
	logger           logger.Interface
}

func NewAuthHandler(
	registerUC *userUsecases.RegisterWithPasswordUseCase,
	loginUC *userUsecases.LoginWithPasswordUseCase,
	googleCallbackUC *userUsecases.HandleGoogleCallbackUseCase,
	getMeUC *userUsecases.GetMeUseCase,
	oauthService userUsecases.GoogleOAuthService,
	jwtService userUsecases.JWTService,
	cookieConfig config.CookieConfig,
	jwtConfig config.JWTConfig,
	baseURL string,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		registerUC:       registerUC,
		loginUC:          loginUC,
		googleCallbackUC: googleCallbackUC,
		getMeUC:          getMeUC,
		oauthService:     oauthService,
		jwtService:       jwtService,
		cookieConfig:     cookieConfig,
		jwtConfig:        jwtConfig,
		baseURL:          baseURL,
		logger:           logger,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User        interface{} `json:"user"`
	AccessToken string      `json:"access_token"`
	ExpiresIn   int64       `json:"expires_in"`
}

// @Summary		Register
// @Description	Register a new account with email and password
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			register	body		RegisterRequest							true	"Registration data"
// @Success		201			{object}	utils.APIResponse{data=AuthResponse}	"Account created"
// @Failure		400			{object}	utils.APIResponse						"Bad request"
// @Failure		409			{object}	utils.APIResponse						"Email already registered"
// @Router			/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.registerUC.Execute(c.Request.Context(), userUsecases.RegisterWithPasswordCommand{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.setAuthCookies(c, result.Tokens)
	utils.CreatedResponse(c, AuthResponse{
		User:        result.User,
		AccessToken: result.Tokens.AccessToken,
		ExpiresIn:   result.Tokens.ExpiresIn,
	}, "account created successfully")
}

// @Summary		Login
// @Description	Authenticate with email and password
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			login	body		LoginRequest							true	"Credentials"
// @Success		200		{object}	utils.APIResponse{data=AuthResponse}	"Logged in"
// @Failure		400		{object}	utils.APIResponse						"Bad request"
// @Failure		401		{object}	utils.APIResponse						"Invalid credentials"
// @Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), userUsecases.LoginWithPasswordCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.setAuthCookies(c, result.Tokens)
	utils.SuccessResponse(c, http.StatusOK, "logged in successfully", AuthResponse{
		User:        result.User,
		AccessToken: result.Tokens.AccessToken,
		ExpiresIn:   result.Tokens.ExpiresIn,
	})
}

// @Summary		Refresh tokens
// @Description	Rotate the refresh token and issue a new access token
// @Tags			auth
// @Produce		json
// @Success		200	{object}	utils.APIResponse{data=AuthResponse}	"Tokens refreshed"
// @Failure		401	{object}	utils.APIResponse						"Invalid refresh token"
// @Router			/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken := utils.GetTokenFromCookie(c, utils.RefreshTokenCookie)
	if refreshToken == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing refresh token")
		return
	}

	tokens, err := h.jwtService.Refresh(refreshToken)
	if err != nil {
		h.logger.Warnw("failed to refresh tokens", "error", err)
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired refresh token")
		return
	}

	h.setAuthCookies(c, *tokens)
	utils.SuccessResponse(c, http.StatusOK, "tokens refreshed successfully", AuthResponse{
		AccessToken: tokens.AccessToken,
		ExpiresIn:   tokens.ExpiresIn,
	})
}

// @Summary		Logout
// @Description	Clear the authentication cookies
// @Tags			auth
// @Produce		json
// @Success		200	{object}	utils.APIResponse	"Logged out"
// @Router			/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.ClearAuthCookies(c, h.cookieConfig)
	utils.SuccessResponse(c, http.StatusOK, "logged out successfully", nil)
}

// @Summary		Get current user
// @Description	Return the authenticated user's profile
// @Tags			auth
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	utils.APIResponse	"User profile"
// @Failure		401	{object}	utils.APIResponse	"Unauthorized"
// @Router			/auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	view, err := h.getMeUC.Execute(c.Request.Context(), userUsecases.GetMeCommand{UserID: userID.(uint)})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "user retrieved successfully", view)
}

// @Summary		Google sign-in
// @Description	Redirect to the Google consent page
// @Tags			auth
// @Success		307	"Redirect to Google"
// @Router			/auth/oauth/google [get]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state, err := generateOAuthState()
	if err != nil {
		h.logger.Errorw("failed to generate oauth state", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to start google sign-in")
		return
	}

	// The state round-trips through a short-lived cookie so the callback
	// can reject forged redirects.
	c.SetCookie(oauthStateCookie, state, 600, h.cookieConfig.Path, h.cookieConfig.Domain, h.cookieConfig.Secure, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauthService.AuthCodeURL(state))
}

// @Summary		Google callback
// @Description	Handle the Google OAuth callback and sign the user in
// @Tags			auth
// @Produce		json
// @Param			code	query	string	true	"Authorization code"
// @Param			state	query	string	true	"Anti-forgery state"
// @Success		307		"Redirect to the application"
// @Failure		401		{object}	utils.APIResponse	"Sign-in failed"
// @Router			/auth/oauth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if providerErr := c.Query("error"); providerErr != "" {
		h.logger.Warnw("oauth provider returned an error", "code", providerErr)
		utils.ErrorResponse(c, http.StatusUnauthorized, constants.GetOAuthErrorMessageFromString(providerErr))
		return
	}

	state := c.Query("state")
	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != expectedState {
		h.logger.Warnw("oauth callback state mismatch")
		utils.ErrorResponse(c, http.StatusUnauthorized, constants.GetOAuthErrorMessage(constants.OAuthErrorInvalidState))
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, h.cookieConfig.Path, h.cookieConfig.Domain, h.cookieConfig.Secure, true)

	code := c.Query("code")
	if code == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, constants.GetOAuthErrorMessage(constants.OAuthErrorMissingCode))
		return
	}

	result, err := h.googleCallbackUC.Execute(c.Request.Context(), userUsecases.HandleGoogleCallbackCommand{Code: code})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.setAuthCookies(c, result.Tokens)
	c.Redirect(http.StatusTemporaryRedirect, h.baseURL)
}

func (h *AuthHandler) setAuthCookies(c *gin.Context, tokens userUsecases.TokenPair) {
	accessMaxAge := h.jwtConfig.AccessExpMinutes * 60
	refreshMaxAge := h.jwtConfig.RefreshExpDays * 24 * 60 * 60
	utils.SetAuthCookies(c, h.cookieConfig, tokens.AccessToken, tokens.RefreshToken, accessMaxAge, refreshMaxAge)
}

func generateOAuthState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
