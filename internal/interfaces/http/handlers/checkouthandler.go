package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	billingUsecases "studia/internal/application/billing/usecases"
	"studia/internal/shared/id"
	"studia/internal/shared/logger"
	"studia/internal/shared/utils"
)

type CheckoutHandler struct {
	purchaseUC     *billingUsecases.CreatePurchaseCheckoutUseCase
	boostUC        *billingUsecases.CreateBoostCheckoutUseCase
	subscriptionUC *billingUsecases.CreateSubscriptionCheckoutUseCase
	logger         logger.Interface
}

func NewCheckoutHandler(
	purchaseUC *billingUsecases.CreatePurchaseCheckoutUseCase,
	boostUC *billingUsecases.CreateBoostCheckoutUseCase,
	subscriptionUC *billingUsecases.CreateSubscriptionCheckoutUseCase,
	logger logger.Interface,
) *CheckoutHandler {
	return &CheckoutHandler{
		purchaseUC:     purchaseUC,
		boostUC:        boostUC,
		subscriptionUC: subscriptionUC,
		logger:         logger,
	}
}

type CourseCheckoutRequest struct {
	CourseID string `json:"course_id" binding:"required"`
}

type SubscriptionCheckoutRequest struct {
	PlanID string `json:"plan_id" binding:"required"`
}

type CheckoutResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

// @Summary		Create purchase checkout
// @Description	Start a hosted checkout to buy a course
// @Tags			checkout
// @Accept			json
// @Produce		json
// @Security		Bearer
// @Param			checkout	body		CourseCheckoutRequest					true	"Course to buy"
// @Success		200			{object}	utils.APIResponse{data=CheckoutResponse}	"Checkout session"
// @Failure		400			{object}	utils.APIResponse							"Bad request"
// @Failure		401			{object}	utils.APIResponse							"Unauthorized"
// @Failure		409			{object}	utils.APIResponse							"Already owned"
// @Router			/checkout/purchase [post]
func (h *CheckoutHandler) CreatePurchase(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	courseSID, ok := h.bindCourseCheckout(c)
	if !ok {
		return
	}

	result, err := h.purchaseUC.Execute(c.Request.Context(), billingUsecases.CreatePurchaseCheckoutCommand{
		UserID:    userID.(uint),
		CourseSID: courseSID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "checkout session created", CheckoutResponse{
		SessionID:   result.SessionID,
		CheckoutURL: result.CheckoutURL,
	})
}

// @Summary		Create boost checkout
// @Description	Start a hosted checkout to boost one of the caller's courses
// @Tags			checkout
// @Accept			json
// @Produce		json
// @Security		Bearer
// @Param			checkout	body		CourseCheckoutRequest					true	"Course to boost"
// @Success		200			{object}	utils.APIResponse{data=CheckoutResponse}	"Checkout session"
// @Failure		400			{object}	utils.APIResponse							"Bad request"
// @Failure		403			{object}	utils.APIResponse							"Not the author"
// @Router			/checkout/boost [post]
func (h *CheckoutHandler) CreateBoost(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	courseSID, ok := h.bindCourseCheckout(c)
	if !ok {
		return
	}

	result, err := h.boostUC.Execute(c.Request.Context(), billingUsecases.CreateBoostCheckoutCommand{
		UserID:    userID.(uint),
		CourseSID: courseSID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "checkout session created", CheckoutResponse{
		SessionID:   result.SessionID,
		CheckoutURL: result.CheckoutURL,
	})
}

// @Summary		Create subscription checkout
// @Description	Start a hosted checkout for a paid plan
// @Tags			checkout
// @Accept			json
// @Produce		json
// @Security		Bearer
// @Param			checkout	body		SubscriptionCheckoutRequest				true	"Plan to subscribe to"
// @Success		200			{object}	utils.APIResponse{data=CheckoutResponse}	"Checkout session"
// @Failure		400			{object}	utils.APIResponse							"Bad request"
// @Failure		404			{object}	utils.APIResponse							"Plan not found"
// @Router			/checkout/subscription [post]
func (h *CheckoutHandler) CreateSubscription(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req SubscriptionCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.subscriptionUC.Execute(c.Request.Context(), billingUsecases.CreateSubscriptionCheckoutCommand{
		UserID: userID.(uint),
		PlanID: req.PlanID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "checkout session created", CheckoutResponse{
		SessionID:   result.SessionID,
		CheckoutURL: result.CheckoutURL,
	})
}

func (h *CheckoutHandler) bindCourseCheckout(c *gin.Context) (string, bool) {
	var req CourseCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return "", false
	}
	if err := id.ValidatePrefix(req.CourseID, id.PrefixCourse); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid course ID format")
		return "", false
	}
	return req.CourseID, true
}
