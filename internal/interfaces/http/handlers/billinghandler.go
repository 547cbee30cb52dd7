package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	billingUsecases "studia/internal/application/billing/usecases"
	"studia/internal/shared/logger"
	"studia/internal/shared/utils"
)

type BillingHandler struct {
	getMySubscriptionUC *billingUsecases.GetMySubscriptionUseCase
	listPlansUC         *billingUsecases.ListPlansUseCase
	logger              logger.Interface
}

func NewBillingHandler(
	getMySubscriptionUC *billingUsecases.GetMySubscriptionUseCase,
	listPlansUC *billingUsecases.ListPlansUseCase,
	logger logger.Interface,
) *BillingHandler {
	return &BillingHandler{
		getMySubscriptionUC: getMySubscriptionUC,
		listPlansUC:         listPlansUC,
		logger:              logger,
	}
}

// @Summary		Get my subscription
// @Description	Return the caller's subscription. Lapsed periods report the free plan as effective.
// @Tags			billing
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	utils.APIResponse	"Subscription"
// @Failure		401	{object}	utils.APIResponse	"Unauthorized"
// @Router			/billing/subscription [get]
func (h *BillingHandler) GetMySubscription(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	view, err := h.getMySubscriptionUC.Execute(c.Request.Context(), billingUsecases.GetMySubscriptionCommand{
		UserID: userID.(uint),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "subscription retrieved successfully", view)
}

// @Summary		List plans
// @Description	List the purchasable plans
// @Tags			billing
// @Produce		json
// @Success		200	{object}	utils.APIResponse	"Plans"
// @Router			/plans [get]
func (h *BillingHandler) ListPlans(c *gin.Context) {
	plans, err := h.listPlansUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "plans retrieved successfully", plans)
}
