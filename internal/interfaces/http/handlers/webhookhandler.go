package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"studia/internal/application/billing/paymentgateway"
	billingUsecases "studia/internal/application/billing/usecases"
	"studia/internal/shared/constants"
	"studia/internal/shared/logger"
	"studia/internal/shared/utils"
	"studia/internal/shared/utils/logutil"
)

type WebhookHandler struct {
	processUC *billingUsecases.ProcessWebhookEventUseCase
	logger    logger.Interface
}

func NewWebhookHandler(processUC *billingUsecases.ProcessWebhookEventUseCase, logger logger.Interface) *WebhookHandler {
	return &WebhookHandler{
		processUC: processUC,
		logger:    logger,
	}
}

// @Summary		Stripe webhook
// @Description	Receive and reconcile payment provider events
// @Tags			webhooks
// @Accept			json
// @Produce		json
// @Param			Stripe-Signature	header		string				true	"Event signature"
// @Success		200					{object}	utils.APIResponse	"Event processed"
// @Failure		400					{object}	utils.APIResponse	"Invalid signature"
// @Failure		500					{object}	utils.APIResponse	"Processing failed, provider should retry"
// @Router			/webhooks/stripe [post]
func (h *WebhookHandler) HandleStripeEvent(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		h.logger.Errorw("failed to read webhook body", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read request body")
		return
	}

	cmd := billingUsecases.ProcessWebhookEventCommand{
		Payload:         payload,
		SignatureHeader: c.GetHeader(constants.HeaderStripeSignature),
	}

	if err := h.processUC.Execute(c.Request.Context(), cmd); err != nil {
		if errors.Is(err, paymentgateway.ErrInvalidSignature) {
			h.logger.Warnw("rejected webhook with invalid signature",
				"signature", logutil.TruncateForLog(cmd.SignatureHeader, 24))
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid webhook signature")
			return
		}
		// Non-2xx makes the provider redeliver. The idempotency ledger
		// keeps the retry from double applying.
		h.logger.Errorw("failed to process webhook event", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to process event")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "event processed", gin.H{"received": true})
}
