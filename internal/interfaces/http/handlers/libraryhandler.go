package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	orderUsecases "studia/internal/application/order/usecases"
	"studia/internal/shared/logger"
	"studia/internal/shared/utils"
)

type LibraryHandler struct {
	listLibraryUC *orderUsecases.ListLibraryUseCase
	listSalesUC   *orderUsecases.ListSalesUseCase
	logger        logger.Interface
}

func NewLibraryHandler(
	listLibraryUC *orderUsecases.ListLibraryUseCase,
	listSalesUC *orderUsecases.ListSalesUseCase,
	logger logger.Interface,
) *LibraryHandler {
	return &LibraryHandler{
		listLibraryUC: listLibraryUC,
		listSalesUC:   listSalesUC,
		logger:        logger,
	}
}

// @Summary		My library
// @Description	List the courses the caller owns, with asset access
// @Tags			library
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	utils.APIResponse	"Library"
// @Failure		401	{object}	utils.APIResponse	"Unauthorized"
// @Router			/library [get]
func (h *LibraryHandler) ListLibrary(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	items, err := h.listLibraryUC.Execute(c.Request.Context(), orderUsecases.ListLibraryCommand{UserID: userID.(uint)})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "library retrieved successfully", items)
}

// @Summary		My sales
// @Description	List the settled orders for the caller's courses
// @Tags			library
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	utils.APIResponse	"Sales"
// @Failure		401	{object}	utils.APIResponse	"Unauthorized"
// @Router			/sales [get]
func (h *LibraryHandler) ListSales(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	result, err := h.listSalesUC.Execute(c.Request.Context(), orderUsecases.ListSalesCommand{UserID: userID.(uint)})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "sales retrieved successfully", result)
}
