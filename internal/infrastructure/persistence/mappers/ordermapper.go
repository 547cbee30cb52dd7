package mappers

import (
	"fmt"

	"studia/internal/domain/order"
	"studia/internal/infrastructure/persistence/models"
)

// OrderToModel converts an order aggregate to its persistence model.
func OrderToModel(o *order.Order) *models.OrderModel {
	return &models.OrderModel{
		ID:                o.ID(),
		SID:               o.SID(),
		CheckoutSessionID: o.CheckoutSessionID(),
		BuyerID:           o.BuyerID(),
		CourseID:          o.CourseID(),
		AmountCents:       o.AmountCents(),
		Currency:          o.Currency(),
		Status:            o.Status().String(),
		PaidAt:            o.PaidAt(),
		CreatedAt:         o.CreatedAt(),
		UpdatedAt:         o.UpdatedAt(),
	}
}

// OrderToDomain converts a persistence model back to the aggregate.
func OrderToDomain(model *models.OrderModel) (*order.Order, error) {
	o, err := order.ReconstructOrder(order.OrderReconstructParams{
		ID:                model.ID,
		SID:               model.SID,
		CheckoutSessionID: model.CheckoutSessionID,
		BuyerID:           model.BuyerID,
		CourseID:          model.CourseID,
		AmountCents:       model.AmountCents,
		Currency:          model.Currency,
		Status:            order.Status(model.Status),
		PaidAt:            model.PaidAt,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct order entity: %w", err)
	}
	return o, nil
}
