package mappers

import (
	"fmt"

	"studia/internal/domain/entitlement"
	"studia/internal/infrastructure/persistence/models"
)

// EntitlementToModel converts an entitlement aggregate to its persistence model.
func EntitlementToModel(e *entitlement.Entitlement) *models.EntitlementModel {
	return &models.EntitlementModel{
		ID:        e.ID(),
		SID:       e.SID(),
		UserID:    e.UserID(),
		CourseID:  e.CourseID(),
		OrderID:   e.OrderID(),
		GrantedAt: e.GrantedAt(),
		CreatedAt: e.CreatedAt(),
		UpdatedAt: e.UpdatedAt(),
	}
}

// EntitlementToDomain converts a persistence model back to the aggregate.
func EntitlementToDomain(model *models.EntitlementModel) (*entitlement.Entitlement, error) {
	e, err := entitlement.ReconstructEntitlement(
		model.ID,
		model.SID,
		model.UserID,
		model.CourseID,
		model.OrderID,
		model.GrantedAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct entitlement entity: %w", err)
	}
	return e, nil
}
