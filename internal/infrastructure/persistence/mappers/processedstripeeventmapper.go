package mappers

import (
	"gorm.io/datatypes"

	"studia/internal/domain/billing"
	"studia/internal/infrastructure/persistence/models"
)

// ProcessedEventToModel converts a ledger entry to its persistence model.
func ProcessedEventToModel(e *billing.ProcessedEvent) *models.ProcessedStripeEventModel {
	return &models.ProcessedStripeEventModel{
		ID:          e.ID(),
		EventID:     e.EventID(),
		EventType:   e.EventType(),
		Payload:     datatypes.JSON(e.Payload()),
		ProcessedAt: e.ProcessedAt(),
	}
}

// ProcessedEventToDomain converts a persistence model back to the ledger entry.
func ProcessedEventToDomain(model *models.ProcessedStripeEventModel) *billing.ProcessedEvent {
	return billing.ReconstructProcessedEvent(model.ID, model.EventID, model.EventType, []byte(model.Payload), model.ProcessedAt)
}
