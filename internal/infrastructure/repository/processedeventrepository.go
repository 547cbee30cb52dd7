package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"studia/internal/domain/billing"
	"studia/internal/infrastructure/persistence/mappers"
	"studia/internal/infrastructure/persistence/models"
	"studia/internal/shared/logger"
)

// ProcessedEventRepository implements the webhook idempotency ledger
type ProcessedEventRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewProcessedEventRepository creates a new processed event repository
func NewProcessedEventRepository(db *gorm.DB, logger logger.Interface) billing.ProcessedEventRepository {
	return &ProcessedEventRepository{
		db:     db,
		logger: logger,
	}
}

// IsProcessed checks whether the event has already been handled
func (r *ProcessedEventRepository) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	var count int64

	if err := r.db.WithContext(ctx).
		Model(&models.ProcessedStripeEventModel{}).
		Where("event_id = ?", eventID).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to check processed event", "event_id", eventID, "error", err)
		return false, fmt.Errorf("failed to check processed event: %w", err)
	}

	return count > 0, nil
}

// MarkProcessed records the event in the ledger. Concurrent deliveries
// of the same event collapse onto the unique event_id index.
func (r *ProcessedEventRepository) MarkProcessed(ctx context.Context, event *billing.ProcessedEvent) error {
	model := mappers.ProcessedEventToModel(event)

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		DoNothing: true,
	}).Create(model)
	if result.Error != nil {
		r.logger.Errorw("failed to mark event processed", "event_id", model.EventID, "error", result.Error)
		return fmt.Errorf("failed to mark event processed: %w", result.Error)
	}

	r.logger.Debugw("event marked processed", "event_id", model.EventID, "event_type", model.EventType)
	return nil
}
