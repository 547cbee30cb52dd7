package models

import (
	"time"

	"gorm.io/datatypes"

	"studia/internal/shared/constants"
)

// ProcessedStripeEventModel is the write-once webhook idempotency ledger
// A row exists only after an event's side effects were fully applied
type ProcessedStripeEventModel struct {
	ID          uint      `gorm:"primarykey"`
	EventID     string    `gorm:"uniqueIndex;not null;size:64"`
	EventType   string         `gorm:"not null;size:64;index:idx_processed_event_type"`
	Payload     datatypes.JSON `gorm:"type:json"`
	ProcessedAt time.Time      `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ProcessedStripeEventModel) TableName() string {
	return constants.TableProcessedStripeEvents
}
