package models

import (
	"time"

	"studia/internal/shared/constants"
)

// OrderModel represents the database persistence model for orders
// This is the anti-corruption layer between domain and database
type OrderModel struct {
	ID                uint   `gorm:"primarykey"`
	SID               string `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: ord_xxx"`
	CheckoutSessionID string `gorm:"uniqueIndex;not null;size:128;comment:provider checkout session, idempotency key"`
	BuyerID           uint   `gorm:"not null;index:idx_order_buyer"`
	CourseID          uint   `gorm:"not null;index:idx_order_course"`
	AmountCents       int64  `gorm:"not null"`
	Currency          string `gorm:"not null;size:3"`
	Status            string `gorm:"not null;size:20;index:idx_order_status"`
	PaidAt            *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the table name for GORM
func (OrderModel) TableName() string {
	return constants.TableOrders
}
