package models

import (
	"time"

	"gorm.io/gorm"

	"studia/internal/domain/billing"
	"studia/internal/shared/constants"
)

// SubscriptionModel represents the database persistence model for subscriptions
// This is the anti-corruption layer between domain and database
// Exactly one row per user; the row is a mirror of provider state
type SubscriptionModel struct {
	ID                   uint   `gorm:"primarykey"`
	SID                  string `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: sub_xxx"`
	UserID               uint   `gorm:"uniqueIndex;not null"`
	PlanID               string `gorm:"not null;size:32;default:free"`
	Status               string `gorm:"not null;size:20;index:idx_subscription_status"`
	StripeCustomerID     string `gorm:"not null;size:64;index:idx_subscription_customer"`
	StripeSubscriptionID string `gorm:"size:64;index:idx_subscription_provider"`
	CurrentPeriodEnd     *time.Time
	CancelAtPeriodEnd    bool `gorm:"default:false"`
	Version              int  `gorm:"not null;default:1"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}

// BeforeCreate hook for GORM
func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.PlanID == "" {
		s.PlanID = billing.PlanFree
	}
	if s.Version == 0 {
		s.Version = 1
	}
	return nil
}
