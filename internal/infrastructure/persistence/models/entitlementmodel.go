package models

import (
	"time"

	"studia/internal/shared/constants"
)

// EntitlementModel represents the database persistence model for entitlements
// This is the anti-corruption layer between domain and database
// One row per (user, course) pair regardless of how many orders reference it
type EntitlementModel struct {
	ID        uint      `gorm:"primarykey"`
	SID       string    `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: ent_xxx"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_unique_entitlement,priority:1"`
	CourseID  uint      `gorm:"not null;uniqueIndex:idx_unique_entitlement,priority:2;index:idx_entitlement_course"`
	OrderID   uint      `gorm:"not null;index:idx_entitlement_order"`
	GrantedAt time.Time `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (EntitlementModel) TableName() string {
	return constants.TableEntitlements
}
