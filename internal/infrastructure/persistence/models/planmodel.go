package models

import (
	"time"

	"gorm.io/gorm"

	"studia/internal/shared/constants"
)

// PlanModel represents the database persistence model for subscription plans
// This is the anti-corruption layer between domain and database
type PlanModel struct {
	ID            string `gorm:"primarykey;size:32"`
	Name          string `gorm:"not null;size:100"`
	Description   string `gorm:"size:500"`
	PriceCents    int64  `gorm:"not null"`
	Currency      string `gorm:"not null;size:3"`
	StripePriceID string `gorm:"size:64"`
	MaxCourses    int    `gorm:"not null;default:0;comment:0 means unlimited"`
	Active        bool   `gorm:"default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for GORM
func (PlanModel) TableName() string {
	return constants.TablePlans
}

// BeforeCreate hook for GORM
func (p *PlanModel) BeforeCreate(tx *gorm.DB) error {
	if p.Currency == "" {
		p.Currency = "EUR"
	}
	return nil
}
