package models

import (
	"time"

	"gorm.io/gorm"

	"studia/internal/shared/constants"
)

// UserModel represents the database persistence model for users
// This is the anti-corruption layer between domain and database
type UserModel struct {
	ID            uint    `gorm:"primarykey"`
	SID           string  `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: usr_xxx"`
	Email         string  `gorm:"uniqueIndex;not null;size:255"`
	Name          string  `gorm:"not null;size:100"`
	Role          string  `gorm:"not null;size:20;default:user"`
	Status        string  `gorm:"not null;size:20;default:active;index:idx_user_status"`
	PasswordHash  *string `gorm:"size:255"`
	GoogleID      *string `gorm:"uniqueIndex;size:64"`
	EmailVerified bool    `gorm:"default:false"`
	Version       int     `gorm:"not null;default:1"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return constants.TableUsers
}

// BeforeCreate hook for GORM
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.Status == "" {
		u.Status = "active"
	}
	if u.Version == 0 {
		u.Version = 1
	}
	return nil
}
