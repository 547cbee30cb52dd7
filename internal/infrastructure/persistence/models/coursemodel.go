package models

import (
	"time"

	"gorm.io/gorm"

	"studia/internal/shared/constants"
)

// CourseModel represents the database persistence model for courses
// This is the anti-corruption layer between domain and database
type CourseModel struct {
	ID            uint       `gorm:"primarykey"`
	SID           string     `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: crs_xxx"`
	AuthorID      uint       `gorm:"not null;index:idx_course_author"`
	Title         string     `gorm:"not null;size:200"`
	Description   string     `gorm:"type:text"`
	SearchText    string     `gorm:"type:text;comment:Folded title and description for accent-insensitive search"`
	PriceCents    int64      `gorm:"not null"`
	Currency      string     `gorm:"not null;size:3"`
	VideoURL      string     `gorm:"size:500"`
	PDFURL        string     `gorm:"size:500"`
	Published     bool       `gorm:"default:false;index:idx_course_published"`
	BoostedUntil  *time.Time `gorm:"index:idx_course_boosted_until"`
	LastBoostedAt *time.Time
	Version       int `gorm:"not null;default:1"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for GORM
func (CourseModel) TableName() string {
	return constants.TableCourses
}

// BeforeCreate hook for GORM
func (c *CourseModel) BeforeCreate(tx *gorm.DB) error {
	if c.Version == 0 {
		c.Version = 1
	}
	return nil
}
