package models

import (
	"time"

	"github.com/terraincognita07/daymate/internal/schedule"
	"gorm.io/gorm"
)

// Routine is soft-deleted. Elements of a deleted routine stay in place but are unreachable.
type Routine struct {
	ID               uint                `gorm:"primaryKey"`
	UserID           uint                `gorm:"not null;index"`
	Title            string              `gorm:"not null"`
	StartTimeMinutes int                 `gorm:"not null"`
	RepeatDays       schedule.WeekdaySet `gorm:"type:text;not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

// RoutineElement is one step of a routine. Removed steps are hard-deleted.
type RoutineElement struct {
	ID              uint   `gorm:"primaryKey"`
	UserID          uint   `gorm:"not null;index"`
	RoutineID       uint   `gorm:"not null;index"`
	Title           string `gorm:"not null"`
	Order           int    `gorm:"column:position;not null"`
	DurationMinutes int    `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RoutineLog is the outcome of one element on one day.
type RoutineLog struct {
	ID               uint      `gorm:"primaryKey"`
	UserID           uint      `gorm:"not null;index"`
	RoutineID        uint      `gorm:"not null;index"`
	RoutineElementID uint      `gorm:"not null;index"`
	CompletedAt      time.Time `gorm:"not null;index"`
	DurationSeconds  int       `gorm:"not null"`
	IsSkipped        bool      `gorm:"not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
