package models

import (
	"time"

	"github.com/terraincognita07/daymate/internal/schedule"
	"gorm.io/gorm"
)

// Habit is soft-deleted; its logs stay in place.
type Habit struct {
	ID                uint                `gorm:"primaryKey"`
	UserID            uint                `gorm:"not null;index"`
	Title             string              `gorm:"not null"`
	StartTimeMinutes  int                 `gorm:"not null"`
	EndTimeMinutes    int                 `gorm:"not null"`
	RepeatTimeMinutes int                 `gorm:"not null"`
	RepeatDays        schedule.WeekdaySet `gorm:"type:text;not null"`
	Activated         bool                `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

// HabitLog is one completion event. Logs are never updated, only deleted.
type HabitLog struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"not null;index"`
	HabitID     uint      `gorm:"not null;index"`
	CompletedAt time.Time `gorm:"not null;index"`
	CreatedAt   time.Time
}
