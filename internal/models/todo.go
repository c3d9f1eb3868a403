package models

import "time"

// Todo is hard-deleted. Completion is derived from CompletedAt only.
type Todo struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"not null;index"`
	Title       string    `gorm:"not null"`
	Content     string    `gorm:"not null"`
	TargetDate  time.Time `gorm:"not null;index"`
	Order       int       `gorm:"column:position;not null"`
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (todo Todo) Completed() bool {
	return todo.CompletedAt != nil
}
