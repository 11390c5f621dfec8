package models

import "time"

// UserProgram records a user's enrollment in a training program. Leaving
// a program flips IsActive instead of deleting the row, so re-joining
// reactivates the original record.
type UserProgram struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_user_program"`
	ProgramID   string    `gorm:"size:64;not null;uniqueIndex:idx_user_program"`
	ProgramName string    `gorm:"size:128;not null"` // denormalized for display
	Price       int64     `gorm:"not null"`          // whole currency units
	JoinedAt    time.Time `gorm:"index;not null"`
	IsActive    bool      `gorm:"index;not null;default:true"`

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
