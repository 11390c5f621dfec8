package models

import "time"

// Todo is a single item on a user's workout checklist.
// Listing order is creation time ascending, ties broken by row id.
type Todo struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	Text      string    `gorm:"size:512;not null"`
	Completed bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"index"`

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
