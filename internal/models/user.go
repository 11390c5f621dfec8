package models

import "time"

// User represents an authenticated account. Profile data lives in a
// separate Profile row so an account can exist without one.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	FailedLoginAttempts int        `gorm:"default:0"` // consecutive failed logins
	LockedUntil         *time.Time `gorm:"index"`     // lockout expiry, nil when unlocked
	LastLoginAt         *time.Time
}
