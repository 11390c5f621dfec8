package models

import "time"

// Profile holds the public-facing identity of a user: display name and
// avatar. At most one row per user. Created lazily, so reads must
// tolerate its absence.
type Profile struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex;not null"`
	Name      string `gorm:"size:64"`
	Email     string `gorm:"size:255"`
	AvatarURL string `gorm:"size:512"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
