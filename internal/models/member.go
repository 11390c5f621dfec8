package models

import "time"

// GrpMember is one participant of the community group chat.
// Join is first-write-wins: a second join returns the existing row.
type GrpMember struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex;not null"`
	Name      string    `gorm:"size:64;not null"`
	AvatarURL string    `gorm:"size:512"` // snapshot at join time
	JoinedAt  time.Time `gorm:"index;not null"`
}
