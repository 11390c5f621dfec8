package models

import "time"

// Message is one group-chat message. Append-only: no edit or delete
// path exists anywhere in the API. SenderAvatar is either a single
// initial character or an image URL.
type Message struct {
	ID           uint      `gorm:"primaryKey"`
	Text         string    `gorm:"type:text;not null"`
	SenderName   string    `gorm:"size:64;not null"`
	SenderAvatar string    `gorm:"size:512"`
	CreatedAt    time.Time `gorm:"index"`
}
