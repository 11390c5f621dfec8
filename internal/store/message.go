package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dev-singh-05/gymers/internal/models"

	"gorm.io/gorm"
)

// MessageStore is the append-only chat log. No update or delete
// methods exist on purpose.
type MessageStore struct {
	DB *gorm.DB
}

func NewMessageStore(db *gorm.DB) *MessageStore {
	return &MessageStore{DB: db}
}

// History returns the full message log, creation time ascending with
// ties kept in insert order.
func (s *MessageStore) History() ([]models.Message, error) {
	var msgs []models.Message
	err := s.DB.Order("created_at ASC, id ASC").Find(&msgs).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("message history: %w", err)
	}
	return msgs, nil
}

// Append inserts one message and returns the stored row.
func (s *MessageStore) Append(text, senderName, senderAvatar string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("message text must not be empty")
	}
	if strings.TrimSpace(senderName) == "" {
		return nil, errors.New("sender name must not be empty")
	}

	m := models.Message{
		Text:         text,
		SenderName:   senderName,
		SenderAvatar: senderAvatar,
	}
	if err := s.DB.Create(&m).Error; err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}
	return &m, nil
}
