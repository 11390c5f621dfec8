// Package chat ties the append-only message store to the realtime hub:
// posting a message persists it and publishes the stored row, and a
// Stream gives each consumer the history followed by live inserts with
// no gap and no duplicates.
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/dev-singh-05/gymers/internal/models"
	"github.com/dev-singh-05/gymers/internal/realtime"
	"github.com/dev-singh-05/gymers/internal/store"
)

var (
	ErrEmptyText     = errors.New("chat: message text must not be empty")
	ErrUnknownSender = errors.New("chat: sender name is required")
)

// Relay forwards a stored message to chat subscribers on other nodes.
// The redis bridge implements it; nil means single-node.
type Relay interface {
	Publish(ctx context.Context, msg models.Message)
}

// Service exposes the chat operations shared by the HTTP and websocket
// surfaces.
type Service struct {
	Messages *store.MessageStore
	Hub      *realtime.Hub
	Relay    Relay
}

func NewService(messages *store.MessageStore, hub *realtime.Hub, relay Relay) *Service {
	return &Service{Messages: messages, Hub: hub, Relay: relay}
}

// Send validates, persists and publishes one message. There is no
// optimistic local append anywhere: senders see their message when
// their own subscription delivers it back.
func (s *Service) Send(ctx context.Context, text, senderName, senderAvatar string) (*models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	if strings.TrimSpace(senderName) == "" {
		return nil, ErrUnknownSender
	}

	msg, err := s.Messages.Append(text, senderName, senderAvatar)
	if err != nil {
		return nil, err
	}

	s.Hub.Publish(*msg)
	if s.Relay != nil {
		s.Relay.Publish(ctx, *msg)
	}
	return msg, nil
}

// History returns the stored log, oldest first.
func (s *Service) History() ([]models.Message, error) {
	return s.Messages.History()
}
