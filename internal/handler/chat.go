package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dev-singh-05/gymers/internal/chat"
	"github.com/dev-singh-05/gymers/internal/metrics"
	"github.com/dev-singh-05/gymers/internal/models"
	"github.com/dev-singh-05/gymers/internal/realtime"
	"github.com/dev-singh-05/gymers/internal/store"
	"github.com/dev-singh-05/gymers/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// ChatHandler serves the chat history endpoint and the websocket that
// carries history plus live messages to each client.
type ChatHandler struct {
	Chat     *chat.Service
	Members  *store.MemberStore
	Profiles *store.ProfileStore
	Metrics  *metrics.Collector
}

func NewChatHandler(svc *chat.Service, members *store.MemberStore, profiles *store.ProfileStore, m *metrics.Collector) *ChatHandler {
	return &ChatHandler{Chat: svc, Members: members, Profiles: profiles, Metrics: m}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// same-origin enforcement happens at the proxy layer
		return true
	},
}

const wsReadTimeout = 60 * time.Second

type inboundFrame struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type messageFrame struct {
	Type    string         `json:"type"`
	Message messagePayload `json:"message"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

type ackFrame struct {
	Type string `json:"type"`
}

type messagePayload struct {
	ID           uint      `json:"id"`
	Text         string    `json:"text"`
	SenderName   string    `json:"sender_name"`
	SenderAvatar string    `json:"sender_avatar"`
	CreatedAt    time.Time `json:"created_at"`
}

// History returns the full message log, oldest first.
func (h *ChatHandler) History(c *gin.Context) {
	msgs, err := h.Chat.History()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load messages")
		return
	}

	out := make([]messagePayload, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toPayload(m))
	}
	util.Success(c, util.Response{"messages": out})
}

// Socket upgrades to websocket and runs one chat stream per client:
// an ack frame, then history as message frames, then live inserts.
// Inbound message frames post on behalf of the connected user.
func (h *ChatHandler) Socket(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	senderName, senderAvatar := h.resolveSender(user)

	ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the response; just log and return.
		log.Printf("chat: upgrade failed for user %d: %v", user.ID, err)
		return
	}

	conn := realtime.NewConnection(user.ID, ws)
	conn.Start()
	if h.Metrics != nil {
		h.Metrics.RecordChatConnect()
	}

	// the stream subscription must be released on every exit path
	stream := h.Chat.Open()
	defer func() {
		stream.Close()
		conn.Close(websocket.CloseNormalClosure, "session closed")
		if h.Metrics != nil {
			h.Metrics.RecordChatDisconnect()
		}
	}()

	ws.SetReadLimit(1 << 16)
	_ = ws.SetReadDeadline(time.Now().Add(wsReadTimeout))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})

	if payload, err := json.Marshal(ackFrame{Type: "connected"}); err == nil {
		_ = conn.Send(payload)
	}

	go h.pumpStream(stream, conn)

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
				errors.Is(err, websocket.ErrCloseSent) {
				return
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			h.replyError(conn, "bad_request", "invalid payload")
			continue
		}

		switch frame.Type {
		case "message":
			h.handleSend(c, conn, frame.Text, senderName, senderAvatar)
		default:
			h.replyError(conn, "unsupported_type", "unknown frame type")
		}
	}
}

func (h *ChatHandler) handleSend(c *gin.Context, conn *realtime.Connection, text, senderName, senderAvatar string) {
	_, err := h.Chat.Send(c.Request.Context(), text, senderName, senderAvatar)
	if err != nil {
		// best-effort messaging: the failure reaches the diagnostic log
		// and an error frame, nothing is retried
		log.Printf("chat: send from %q failed: %v", senderName, err)
		switch {
		case errors.Is(err, chat.ErrEmptyText), errors.Is(err, chat.ErrUnknownSender):
			h.replyError(conn, "bad_request", err.Error())
		default:
			h.replyError(conn, "internal_error", "message not delivered")
		}
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordMessageSent()
	}
	// no echo here: the sender's own stream delivers the stored row
}

func (h *ChatHandler) pumpStream(stream *chat.Stream, conn *realtime.Connection) {
	for msg := range stream.C {
		payload, err := json.Marshal(messageFrame{Type: "message", Message: toPayload(msg)})
		if err != nil {
			continue
		}
		if err := conn.Send(payload); err != nil {
			return
		}
	}
}

// resolveSender derives the display identity for outgoing messages:
// roster name first, then profile, then the email local-part; the
// avatar falls back to the name's initial.
func (h *ChatHandler) resolveSender(user *models.User) (name, avatar string) {
	if member, err := h.Members.Get(user.ID); err == nil {
		name, avatar = member.Name, member.AvatarURL
	}
	if name == "" || avatar == "" {
		if profile, err := h.Profiles.Get(user.ID); err == nil {
			if name == "" {
				name = profile.Name
			}
			if avatar == "" {
				avatar = profile.AvatarURL
			}
		}
	}
	if name == "" {
		name = util.EmailLocalPart(user.Email)
	}
	if avatar == "" {
		// first rune, not first byte: names can start multibyte
		r, _ := utf8.DecodeRuneInString(name)
		avatar = strings.ToUpper(string(r))
	}
	return name, avatar
}

func (h *ChatHandler) replyError(conn *realtime.Connection, code, message string) {
	if payload, err := json.Marshal(errorFrame{Type: "error", Code: code, Error: message}); err == nil {
		_ = conn.Send(payload)
	}
}

func toPayload(m models.Message) messagePayload {
	return messagePayload{
		ID:           m.ID,
		Text:         m.Text,
		SenderName:   m.SenderName,
		SenderAvatar: m.SenderAvatar,
		CreatedAt:    m.CreatedAt,
	}
}
