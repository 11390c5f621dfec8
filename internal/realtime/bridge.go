package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/dev-singh-05/gymers/internal/models"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

const defaultChannel = "gymers:messages"

// Bridge republishes locally inserted messages to a redis channel and
// feeds messages published by other nodes into the local Hub, so chat
// works across multiple service instances. Without redis the Hub alone
// covers the single-node case.
type Bridge struct {
	client  *redis.Client
	hub     *Hub
	channel string
	nodeID  string
	cancel  context.CancelFunc
}

type bridgeFrame struct {
	Node    string         `json:"node"`
	Message models.Message `json:"message"`
}

// NewBridge connects to redis at url and starts relaying between the
// channel and the hub.
func NewBridge(url, channel string, hub *Hub) (*Bridge, error) {
	if channel == "" {
		channel = defaultChannel
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}

	runCtx, stop := context.WithCancel(context.Background())
	b := &Bridge{
		client:  client,
		hub:     hub,
		channel: channel,
		nodeID:  uuid.NewString(),
		cancel:  stop,
	}
	go b.readLoop(runCtx)
	return b, nil
}

// Publish relays a locally inserted message to the other nodes.
// Best-effort: a relay failure is logged, local delivery already
// happened through the hub.
func (b *Bridge) Publish(ctx context.Context, msg models.Message) {
	payload, err := json.Marshal(bridgeFrame{Node: b.nodeID, Message: msg})
	if err != nil {
		log.Printf("bridge: encode message %d: %v", msg.ID, err)
		return
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		log.Printf("bridge: publish message %d: %v", msg.ID, err)
	}
}

// Close stops the relay and releases the redis connection.
func (b *Bridge) Close() error {
	b.cancel()
	return b.client.Close()
}

func (b *Bridge) readLoop(ctx context.Context) {
	sub := b.client.Subscribe(ctx, b.channel)
	defer func() { _ = sub.Close() }()

	for {
		msg, err := sub.ReceiveMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("bridge: receive: %v", err)
			time.Sleep(time.Second)
			continue
		}

		var frame bridgeFrame
		if err := json.Unmarshal([]byte(msg.Payload), &frame); err != nil {
			log.Printf("bridge: decode payload: %v", err)
			continue
		}
		if frame.Node == b.nodeID {
			continue // our own relay coming back
		}
		b.hub.Publish(frame.Message)
	}
}
