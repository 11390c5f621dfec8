package realtime

import (
	"testing"
	"time"

	"github.com/dev-singh-05/gymers/internal/models"
)

func recv(t *testing.T, sub *Subscription) models.Message {
	t.Helper()
	select {
	case msg := <-sub.C:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return models.Message{}
	}
}

func TestHubDeliversToAllSubscribers(t *testing.T) {
	h := NewHub()
	a := h.Subscribe()
	b := h.Subscribe()
	defer a.Close()
	defer b.Close()

	h.Publish(models.Message{ID: 1, Text: "hello"})

	if got := recv(t, a); got.ID != 1 {
		t.Errorf("a got id %d, want 1", got.ID)
	}
	if got := recv(t, b); got.ID != 1 {
		t.Errorf("b got id %d, want 1", got.ID)
	}
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	h := NewHub()
	sub := h.Subscribe()
	sub.Close()

	if h.Subscribers() != 0 {
		t.Errorf("Subscribers = %d, want 0", h.Subscribers())
	}

	// publishing after close must not panic
	h.Publish(models.Message{ID: 2})

	// the channel is closed, not left dangling
	if _, ok := <-sub.C; ok {
		t.Error("closed subscription should not deliver")
	}
}

func TestHubCloseIsIdempotent(t *testing.T) {
	h := NewHub()
	sub := h.Subscribe()
	sub.Close()
	sub.Close()
}

func TestHubSlowSubscriberMissesInsteadOfBlocking(t *testing.T) {
	h := NewHub()

	dropped := 0
	h.OnDrop(func() { dropped++ })

	sub := h.Subscribe()
	defer sub.Close()

	// overflow the buffer; Publish must never block
	for i := 0; i < subscriberBuffer+10; i++ {
		h.Publish(models.Message{ID: uint(i)})
	}

	if dropped != 10 {
		t.Errorf("dropped = %d, want 10", dropped)
	}
}
