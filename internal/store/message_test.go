package store

import (
	"testing"
	"time"

	"github.com/dev-singh-05/gymers/internal/models"
)

func TestMessageHistoryOrder(t *testing.T) {
	s := NewMessageStore(testDB(t))

	for _, text := range []string{"one", "two", "three"} {
		if _, err := s.Append(text, "S", "S"); err != nil {
			t.Fatalf("append %q: %v", text, err)
		}
	}

	msgs, err := s.History()
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}
	for i, want := range []string{"one", "two", "three"} {
		if msgs[i].Text != want {
			t.Errorf("msgs[%d].Text = %q, want %q", i, msgs[i].Text, want)
		}
	}
}

func TestMessageTimestampTiesKeepInsertOrder(t *testing.T) {
	s := NewMessageStore(testDB(t))

	// identical timestamps from different senders: row id decides
	now := time.Now()
	rows := []models.Message{
		{Text: "first", SenderName: "A", CreatedAt: now},
		{Text: "second", SenderName: "B", CreatedAt: now},
	}
	for i := range rows {
		if err := s.DB.Create(&rows[i]).Error; err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	msgs, err := s.History()
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Text != "first" || msgs[1].Text != "second" {
		t.Errorf("order = [%s %s], want [first second]", msgs[0].Text, msgs[1].Text)
	}
}

func TestAppendValidation(t *testing.T) {
	s := NewMessageStore(testDB(t))

	if _, err := s.Append("  ", "S", ""); err == nil {
		t.Error("blank text should be rejected")
	}
	if _, err := s.Append("hello", " ", ""); err == nil {
		t.Error("blank sender should be rejected")
	}
}
