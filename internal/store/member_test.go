package store

import (
	"testing"
	"time"
)

func TestJoinGroupIdempotent(t *testing.T) {
	s := NewMemberStore(testDB(t))

	first, err := s.Join(1, "Arnold", "")
	if err != nil {
		t.Fatalf("first join: %v", err)
	}

	// later joins are no-ops returning the existing record, even with
	// different details
	second, err := s.Join(1, "Different Name", "https://img.example/x.png")
	if err != nil {
		t.Fatalf("second join: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second join created a row: id %d != %d", second.ID, first.ID)
	}
	if second.Name != "Arnold" {
		t.Errorf("Name = %q, first write should win", second.Name)
	}

	members, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(members) != 1 {
		t.Errorf("got %d member rows, want exactly 1", len(members))
	}
}

func TestGroupMembersJoinOrder(t *testing.T) {
	s := NewMemberStore(testDB(t))

	if _, err := s.Join(1, "First", ""); err != nil {
		t.Fatalf("join: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := s.Join(2, "Second", ""); err != nil {
		t.Fatalf("join: %v", err)
	}

	members, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("got %d members, want 2", len(members))
	}
	if members[0].Name != "First" || members[1].Name != "Second" {
		t.Errorf("order = [%s %s], want [First Second]", members[0].Name, members[1].Name)
	}
}

func TestIsMember(t *testing.T) {
	s := NewMemberStore(testDB(t))

	ok, err := s.IsMember(1)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if ok {
		t.Error("IsMember = true before join")
	}

	if _, err := s.Join(1, "Arnold", ""); err != nil {
		t.Fatalf("join: %v", err)
	}
	ok, err = s.IsMember(1)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !ok {
		t.Error("IsMember = false after join")
	}
}

func TestJoinGroupRequiresName(t *testing.T) {
	s := NewMemberStore(testDB(t))

	if _, err := s.Join(1, "  ", ""); err == nil {
		t.Error("blank name should be rejected")
	}
}
