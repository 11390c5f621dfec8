package store

import (
	"errors"
	"testing"
)

func TestProfileCreateDefaultsName(t *testing.T) {
	s := NewProfileStore(testDB(t))

	p, err := s.Create(1, "a@x.com", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Name != "a" {
		t.Errorf("Name = %q, want email local-part %q", p.Name, "a")
	}
	if p.Email != "a@x.com" {
		t.Errorf("Email = %q, want a@x.com", p.Email)
	}
}

func TestProfileCreateConflict(t *testing.T) {
	s := NewProfileStore(testDB(t))

	if _, err := s.Create(1, "a@x.com", "A"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := s.Create(1, "a@x.com", "B"); !errors.Is(err, ErrConflict) {
		t.Errorf("second create error = %v, want ErrConflict", err)
	}
}

func TestProfileGetNotFound(t *testing.T) {
	s := NewProfileStore(testDB(t))

	if _, err := s.Get(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(99) error = %v, want ErrNotFound", err)
	}
}

func TestProfileUpdateUpsert(t *testing.T) {
	s := NewProfileStore(testDB(t))

	name := "Arnold"
	avatar := "https://img.example/a.png"

	// no row yet: update must create one from the updates + fallback email
	created, err := s.Update(1, ProfileUpdates{Name: &name, AvatarURL: &avatar}, "a@x.com")
	if err != nil {
		t.Fatalf("upsert create: %v", err)
	}
	if created.Name != "Arnold" || created.AvatarURL != avatar || created.Email != "a@x.com" {
		t.Errorf("created row = %+v", created)
	}

	// second update patches in place, no second row
	newName := "Arnie"
	patched, err := s.Update(1, ProfileUpdates{Name: &newName}, "ignored@x.com")
	if err != nil {
		t.Fatalf("upsert patch: %v", err)
	}
	if patched.ID != created.ID {
		t.Errorf("patch created a new row: id %d != %d", patched.ID, created.ID)
	}

	got, err := s.Get(1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Arnie" {
		t.Errorf("Name = %q, want Arnie", got.Name)
	}
	// untouched field survives the patch
	if got.AvatarURL != avatar {
		t.Errorf("AvatarURL = %q, want %q", got.AvatarURL, avatar)
	}
}

func TestProfileUpdatePartialCreateDefaultsEmpty(t *testing.T) {
	s := NewProfileStore(testDB(t))

	avatar := "https://img.example/b.png"
	p, err := s.Update(2, ProfileUpdates{AvatarURL: &avatar}, "b@x.com")
	if err != nil {
		t.Fatalf("upsert create: %v", err)
	}
	if p.Name != "" {
		t.Errorf("unspecified Name = %q, want empty", p.Name)
	}
	if p.AvatarURL != avatar {
		t.Errorf("AvatarURL = %q, want %q", p.AvatarURL, avatar)
	}
}
