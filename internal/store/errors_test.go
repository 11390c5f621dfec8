package store

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// unmigratedDB opens an in-memory database with no schema at all, the
// shape of a partially provisioned backend.
func unmigratedDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestMissingTableDegradesToNotFound(t *testing.T) {
	db := unmigratedDB(t)

	if _, err := NewProfileStore(db).Get(1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on missing table = %v, want ErrNotFound", err)
	}
}

func TestMissingTableDegradesToEmptyLists(t *testing.T) {
	db := unmigratedDB(t)

	programs, err := NewProgramStore(db).UserPrograms(1)
	if err != nil {
		t.Fatalf("UserPrograms on missing table: %v", err)
	}
	if len(programs) != 0 {
		t.Errorf("got %d programs, want none", len(programs))
	}

	joined, err := NewProgramStore(db).IsJoined(1, "yoga")
	if err != nil {
		t.Fatalf("IsJoined on missing table: %v", err)
	}
	if joined {
		t.Error("IsJoined = true, want false")
	}

	if err := NewProgramStore(db).Deactivate(1, "yoga"); err != nil {
		t.Errorf("Deactivate on missing table = %v, want silent no-op", err)
	}
}
