// Package store contains the narrow accessors over each database
// collection: profiles, program enrollments, todos, group members and
// chat messages. Accessors validate shape and enforce row uniqueness;
// everything else is the caller's business.
package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound covers both "no such row" and "table not migrated
	// yet"; callers that can degrade treat it as an empty result.
	ErrNotFound = errors.New("store: not found")

	// ErrConflict reports a uniqueness violation, e.g. creating a
	// second profile for the same user.
	ErrConflict = errors.New("store: already exists")
)

// notFound maps gorm's record-not-found and sqlite's missing-table
// errors onto ErrNotFound so partially provisioned databases degrade
// instead of failing reads.
func notFound(err error) bool {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "no such table")
}
