package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dev-singh-05/gymers/internal/models"

	"gorm.io/gorm"
)

// MemberStore manages the group-chat roster.
type MemberStore struct {
	DB *gorm.DB
}

func NewMemberStore(db *gorm.DB) *MemberStore {
	return &MemberStore{DB: db}
}

// List returns all members ordered by join time ascending. The roster
// is small by design; no pagination.
func (s *MemberStore) List() ([]models.GrpMember, error) {
	var members []models.GrpMember
	err := s.DB.Order("joined_at ASC, id ASC").Find(&members).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// Join adds the user to the roster. First write wins: a later join
// returns the existing row untouched.
func (s *MemberStore) Join(userID uint, name, avatarURL string) (*models.GrpMember, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("member name must not be empty")
	}

	var existing models.GrpMember
	err := s.DB.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !notFound(err) {
		return nil, fmt.Errorf("check member: %w", err)
	}

	m := models.GrpMember{
		UserID:    userID,
		Name:      name,
		AvatarURL: avatarURL,
		JoinedAt:  time.Now(),
	}
	if err := s.DB.Create(&m).Error; err != nil {
		// unique index on user_id: a concurrent join got there first
		var again models.GrpMember
		if ferr := s.DB.Where("user_id = ?", userID).First(&again).Error; ferr == nil {
			return &again, nil
		}
		return nil, fmt.Errorf("join group: %w", err)
	}
	return &m, nil
}

// Get returns the user's roster entry, or ErrNotFound.
func (s *MemberStore) Get(userID uint) (*models.GrpMember, error) {
	var m models.GrpMember
	if err := s.DB.Where("user_id = ?", userID).First(&m).Error; err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	return &m, nil
}

// IsMember reports whether the user is on the roster.
func (s *MemberStore) IsMember(userID uint) (bool, error) {
	var count int64
	err := s.DB.Model(&models.GrpMember{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		if notFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("check member: %w", err)
	}
	return count > 0, nil
}
