package store

import (
	"fmt"
	"strings"

	"github.com/dev-singh-05/gymers/internal/models"
	"github.com/dev-singh-05/gymers/internal/util"

	"gorm.io/gorm"
)

// ProfileStore reads and writes the per-user profile row.
type ProfileStore struct {
	DB *gorm.DB
}

func NewProfileStore(db *gorm.DB) *ProfileStore {
	return &ProfileStore{DB: db}
}

// ProfileUpdates carries the patchable profile fields. Nil means
// "leave unchanged".
type ProfileUpdates struct {
	Name      *string
	AvatarURL *string
}

// Get returns the profile for userID, or ErrNotFound when no row (or
// no table) exists. Only real errors propagate.
func (s *ProfileStore) Get(userID uint) (*models.Profile, error) {
	var p models.Profile
	if err := s.DB.Where("user_id = ?", userID).First(&p).Error; err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// Create inserts the profile for a new user. Name defaults to the
// email local-part. Returns ErrConflict when a row already exists.
func (s *ProfileStore) Create(userID uint, email, name string) (*models.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = util.EmailLocalPart(email)
	}

	var count int64
	if err := s.DB.Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check profile: %w", err)
	}
	if count > 0 {
		return nil, ErrConflict
	}

	p := models.Profile{
		UserID: userID,
		Name:   name,
		Email:  email,
	}
	if err := s.DB.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return &p, nil
}

// Update patches the supplied fields of an existing profile, or creates
// the row from the updates plus fallbackEmail when absent. Callers must
// not assume the row existed beforehand.
func (s *ProfileStore) Update(userID uint, updates ProfileUpdates, fallbackEmail string) (*models.Profile, error) {
	var existing models.Profile
	err := s.DB.Where("user_id = ?", userID).First(&existing).Error

	switch {
	case err == nil:
		fields := map[string]interface{}{}
		if updates.Name != nil {
			fields["name"] = strings.TrimSpace(*updates.Name)
		}
		if updates.AvatarURL != nil {
			fields["avatar_url"] = *updates.AvatarURL
		}
		if len(fields) > 0 {
			if err := s.DB.Model(&existing).Updates(fields).Error; err != nil {
				return nil, fmt.Errorf("update profile: %w", err)
			}
		}
		return &existing, nil

	case notFound(err):
		p := models.Profile{
			UserID: userID,
			Email:  fallbackEmail,
		}
		if updates.Name != nil {
			p.Name = strings.TrimSpace(*updates.Name)
		}
		if updates.AvatarURL != nil {
			p.AvatarURL = *updates.AvatarURL
		}
		if err := s.DB.Create(&p).Error; err != nil {
			return nil, fmt.Errorf("create profile: %w", err)
		}
		return &p, nil

	default:
		return nil, fmt.Errorf("get profile: %w", err)
	}
}
