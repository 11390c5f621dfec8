package store

import (
	"fmt"
	"time"

	"github.com/dev-singh-05/gymers/internal/models"

	"gorm.io/gorm"
)

// ProgramStore manages program enrollments. A user has at most one row
// per program id; leaving is a soft delete.
type ProgramStore struct {
	DB *gorm.DB
}

func NewProgramStore(db *gorm.DB) *ProgramStore {
	return &ProgramStore{DB: db}
}

// Join enrolls the user in a program. If a row already exists it is
// returned unchanged when active, or reactivated when soft-deleted.
// The unique index on (user_id, program_id) backs the check-then-insert
// against concurrent joins.
func (s *ProgramStore) Join(userID uint, programID, programName string, price int64) (*models.UserProgram, error) {
	var existing models.UserProgram
	err := s.DB.Where("user_id = ? AND program_id = ?", userID, programID).
		First(&existing).Error

	if err == nil {
		if !existing.IsActive {
			if err := s.DB.Model(&existing).Update("is_active", true).Error; err != nil {
				return nil, fmt.Errorf("reactivate program: %w", err)
			}
			existing.IsActive = true
		}
		return &existing, nil
	}
	if !notFound(err) {
		return nil, fmt.Errorf("check program: %w", err)
	}

	up := models.UserProgram{
		UserID:      userID,
		ProgramID:   programID,
		ProgramName: programName,
		Price:       price,
		JoinedAt:    time.Now(),
		IsActive:    true,
	}
	if err := s.DB.Create(&up).Error; err != nil {
		// lost a race with another join; the existing row wins
		var again models.UserProgram
		if ferr := s.DB.Where("user_id = ? AND program_id = ?", userID, programID).
			First(&again).Error; ferr == nil {
			return &again, nil
		}
		return nil, fmt.Errorf("join program: %w", err)
	}
	return &up, nil
}

// Deactivate soft-deletes the enrollment. Missing rows are a silent
// no-op, never an error and never an insert.
func (s *ProgramStore) Deactivate(userID uint, programID string) error {
	err := s.DB.Model(&models.UserProgram{}).
		Where("user_id = ? AND program_id = ?", userID, programID).
		Update("is_active", false).Error
	if err != nil && !notFound(err) {
		return fmt.Errorf("deactivate program: %w", err)
	}
	return nil
}

// UserPrograms returns the user's active enrollments, newest first.
func (s *ProgramStore) UserPrograms(userID uint) ([]models.UserProgram, error) {
	var programs []models.UserProgram
	err := s.DB.Where("user_id = ? AND is_active = ?", userID, true).
		Order("joined_at DESC, id DESC").
		Find(&programs).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list programs: %w", err)
	}
	return programs, nil
}

// HistoryFor returns every enrollment the user ever had, including
// soft-deleted ones, newest first.
func (s *ProgramStore) HistoryFor(userID uint) ([]models.UserProgram, error) {
	var programs []models.UserProgram
	err := s.DB.Where("user_id = ?", userID).
		Order("joined_at DESC, id DESC").
		Find(&programs).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list program history: %w", err)
	}
	return programs, nil
}

// IsJoined reports whether the user has an active enrollment in the
// program.
func (s *ProgramStore) IsJoined(userID uint, programID string) (bool, error) {
	var count int64
	err := s.DB.Model(&models.UserProgram{}).
		Where("user_id = ? AND program_id = ? AND is_active = ?", userID, programID, true).
		Count(&count).Error
	if err != nil {
		if notFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("check joined: %w", err)
	}
	return count > 0, nil
}
