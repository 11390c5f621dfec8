package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dev-singh-05/gymers/internal/models"

	"gorm.io/gorm"
)

// TodoStore manages the per-user checklist items.
type TodoStore struct {
	DB *gorm.DB
}

func NewTodoStore(db *gorm.DB) *TodoStore {
	return &TodoStore{DB: db}
}

// List returns the user's todos ordered by creation time ascending,
// ties broken by row id.
func (s *TodoStore) List(userID uint) ([]models.Todo, error) {
	var todos []models.Todo
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&todos).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// Add inserts a todo for the user.
func (s *TodoStore) Add(userID uint, text string) (*models.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("todo text must not be empty")
	}
	t := models.Todo{
		UserID: userID,
		Text:   text,
	}
	if err := s.DB.Create(&t).Error; err != nil {
		return nil, fmt.Errorf("add todo: %w", err)
	}
	return &t, nil
}

// Toggle sets the completed flag of the user's todo to the given value.
// It is not a flip; the caller passes the negation.
func (s *TodoStore) Toggle(userID, todoID uint, completed bool) error {
	res := s.DB.Model(&models.Todo{}).
		Where("id = ? AND user_id = ?", todoID, userID).
		Update("completed", completed)
	if res.Error != nil {
		return fmt.Errorf("toggle todo: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the user's todo.
func (s *TodoStore) Delete(userID, todoID uint) error {
	res := s.DB.Where("id = ? AND user_id = ?", todoID, userID).
		Delete(&models.Todo{})
	if res.Error != nil {
		return fmt.Errorf("delete todo: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
