package store

import (
	"fmt"
	"strconv"

	"github.com/amar-sharma/gundiwalla-bullion-server/internal/models"
)

// CreateUser inserts a new user record.
func (s *Store) CreateUser(user *models.User) error {
	if err := s.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// ListUsers returns all users.
func (s *Store) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// FindUser looks a user up by phone number, falling back to the numeric
// record id so either identifier works on the command line.
func (s *Store) FindUser(identifier string) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "phone = ?", identifier).Error
	if err == nil {
		return &user, nil
	}
	if id, convErr := strconv.ParseUint(identifier, 10, 64); convErr == nil {
		if err := s.db.First(&user, uint(id)).Error; err == nil {
			return &user, nil
		}
	}
	return nil, err
}

// GrantAdmin sets the admin flag on an existing user.
func (s *Store) GrantAdmin(user *models.User) error {
	if err := s.db.Model(user).Update("admin", true).Error; err != nil {
		return fmt.Errorf("failed to grant admin to user %d: %w", user.ID, err)
	}
	return nil
}

// DeleteUser removes a user record by id.
func (s *Store) DeleteUser(id uint) error {
	res := s.db.Delete(&models.User{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, res.Error)
	}
	return nil
}
