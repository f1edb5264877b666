package userRepo

import (
	"errors"

	"slotbook/models"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(email string) (*models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// UpdateTokenHash stores the hash of the user's current auth token.
	UpdateTokenHash(id, tokenHash string) error
	// Delete removes a user record by its ID.
	Delete(id string) error
}
