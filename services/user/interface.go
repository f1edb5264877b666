package user

import (
	userRepo "slotbook/database/repository/user"
	"slotbook/models"
)

// AuthenticatedUser bundles a user profile with a fresh auth token.
type AuthenticatedUser struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// UserService defines account management for booking owners.
type UserService interface {
	Register(email, name, password string) (*AuthenticatedUser, error)
	Authenticate(email, password string) (*AuthenticatedUser, error)
	GetProfile(id string) (*models.User, error)
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
