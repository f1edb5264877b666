package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	userRepo "slotbook/database/repository/user"
	"slotbook/models"
	"slotbook/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned on a failed login. Wrong email and wrong
// password are indistinguishable.
var ErrInvalidCredentials = errors.New("invalid email or password")

const tokenLifetime = 24 * time.Hour

// Register creates a new account and signs the user in.
func (svc *DefaultUserService) Register(email, name, password string) (*AuthenticatedUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usr := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := svc.Repo.Create(usr); err != nil {
		return nil, err
	}
	return svc.issueToken(usr)
}

// Authenticate verifies credentials and issues a fresh token.
func (svc *DefaultUserService) Authenticate(email, password string) (*AuthenticatedUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	usr, err := svc.Repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return svc.issueToken(usr)
}

// GetProfile returns the user's profile, including the calendar-connected flag.
func (svc *DefaultUserService) GetProfile(id string) (*models.User, error) {
	return svc.Repo.GetByID(id)
}

func (svc *DefaultUserService) issueToken(usr *models.User) (*AuthenticatedUser, error) {
	token, err := utils.GenerateToken(usr.ID, usr.Email, tokenLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := svc.Repo.UpdateTokenHash(usr.ID, utils.HashToken(token)); err != nil {
		return nil, err
	}
	usr.TokenHash = utils.HashToken(token)
	return &AuthenticatedUser{User: *usr, Token: token}, nil
}
