package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/duetcal/duetcal-api/internal/domain/common"
	"github.com/duetcal/duetcal-api/internal/domain/user"
	"github.com/duetcal/duetcal-api/internal/logger"
	"github.com/duetcal/duetcal-api/internal/storage"
	"github.com/duetcal/duetcal-api/internal/validation"
)

// ErrInvalidCredentials is returned by Authenticate when the username or
// password does not match. Callers map it to a 401 without revealing which
// half failed.
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserService handles registration, authentication and profile updates.
type UserService struct {
	repos storage.RepositoryContainer
	log   *log.Logger
}

// NewUserService creates a new user service instance
func NewUserService(repos storage.RepositoryContainer) *UserService {
	return &UserService{
		repos: repos,
		log:   logger.Service("user"),
	}
}

// RegisterRequest represents a request to create an account
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
}

// Register creates a new account with a bcrypt-hashed password.
func (s *UserService) Register(req RegisterRequest) (*user.User, error) {
	ve := common.NewValidationError()
	if err := validation.ValidateRequired(req.Username, "username"); err != nil {
		ve.Add("username", err.Error())
	}
	if err := validation.ValidateMinLength(req.Password, 8, "password"); err != nil {
		ve.Add("password", err.Error())
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		ve.Add("email", err.Error())
	}
	if err := validation.ValidateRequired(req.FullName, "full_name"); err != nil {
		ve.Add("full_name", err.Error())
	}
	if ve.HasErrors() {
		return nil, ve
	}

	if _, err := s.repos.Users().GetByUsername(req.Username); err == nil {
		return nil, common.NewConflict("username already taken")
	} else if !common.IsNotFound(err) {
		return nil, err
	}
	if _, err := s.repos.Users().GetByEmail(req.Email); err == nil {
		return nil, common.NewConflict("email already registered")
	} else if !common.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &user.User{
		Username: strings.TrimSpace(req.Username),
		Password: string(hash),
		Email:    strings.TrimSpace(req.Email),
		FullName: strings.TrimSpace(req.FullName),
	}
	if err := s.repos.Users().Create(u); err != nil {
		return nil, err
	}

	s.log.Info("user registered", "user_id", u.ID, "username", u.Username)
	return u, nil
}

// Authenticate verifies a username/password pair.
func (s *UserService) Authenticate(username, password string) (*user.User, error) {
	u, err := s.repos.Users().GetByUsername(username)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

// GetByID returns a single account.
func (s *UserService) GetByID(id int) (*user.User, error) {
	return s.repos.Users().GetByID(id)
}

// UpdateAvatar stores the avatar reference on the account.
func (s *UserService) UpdateAvatar(userID int, avatar string) error {
	if err := s.repos.Users().UpdateAvatar(userID, avatar); err != nil {
		return err
	}
	s.log.Info("avatar updated", "user_id", userID)
	return nil
}
