package postgres

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/duetcal/duetcal-api/internal/domain/common"
	"github.com/duetcal/duetcal-api/internal/domain/user"
	"github.com/duetcal/duetcal-api/internal/logger"
)

// UserRepository implements storage.UserRepository using GORM
type UserRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		db:  db,
		log: logger.Repository("user"),
	}
}

func (r *UserRepository) Create(u *user.User) error {
	r.log.Debug("creating user", "username", u.Username, "email", u.Email)

	if err := u.Validate(); err != nil {
		r.log.Error("user validation failed", "error", err)
		return fmt.Errorf("user validation failed: %w", err)
	}

	if err := r.db.Create(u).Error; err != nil {
		r.log.Error("failed to create user", "error", err, "username", u.Username)
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Info("user created successfully", "id", u.ID, "username", u.Username)
	return nil
}

func (r *UserRepository) GetByID(id int) (*user.User, error) {
	r.log.Debug("retrieving user by ID", "user_id", id)

	var u user.User
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFound("user", id)
		}
		r.log.Error("failed to get user by ID", "user_id", id, "error", err)
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return &u, nil
}

func (r *UserRepository) GetByUsername(username string) (*user.User, error) {
	r.log.Debug("retrieving user by username", "username", username)

	var u user.User
	if err := r.db.Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFound("user", 0)
		}
		r.log.Error("failed to get user by username", "username", username, "error", err)
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	r.log.Debug("retrieving user by email", "email", email)

	if email == "" {
		return nil, errors.New("email cannot be empty")
	}

	var u user.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFound("user", 0)
		}
		r.log.Error("failed to get user by email", "email", email, "error", err)
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &u, nil
}

func (r *UserRepository) UpdateAvatar(id int, avatar string) error {
	r.log.Debug("updating user avatar", "user_id", id)

	result := r.db.Model(&user.User{}).Where("id = ?", id).Update("avatar", avatar)
	if result.Error != nil {
		r.log.Error("failed to update avatar", "user_id", id, "error", result.Error)
		return fmt.Errorf("failed to update avatar: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return common.NewNotFound("user", id)
	}

	r.log.Info("user avatar updated", "user_id", id)
	return nil
}
