package user

import (
	"errors"
	"strings"
	"time"
)

// User is an account in the calendar. The password field holds a bcrypt hash
// and is never serialized.
type User struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	FullName  string    `json:"full_name" gorm:"not null"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}

// Public is the profile slice safe to show to other users, for example the
// counterparty of a partner link or the author of a comment.
type Public struct {
	ID       int     `json:"id"`
	Username string  `json:"username"`
	FullName string  `json:"full_name"`
	Avatar   *string `json:"avatar"`
}

// Public returns the shareable profile fields of the user.
func (u *User) Public() Public {
	return Public{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Avatar:   u.Avatar,
	}
}

// Validate checks the stored representation is complete.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return errors.New("username is required")
	}
	if u.Password == "" {
		return errors.New("password hash is required")
	}
	if !strings.Contains(u.Email, "@") {
		return errors.New("email must have a valid format")
	}
	if strings.TrimSpace(u.FullName) == "" {
		return errors.New("full name is required")
	}
	return nil
}
