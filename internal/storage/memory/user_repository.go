package memory

import (
	"fmt"

	"github.com/duetcal/duetcal-api/internal/domain/common"
	"github.com/duetcal/duetcal-api/internal/domain/user"
)

// UserRepository implements storage.UserRepository on the shared store.
type UserRepository struct {
	store *store
}

func (r *UserRepository) Create(u *user.User) error {
	if err := u.Validate(); err != nil {
		return fmt.Errorf("user validation failed: %w", err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if existing.Username == u.Username {
			return common.NewConflict("username already taken")
		}
		if existing.Email == u.Email {
			return common.NewConflict("email already registered")
		}
	}

	u.ID = r.store.next("users")
	r.store.users[u.ID] = *u
	return nil
}

func (r *UserRepository) GetByID(id int) (*user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[id]
	if !ok {
		return nil, common.NewNotFound("user", id)
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(username string) (*user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, u := range r.store.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, common.NewNotFound("user", 0)
}

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, u := range r.store.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, common.NewNotFound("user", 0)
}

func (r *UserRepository) UpdateAvatar(id int, avatar string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[id]
	if !ok {
		return common.NewNotFound("user", id)
	}
	u.Avatar = &avatar
	r.store.users[id] = u
	return nil
}
