package store

import (
	"fmt"
	"sync"

	"github.com/securepass/securepass/internal/models"
)

// UserStore owns the user directory. Email lookups are case-sensitive, as
// they are at login.
type UserStore struct {
	*Collection[models.User]

	// regMu serializes Register so the uniqueness check and the insert
	// cannot interleave.
	regMu sync.Mutex
}

// NewUserStore constructs an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{
		Collection: NewCollection(
			func(u models.User) string { return u.ID },
			func(u *models.User, id string) { u.ID = id },
			nil,
		),
	}
}

// FindByEmail returns the user with exactly the given email.
func (s *UserStore) FindByEmail(email string) (models.User, bool) {
	return s.FindBy(func(u models.User) bool { return u.Email == email })
}

// Register creates a new active account with the User role, enforcing that
// the email is not already taken.
func (s *UserStore) Register(u models.User) (models.User, error) {
	if u.Name == "" {
		return models.User{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if u.Email == "" {
		return models.User{}, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if u.Password == "" {
		return models.User{}, fmt.Errorf("%w: password is required", ErrValidation)
	}

	s.regMu.Lock()
	defer s.regMu.Unlock()
	if _, exists := s.FindByEmail(u.Email); exists {
		return models.User{}, fmt.Errorf("%w: a user with email %s already exists", ErrValidation, u.Email)
	}
	u.Role = models.RoleUser
	u.Active = true
	return s.Collection.Add(u), nil
}

// ToggleActive flips the active flag of the user with the given id.
func (s *UserStore) ToggleActive(id string) bool {
	return s.Mutate(id, func(u *models.User) { u.Active = !u.Active })
}

// ResetPassword overwrites the user's password. An empty newPassword resets
// to the administrative default.
func (s *UserStore) ResetPassword(id, newPassword string) bool {
	if newPassword == "" {
		newPassword = models.DefaultResetPassword
	}
	return s.Mutate(id, func(u *models.User) { u.Password = newPassword })
}

// SetPasswordByEmail overwrites the password of the user with the given
// email. Used by the password-change and recovery flows.
func (s *UserStore) SetPasswordByEmail(email, newPassword string) bool {
	u, ok := s.FindByEmail(email)
	if !ok {
		return false
	}
	return s.Mutate(u.ID, func(u *models.User) { u.Password = newPassword })
}
