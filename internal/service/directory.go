// Package service provides the business logic for authentication, the user
// directory, the sharing workflow, and vault import/export, on top of the
// in-memory stores.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/securepass/securepass/internal/models"
	"github.com/securepass/securepass/internal/store"
)

// UserPersister defines the optional durable backing of the user directory.
// Only the directory is persisted; vault entities stay in memory for the
// session.
type UserPersister interface {
	// ListUsers returns every persisted user.
	ListUsers(ctx context.Context) ([]models.User, error)
	// SaveUser inserts or leaves an existing user untouched.
	SaveUser(ctx context.Context, u models.User) error
	// UpdatePassword overwrites the password of the user with the given email.
	UpdatePassword(ctx context.Context, email, password string) error
	// SetActive updates the active flag of the user with the given id.
	SetActive(ctx context.Context, id string, active bool) error
	// DeleteUser removes the user with the given id.
	DeleteUser(ctx context.Context, id string) error
}

// DirectoryService fronts the in-memory user store and optionally
// write-throughs mutations to a persister. The store remains the single
// source of truth for reads; persister failures are logged and do not roll
// back the in-memory state.
type DirectoryService struct {
	users     *store.UserStore
	persister UserPersister
	log       *zap.Logger
}

// NewDirectoryService constructs a DirectoryService. persister may be nil
// for a memory-only directory.
func NewDirectoryService(users *store.UserStore, persister UserPersister, log *zap.Logger) *DirectoryService {
	if log == nil {
		log = zap.NewNop()
	}
	return &DirectoryService{users: users, persister: persister, log: log}
}

// Load replaces the in-memory directory with the persisted one. A nil
// persister makes this a no-op.
func (s *DirectoryService) Load(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	users, err := s.persister.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		s.users.ReplaceAll(users)
	}
	return nil
}

// FindByEmail returns the user with exactly the given email.
func (s *DirectoryService) FindByEmail(email string) (models.User, bool) {
	return s.users.FindByEmail(email)
}

// Find returns the user with the given id.
func (s *DirectoryService) Find(id string) (models.User, bool) {
	return s.users.Find(id)
}

// All returns every user, most recently registered first.
func (s *DirectoryService) All() []models.User {
	return s.users.All()
}

// Register creates a new account and write-throughs it when a persister is
// configured.
func (s *DirectoryService) Register(ctx context.Context, u models.User) (models.User, error) {
	created, err := s.users.Register(u)
	if err != nil {
		return models.User{}, err
	}
	if s.persister != nil {
		if err := s.persister.SaveUser(ctx, created); err != nil {
			s.log.Warn("failed to persist user", zap.String("email", created.Email), zap.Error(err))
		}
	}
	return created, nil
}

// SetPassword overwrites the password of the user with the given email and
// reports whether the user existed.
func (s *DirectoryService) SetPassword(ctx context.Context, email, newPassword string) bool {
	if !s.users.SetPasswordByEmail(email, newPassword) {
		return false
	}
	if s.persister != nil {
		if err := s.persister.UpdatePassword(ctx, email, newPassword); err != nil {
			s.log.Warn("failed to persist password change", zap.String("email", email), zap.Error(err))
		}
	}
	return true
}

// ToggleActive flips the active flag of the user with the given id.
func (s *DirectoryService) ToggleActive(ctx context.Context, id string) bool {
	if !s.users.ToggleActive(id) {
		return false
	}
	if s.persister != nil {
		if u, ok := s.users.Find(id); ok {
			if err := s.persister.SetActive(ctx, id, u.Active); err != nil {
				s.log.Warn("failed to persist active flag", zap.String("id", id), zap.Error(err))
			}
		}
	}
	return true
}

// ResetPassword resets the user's password to the administrative default.
func (s *DirectoryService) ResetPassword(ctx context.Context, id string) bool {
	if !s.users.ResetPassword(id, "") {
		return false
	}
	if s.persister != nil {
		if u, ok := s.users.Find(id); ok {
			if err := s.persister.UpdatePassword(ctx, u.Email, u.Password); err != nil {
				s.log.Warn("failed to persist password reset", zap.String("id", id), zap.Error(err))
			}
		}
	}
	return true
}

// Delete removes the user with the given id. Deleting an absent id is not
// an error.
func (s *DirectoryService) Delete(ctx context.Context, id string) {
	if !s.users.Delete(id) {
		return
	}
	if s.persister != nil {
		if err := s.persister.DeleteUser(ctx, id); err != nil {
			s.log.Warn("failed to persist user deletion", zap.String("id", id), zap.Error(err))
		}
	}
}
