package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/securepass/securepass/internal/models"
)

// ErrValidation marks a rejected mutation; the wrapped message is safe to
// show to the user.
var ErrValidation = errors.New("validation failed")

// CredentialStore owns the credential collection.
type CredentialStore struct {
	*Collection[models.Credential]
}

// NewCredentialStore constructs an empty credential store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{
		Collection: NewCollection(
			func(c models.Credential) string { return c.ID },
			func(c *models.Credential, id string) { c.ID = id },
			func(c *models.Credential, t time.Time) { c.LastModified = t },
		),
	}
}

// ValidateCredential enforces the required fields before any mutation
// applies. Nothing is partially written on failure.
func ValidateCredential(c models.Credential) error {
	if c.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if c.Username == "" {
		return fmt.Errorf("%w: username is required", ErrValidation)
	}
	if c.Password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	return nil
}

// Add validates and stores a new credential, returning it with its assigned
// id and timestamp.
func (s *CredentialStore) Add(c models.Credential) (models.Credential, error) {
	if err := ValidateCredential(c); err != nil {
		return models.Credential{}, err
	}
	return s.Collection.Add(c), nil
}

// Update validates and replaces the credential with the given id. An absent
// id is a silent no-op.
func (s *CredentialStore) Update(id string, c models.Credential) error {
	if err := ValidateCredential(c); err != nil {
		return err
	}
	s.Collection.Update(id, c)
	return nil
}
