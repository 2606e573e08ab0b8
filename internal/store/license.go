package store

import (
	"fmt"

	"github.com/securepass/securepass/internal/models"
)

// LicenseStore owns the license collection. Licenses carry no modification
// timestamp and do not participate in sharing.
type LicenseStore struct {
	*Collection[models.License]
}

// NewLicenseStore constructs an empty license store.
func NewLicenseStore() *LicenseStore {
	return &LicenseStore{
		Collection: NewCollection(
			func(l models.License) string { return l.ID },
			func(l *models.License, id string) { l.ID = id },
			nil,
		),
	}
}

func ValidateLicense(l models.License) error {
	if l.Name == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if l.ProductKey == "" {
		return fmt.Errorf("%w: product key is required", ErrValidation)
	}
	return nil
}

// Add validates and stores a new license.
func (s *LicenseStore) Add(l models.License) (models.License, error) {
	if err := ValidateLicense(l); err != nil {
		return models.License{}, err
	}
	return s.Collection.Add(l), nil
}

// Update validates and replaces the license with the given id. An absent id
// is a silent no-op.
func (s *LicenseStore) Update(id string, l models.License) error {
	if err := ValidateLicense(l); err != nil {
		return err
	}
	s.Collection.Update(id, l)
	return nil
}
