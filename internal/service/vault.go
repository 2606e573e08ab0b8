package service

import (
	"encoding/json"
	"fmt"

	"github.com/securepass/securepass/internal/models"
	"github.com/securepass/securepass/internal/store"
)

// VaultService serializes and restores the three vault collections as one
// JSON document with exactly the top-level arrays credentials, notes, and
// licenses.
type VaultService struct {
	credentials *store.CredentialStore
	notes       *store.NoteStore
	licenses    *store.LicenseStore
}

// NewVaultService constructs a VaultService over the three stores.
func NewVaultService(credentials *store.CredentialStore, notes *store.NoteStore, licenses *store.LicenseStore) *VaultService {
	return &VaultService{credentials: credentials, notes: notes, licenses: licenses}
}

// Document returns the current store contents as an export document.
func (s *VaultService) Document() models.VaultExport {
	return models.VaultExport{
		Credentials: s.credentials.All(),
		Notes:       s.notes.All(),
		Licenses:    s.licenses.All(),
	}
}

// Export serializes the current store state, pretty-printed.
func (s *VaultService) Export() ([]byte, error) {
	out, err := json.MarshalIndent(s.Document(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export vault: %w", err)
	}
	return out, nil
}

// Import validates the document and wholesale-replaces all three stores.
// On any validation failure nothing is mutated and the reason is returned.
func (s *VaultService) Import(data []byte) error {
	doc, err := parseVaultExport(data)
	if err != nil {
		return err
	}
	s.credentials.ReplaceAll(doc.Credentials)
	s.notes.ReplaceAll(doc.Notes)
	s.licenses.ReplaceAll(doc.Licenses)
	return nil
}

// parseVaultExport fully validates an import document before anything is
// applied: the document must be a JSON object carrying credentials, notes,
// and licenses as arrays, and every entity must have an id and its required
// fields.
func parseVaultExport(data []byte) (models.VaultExport, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.VaultExport{}, fmt.Errorf("invalid backup file: %w", err)
	}

	var doc models.VaultExport
	for _, field := range []struct {
		name string
		dst  any
	}{
		{"credentials", &doc.Credentials},
		{"notes", &doc.Notes},
		{"licenses", &doc.Licenses},
	} {
		msg, ok := raw[field.name]
		if !ok {
			return models.VaultExport{}, fmt.Errorf("invalid backup file structure: missing %q", field.name)
		}
		if err := json.Unmarshal(msg, field.dst); err != nil {
			return models.VaultExport{}, fmt.Errorf("invalid backup file structure: %q must be an array", field.name)
		}
	}

	for i, c := range doc.Credentials {
		if c.ID == "" {
			return models.VaultExport{}, fmt.Errorf("credential %d: missing id", i)
		}
		if err := store.ValidateCredential(c); err != nil {
			return models.VaultExport{}, fmt.Errorf("credential %d: %w", i, err)
		}
	}
	for i, n := range doc.Notes {
		if n.ID == "" {
			return models.VaultExport{}, fmt.Errorf("note %d: missing id", i)
		}
		if err := store.ValidateNote(n); err != nil {
			return models.VaultExport{}, fmt.Errorf("note %d: %w", i, err)
		}
	}
	for i, l := range doc.Licenses {
		if l.ID == "" {
			return models.VaultExport{}, fmt.Errorf("license %d: missing id", i)
		}
		if err := store.ValidateLicense(l); err != nil {
			return models.VaultExport{}, fmt.Errorf("license %d: %w", i, err)
		}
	}
	return doc, nil
}
