package service

import (
	"fmt"
	"time"

	"github.com/securepass/securepass/internal/models"
	"github.com/securepass/securepass/internal/store"
)

// CredentialFinder is the read-only capability the share workflow needs
// from the credential store.
type CredentialFinder interface {
	Find(id string) (models.Credential, bool)
}

// NoteFinder is the read-only capability the share workflow needs from the
// note store.
type NoteFinder interface {
	Find(id string) (models.Note, bool)
}

// RecipientDirectory validates share recipients.
type RecipientDirectory interface {
	FindByEmail(email string) (models.User, bool)
}

// ShareFailure reports one recipient that could not be shared with. The
// remaining recipients are unaffected; partial success is allowed.
type ShareFailure struct {
	Recipient string `json:"recipient"`
	Reason    string `json:"reason"`
}

// SharedItemView is a share record joined against the live entity it
// references. Exactly one of Credential/Note is set, matching ItemType.
type SharedItemView struct {
	models.SharedItem
	Credential *models.Credential `json:"credential,omitempty"`
	Note       *models.Note       `json:"note,omitempty"`
}

// Title returns the display title of the resolved item.
func (v SharedItemView) Title() string {
	switch {
	case v.Credential != nil:
		return v.Credential.Title
	case v.Note != nil:
		return v.Note.Title
	}
	return ""
}

// ShareService owns the share records and reconstructs inbox and outbox
// views by joining them against the live stores. It holds read-only
// capabilities on the entity stores and never writes to them; copying an
// accepted item into the recipient's vault is the caller's job.
type ShareService struct {
	records     *store.Collection[models.SharedItem]
	credentials CredentialFinder
	notes       NoteFinder
	users       RecipientDirectory
}

// NewShareService constructs a ShareService over the given capabilities.
func NewShareService(credentials CredentialFinder, notes NoteFinder, users RecipientDirectory) *ShareService {
	return &ShareService{
		records: store.NewCollection(
			func(s models.SharedItem) string { return s.ID },
			func(s *models.SharedItem, id string) { s.ID = id },
			nil,
		),
		credentials: credentials,
		notes:       notes,
		users:       users,
	}
}

// Records exposes the underlying collection for change subscription.
func (s *ShareService) Records() *store.Collection[models.SharedItem] {
	return s.records
}

// ShareItems creates one pending share per (recipient, item) pair. Unknown
// recipients and self-shares are skipped with distinct reasons; items that
// do not resolve are skipped silently. Returns the number of records
// created alongside the per-recipient failures.
func (s *ShareService) ShareItems(senderEmail string, recipientEmails, itemIDs []string, itemType models.ItemType) (int, []ShareFailure, error) {
	if itemType != models.ItemTypeCredential && itemType != models.ItemTypeNote {
		return 0, nil, fmt.Errorf("unknown item type %q", itemType)
	}

	created := 0
	var failures []ShareFailure
	for _, email := range recipientEmails {
		recipient, ok := s.users.FindByEmail(email)
		if !ok {
			failures = append(failures, ShareFailure{Recipient: email, Reason: "user not found"})
			continue
		}
		if recipient.Email == senderEmail {
			failures = append(failures, ShareFailure{Recipient: email, Reason: "cannot share with yourself"})
			continue
		}
		for _, itemID := range itemIDs {
			if !s.resolves(itemID, itemType) {
				continue
			}
			s.records.Add(models.SharedItem{
				SenderEmail:    senderEmail,
				RecipientEmail: recipient.Email,
				ItemID:         itemID,
				ItemType:       itemType,
				Status:         models.SharePending,
				CreatedAt:      time.Now(),
			})
			created++
		}
	}
	return created, failures, nil
}

// GetInbox returns pending shares addressed to the given recipient, newest
// first, joined against the live stores. Shares whose referenced item no
// longer exists are omitted, not surfaced as errors.
func (s *ShareService) GetInbox(email string) []SharedItemView {
	return s.views(func(rec models.SharedItem) bool {
		return rec.RecipientEmail == email && rec.Status == models.SharePending
	})
}

// GetOutbox returns every share originated by the given sender, any status,
// newest first, with the same join and omission rule as GetInbox.
func (s *ShareService) GetOutbox(email string) []SharedItemView {
	return s.views(func(rec models.SharedItem) bool {
		return rec.SenderEmail == email
	})
}

// AcceptShare transitions a pending share to accepted and returns the
// updated record. Accepting an already-accepted share returns it unchanged
// without duplication. The copy of the referenced item into the recipient's
// own store is the caller's responsibility.
func (s *ShareService) AcceptShare(id string) (models.SharedItem, bool) {
	rec, ok := s.records.Find(id)
	if !ok {
		return models.SharedItem{}, false
	}
	if rec.Status == models.ShareAccepted {
		return rec, true
	}
	s.records.Mutate(id, func(r *models.SharedItem) { r.Status = models.ShareAccepted })
	rec.Status = models.ShareAccepted
	return rec, true
}

// DeleteShare removes a share record. Removing an absent id is not an
// error; either party may delete while pending.
func (s *ShareService) DeleteShare(id string) {
	s.records.Delete(id)
}

// Find returns the share record with the given id.
func (s *ShareService) Find(id string) (models.SharedItem, bool) {
	return s.records.Find(id)
}

// Resolve joins one share record against the live stores.
func (s *ShareService) Resolve(rec models.SharedItem) (SharedItemView, bool) {
	view := SharedItemView{SharedItem: rec}
	switch rec.ItemType {
	case models.ItemTypeCredential:
		if c, ok := s.credentials.Find(rec.ItemID); ok {
			view.Credential = &c
			return view, true
		}
	case models.ItemTypeNote:
		if n, ok := s.notes.Find(rec.ItemID); ok {
			view.Note = &n
			return view, true
		}
	}
	return SharedItemView{}, false
}

// PruneDangling removes share records whose referenced item no longer
// exists and returns how many were removed. Used by the background janitor.
func (s *ShareService) PruneDangling() int {
	pruned := 0
	for _, rec := range s.records.All() {
		if !s.resolves(rec.ItemID, rec.ItemType) {
			if s.records.Delete(rec.ID) {
				pruned++
			}
		}
	}
	return pruned
}

func (s *ShareService) resolves(itemID string, itemType models.ItemType) bool {
	switch itemType {
	case models.ItemTypeCredential:
		_, ok := s.credentials.Find(itemID)
		return ok
	case models.ItemTypeNote:
		_, ok := s.notes.Find(itemID)
		return ok
	}
	return false
}

// views filters the records, newest first, joining each against the live
// stores and dropping dangling references.
func (s *ShareService) views(keep func(models.SharedItem) bool) []SharedItemView {
	out := []SharedItemView{}
	for _, rec := range s.records.All() {
		if !keep(rec) {
			continue
		}
		if view, ok := s.Resolve(rec); ok {
			out = append(out, view)
		}
	}
	return out
}
