package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/securepass/securepass/internal/middleware"
	"github.com/securepass/securepass/internal/models"
	"github.com/securepass/securepass/internal/service"
	"github.com/securepass/securepass/internal/store"
)

// ShareHandler drives the sharing workflow. It is the component that copies
// an accepted item into the recipient's own vault; the share service only
// manages the records.
type ShareHandler struct {
	Shares      *service.ShareService
	Credentials *store.CredentialStore
	Notes       *store.NoteStore
}

type shareRequest struct {
	Recipients []string        `json:"recipients"`
	ItemIDs    []string        `json:"itemIds"`
	ItemType   models.ItemType `json:"itemType"`
}

type shareResponse struct {
	Shared   int                    `json:"shared"`
	Failures []service.ShareFailure `json:"failures,omitempty"`
}

// Create shares the given items with each recipient. Invalid recipients do
// not abort the rest; the response reports how many records were created
// and which recipients failed.
func (h *ShareHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if len(req.Recipients) == 0 {
		writeError(w, http.StatusBadRequest, "Please enter at least one recipient email address.")
		return
	}

	created, failures, err := h.Shares.ShareItems(session.Email, req.Recipients, req.ItemIDs, req.ItemType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, shareResponse{Shared: created, Failures: failures})
}

// Inbox returns pending shares addressed to the logged-in user, newest
// first, with the referenced item data resolved.
func (h *ShareHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}
	writeJSON(w, http.StatusOK, h.Shares.GetInbox(session.Email))
}

// Outbox returns every share originated by the logged-in user.
func (h *ShareHandler) Outbox(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}
	writeJSON(w, http.StatusOK, h.Shares.GetOutbox(session.Email))
}

// Accept marks the share accepted and copies the referenced item into the
// recipient's own store under a fresh id.
func (h *ShareHandler) Accept(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	id := chi.URLParam(r, "id")
	rec, ok := h.Shares.Find(id)
	if !ok {
		writeError(w, http.StatusNotFound, "share not found")
		return
	}
	if rec.RecipientEmail != session.Email {
		writeError(w, http.StatusForbidden, "only the recipient can accept a share")
		return
	}

	view, resolved := h.Shares.Resolve(rec)
	if !resolved {
		writeError(w, http.StatusNotFound, "Could not accept item.")
		return
	}

	accepted, _ := h.Shares.AcceptShare(id)
	if rec.Status == models.SharePending {
		// First accept: copy into the recipient's vault. The id and
		// timestamp are reassigned by the store.
		switch {
		case view.Credential != nil:
			c := *view.Credential
			c.ID = ""
			if _, err := h.Credentials.Add(c); err != nil {
				writeError(w, http.StatusInternalServerError, "failed to copy item into vault")
				return
			}
		case view.Note != nil:
			n := *view.Note
			n.ID = ""
			if _, err := h.Notes.Add(n); err != nil {
				writeError(w, http.StatusInternalServerError, "failed to copy item into vault")
				return
			}
		}
	}
	writeJSON(w, http.StatusOK, accepted)
}

// Delete removes a share record: decline by the recipient or revoke by the
// sender. Removing an absent id is not an error.
func (h *ShareHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	id := chi.URLParam(r, "id")
	if rec, found := h.Shares.Find(id); found {
		if rec.SenderEmail != session.Email && rec.RecipientEmail != session.Email {
			writeError(w, http.StatusForbidden, "not a party to this share")
			return
		}
	}
	h.Shares.DeleteShare(id)
	w.WriteHeader(http.StatusNoContent)
}
