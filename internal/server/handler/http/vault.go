package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/securepass/securepass/internal/models"
	"github.com/securepass/securepass/internal/service"
	"github.com/securepass/securepass/internal/store"
)

// VaultHandler serves the credential, note, and license collections plus
// whole-vault export and import.
type VaultHandler struct {
	Credentials *store.CredentialStore
	Notes       *store.NoteStore
	Licenses    *store.LicenseStore
	Vault       *service.VaultService
	Search      *store.SearchState
}

// query resolves the effective filter: an explicit ?q= parameter updates
// the shared search state, otherwise the shared state applies as-is.
func (h *VaultHandler) query(r *http.Request) string {
	if r.URL.Query().Has("q") {
		h.Search.SetQuery(r.URL.Query().Get("q"))
	}
	return h.Search.Query()
}

// SetSearch replaces the shared search query.
func (h *VaultHandler) SetSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	h.Search.SetQuery(req.Query)
	w.WriteHeader(http.StatusNoContent)
}

// ClearSearch resets the shared search query. The store never expires it on
// its own; views call this when navigating away.
func (h *VaultHandler) ClearSearch(w http.ResponseWriter, r *http.Request) {
	h.Search.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// ListCredentials returns the credentials matching the current search
// query, most recently modified first.
func (h *VaultHandler) ListCredentials(w http.ResponseWriter, r *http.Request) {
	q := h.query(r)
	out := []models.Credential{}
	for _, c := range h.Credentials.All() {
		if store.MatchCredential(c, q) {
			out = append(out, c)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// GetCredential returns one credential by id.
func (h *VaultHandler) GetCredential(w http.ResponseWriter, r *http.Request) {
	c, ok := h.Credentials.Find(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "credential not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CreateCredential validates and stores a new credential.
func (h *VaultHandler) CreateCredential(w http.ResponseWriter, r *http.Request) {
	var c models.Credential
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	created, err := h.Credentials.Add(c)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateCredential replaces the fields of an existing credential. Updating
// an absent id is a silent no-op.
func (h *VaultHandler) UpdateCredential(w http.ResponseWriter, r *http.Request) {
	var c models.Credential
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.Credentials.Update(chi.URLParam(r, "id"), c); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteCredential removes one credential. Deleting an absent id is not an
// error.
func (h *VaultHandler) DeleteCredential(w http.ResponseWriter, r *http.Request) {
	h.Credentials.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// DeleteCredentials removes a batch of credentials by id.
func (h *VaultHandler) DeleteCredentials(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	h.Credentials.DeleteMany(req.IDs)
	w.WriteHeader(http.StatusNoContent)
}

// ListNotes returns the notes matching the current search query.
func (h *VaultHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	q := h.query(r)
	out := []models.Note{}
	for _, n := range h.Notes.All() {
		if store.MatchNote(n, q) {
			out = append(out, n)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// GetNote returns one note by id.
func (h *VaultHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	n, ok := h.Notes.Find(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// CreateNote validates and stores a new note.
func (h *VaultHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var n models.Note
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	created, err := h.Notes.Add(n)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateNote replaces the fields of an existing note.
func (h *VaultHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var n models.Note
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.Notes.Update(chi.URLParam(r, "id"), n); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteNote removes one note.
func (h *VaultHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	h.Notes.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// ListLicenses returns the licenses matching the current search query.
func (h *VaultHandler) ListLicenses(w http.ResponseWriter, r *http.Request) {
	q := h.query(r)
	out := []models.License{}
	for _, l := range h.Licenses.All() {
		if store.MatchLicense(l, q) {
			out = append(out, l)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// GetLicense returns one license by id.
func (h *VaultHandler) GetLicense(w http.ResponseWriter, r *http.Request) {
	l, ok := h.Licenses.Find(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "license not found")
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// CreateLicense validates and stores a new license.
func (h *VaultHandler) CreateLicense(w http.ResponseWriter, r *http.Request) {
	var l models.License
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	created, err := h.Licenses.Add(l)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateLicense replaces the fields of an existing license.
func (h *VaultHandler) UpdateLicense(w http.ResponseWriter, r *http.Request) {
	var l models.License
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.Licenses.Update(chi.URLParam(r, "id"), l); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteLicense removes one license.
func (h *VaultHandler) DeleteLicense(w http.ResponseWriter, r *http.Request) {
	h.Licenses.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// Export serializes the whole vault, pretty-printed, as a download.
func (h *VaultHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.Vault.Export()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to export vault")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="securepass-vault.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Import validates the uploaded document and wholesale-replaces the three
// stores. On any validation failure nothing is mutated.
func (h *VaultHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.Vault.Import(data); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
