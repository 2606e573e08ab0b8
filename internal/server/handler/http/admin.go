package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/securepass/securepass/internal/middleware"
	"github.com/securepass/securepass/internal/models"
	"github.com/securepass/securepass/internal/service"
)

// AdminHandler serves the user administration endpoints. Every operation
// requires the Admin role.
type AdminHandler struct {
	Directory *service.DirectoryService
}

func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return false
	}
	if session.Role != models.RoleAdmin {
		writeError(w, http.StatusForbidden, "admin role required")
		return false
	}
	return true
}

// ListUsers returns every user with secrets stripped.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	users := h.Directory.All()
	for i := range users {
		users[i].Password = ""
		users[i].SecurityAnswer = ""
	}
	writeJSON(w, http.StatusOK, users)
}

// ToggleActive flips a user's active flag. An inactive user cannot log in.
func (h *AdminHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	if !h.Directory.ToggleActive(r.Context(), chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResetPassword resets a user's password to the administrative default,
// forcing a new password at their next login.
func (h *AdminHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	if !h.Directory.ResetPassword(r.Context(), chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteUser removes a user from the directory. Deleting an absent id is
// not an error.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	h.Directory.Delete(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
