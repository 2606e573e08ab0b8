package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/securepass/securepass/internal/middleware"
	"github.com/securepass/securepass/internal/models"
	"github.com/securepass/securepass/internal/service"
	"github.com/securepass/securepass/internal/store"
)

// AuthService defines the session operations required by the HTTP handlers.
type AuthService interface {
	// Authenticate validates an email/password pair and reports whether a
	// forced password reset is pending.
	Authenticate(email, password string) (models.User, bool, error)
	// Login creates a session and returns its bearer token.
	Login(email string) (string, bool)
	// Logout clears the session for the given token.
	Logout(token string)
	// ChangePassword overwrites the password when the current one matches.
	ChangePassword(ctx context.Context, email, currentPassword, newPassword string) bool
	// SecurityQuestion returns the recovery question for the email.
	SecurityQuestion(email string) (string, bool)
	// RecoverPassword resets the password after verifying the answer.
	RecoverPassword(ctx context.Context, email, answer, newPassword string) bool
}

// Registrar creates new accounts.
type Registrar interface {
	Register(ctx context.Context, u models.User) (models.User, error)
}

// AuthHandler handles login, registration, password change, and recovery.
type AuthHandler struct {
	Auth      AuthService
	Directory Registrar
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token      string      `json:"token"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Role       models.Role `json:"role"`
	ForceReset bool        `json:"forceReset"`
}

// Login validates credentials and opens a session. Inactive accounts are
// rejected; a password still equal to the administrative default flags a
// forced reset.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, forceReset, err := h.Auth.Authenticate(req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrInactiveAccount):
		writeError(w, http.StatusForbidden, "Your account is inactive. Please contact an administrator.")
		return
	case err != nil:
		writeError(w, http.StatusUnauthorized, "Invalid email or password. Please try again.")
		return
	}

	token, ok := h.Auth.Login(user.Email)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid email or password. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:      token,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		ForceReset: forceReset,
	})
}

// Logout clears the session unconditionally.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	h.Auth.Logout(token)
	w.WriteHeader(http.StatusNoContent)
}

type registerRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	SecurityQuestion string `json:"securityQuestion"`
	SecurityAnswer   string `json:"securityAnswer"`
}

// Register creates a new active account with the User role.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	created, err := h.Directory.Register(r.Context(), models.User{
		Name:             req.Name,
		Email:            req.Email,
		Password:         req.Password,
		SecurityQuestion: req.SecurityQuestion,
		SecurityAnswer:   req.SecurityAnswer,
	})
	if err != nil {
		if errors.Is(err, store.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	created.Password = ""
	created.SecurityAnswer = ""
	writeJSON(w, http.StatusCreated, created)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword updates the password of the logged-in user.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if len(req.NewPassword) < 8 {
		writeError(w, http.StatusBadRequest, "New password must be at least 8 characters.")
		return
	}

	if !h.Auth.ChangePassword(r.Context(), session.Email, req.CurrentPassword, req.NewPassword) {
		writeError(w, http.StatusBadRequest, "Incorrect current password. Please try again.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type forgotRequest struct {
	Email string `json:"email"`
}

// Forgot starts password recovery by returning the user's security
// question.
func (h *AuthHandler) Forgot(w http.ResponseWriter, r *http.Request) {
	var req forgotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	question, ok := h.Auth.SecurityQuestion(req.Email)
	if !ok {
		writeError(w, http.StatusNotFound, "No user found with this email address.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"securityQuestion": question})
}

type forgotResetRequest struct {
	Email       string `json:"email"`
	Answer      string `json:"answer"`
	NewPassword string `json:"newPassword"`
}

// ForgotReset completes password recovery: the security answer is compared
// case-insensitively and the password is replaced on a match.
func (h *AuthHandler) ForgotReset(w http.ResponseWriter, r *http.Request) {
	var req forgotResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if len(req.NewPassword) < 8 {
		writeError(w, http.StatusBadRequest, "Password must be at least 8 characters long.")
		return
	}

	if !h.Auth.RecoverPassword(r.Context(), req.Email, req.Answer, req.NewPassword) {
		writeError(w, http.StatusForbidden, "Incorrect answer. Please try again.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
