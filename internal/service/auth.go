package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/securepass/securepass/internal/models"
)

var (
	// ErrInvalidCredentials is returned when no user matches the
	// email/password pair.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInactiveAccount is returned for a correct login on a
	// deactivated account.
	ErrInactiveAccount = errors.New("account is inactive")
)

// UserDirectory defines the directory operations required by the
// authentication service.
type UserDirectory interface {
	// FindByEmail returns the user with exactly the given email.
	FindByEmail(email string) (models.User, bool)
	// SetPassword overwrites the password of the user with the given
	// email and reports whether the user existed.
	SetPassword(ctx context.Context, email, newPassword string) bool
}

// Session is the minimal per-login record: the email plus the role
// re-resolved from the directory at read time, never a cached user copy.
type Session struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// AuthService tracks logged-in sessions and performs credential checks by
// delegating to a UserDirectory. Passwords are compared in plaintext; this
// system has no hashing by design.
type AuthService struct {
	users UserDirectory

	mu       sync.RWMutex
	sessions map[string]string // token -> email
}

// NewAuthService constructs an AuthService over the given directory.
func NewAuthService(users UserDirectory) *AuthService {
	return &AuthService{
		users:    users,
		sessions: make(map[string]string),
	}
}

// Authenticate validates an email/password pair. forceReset reports that the
// password still equals the administrative default and must be changed
// before proceeding.
func (s *AuthService) Authenticate(email, password string) (user models.User, forceReset bool, err error) {
	u, ok := s.users.FindByEmail(email)
	if !ok || u.Password != password {
		return models.User{}, false, ErrInvalidCredentials
	}
	if !u.Active {
		return models.User{}, false, ErrInactiveAccount
	}
	return u, u.Password == models.DefaultResetPassword, nil
}

// Login creates a session for the given email and returns its bearer token.
// When the user cannot be found no session is set; callers are responsible
// for validating credentials beforehand.
func (s *AuthService) Login(email string) (string, bool) {
	if _, ok := s.users.FindByEmail(email); !ok {
		return "", false
	}
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = email
	s.mu.Unlock()
	return token, true
}

// Logout clears the session unconditionally.
func (s *AuthService) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Session resolves a bearer token. The role is looked up from the directory
// on every call so a role change or deletion takes effect immediately.
func (s *AuthService) Session(token string) (Session, bool) {
	s.mu.RLock()
	email, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	u, ok := s.users.FindByEmail(email)
	if !ok {
		return Session{}, false
	}
	return Session{Email: u.Email, Role: u.Role}, true
}

// ChangePassword succeeds iff a user with that email exists and
// currentPassword matches exactly; on success the stored password is
// overwritten. No mutation happens on failure.
func (s *AuthService) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) bool {
	u, ok := s.users.FindByEmail(email)
	if !ok || u.Password != currentPassword {
		return false
	}
	return s.users.SetPassword(ctx, email, newPassword)
}

// SecurityQuestion returns the recovery question for the given email.
func (s *AuthService) SecurityQuestion(email string) (string, bool) {
	u, ok := s.users.FindByEmail(email)
	if !ok {
		return "", false
	}
	return u.SecurityQuestion, true
}

// VerifySecurityAnswer compares the recovery answer case-insensitively.
func (s *AuthService) VerifySecurityAnswer(email, answer string) bool {
	u, ok := s.users.FindByEmail(email)
	if !ok || u.SecurityAnswer == "" {
		return false
	}
	return strings.EqualFold(u.SecurityAnswer, answer)
}

// RecoverPassword overwrites the password after a successful security-answer
// verification.
func (s *AuthService) RecoverPassword(ctx context.Context, email, answer, newPassword string) bool {
	if !s.VerifySecurityAnswer(email, answer) {
		return false
	}
	return s.users.SetPassword(ctx, email, newPassword)
}
