package http

import (
	"net/http"

	"github.com/securepass/securepass/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the HTTP handler serving the SecurePass API. It
// applies JSON content-type enforcement, request logging, and bearer-token
// session authentication, and mounts the auth, vault, sharing, admin, tool,
// and event endpoints under /api.
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") — rejects non-JSON requests
//  2. WithRequestLogging(logger)          — logs incoming requests
//  3. SessionAuth                         — enforces bearer-token sessions
func NewRouter(
	authHandler *AuthHandler,
	vaultHandler *VaultHandler,
	shareHandler *ShareHandler,
	adminHandler *AdminHandler,
	toolsHandler *ToolsHandler,
	hub *EventHub,
	sessions middleware.SessionValidator,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Enforce session authentication; login and registration are exempt
	r.Use(middleware.SessionAuth(sessions))

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Route("/auth", func(r chi.Router) {
			// Public endpoints
			r.Post("/login", authHandler.Login)
			r.Post("/register", authHandler.Register)
			r.Post("/forgot", authHandler.Forgot)
			r.Post("/forgot/reset", authHandler.ForgotReset)

			// Protected
			r.Post("/logout", authHandler.Logout)
			r.Post("/change-password", authHandler.ChangePassword)
		})

		r.Route("/credentials", func(r chi.Router) {
			r.Get("/", vaultHandler.ListCredentials)
			r.Post("/", vaultHandler.CreateCredential)
			r.Delete("/", vaultHandler.DeleteCredentials)
			r.Get("/{id}", vaultHandler.GetCredential)
			r.Put("/{id}", vaultHandler.UpdateCredential)
			r.Delete("/{id}", vaultHandler.DeleteCredential)
		})

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", vaultHandler.ListNotes)
			r.Post("/", vaultHandler.CreateNote)
			r.Get("/{id}", vaultHandler.GetNote)
			r.Put("/{id}", vaultHandler.UpdateNote)
			r.Delete("/{id}", vaultHandler.DeleteNote)
		})

		r.Route("/licenses", func(r chi.Router) {
			r.Get("/", vaultHandler.ListLicenses)
			r.Post("/", vaultHandler.CreateLicense)
			r.Get("/{id}", vaultHandler.GetLicense)
			r.Put("/{id}", vaultHandler.UpdateLicense)
			r.Delete("/{id}", vaultHandler.DeleteLicense)
		})

		r.Post("/search", vaultHandler.SetSearch)
		r.Delete("/search", vaultHandler.ClearSearch)

		r.Route("/shares", func(r chi.Router) {
			r.Post("/", shareHandler.Create)
			r.Get("/inbox", shareHandler.Inbox)
			r.Get("/outbox", shareHandler.Outbox)
			r.Post("/{id}/accept", shareHandler.Accept)
			r.Delete("/{id}", shareHandler.Delete)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", adminHandler.ListUsers)
			r.Post("/{id}/toggle", adminHandler.ToggleActive)
			r.Post("/{id}/reset-password", adminHandler.ResetPassword)
			r.Delete("/{id}", adminHandler.DeleteUser)
		})

		r.Get("/vault/export", vaultHandler.Export)
		r.Post("/vault/import", vaultHandler.Import)

		r.Route("/tools", func(r chi.Router) {
			r.Post("/generate-password", toolsHandler.GeneratePassword)
			r.Post("/analyze-password", toolsHandler.AnalyzePassword)
			r.Post("/detect-phishing", toolsHandler.DetectPhishing)
			r.Post("/dark-web", toolsHandler.DarkWeb)
		})

		r.Get("/events", hub.ServeHTTP)
	})

	return r
}
