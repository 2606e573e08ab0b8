// Package main initializes and starts the SecurePass API server, setting
// up configuration, logging, the in-memory stores, the optional Postgres
// user directory, services, handlers, and the change-event feed.
package main

import (
	"cmp"
	"context"
	"fmt"
	"os"

	nethttp "net/http"

	"github.com/securepass/securepass/internal/ai"
	"github.com/securepass/securepass/internal/config"
	"github.com/securepass/securepass/internal/db"
	"github.com/securepass/securepass/internal/logger"
	"github.com/securepass/securepass/internal/repository"
	"github.com/securepass/securepass/internal/server/handler/http"
	"github.com/securepass/securepass/internal/service"
	"github.com/securepass/securepass/internal/store"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// In-memory stores back every collection; the session tracks one
	// shared search query across them.
	credentials := store.NewCredentialStore()
	notes := store.NewNoteStore()
	licenses := store.NewLicenseStore()
	users := store.NewUserStore()
	search := store.NewSearchState()

	// The Postgres user directory is optional. When a DSN is configured
	// the directory is loaded from it at startup and every change is
	// written through; the in-memory store stays the source of truth.
	var persister service.UserPersister
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		persister = repository.NewPostgresUserDirectory(postgresDB)
	}

	directory := service.NewDirectoryService(users, persister, zapLogger)
	if err := directory.Load(context.Background()); err != nil {
		zapLogger.Fatal("cannot load user directory", zap.Error(err))
	}

	authService := service.NewAuthService(directory)
	shareService := service.NewShareService(credentials, notes, directory)
	vaultService := service.NewVaultService(credentials, notes, licenses)

	// Optionally pre-populate the vault from a seed export.
	if options.SeedFile != "" {
		data, err := os.ReadFile(options.SeedFile)
		if err != nil {
			zapLogger.Fatal("cannot read seed file", zap.Error(err))
		}
		if err := vaultService.Import(data); err != nil {
			zapLogger.Fatal("cannot import seed file", zap.Error(err))
		}
		zapLogger.Info("vault seeded", zap.String("file", options.SeedFile))
	}

	// Prune share records whose item or recipient disappeared.
	if options.JanitorInterval > 0 {
		service.StartShareJanitor(context.Background(), shareService, options.JanitorInterval, zapLogger)
	}

	// The Gemini-backed tools need an API key; without one the breach
	// scanner still works and the language-model tools report an error.
	var generator ai.Generator
	if options.GeminiAPIKey != "" {
		client, err := ai.NewGeminiClient(context.Background(), ai.ClientConfig{
			APIKey:  options.GeminiAPIKey,
			Model:   options.GeminiModel,
			Timeout: options.AITimeout,
			Retries: options.AIRetries,
		})
		if err != nil {
			zapLogger.Fatal("cannot init Gemini client", zap.Error(err))
		}
		generator = client
	} else {
		zapLogger.Warn("GEMINI_API_KEY not set, language-model tools disabled")
	}
	tools := ai.NewTools(generator, nil)

	// Stream store changes to connected clients.
	hub := http.NewEventHub()
	http.Watch(hub, "credentials", credentials.Collection)
	http.Watch(hub, "notes", notes.Collection)
	http.Watch(hub, "licenses", licenses.Collection)
	http.Watch(hub, "users", users.Collection)
	http.Watch(hub, "shares", shareService.Records())

	// Create HTTP handlers for the API surface.
	authHandler := &http.AuthHandler{Auth: authService, Directory: directory}
	vaultHandler := &http.VaultHandler{
		Credentials: credentials,
		Notes:       notes,
		Licenses:    licenses,
		Vault:       vaultService,
		Search:      search,
	}
	shareHandler := &http.ShareHandler{
		Shares:      shareService,
		Credentials: credentials,
		Notes:       notes,
	}
	adminHandler := &http.AdminHandler{Directory: directory}
	toolsHandler := &http.ToolsHandler{Tools: tools}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, vaultHandler, shareHandler, adminHandler, toolsHandler, hub, authService, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Address,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
