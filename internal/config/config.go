// Package config provides functionality for managing configuration options
// for the application using command-line flags, environment variables, and
// an optional JSON config file.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Address defines the server's listening address (ip:port).
	Address string

	// DatabaseDSN holds the optional Postgres connection string for the
	// shared user directory. Empty means the directory is memory-only.
	DatabaseDSN string

	// Config is the path to the config file.
	Config string

	// LogLevel sets the zap log level.
	LogLevel string

	// SeedFile optionally points to a vault export JSON used to
	// pre-populate the stores at startup.
	SeedFile string

	// GeminiAPIKey authenticates calls to the Gemini API.
	GeminiAPIKey string

	// GeminiModel selects the generation model.
	GeminiModel string

	// AITimeout bounds each AI tool call.
	AITimeout time.Duration

	// AIRetries is the number of retry attempts after a failed AI call.
	AIRetries int

	// JanitorInterval is how often dangling share records are pruned.
	// Zero disables the janitor.
	JanitorInterval time.Duration
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Address, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "user directory db address")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
	flag.StringVar(&options.LogLevel, "l", "Info", "log level")
	flag.StringVar(&options.SeedFile, "seed", "", "path to vault seed file")
	flag.StringVar(&options.GeminiModel, "model", "gemini-2.5-flash", "gemini model name")
	flag.DurationVar(&options.AITimeout, "ai-timeout", 30*time.Second, "timeout per AI tool call")
	flag.IntVar(&options.AIRetries, "ai-retries", 2, "retries per AI tool call")
	flag.DurationVar(&options.JanitorInterval, "janitor-interval", time.Minute, "share janitor interval (0 disables)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	// Load .env first so the environment overrides below see its values.
	_ = godotenv.Load()

	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Address = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		options.LogLevel = level
	}
	if seed := os.Getenv("SEED_FILE"); seed != "" {
		options.SeedFile = seed
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		options.GeminiAPIKey = key
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		options.GeminiModel = model
	}
	if timeout := os.Getenv("AI_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			options.AITimeout = d
		}
	}
	if retries := os.Getenv("AI_RETRIES"); retries != "" {
		if n, err := strconv.Atoi(retries); err == nil {
			options.AIRetries = n
		}
	}

	return options
}
