// Package config loads process configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs to start. Secrets stay as raw
// strings here; the packages that consume them validate their shape.
type Config struct {
	// Port the HTTP server listens on.
	Port string
	// DBPath is the SQLite database file path.
	DBPath string
	// JWTSecret signs recruiter session tokens. Required.
	JWTSecret string
	// ClerkSecret verifies job seeker session tokens. Required.
	ClerkSecret string
	// WebhookSecret verifies identity provider webhook signatures. When
	// empty the webhook endpoint is not mounted.
	WebhookSecret string
	// CloudinaryURL is the cloudinary:// credential URL. When empty,
	// uploads are disabled and endpoints that need them fail cleanly.
	CloudinaryURL string
	// ClientOrigin is the browser origin allowed by CORS.
	ClientOrigin string
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first if present; real environment
// variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: loading .env: %w", err)
		}
		slog.Debug("no .env file found, using environment only")
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DBPath:        getEnv("DB_PATH", "hirehive.db"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		ClerkSecret:   os.Getenv("CLERK_SECRET"),
		WebhookSecret: os.Getenv("CLERK_WEBHOOK_SECRET"),
		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	if cfg.ClerkSecret == "" {
		return nil, fmt.Errorf("config: CLERK_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
