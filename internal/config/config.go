// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config holds all configuration values for the textbus server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string `validate:"required"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `validate:"required"`

	// LogLevel controls the minimum log level. Defaults to "info".
	LogLevel string `validate:"required,oneof=debug info warn error"`

	// TransitAPIAddress is the base URL of the transit open-data service.
	// Defaults to the public Winnipeg Transit endpoint; tests point it at a
	// local mock.
	TransitAPIAddress string `validate:"required,url"`

	// TransitAPIKey is appended to every upstream call. Required.
	TransitAPIKey string `validate:"required"`

	// RootURL is the public address of this deployment, appended to help
	// replies so riders can find the full documentation.
	RootURL string `validate:"required,url"`

	// AdminUsername and AdminPassword protect the /admin surface via HTTP
	// basic auth. Both required.
	AdminUsername string `validate:"required"`
	AdminPassword string `validate:"required"`

	// CORSOrigins is the list of origins allowed to call the admin JSON API
	// cross-origin. Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, then
// validates field formats (URLs, log level) via struct tags.
func Load() (Config, error) {
	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		TransitAPIAddress: getEnv("TRANSIT_API_ADDRESS", "https://api.winnipegtransit.com"),
		RootURL:           getEnv("ROOT_URL", "http://localhost:8080"),
		CORSOrigins:       splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	var missing []string
	for _, v := range []struct {
		key    string
		target *string
	}{
		{"DATABASE_URL", &cfg.DatabaseURL},
		{"TRANSIT_API_KEY", &cfg.TransitAPIKey},
		{"ADMIN_USERNAME", &cfg.AdminUsername},
		{"ADMIN_PASSWORD", &cfg.AdminPassword},
	} {
		*v.target = os.Getenv(v.key)
		if *v.target == "" {
			missing = append(missing, v.key)
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
