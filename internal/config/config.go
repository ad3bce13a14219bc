// Package config loads and validates application configuration from
// environment variables, plus the optional YAML seed that replaces the
// built-in first-run trip.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/pkordes/trip-planner/backend/internal/storage"
)

// Config holds all configuration values for the API server and the CLI.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// StorageDriver selects the slot backend: file, sqlite or memory.
	// Defaults to "file".
	StorageDriver string

	// StoragePath is where the backend keeps its data. Defaults to
	// "trip.json" for file and "trip.db" for sqlite; unused for memory.
	StoragePath string

	// MaxBodyBytes caps request bodies. Photos travel as data URIs, so the
	// default is 16 MiB.
	MaxBodyBytes int64

	// SeedFile is an optional YAML file whose fields replace the built-in
	// first-run trip. Empty means no seed.
	SeedFile string
}

var (
	portPattern = regexp.MustCompile(`^[0-9]{1,5}$`)
	logLevels   = []any{"debug", "info", "warn", "error"}
	drivers     = []any{storage.DriverFile, storage.DriverSQLite, storage.DriverMemory}
)

const defaultMaxBodyBytes = 16 << 20

// Load reads configuration from environment variables and returns a Config.
// Returns an error naming every variable that holds an unusable value.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", storage.DriverFile)),
		SeedFile:      os.Getenv("TRIP_SEED_FILE"),
	}
	cfg.StoragePath = getEnv("STORAGE_PATH", defaultPath(cfg.StorageDriver))

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", strconv.Itoa(defaultMaxBodyBytes)), 10, 64)
	if err != nil {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES: must be an integer")
	}
	cfg.MaxBodyBytes = maxBody

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks every field. The error keys are the environment variable
// names, so the message points at what to fix.
func (c Config) Validate() error {
	return validation.Errors{
		"PORT":           validation.Validate(c.Port, validation.Required, validation.Match(portPattern)),
		"LOG_LEVEL":      validation.Validate(c.LogLevel, validation.In(logLevels...)),
		"STORAGE_DRIVER": validation.Validate(c.StorageDriver, validation.Required, validation.In(drivers...)),
		"STORAGE_PATH":   validation.Validate(c.StoragePath, validation.When(c.StorageDriver != storage.DriverMemory, validation.Required)),
		"MAX_BODY_BYTES": validation.Validate(c.MaxBodyBytes, validation.Min(int64(1024))),
	}.Filter()
}

// defaultPath is the STORAGE_PATH used when none is set.
func defaultPath(driver string) string {
	switch driver {
	case storage.DriverSQLite:
		return "trip.db"
	case storage.DriverFile:
		return "trip.json"
	default:
		return ""
	}
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
