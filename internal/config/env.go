package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment represents the application environment
type Environment string

const (
	// Development environment - debug output on by default
	Development Environment = "development"
	// Production environment - quiet defaults
	Production Environment = "production"
)

// EnvConfig holds environment-specific configuration
type EnvConfig struct {
	Env Environment

	Debug    bool
	LogLevel string

	// RandomSeed makes generated colors reproducible when non-zero
	RandomSeed uint64

	// NoClipboard disables the host clipboard (headless hosts, CI)
	NoClipboard bool
}

// LoadEnv loads environment configuration from environment variables
func LoadEnv() *EnvConfig {
	cfg := &EnvConfig{
		Env:      Environment(strings.ToLower(getEnvOrDefault("APP_ENV", "development"))),
		LogLevel: strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
	}

	switch cfg.Env {
	case Production:
		cfg.Debug = getEnvOrDefault("DEBUG", "false") == "true"
	default:
		cfg.Env = Development // Normalize unknown envs to development
		cfg.Debug = getEnvOrDefault("DEBUG", "true") == "true"
		if cfg.LogLevel == "info" {
			cfg.LogLevel = "debug" // Dev default
		}
	}

	seed, err := strconv.ParseUint(getEnvOrDefault("RANDOM_SEED", "0"), 10, 64)
	if err == nil {
		cfg.RandomSeed = seed
	}
	cfg.NoClipboard = getEnvOrDefault("NO_CLIPBOARD", "false") == "true"

	return cfg
}

// IsProduction returns true if running in production mode
func (e *EnvConfig) IsProduction() bool {
	return e.Env == Production
}

// DebugLogging reports whether debug lines should be printed
func (e *EnvConfig) DebugLogging() bool {
	return e.Debug || e.LogLevel == "debug"
}

// String returns the environment name
func (e Environment) String() string {
	return string(e)
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
