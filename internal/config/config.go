package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration
// Note: the engine is stateless - no database is needed
type Config struct {
	// Environment
	Environment string
	Port        string

	// Observability
	SentryDSN string // Sentry DSN for error tracking

	// Auth mode
	// - "none": No auth (self-hosted, local dev)
	// - "gateway": Trust X-User-* headers from an upstream gateway
	// - "jwt": Verify HS256 bearer tokens signed with JWTSecret
	AuthMode  string
	JWTSecret string

	// Engine
	MaxBars int // Upper bound on bars per request

	// CORS
	CORSOrigins []string
}

func Load() *Config {
	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8080"),
		SentryDSN:   getEnv("SENTRY_DSN", ""),
		AuthMode:    getEnv("AUTH_MODE", "none"), // Default to no auth for self-hosted
		JWTSecret:   getEnv("JWT_SECRET", ""),
		MaxBars:     getEnvInt("MAX_BARS", 256),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsGatewayMode returns true if running behind an auth gateway
func (c *Config) IsGatewayMode() bool {
	return c.AuthMode == "gateway"
}

// IsJWTMode returns true if bearer tokens must be verified locally
func (c *Config) IsJWTMode() bool {
	return c.AuthMode == "jwt"
}

// IsProduction returns true in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
