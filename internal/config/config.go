package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds everything the web frontend needs at startup. Loaded
// once from the environment and treated as immutable afterwards.
type Config struct {
	// Address the frontend listens on, e.g. ":3000".
	ListenAddr string

	// Base URL of the backend REST API, e.g. "http://localhost:8080".
	BackendURL string

	// Postgres DSN for the durable session store. Empty means the
	// in-memory store is used (dev mode, sessions die with the process).
	DatabaseDSN string

	// Session cookie settings.
	CookieName   string
	CookieSecure bool
	SessionTTL   time.Duration

	// Requests/second allowed per client on the login endpoint.
	LoginRateLimit float64
	LoginRateBurst int

	// Timeout applied to every backend call.
	BackendTimeout time.Duration

	CORSAllowedOrigin string
}

// Load reads the configuration from environment variables. BACKEND_URL
// is the only required variable; everything else has a default.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.BackendURL = os.Getenv("BACKEND_URL")
	if cfg.BackendURL == "" {
		return nil, fmt.Errorf("required environment variable BACKEND_URL is not set")
	}

	cfg.ListenAddr = getEnvString("LISTEN_ADDR", ":3000")
	cfg.DatabaseDSN = os.Getenv("DATABASE_DSN")
	cfg.CookieName = getEnvString("SESSION_COOKIE_NAME", "jp_session")
	cfg.CookieSecure = getEnvBool("COOKIE_SECURE", false)
	cfg.SessionTTL = getEnvDuration("SESSION_TTL", 24*time.Hour)
	cfg.LoginRateLimit = getEnvFloat("LOGIN_RATE_LIMIT", 1)
	cfg.LoginRateBurst = getEnvInt("LOGIN_RATE_BURST", 5)
	cfg.BackendTimeout = getEnvDuration("BACKEND_TIMEOUT", 10*time.Second)
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "*")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
