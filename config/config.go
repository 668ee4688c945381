package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Fetch      FetchConfig
	RateLimit  RateLimitConfig
	Stats      StatsConfig
	Log        LogConfig
	Simulation SimulationConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host    string // default: "0.0.0.0"
	Port    int    // default: 8082
	Mode    string // gin mode; default: "release"
	DevMode bool   // default: false
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + strconv.Itoa(s.Port)
}

// FetchConfig controls page retrieval.
type FetchConfig struct {
	Timeout   time.Duration // default: 15s
	MaxBody   int64         // default: 10 MiB
	UserAgent string        // default: Chrome desktop
}

// RateLimitConfig controls per-client rate limiting on the API.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per client IP.
	RequestsPerSecond float64 // default: 2

	// Burst is the bucket size per client IP.
	Burst int // default: 5
}

// StatsConfig controls the monthly usage counters.
type StatsConfig struct {
	Dir string // default: "data/stats"

	// RetainMonths is how many months of counters Cleanup keeps.
	RetainMonths int // default: 12
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// SimulationConfig controls the fallback profile generator.
type SimulationConfig struct {
	// Seed makes simulated results reproducible. Zero means random.
	Seed uint64
}

// LoadEnv loads .env.development, falling back to .env. It returns the file
// that was loaded, or "" when neither exists.
func LoadEnv() string {
	if err := godotenv.Load(".env.development"); err == nil {
		return ".env.development"
	}
	if err := godotenv.Load(); err == nil {
		return ".env"
	}
	return ""
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    envOr("HOST", "0.0.0.0"),
			Port:    envIntOr("PORT", 8082),
			Mode:    envOr("GIN_MODE", "release"),
			DevMode: envBoolOr("DEV_MODE", false),
		},
		Fetch: FetchConfig{
			Timeout:   envDurationOr("FETCH_TIMEOUT", 15*time.Second),
			MaxBody:   int64(envIntOr("FETCH_MAX_BODY", 10<<20)),
			UserAgent: os.Getenv("FETCH_USER_AGENT"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("RATE_RPS", 2),
			Burst:             envIntOr("RATE_BURST", 5),
		},
		Stats: StatsConfig{
			Dir:          envOr("STATS_DIR", "data/stats"),
			RetainMonths: envIntOr("STATS_RETAIN_MONTHS", 12),
		},
		Log: LogConfig{
			Level:  envOr("LOG_LEVEL", "info"),
			Format: envOr("LOG_FORMAT", "json"),
		},
		Simulation: SimulationConfig{
			Seed: envUintOr("SIM_SEED", 0),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envUintOr(key string, fallback uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if u, err := strconv.ParseUint(v, 10, 64); err == nil {
			return u
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return fallback
}
