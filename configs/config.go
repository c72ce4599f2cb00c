package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration values.
type Config struct {
	ServerHost       string
	ServerPort       string
	ServerMode       string
	DatabaseHost     string
	DatabasePort     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string
	DatabaseURL      string
	LogLevel         string
	JWTSecret        string
	CORSOrigins      []string

	// Searching
	MaxConcurrentSearches int
	SearchQueueSize       int
	CrawlTimeout          time.Duration
	UserAgent             string
	RespectRobots         bool
	HostRateLimit         float64
	HostRateBurst         int
}

// Load reads configuration exclusively from environment variables (optionally .env file).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.ServerHost = getEnv("HOST", "0.0.0.0")
	cfg.ServerPort = getEnv("PORT", "8080")
	cfg.ServerMode = getEnv("GIN_MODE", "debug")

	// Database
	cfg.DatabaseHost = getEnv("DB_HOST", "localhost")
	cfg.DatabasePort = getEnv("DB_PORT", "3306")
	cfg.DatabaseUser = getEnv("DB_USER", "")
	cfg.DatabasePassword = getEnv("DB_PASSWORD", "")
	cfg.DatabaseName = getEnv("DB_NAME", "")
	if cfg.DatabaseUser == "" || cfg.DatabasePassword == "" || cfg.DatabaseName == "" {
		return nil, fmt.Errorf("missing required database env vars")
	}
	// Build DSN: user:pass@tcp(host:port)/dbname?parseTime=true
	cfg.DatabaseURL = fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4",
		cfg.DatabaseUser, cfg.DatabasePassword,
		cfg.DatabaseHost, cfg.DatabasePort,
		cfg.DatabaseName,
	)

	// Logging & Auth
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing JWT_SECRET environment variable")
	}

	// CORS
	if origins := getEnv("CORS_ORIGINS", ""); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	// Searching
	var err error
	if cfg.MaxConcurrentSearches, err = getInt("MAX_CONCURRENT_CRAWLS", 5); err != nil {
		return nil, err
	}
	if cfg.SearchQueueSize, err = getInt("SEARCH_QUEUE_SIZE", 128); err != nil {
		return nil, err
	}
	timeoutSec, err := getInt("CRAWL_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	cfg.CrawlTimeout = time.Duration(timeoutSec) * time.Second
	cfg.UserAgent = getEnv("USER_AGENT", "LinkTorch-Search/1.0")

	if cfg.RespectRobots, err = strconv.ParseBool(getEnv("RESPECT_ROBOTS", "true")); err != nil {
		return nil, fmt.Errorf("invalid RESPECT_ROBOTS: %w", err)
	}
	if cfg.HostRateLimit, err = strconv.ParseFloat(getEnv("HOST_RATE_LIMIT", "2"), 64); err != nil {
		return nil, fmt.Errorf("invalid HOST_RATE_LIMIT: %w", err)
	}
	if cfg.HostRateBurst, err = getInt("HOST_RATE_BURST", 4); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// getEnv returns env var or default.
func getEnv(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

// getInt parses an integer env var, falling back to def when unset.
func getInt(key string, def int) (int, error) {
	raw := getEnv(key, strconv.Itoa(def))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
