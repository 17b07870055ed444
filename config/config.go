package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store drivers accepted by DB_DRIVER.
const (
	DriverPgx    = "pgx"
	DriverGorm   = "gorm"
	DriverMemory = "memory"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string
	// Browser origins allowed by CORS, comma-separated in CORS_ALLOWED_ORIGINS
	CORSAllowedOrigins []string
	// Database
	DBUrl         string
	DBDriver      string
	RunMigrations bool
	// Redis (optional, enables candidate cache and shared rate limit counters)
	RedisURL        string
	RedisPassword   string
	CacheTTLSeconds int
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitWriteThreshold  int
	RateLimitGlobalThreshold int
}

func LoadConfig() (*Config, error) {
	// .env is only present locally; production injects real env vars
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),

		DBUrl:         getEnv("DATABASE_URL", ""),
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", DriverPgx)),
		RunMigrations: getEnvBool("RUN_MIGRATIONS", true),

		RedisURL:        getEnv("REDIS_URL", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		CacheTTLSeconds: getEnvInt("CACHE_TTL_SECONDS", 300),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),    // 1 minute window
		RateLimitWriteThreshold:  getEnvInt("RATE_LIMIT_WRITE_THRESHOLD", 30),   // 30 writes per window
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 300), // 300 requests per window
	}

	switch cfg.DBDriver {
	case DriverPgx, DriverGorm, DriverMemory:
	default:
		log.Printf("WARNING: unknown DB_DRIVER %q, falling back to %q", cfg.DBDriver, DriverPgx)
		cfg.DBDriver = DriverPgx
	}

	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		log.Printf("WARNING: unknown GIN_MODE %q, using release", cfg.GinMode)
		cfg.GinMode = "release"
	}

	if cfg.DBUrl == "" && cfg.DBDriver != DriverMemory {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Cache disabled, rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// splitList splits a comma-separated value, dropping empty items
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
