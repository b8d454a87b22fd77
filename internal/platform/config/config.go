package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr             string
	DatabaseURL      string
	JWTSecret        string
	Environment      string
	RedisAddr        string
	RedisPassword    string
	SnapshotCacheTTL time.Duration
	AutosaveDebounce time.Duration
	MaxBodyBytes     int64
	CORSOrigins      []string
	RunMigrations    bool
	MetricsEnabled   bool
	ReportsDir       string
}

func Load() Config {
	return Config{
		Addr:             getEnv("APP_ADDR", ":8080"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		Environment:      getEnv("APP_ENV", "development"),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		SnapshotCacheTTL: getEnvDuration("SNAPSHOT_CACHE_TTL", 12*time.Hour),
		AutosaveDebounce: getEnvDuration("AUTOSAVE_DEBOUNCE", 3*time.Second),
		MaxBodyBytes:     int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		CORSOrigins:      getEnvList("CORS_ORIGINS", []string{"*"}),
		RunMigrations:    getEnvBool("RUN_MIGRATIONS", true),
		MetricsEnabled:   getEnvBool("METRICS_ENABLED", true),
		ReportsDir:       getEnv("REPORTS_DIR", "storage/reports"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	if len(list) == 0 {
		return fallback
	}
	return list
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.AutosaveDebounce <= 0 {
		return fmt.Errorf("AUTOSAVE_DEBOUNCE must be positive")
	}
	return nil
}
