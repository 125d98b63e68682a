package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string

	DB        DatabaseConfig
	Redis     RedisConfig
	Orders    OrdersConfig
	Analytics AnalyticsConfig
	S3        S3Config
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// OrdersConfig controls the quote/order lifecycle behavior.
type OrdersConfig struct {
	// StrictTransitions enforces the lifecycle graph on status changes.
	// When false, admins may overwrite any status with any other status
	// (the historical free-form behavior of the back office).
	StrictTransitions bool
}

// AnalyticsConfig controls visitor tracking and aggregation.
type AnalyticsConfig struct {
	// AdminPathPrefix marks back-office pages; visits to these paths are
	// never recorded so admin traffic cannot pollute public analytics.
	AdminPathPrefix string
	// StatsCacheTTL is how long a computed statistics snapshot is served
	// from Redis before being recomputed from the visit log.
	StatsCacheTTL time.Duration
}

// S3Config contains object-storage configuration for product images.
type S3Config struct {
	Region          string
	Bucket          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Order lifecycle
	cfg.Orders = OrdersConfig{
		StrictTransitions: getEnvBool("ORDER_STRICT_TRANSITIONS", true),
	}

	// Visitor analytics
	cfg.Analytics = AnalyticsConfig{
		AdminPathPrefix: getEnv("ANALYTICS_ADMIN_PREFIX", "/admin"),
	}
	var err error
	if cfg.Analytics.StatsCacheTTL, err = parseDurationEnv("ANALYTICS_STATS_CACHE_TTL", "1m"); err != nil {
		return nil, fmt.Errorf("invalid ANALYTICS_STATS_CACHE_TTL: %w", err)
	}

	// S3 (product image storage)
	cfg.S3 = S3Config{
		Region:          getEnv("S3_REGION", "ap-southeast-1"),
		Bucket:          getEnv("S3_BUCKET", "medgear-catalog"),
		Endpoint:        getEnv("S3_ENDPOINT", "https://s3.ap-southeast-1.amazonaws.com"),
		AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
	}

	// Basic validation for DB parameters.
	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}

	// Validate JWT_SECRET
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for authentication")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// getEnvBool returns the value of an environment variable as a boolean or a default if empty/invalid.
func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
