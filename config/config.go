package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort     string
	ServerHost     string
	AllowedOrigins []string

	// Store configuration
	StoreDriver string
	SQLitePath  string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration, optional
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Completion service
	GoogleAPIKey      string
	GeminiModel       string
	EmbeddingModel    string
	CompletionTimeout time.Duration

	// Corpus is a local path or an s3://bucket/key URI
	RecipeFile string
	AWSRegion  string

	TranslateWorkers    int
	TranslationCacheTTL time.Duration
	// ChatRateLimit is requests per minute per client; 0 disables it.
	ChatRateLimit int

	LogLevel  string
	LogFormat string
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// RedisEnabled reports whether a Redis server is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{Environment: env}
	loadCommon(cfg)

	// Load credentials based on environment
	switch env {
	case CI:
		loadCIConfig(cfg)
	case Development, Test:
		loadDevConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadCommon(cfg *Config) {
	cfg.ServerPort = getEnv("SERVER_PORT", "8000")
	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.AllowedOrigins = splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"))

	cfg.StoreDriver = strings.ToLower(getEnv("STORE_DRIVER", DriverSQLite))
	cfg.SQLitePath = getEnv("SQLITE_PATH", "shorechef.db")

	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBName = getEnv("DB_NAME", "shorechef")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")

	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisDB = getEnvInt("REDIS_DB", 0)
	cfg.RedisURL = os.Getenv("REDIS_URL")

	cfg.GeminiModel = getEnv("GEMINI_MODEL", "gemini-1.5-flash-latest")
	cfg.EmbeddingModel = os.Getenv("EMBEDDING_MODEL")
	cfg.CompletionTimeout = getEnvDuration("COMPLETION_TIMEOUT", 30*time.Second)

	cfg.RecipeFile = getEnv("RECIPE_FILE", "recipes.txt")
	cfg.AWSRegion = os.Getenv("AWS_REGION")

	cfg.TranslateWorkers = getEnvInt("TRANSLATE_WORKERS", 4)
	cfg.TranslationCacheTTL = getEnvDuration("TRANSLATION_CACHE_TTL", 24*time.Hour)
	cfg.ChatRateLimit = getEnvInt("CHAT_RATE_LIMIT", 30)

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "text")
}

// loadCIConfig loads credentials for CI from environment variables only
func loadCIConfig(cfg *Config) {
	cfg.DBPassword = getEnv("TEST_DB_PASSWORD", os.Getenv("DB_PASSWORD"))
	cfg.RedisPassword = getEnv("TEST_REDIS_PASSWORD", os.Getenv("REDIS_PASSWORD"))
	cfg.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
}

// loadDevConfig prefers environment variables and falls back to Docker secrets
func loadDevConfig(cfg *Config) {
	cfg.DBUser = firstNonEmpty(cfg.DBUser, readSecret("db_user"))
	cfg.DBPassword = firstNonEmpty(os.Getenv("DB_PASSWORD"), readSecret("db_password"))
	cfg.RedisPassword = firstNonEmpty(os.Getenv("REDIS_PASSWORD"), readSecret("redis_password"))
	cfg.GoogleAPIKey = firstNonEmpty(os.Getenv("GOOGLE_API_KEY"), readSecret("google_api_key"))
}

// loadProdConfig prefers Docker secrets for credentials
func loadProdConfig(cfg *Config) {
	cfg.DBUser = firstNonEmpty(readSecret("db_user"), cfg.DBUser)
	cfg.DBPassword = firstNonEmpty(readSecret("db_password"), os.Getenv("DB_PASSWORD"))
	cfg.RedisPassword = firstNonEmpty(readSecret("redis_password"), os.Getenv("REDIS_PASSWORD"))
	cfg.GoogleAPIKey = firstNonEmpty(readSecret("google_api_key"), os.Getenv("GOOGLE_API_KEY"))
	cfg.RedisURL = firstNonEmpty(readSecret("redis_url"), cfg.RedisURL)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
