package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 1 || port > 65535 {
		add("SERVER_PORT", fmt.Sprintf("invalid port %q", cfg.ServerPort))
	}

	switch cfg.StoreDriver {
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "required when STORE_DRIVER is sqlite")
		}
	case DriverPostgres:
		if cfg.DBHost == "" {
			add("DB_HOST", "required when STORE_DRIVER is postgres")
		}
		if cfg.DBName == "" {
			add("DB_NAME", "required when STORE_DRIVER is postgres")
		}
		if cfg.DBUser == "" {
			add("DB_USER", "required when STORE_DRIVER is postgres")
		}
		if cfg.Environment == Production && cfg.DBPassword == "" {
			add("DB_PASSWORD", "db_password secret is required")
		}
	default:
		add("STORE_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.StoreDriver))
	}

	if cfg.Environment == Production && cfg.GoogleAPIKey == "" {
		add("GOOGLE_API_KEY", "google_api_key secret is required")
	}
	if len(cfg.AllowedOrigins) == 0 {
		add("ALLOWED_ORIGINS", "at least one origin is required")
	}
	if cfg.RecipeFile == "" {
		add("RECIPE_FILE", "must not be empty")
	}
	if cfg.CompletionTimeout <= 0 {
		add("COMPLETION_TIMEOUT", "must be positive")
	}
	if cfg.TranslateWorkers <= 0 {
		add("TRANSLATE_WORKERS", "must be positive")
	}
	if cfg.ChatRateLimit < 0 {
		add("CHAT_RATE_LIMIT", "must not be negative")
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		add("LOG_FORMAT", "must be json or text")
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		add("LOG_LEVEL", err.Error())
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
