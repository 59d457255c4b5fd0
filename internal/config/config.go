package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	StoreDriverSQLite = "sqlite"
	StoreDriverJSON   = "json"
)

// Config holds the application configuration
type Config struct {
	Environment        string
	Port               string
	LogLevel           string
	StoreDriver        string
	DBPath             string
	DocumentPath       string
	DefaultUserID      string
	AutoProvisionUsers bool
	TokenSecret        string
	TokenTTL           time.Duration
	StripeSecretKey    string
	CORSAllowedOrigins []string
	BodyLimitBytes     int
	Location           *time.Location
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	autoProvision, err := strconv.ParseBool(getEnv("AUTO_PROVISION_USERS", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_PROVISION_USERS: %w", err)
	}

	tokenTTL, err := time.ParseDuration(getEnv("TOKEN_TTL", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	bodyLimitMB, err := strconv.Atoi(getEnv("BODY_LIMIT_MB", "10"))
	if err != nil || bodyLimitMB <= 0 {
		return nil, fmt.Errorf("invalid BODY_LIMIT_MB: %q", os.Getenv("BODY_LIMIT_MB"))
	}

	readTimeout, err := time.ParseDuration(getEnv("READ_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("WRITE_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid WRITE_TIMEOUT: %w", err)
	}

	location, err := time.LoadLocation(getEnv("TZ", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid TZ: %w", err)
	}

	driver := strings.ToLower(getEnv("STORE_DRIVER", StoreDriverSQLite))
	if driver != StoreDriverSQLite && driver != StoreDriverJSON {
		return nil, fmt.Errorf("invalid STORE_DRIVER %q: want %s or %s", driver, StoreDriverSQLite, StoreDriverJSON)
	}

	// An explicitly empty DEFAULT_USER_ID disables the anonymous fallback.
	defaultUserID, ok := os.LookupEnv("DEFAULT_USER_ID")
	if !ok {
		defaultUserID = "demo"
	}

	return &Config{
		Environment:        getEnv("ENVIRONMENT", "development"),
		Port:               getEnv("PORT", "3000"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		StoreDriver:        driver,
		DBPath:             getEnv("DB_PATH", filepath.Join("data", "invoicehero.db")),
		DocumentPath:       getEnv("DOCUMENT_PATH", filepath.Join("data", "db.json")),
		DefaultUserID:      strings.TrimSpace(defaultUserID),
		AutoProvisionUsers: autoProvision,
		TokenSecret:        os.Getenv("TOKEN_SECRET"),
		TokenTTL:           tokenTTL,
		StripeSecretKey:    os.Getenv("STRIPE_SECRET_KEY"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		BodyLimitBytes:     bodyLimitMB * 1024 * 1024,
		Location:           location,
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
	}, nil
}

// PaymentsConfigured reports whether a payment processor key is present.
func (cfg *Config) PaymentsConfigured() bool {
	return strings.TrimSpace(cfg.StripeSecretKey) != ""
}

func (cfg *Config) SignedTokens() bool {
	return cfg.TokenSecret != ""
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
