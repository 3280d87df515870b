package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends
const (
	BackendAirtable = "airtable"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// HTTP interactions endpoint
	HTTPPort       int           `env:"HTTP_PORT" default:"8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" default:"15s"`

	// Discord application
	DiscordToken     string `env:"DISCORD_TOKEN"`
	ClientID         string `env:"CLIENT_ID"`
	GuildID          string `env:"GUILD_ID"`
	DiscordPublicKey string `env:"DISCORD_PUBLIC_KEY"`

	// Record store
	StoreBackend      string  `env:"STORE_BACKEND" default:"airtable"`
	AirtableAPIKey    string  `env:"AIRTABLE_API_KEY"`
	AirtableBaseID    string  `env:"AIRTABLE_BASE_ID"`
	AirtableTable     string  `env:"AIRTABLE_TABLE" default:"verbondsbibliotheek"`
	AirtableAPIURL    string  `env:"AIRTABLE_API_URL" default:"https://api.airtable.com/v0"`
	AirtableRateLimit float64 `env:"AIRTABLE_RATE_LIMIT" default:"5"`
	DatabaseURL       string  `env:"DATABASE_URL" default:"bibliotheek.db"`

	// Presentation
	ListThumbnailURL string `env:"LIST_THUMBNAIL_URL"`

	// Development
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// A missing .env file is fine, system env vars still apply
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: .env file not loaded: %v\n", err)
	}

	config := &Config{}

	loadEnvString(&config.GoEnv, "GO_ENV", "development")

	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 8080); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.RequestTimeout, "REQUEST_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}

	// Discord
	loadEnvString(&config.DiscordToken, "DISCORD_TOKEN", "")
	loadEnvString(&config.ClientID, "CLIENT_ID", "")
	loadEnvString(&config.GuildID, "GUILD_ID", "")
	loadEnvString(&config.DiscordPublicKey, "DISCORD_PUBLIC_KEY", "")

	// Record store
	loadEnvString(&config.StoreBackend, "STORE_BACKEND", BackendAirtable)
	config.StoreBackend = strings.ToLower(config.StoreBackend)
	loadEnvString(&config.AirtableAPIKey, "AIRTABLE_API_KEY", "")
	loadEnvString(&config.AirtableBaseID, "AIRTABLE_BASE_ID", "")
	loadEnvString(&config.AirtableTable, "AIRTABLE_TABLE", "verbondsbibliotheek")
	loadEnvString(&config.AirtableAPIURL, "AIRTABLE_API_URL", "https://api.airtable.com/v0")
	if err := loadEnvFloat(&config.AirtableRateLimit, "AIRTABLE_RATE_LIMIT", 5); err != nil {
		return nil, err
	}
	loadEnvString(&config.DatabaseURL, "DATABASE_URL", "bibliotheek.db")

	loadEnvString(&config.ListThumbnailURL, "LIST_THUMBNAIL_URL", "")

	// Development
	loadEnvString(&config.LogLevel, "LOG_LEVEL", "info")
	config.LogLevel = strings.ToLower(config.LogLevel)
	loadEnvString(&config.LogFormat, "LOG_FORMAT", "text")
	config.LogFormat = strings.ToLower(config.LogFormat)

	return config, nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvFloat(target *float64, key string, defaultValue float64) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errors []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errors = append(errors, "HTTP_PORT must be between 1 and 65535")
	}
	if c.RequestTimeout <= 0 {
		errors = append(errors, "REQUEST_TIMEOUT must be positive")
	}

	switch c.StoreBackend {
	case BackendAirtable:
		if c.AirtableAPIKey == "" {
			errors = append(errors, "AIRTABLE_API_KEY is required for the airtable backend")
		}
		if c.AirtableBaseID == "" {
			errors = append(errors, "AIRTABLE_BASE_ID is required for the airtable backend")
		}
		if c.AirtableRateLimit <= 0 {
			errors = append(errors, "AIRTABLE_RATE_LIMIT must be positive")
		}
	case BackendPostgres, BackendSQLite:
		if c.DatabaseURL == "" {
			errors = append(errors, "DATABASE_URL is required for the "+c.StoreBackend+" backend")
		}
	default:
		errors = append(errors, fmt.Sprintf("STORE_BACKEND must be one of: %s, %s, %s", BackendAirtable, BackendPostgres, BackendSQLite))
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// RequireDiscord checks the settings needed to talk to the Discord API
func (c *Config) RequireDiscord() error {
	var missing []string
	if c.DiscordToken == "" {
		missing = append(missing, "DISCORD_TOKEN")
	}
	if c.ClientID == "" {
		missing = append(missing, "CLIENT_ID")
	}
	if c.GuildID == "" {
		missing = append(missing, "GUILD_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	return nil
}

// RequirePublicKey checks the settings needed to verify interaction webhooks
func (c *Config) RequirePublicKey() error {
	if c.DiscordPublicKey == "" {
		return fmt.Errorf("required environment variable DISCORD_PUBLIC_KEY is not set")
	}
	if c.DiscordToken == "" {
		return fmt.Errorf("required environment variable DISCORD_TOKEN is not set")
	}
	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// NewLogger builds the slog logger selected by LOG_LEVEL and LOG_FORMAT
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.LogLevel)}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Helper function to check if slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
