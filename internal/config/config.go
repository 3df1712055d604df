package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Outbound email configuration
	Email EmailConfig

	// Admin API configuration
	Admin AdminConfig

	// Content configuration
	Content ContentConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// EmailConfig holds transactional email API settings
type EmailConfig struct {
	APIURL       string
	APIKey       string
	From         string
	ContactInbox string
	Timeout      time.Duration
}

// AdminConfig holds admin API settings
type AdminConfig struct {
	Token string
}

// ContentConfig holds content and seeding settings
type ContentConfig struct {
	SeedFile       string // optional YAML override of the embedded seed products
	MigrationsPath string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			Host:         os.Getenv("DB_HOST"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         os.Getenv("DB_USER"),
			Password:     os.Getenv("DB_PASSWORD"),
			Name:         os.Getenv("DB_NAME"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Email: EmailConfig{
			APIURL:       getEnv("EMAIL_API_URL", "https://api.resend.com/emails"),
			APIKey:       os.Getenv("EMAIL_API_KEY"),
			From:         getEnv("EMAIL_FROM", "Solar Racing <noreply@solar-racing.example>"),
			ContactInbox: os.Getenv("CONTACT_INBOX"),
			Timeout:      getDurationEnv("EMAIL_TIMEOUT", 10*time.Second),
		},
		Admin: AdminConfig{
			Token: os.Getenv("ADMIN_TOKEN"),
		},
		Content: ContentConfig{
			SeedFile:       os.Getenv("SEED_FILE"),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", defaultLogFormat()),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid. Missing credentials are
// reported by environment variable name.
func (c *Config) Validate() error {
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database config: %w", err)
	}
	if err := c.Email.Validate(); err != nil {
		return fmt.Errorf("email config: %w", err)
	}
	if err := c.Admin.Validate(); err != nil {
		return fmt.Errorf("admin config: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log config: %w", err)
	}
	return nil
}

// Validate checks database settings
func (c *DatabaseConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Host, validation.Required.Error("DB_HOST is required")),
		validation.Field(&c.User, validation.Required.Error("DB_USER is required")),
		validation.Field(&c.Name, validation.Required.Error("DB_NAME is required")),
		validation.Field(&c.Port, is.Port.Error("DB_PORT must be a valid port")),
		validation.Field(&c.MaxOpenConns, validation.Min(1).Error("DB_MAX_OPEN_CONNS must be at least 1")),
	)
}

// Validate checks email settings
func (c *EmailConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.APIKey, validation.Required.Error("EMAIL_API_KEY is required")),
		validation.Field(&c.APIURL, validation.Required.Error("EMAIL_API_URL is required"), is.URL.Error("EMAIL_API_URL must be a URL")),
		validation.Field(&c.From, validation.Required.Error("EMAIL_FROM is required")),
		validation.Field(&c.ContactInbox,
			validation.Required.Error("CONTACT_INBOX is required"),
			is.EmailFormat.Error("CONTACT_INBOX must be an email address"),
		),
	)
}

// Validate checks admin settings
func (c *AdminConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Token,
			validation.Required.Error("ADMIN_TOKEN is required"),
			validation.Length(16, 0).Error("ADMIN_TOKEN must be at least 16 characters"),
		),
	)
}

// Validate checks logging settings
func (c *LogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.In("debug", "info", "warn", "error").Error("LOG_LEVEL must be one of: debug, info, warn, error")),
		validation.Field(&c.Format, validation.In("json", "pretty").Error("LOG_FORMAT must be json or pretty")),
	)
}

// Pretty reports whether logs go to the console writer
func (c *LogConfig) Pretty() bool {
	return c.Format == "pretty"
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func defaultLogFormat() string {
	if os.Getenv("ENV") == "development" {
		return "pretty"
	}
	return "json"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
