package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	App          AppConfig
	JWT          JWTConfig
	Scheduling   SchedulingConfig
	Optimizer    OptimizerConfig
	Notification NotificationConfig
	CalendarSync CalendarSyncConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// JWTConfig holds token verification configuration. Tokens are issued by the
// platform auth service; this service only verifies them.
type JWTConfig struct {
	Secret string
}

// SchedulingConfig holds the scheduling-core policy knobs.
type SchedulingConfig struct {
	// AnnualVacationDays is the full-year vacation entitlement, pro-rated by tenure.
	AnnualVacationDays int
	// GenerationHorizonDays bounds recurring materialization when the caller
	// supplies no explicit end date.
	GenerationHorizonDays int
	// MaxOccurrences caps recurrence expansion regardless of the caller horizon.
	MaxOccurrences int
	// PublicHolidays is the set of YYYY-MM-DD dates from the platform holiday
	// calendar for the configured region.
	PublicHolidays []string
}

type OptimizerConfig struct {
	BaseURL string
	Timeout time.Duration
	Enabled bool
}

type NotificationConfig struct {
	WebhookURL string
}

type CalendarSyncConfig struct {
	BaseURL string
}

func Load() (*Config, error) {
	// Missing .env is fine; env vars may come from the environment directly.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "wellura_staff"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Scheduling configuration
	annualDays, err := strconv.Atoi(getEnv("ANNUAL_VACATION_DAYS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid ANNUAL_VACATION_DAYS: %w", err)
	}
	horizonDays, err := strconv.Atoi(getEnv("GENERATION_HORIZON_DAYS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid GENERATION_HORIZON_DAYS: %w", err)
	}
	maxOccurrences, err := strconv.Atoi(getEnv("RECURRENCE_MAX_OCCURRENCES", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECURRENCE_MAX_OCCURRENCES: %w", err)
	}

	config.Scheduling = SchedulingConfig{
		AnnualVacationDays:    annualDays,
		GenerationHorizonDays: horizonDays,
		MaxOccurrences:        maxOccurrences,
		PublicHolidays:        getEnvSlice("PUBLIC_HOLIDAYS"),
	}

	// Optimizer configuration
	optimizerTimeout, err := time.ParseDuration(getEnv("OPTIMIZER_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid OPTIMIZER_TIMEOUT: %w", err)
	}

	config.Optimizer = OptimizerConfig{
		BaseURL: getEnv("OPTIMIZER_BASE_URL", "http://staff-ai-service:8003"),
		Timeout: optimizerTimeout,
		Enabled: getEnv("OPTIMIZER_ENABLED", "true") == "true",
	}

	config.Notification = NotificationConfig{
		WebhookURL: getEnv("NOTIFICATION_WEBHOOK_URL", ""),
	}

	config.CalendarSync = CalendarSyncConfig{
		BaseURL: getEnv("CALENDAR_SYNC_BASE_URL", ""),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Scheduling.AnnualVacationDays <= 0 {
		return fmt.Errorf("ANNUAL_VACATION_DAYS must be positive")
	}
	if c.Scheduling.MaxOccurrences <= 0 {
		return fmt.Errorf("RECURRENCE_MAX_OCCURRENCES must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
