package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the API server
type Config struct {
	// Server Configuration
	Environment string `env:"ENV" envDefault:"development"`
	Port        string `env:"API_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE"`
	LogRequests bool   `env:"LOG_REQUESTS" envDefault:"false"`

	// Allowed CORS origins, comma separated. Empty allows any origin.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// Database Configuration. Empty keeps messages in memory.
	DatabaseURL string `env:"DATABASE_URL"`

	// Contact Configuration
	ContactRateRPS       float64 `env:"CONTACT_RATE_RPS" envDefault:"1"`
	ContactRateBurst     int     `env:"CONTACT_RATE_BURST" envDefault:"5"`
	ContactRetentionDays int     `env:"CONTACT_RETENTION_DAYS" envDefault:"0"`

	// Delivery Configuration
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `env:"TELEGRAM_CHAT_ID"`

	// reCAPTCHA Configuration
	RecaptchaSecretKey string  `env:"RECAPTCHA_SECRET_KEY"`
	RecaptchaMinScore  float64 `env:"RECAPTCHA_MIN_SCORE" envDefault:"0.5"`

	// Admin API bearer token. Empty disables the admin routes.
	AdminToken string `env:"ADMIN_TOKEN"`

	// Telemetry Configuration
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"folio-api"`
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate checks values that env parsing cannot
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("API_PORT must not be empty")
	}
	if c.ContactRateRPS <= 0 {
		return fmt.Errorf("CONTACT_RATE_RPS must be positive")
	}
	if c.ContactRateBurst <= 0 {
		return fmt.Errorf("CONTACT_RATE_BURST must be positive")
	}
	if c.ContactRetentionDays < 0 {
		return fmt.Errorf("CONTACT_RETENTION_DAYS must be non-negative")
	}
	if c.RecaptchaMinScore < 0 || c.RecaptchaMinScore > 1 {
		return fmt.Errorf("RECAPTCHA_MIN_SCORE must be between 0 and 1")
	}
	return nil
}

// ClientConfig holds the configuration of the folio CLI
type ClientConfig struct {
	Endpoint    string `env:"FOLIO_ENDPOINT" envDefault:"http://localhost:8080"`
	ContactPath string `env:"FOLIO_CONTACT_PATH" envDefault:"/api/test"`
}

// loadEnvFiles loads the first .env file found. godotenv never overrides
// variables that are already set.
func loadEnvFiles() {
	envLocations := []string{".env"}

	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{
			fmt.Sprintf("internal/config/env/.env.%s", envName),
			fmt.Sprintf(".env.%s", envName),
		}, envLocations...)
	}

	for _, loc := range envLocations {
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}
}

// Load loads the server configuration from environment variables and .env files
func Load() (*Config, error) {
	loadEnvFiles()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	for i, origin := range cfg.AllowedOrigins {
		cfg.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadClient loads the CLI configuration
func LoadClient() (*ClientConfig, error) {
	loadEnvFiles()

	cfg := &ClientConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
