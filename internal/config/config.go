package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Email    EmailConfig
	AI       AIConfig
	Payments PaymentsConfig
}

type ServerConfig struct {
	Host           string
	Port           int
	Secure         bool   // Send HSTS
	Environment    string // "development", "production", "test"
	LogLevel       string
	AllowedOrigins []string
	AIRateLimit    int  // plan generations per client IP per hour
	TrustedProxy   bool // honour X-Forwarded-For from a fronting proxy
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// AIConfig describes the OpenAI-compatible text generation endpoint.
type AIConfig struct {
	APIKey  string
	APIURL  string // base URL or full chat completions endpoint
	Model   string
	Timeout time.Duration
}

// Configured reports whether a credential was supplied.
func (a AIConfig) Configured() bool {
	return strings.TrimSpace(a.APIKey) != ""
}

type EmailConfig struct {
	Provider     string // "resend", "smtp", "console"
	FromAddress  string
	FromName     string
	ResendAPIKey string
	// SMTP settings (for Mailpit in local dev)
	SMTPHost string
	SMTPPort int
}

// PaymentsConfig holds the public identifiers handed to the checkout page.
// Secret keys are never read by this service.
type PaymentsConfig struct {
	PaystackPublicKey string
	PaystackSecretSet bool
	PayPalClientID    string
	PayPalMode        string
}

const (
	defaultAIURL   = "https://llm.wavespeed.ai/v1/chat/completions"
	defaultAIModel = "gpt-4"
)

var defaultAllowedOrigins = []string{
	"https://babysleepoptimizer.com",
	"https://www.babysleepoptimizer.com",
	"http://localhost:3000",
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

func Load() (*Config, error) {
	env := getEnv("APP_ENV", "development")

	aiRateLimit := 10
	if env == "development" {
		aiRateLimit = 100
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvInt("PORT", getEnvInt("SERVER_PORT", 3000)),
			Secure:         getEnvBool("SERVER_SECURE", false),
			Environment:    env,
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins),
			AIRateLimit:    getEnvInt("AI_RATE_LIMIT", aiRateLimit),
			TrustedProxy:   getEnvBool("TRUSTED_PROXY", false),
		},
		Database: DatabaseConfig{
			Enabled:  getEnvBool("DB_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "sleepplan"),
			Password: getEnv("DB_PASSWORD", "sleepplan"),
			DBName:   getEnv("DB_NAME", "sleepplan"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Email: EmailConfig{
			Provider:     getEnv("EMAIL_PROVIDER", "console"),
			FromAddress:  getEnv("EMAIL_FROM_ADDRESS", "plans@babysleepoptimizer.com"),
			FromName:     getEnv("EMAIL_FROM_NAME", "AI Baby Sleep Optimizer"),
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			SMTPHost:     getEnv("SMTP_HOST", "localhost"),
			SMTPPort:     getEnvInt("SMTP_PORT", 1025),
		},
		AI: AIConfig{
			APIKey:  getEnv("WAVESPEED_API_KEY", ""),
			APIURL:  getEnv("WAVESPEED_API_URL", defaultAIURL),
			Model:   getEnv("WAVESPEED_MODEL", defaultAIModel),
			Timeout: getEnvDuration("AI_TIMEOUT", 60*time.Second),
		},
		Payments: PaymentsConfig{
			PaystackPublicKey: getEnv("PAYSTACK_PUBLIC_KEY", ""),
			PaystackSecretSet: getEnv("PAYSTACK_SECRET_KEY", "") != "",
			PayPalClientID:    getEnv("PAYPAL_CLIENT_ID", ""),
			PayPalMode:        getEnv("PAYPAL_MODE", "sandbox"),
		},
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}
	if cfg.Server.AIRateLimit <= 0 {
		return nil, fmt.Errorf("invalid AI_RATE_LIMIT %d: must be positive", cfg.Server.AIRateLimit)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated value, dropping empty items.
func getEnvList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return append([]string(nil), defaultValue...)
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return append([]string(nil), defaultValue...)
	}
	return items
}
