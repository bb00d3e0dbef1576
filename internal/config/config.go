package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service configuration
type Config struct {
	Env      string
	Port     int
	LogLevel string

	// Calculator limits
	MaxPrincipal       float64
	MaxRate            float64
	MaxTermYears       int
	MaxFee             float64
	MaxOrders          int
	MaxBalanceCap      float64
	MaxScheduleEntries int

	// Observability
	OTELEndpoint     string
	OTELServiceName  string
	SentryDSN        string
	SentrySampleRate float64

	// Result cache
	RedisAddr string
	CacheTTL  time.Duration

	RateLimitPerMinute int

	// Contact relay
	MailAPIURL  string
	MailAPIKey  string
	ContactTo   string
	ContactFrom string
}

// LoadConfig reads configuration from the environment, after an optional .env file
func LoadConfig() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnvString("ENV", "development"),
		Port:     getEnvInt("PORT", 8000),
		LogLevel: getEnvString("LOG_LEVEL", "info"),

		MaxPrincipal:       getEnvFloat("MAX_PRINCIPAL", 1e9),
		MaxRate:            getEnvFloat("MAX_RATE", 200),
		MaxTermYears:       getEnvInt("MAX_TERM_YEARS", 50),
		MaxFee:             getEnvFloat("MAX_FEE", 1e8),
		MaxOrders:          getEnvInt("MAX_ORDERS", 10_000_000),
		MaxBalanceCap:      getEnvFloat("MAX_BALANCE_CAP", 1e12),
		MaxScheduleEntries: getEnvInt("MAX_SCHEDULE_ENTRIES", 20_000),

		OTELEndpoint:     getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName:  getEnvString("OTEL_SERVICE_NAME", "devnzo-finance-calc"),
		SentryDSN:        getEnvString("SENTRY_DSN", ""),
		SentrySampleRate: getEnvFloat("SENTRY_SAMPLE_RATE", 1.0),

		RedisAddr: getEnvString("REDIS_ADDR", ""),
		CacheTTL:  getEnvDuration("CACHE_TTL", time.Hour),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),

		MailAPIURL:  getEnvString("MAIL_API_URL", "https://api.resend.com"),
		MailAPIKey:  getEnvString("MAIL_API_KEY", ""),
		ContactTo:   getEnvString("CONTACT_TO", "hello@devnzo.com"),
		ContactFrom: getEnvString("CONTACT_FROM", "Devnzo <noreply@devnzo.com>"),
	}

	return cfg, nil
}

// IsProduction reports whether ENV is "production"
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// BalanceCap returns the largest result value the service will report
func (c *Config) BalanceCap() float64 {
	return c.MaxBalanceCap
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
