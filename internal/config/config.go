package config

import (
	"fmt"

	pkgconfig "github.com/staykenya/bookings/pkg/config"
)

// Config holds all configuration for the bookings service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"BOOKINGS_HTTP_PORT" envDefault:"8004"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Collection TTL in hours (default: 30 days). Sessions that stay away
	// longer start over with empty collections.
	CollectionTTL int `env:"COLLECTION_TTL_HOURS" envDefault:"720"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// WhatsApp recipient for checkout inquiries, international format
	// without the leading plus.
	WhatsAppNumber string `env:"WHATSAPP_NUMBER" envDefault:"254740941872"`

	// Notification display duration in seconds.
	NotificationTTL int `env:"NOTIFICATION_TTL_SECONDS" envDefault:"3"`

	// Tracing
	TracingEnabled    bool    `env:"TRACING_ENABLED" envDefault:"false"`
	TracingEndpoint   string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TracingSampleRate float64 `env:"TRACING_SAMPLE_RATE" envDefault:"1.0"`

	// CIDR allowlist for the pprof debug endpoints.
	PprofCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.1/32" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load bookings config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.CollectionTTL < 1 {
		return fmt.Errorf("invalid collection TTL: %d hours", c.CollectionTTL)
	}
	if c.NotificationTTL < 1 {
		return fmt.Errorf("invalid notification TTL: %d seconds", c.NotificationTTL)
	}
	if c.WhatsAppNumber == "" {
		return fmt.Errorf("whatsapp number is required")
	}
	if c.TracingSampleRate < 0 || c.TracingSampleRate > 1 {
		return fmt.Errorf("invalid tracing sample rate: %f", c.TracingSampleRate)
	}
	return nil
}
