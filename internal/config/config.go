package config

import (
	"fmt"

	"github.com/shopspring/decimal"

	pkgconfig "github.com/yasheela-alla/cartIt/pkg/config"
)

// Session store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds all configuration for the checkout service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"CHECKOUT_HTTP_PORT" envDefault:"8004"`

	// Session store backend: memory (default, ephemeral) or redis.
	SessionStore string `env:"SESSION_STORE" envDefault:"memory"`

	// Redis (used when SessionStore is redis)
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Session TTL in minutes (default: 24 hours)
	SessionTTL int `env:"SESSION_TTL_MINUTES" envDefault:"1440"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Remote catalog service. When empty the built-in catalog is used.
	CatalogURL string `env:"CATALOG_URL" envDefault:""`

	// Shipping policy applied at checkout, as decimal strings.
	ShippingCost     string `env:"SHIPPING_COST" envDefault:"25.00"`
	ShippingDiscount string `env:"SHIPPING_DISCOUNT" envDefault:"10.00"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load checkout config: %w", err)
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
	if c.SessionStore != StoreMemory && c.SessionStore != StoreRedis {
		return fmt.Errorf("invalid session store: %q (must be %q or %q)", c.SessionStore, StoreMemory, StoreRedis)
	}
	if c.SessionTTL < 1 {
		return fmt.Errorf("invalid session TTL: %d", c.SessionTTL)
	}
	if _, err := c.ShippingCostDecimal(); err != nil {
		return fmt.Errorf("invalid shipping cost %q: %w", c.ShippingCost, err)
	}
	if _, err := c.ShippingDiscountDecimal(); err != nil {
		return fmt.Errorf("invalid shipping discount %q: %w", c.ShippingDiscount, err)
	}
	return nil
}

// ShippingCostDecimal parses the configured shipping cost.
func (c *Config) ShippingCostDecimal() (decimal.Decimal, error) {
	return decimal.NewFromString(c.ShippingCost)
}

// ShippingDiscountDecimal parses the configured shipping discount.
func (c *Config) ShippingDiscountDecimal() (decimal.Decimal, error) {
	return decimal.NewFromString(c.ShippingDiscount)
}
