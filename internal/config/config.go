package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	Port          string   `env:"PORT"             envDefault:"8080"`
	Secret        string   `env:"SECRET,required,notEmpty"`
	StoreDriver   string   `env:"STORE_DRIVER"     envDefault:"postgres"`
	DatabaseURL   string   `env:"DATABASE_URL"`
	MongoURI      string   `env:"MONGODB_URI"`
	MongoDatabase string   `env:"MONGODB_DATABASE" envDefault:"users"`
	RedisURL      string   `env:"REDIS_URL"`
	KafkaBrokers  []string `env:"KAFKA_BROKERS"    envSeparator:","`
	KafkaTopic    string   `env:"KAFKA_TOPIC"      envDefault:"user-events"`
	RateLimit     float64  `env:"RATE_LIMIT"       envDefault:"5"`
	RateBurst     int      `env:"RATE_BURST"       envDefault:"10"`
	LogLevel      string   `env:"LOG_LEVEL"        envDefault:"info"`
}

// LoadDotEnv reads .env.local, falling back to .env. A missing file is not
// an error; it reports whether any file was loaded.
func LoadDotEnv() bool {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			return false
		}
	}
	return true
}

// Load parses the process environment into a validated Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for store driver %q", c.StoreDriver)
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGODB_URI is required for store driver %q", c.StoreDriver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("RATE_LIMIT must not be negative")
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		return fmt.Errorf("RATE_BURST must be at least 1")
	}
	return nil
}

// KafkaEnabled reports whether user events should be written to Kafka.
func (c Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}
