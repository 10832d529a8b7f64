package config

import (
	"errors"
	"fmt"

	"github.com/simaogato/kidbank-backend/internal/logging"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Server.GRPCAddr == "" {
		return errors.New("server.grpc_addr is required")
	}
	if c.Server.APIToken == "" {
		return errors.New("server.api_token is required")
	}

	if err := c.Database.validate("database"); err != nil {
		return err
	}

	if c.Quote.BaseURL == "" {
		return errors.New("quote.base_url is required")
	}
	if c.Quote.Timeout <= 0 {
		return errors.New("quote.timeout must be positive")
	}
	if c.Quote.Breaker.Enabled && c.Quote.Breaker.FailureThreshold < 1 {
		return errors.New("quote.breaker.failure_threshold must be >= 1")
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}

	return nil
}

func (db *DatabaseConfig) validate(prefix string) error {
	switch db.Driver {
	case DriverMemory:
		return nil
	case DriverPostgres, DriverPgx:
	default:
		return fmt.Errorf("%s.driver must be one of %s, %s, %s, got %q", prefix, DriverPostgres, DriverPgx, DriverMemory, db.Driver)
	}

	if db.MaxOpenConns < 1 {
		return fmt.Errorf("%s.max_open_conns must be >= 1", prefix)
	}
	if db.DSN != "" {
		return nil
	}
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Port < 1 || db.Port > 65535 {
		return fmt.Errorf("%s.port must be between 1 and 65535, got %d", prefix, db.Port)
	}
	return nil
}
