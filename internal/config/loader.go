package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/simaogato/kidbank-backend/internal/logging"
)

// Load reads a YAML config file and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Expand ${VAR} environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}

	return &cfg, nil
}

// LoadWithDefaults loads config and applies default values.
func LoadWithDefaults(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadAndValidate loads config, applies defaults, and validates.
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := LoadWithDefaults(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// FromEnv builds a validated config from environment variables:
//
//	DB_CONN_STR                     full connection string
//	DB_HOST, DB_PORT, DB_USER,      individual connection fields
//	DB_PASSWORD, DB_NAME
//	DB_DRIVER                       postgres (default) or pgx
//	STORE=memory                    use the in-memory store
//	API_TOKEN                       gRPC bearer token (default dev-token)
//	GRPC_ADDR, HTTP_ADDR            listen addresses
//	QUOTE_BASE_URL                  price oracle endpoint
//	QUOTE_BREAKER                   wrap the oracle in a circuit breaker (bool)
//	SEED_DEMO                       create the demo household on startup (bool)
//	LOG_LEVEL, LOG_FORMAT, LOG_DEV  logging
func FromEnv() (*Config, error) {
	var cfg Config

	cfg.Server.GRPCAddr = os.Getenv("GRPC_ADDR")
	cfg.Server.HTTPAddr = os.Getenv("HTTP_ADDR")
	cfg.Server.APIToken = os.Getenv("API_TOKEN")
	if seed := os.Getenv("SEED_DEMO"); seed != "" {
		enabled, err := strconv.ParseBool(seed)
		if err != nil {
			return nil, fmt.Errorf("SEED_DEMO %q is not a boolean", seed)
		}
		cfg.Server.SeedDemo = enabled
	}

	cfg.Database.Driver = os.Getenv("DB_DRIVER")
	if os.Getenv("STORE") == DriverMemory {
		cfg.Database.Driver = DriverMemory
	}
	cfg.Database.DSN = os.Getenv("DB_CONN_STR")
	cfg.Database.Host = os.Getenv("DB_HOST")
	cfg.Database.User = os.Getenv("DB_USER")
	cfg.Database.Password = os.Getenv("DB_PASSWORD")
	cfg.Database.Name = os.Getenv("DB_NAME")
	if port := os.Getenv("DB_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("DB_PORT %q is not a number", port)
		}
		cfg.Database.Port = p
	}

	cfg.Quote.BaseURL = os.Getenv("QUOTE_BASE_URL")
	if breaker := os.Getenv("QUOTE_BREAKER"); breaker != "" {
		enabled, err := strconv.ParseBool(breaker)
		if err != nil {
			return nil, fmt.Errorf("QUOTE_BREAKER %q is not a boolean", breaker)
		}
		cfg.Quote.Breaker.Enabled = enabled
	}
	cfg.Log = logging.ApplyEnv(logging.Config{})

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}
