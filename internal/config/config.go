// Package config loads the server configuration from a YAML file or, when no
// file is given, from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/simaogato/kidbank-backend/internal/logging"
)

// Config is the root configuration of the server
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Quote    QuoteConfig    `yaml:"quote"`
	Log      logging.Config `yaml:"log"`
}

// ServerConfig holds listener settings
type ServerConfig struct {
	GRPCAddr string `yaml:"grpc_addr"`
	HTTPAddr string `yaml:"http_addr"` // Health, metrics and statements
	APIToken string `yaml:"api_token"` // Static bearer token checked by the gRPC interceptor
	SeedDemo bool   `yaml:"seed_demo"` // Create the demo household on startup
}

// Store drivers
const (
	DriverPostgres = "postgres" // lib/pq
	DriverPgx      = "pgx"      // jackc/pgx stdlib
	DriverMemory   = "memory"   // in-process, lost on exit
)

// DatabaseConfig holds the record store connection.
// DSN, when set, wins over the individual fields.
type DatabaseConfig struct {
	Driver       string `yaml:"driver"`
	DSN          string `yaml:"dsn"`
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Name         string `yaml:"name"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	SSLMode      string `yaml:"ssl_mode"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// ConnString returns the connection string handed to the driver
func (db DatabaseConfig) ConnString() string {
	if db.DSN != "" {
		return db.DSN
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		db.Host, db.Port, db.User, db.Password, db.Name, db.SSLMode)
}

// QuoteConfig holds the price oracle settings
type QuoteConfig struct {
	BaseURL   string        `yaml:"base_url"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
	Breaker   BreakerConfig `yaml:"breaker"`
}

// BreakerConfig configures the circuit breaker in front of the oracle
type BreakerConfig struct {
	Enabled          bool          `yaml:"enabled"`
	MaxRequests      uint32        `yaml:"max_requests"`      // Allowed while half-open
	Interval         time.Duration `yaml:"interval"`          // Closed-state counter reset period
	Timeout          time.Duration `yaml:"timeout"`           // Open-state duration
	FailureThreshold uint32        `yaml:"failure_threshold"` // Consecutive failures that open the breaker
}
