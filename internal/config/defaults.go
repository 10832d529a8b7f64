package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultGRPCAddr         = ":8080"
	DefaultHTTPAddr         = ":8081"
	DefaultAPIToken         = "dev-token"
	DefaultDriver           = DriverPostgres
	DefaultDBHost           = "localhost"
	DefaultDBPort           = 5432
	DefaultDBName           = "kidbank"
	DefaultDBUser           = "postgres"
	DefaultDBPassword       = "postgres"
	DefaultDBSSLMode        = "disable"
	DefaultMaxOpenConns     = 10
	DefaultQuoteBaseURL     = "https://query1.finance.yahoo.com"
	DefaultQuoteUserAgent   = "Mozilla/5.0 (compatible; KidsBrokerage/1.0)"
	DefaultQuoteTimeout     = 10 * time.Second
	DefaultBreakerRequests  = 1
	DefaultBreakerInterval  = 60 * time.Second
	DefaultBreakerTimeout   = 30 * time.Second
	DefaultBreakerThreshold = 5
)

func (c *Config) applyDefaults() {
	// Server defaults
	if c.Server.GRPCAddr == "" {
		c.Server.GRPCAddr = DefaultGRPCAddr
	}
	if c.Server.HTTPAddr == "" {
		c.Server.HTTPAddr = DefaultHTTPAddr
	}
	if c.Server.APIToken == "" {
		c.Server.APIToken = DefaultAPIToken
	}

	// Database defaults
	db := &c.Database
	if db.Driver == "" {
		db.Driver = DefaultDriver
	}
	if db.Host == "" {
		db.Host = DefaultDBHost
	}
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.Name == "" {
		db.Name = DefaultDBName
	}
	if db.User == "" {
		db.User = DefaultDBUser
	}
	if db.Password == "" {
		db.Password = DefaultDBPassword
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxOpenConns == 0 {
		db.MaxOpenConns = DefaultMaxOpenConns
	}

	// Quote defaults
	if c.Quote.BaseURL == "" {
		c.Quote.BaseURL = DefaultQuoteBaseURL
	}
	if c.Quote.UserAgent == "" {
		c.Quote.UserAgent = DefaultQuoteUserAgent
	}
	if c.Quote.Timeout == 0 {
		c.Quote.Timeout = DefaultQuoteTimeout
	}
	b := &c.Quote.Breaker
	if b.MaxRequests == 0 {
		b.MaxRequests = DefaultBreakerRequests
	}
	if b.Interval == 0 {
		b.Interval = DefaultBreakerInterval
	}
	if b.Timeout == 0 {
		b.Timeout = DefaultBreakerTimeout
	}
	if b.FailureThreshold == 0 {
		b.FailureThreshold = DefaultBreakerThreshold
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}
