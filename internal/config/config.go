// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers file, .env and environment on top.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/go-sql-driver/mysql"
)

// Supported database drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Aggregate scopes for the country and leaderboard views.
const (
	ScopeFull     = "full"
	ScopeFiltered = "filtered"
)

const (
	defaultMySQLPort    = 3306
	defaultPostgresPort = 5432
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8501".
	Addr string `koanf:"addr"`

	// DBDriver is one of mysql, postgres, sqlite.
	DBDriver string `koanf:"db_driver"`
	DBHost   string `koanf:"db_host"`
	// DBPort of 0 selects the driver's default port.
	DBPort     int    `koanf:"db_port"`
	DBUser     string `koanf:"db_user"`
	DBPassword string `koanf:"db_password"`
	// DBName is the database name, or the file path for sqlite.
	DBName    string `koanf:"db_name"`
	DBSSLMode string `koanf:"db_sslmode"`
	// DBDSN overrides every other connection field when set.
	DBDSN string `koanf:"db_dsn"`

	// QueryTimeoutMS bounds one rendering pass's queries. 0 disables it.
	QueryTimeoutMS int `koanf:"query_timeout_ms"`

	// TopN is the leaderboard length.
	TopN int `koanf:"top_n"`
	// AggregateScope is full (default) or filtered.
	AggregateScope string `koanf:"aggregate_scope"`

	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`

	// CORSAllowedOrigins lists origins allowed to call the API.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// New returns a Config populated with defaults. The database defaults match
// a local MySQL instance holding the "project" schema.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":8501",
		DBDriver:           DriverMySQL,
		DBHost:             "localhost",
		DBUser:             "root",
		DBName:             "project",
		DBSSLMode:          "disable",
		QueryTimeoutMS:     10_000,
		TopN:               10,
		AggregateScope:     ScopeFull,
		ChartWidth:         900,
		ChartHeight:        500,
		CORSAllowedOrigins: []string{"*"},
	}
}

// Validate checks the fields Load cannot fix up.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.TopN < 1:
		return fmt.Errorf("%w: top_n must be positive", ErrInvalidConfig)
	case c.QueryTimeoutMS < 0:
		return fmt.Errorf("%w: query_timeout_ms must not be negative", ErrInvalidConfig)
	case c.ChartWidth < 1 || c.ChartHeight < 1:
		return fmt.Errorf("%w: chart dimensions must be positive", ErrInvalidConfig)
	}
	switch c.AggregateScope {
	case ScopeFull, ScopeFiltered:
	default:
		return fmt.Errorf("%w: unknown aggregate_scope %q", ErrInvalidConfig, c.AggregateScope)
	}
	switch c.DBDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: unsupported db_driver %q", ErrInvalidConfig, c.DBDriver)
	}
	if c.DBDriver == DriverSQLite && c.DBName == "" && c.DBDSN == "" {
		return fmt.Errorf("%w: sqlite needs db_name or db_dsn", ErrInvalidConfig)
	}
	return nil
}

// DSN builds the driver-specific connection string.
func (c *Config) DSN() (string, error) {
	if c.DBDSN != "" {
		return c.DBDSN, nil
	}
	switch c.DBDriver {
	case DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = c.DBUser
		mc.Passwd = c.DBPassword
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(c.DBHost, strconv.Itoa(c.port()))
		mc.DBName = c.DBName
		return mc.FormatDSN(), nil
	case DriverPostgres:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.DBUser, c.DBPassword),
			Host:     net.JoinHostPort(c.DBHost, strconv.Itoa(c.port())),
			Path:     "/" + c.DBName,
			RawQuery: url.Values{"sslmode": []string{c.DBSSLMode}}.Encode(),
		}
		return u.String(), nil
	case DriverSQLite:
		return c.DBName, nil
	}
	return "", fmt.Errorf("%w: unsupported db_driver %q", ErrInvalidConfig, c.DBDriver)
}

func (c *Config) port() int {
	if c.DBPort > 0 {
		return c.DBPort
	}
	if c.DBDriver == DriverPostgres {
		return defaultPostgresPort
	}
	return defaultMySQLPort
}
