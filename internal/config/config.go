package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Product source kinds accepted by PRODUCT_SOURCE.
const (
	ProductSourceMemory   = "memory"
	ProductSourcePostgres = "postgres"
)

// Config holds the application's configuration values.
// Tags like `envconfig:"APP_ENV"` specify the environment variable name.
type Config struct {
	AppEnv        string `envconfig:"APP_ENV" default:"development"` // e.g., development, staging, production
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`      // debug, info, warn, error
	ProductSource string `envconfig:"PRODUCT_SOURCE" default:"memory"`
	HttpServer    ServerConfig
	GrpcServer    GrpcServerConfig
	Pagination    PaginationConfig
	Postgres      PostgresConfig
}

// ServerConfig holds HTTP server-specific configurations.
type ServerConfig struct {
	Port         string        `envconfig:"HTTP_SERVER_PORT" default:"8080"`
	TimeoutRead  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_READ" default:"15s"`
	TimeoutWrite time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_WRITE" default:"15s"`
	TimeoutIdle  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_IDLE" default:"60s"`
}

// GrpcServerConfig holds gRPC server-specific configurations.
type GrpcServerConfig struct {
	Port string `envconfig:"GRPC_SERVER_PORT" default:"9090"`
}

// PaginationConfig controls product listing defaults. MaxPerPage 0 means unbounded.
type PaginationConfig struct {
	DefaultPerPage int `envconfig:"PAGINATION_DEFAULT_PER_PAGE" default:"15"`
	MaxPerPage     int `envconfig:"PAGINATION_MAX_PER_PAGE" default:"0"`
}

// PostgresConfig holds PostgreSQL connection details for the postgres product source.
type PostgresConfig struct {
	Host     string `envconfig:"POSTGRES_HOST"`
	Port     string `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER"`
	Password string `envconfig:"POSTGRES_PASSWORD"`
	DBName   string `envconfig:"POSTGRES_DBNAME"`
}

// DSN constructs the Data Source Name string for connecting to PostgreSQL.
func (pc *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		pc.Host, pc.Port, pc.User, pc.Password, pc.DBName)
}

// Load reads the configuration from environment variables and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	switch c.ProductSource {
	case ProductSourceMemory:
	case ProductSourcePostgres:
		if c.Postgres.Host == "" || c.Postgres.User == "" || c.Postgres.Password == "" || c.Postgres.DBName == "" {
			return errors.New("config: POSTGRES_HOST, POSTGRES_USER, POSTGRES_PASSWORD and POSTGRES_DBNAME are required when PRODUCT_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("config: invalid PRODUCT_SOURCE %q (want %q or %q)", c.ProductSource, ProductSourceMemory, ProductSourcePostgres)
	}
	if c.Pagination.DefaultPerPage < 1 {
		return fmt.Errorf("config: PAGINATION_DEFAULT_PER_PAGE must be at least 1, got %d", c.Pagination.DefaultPerPage)
	}
	if c.Pagination.MaxPerPage < 0 {
		return fmt.Errorf("config: PAGINATION_MAX_PER_PAGE must not be negative, got %d", c.Pagination.MaxPerPage)
	}
	if c.Pagination.MaxPerPage > 0 && c.Pagination.DefaultPerPage > c.Pagination.MaxPerPage {
		return errors.New("config: PAGINATION_DEFAULT_PER_PAGE exceeds PAGINATION_MAX_PER_PAGE")
	}
	return nil
}
