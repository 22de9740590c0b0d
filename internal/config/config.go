package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/01moynul/storefront-golang/internal/models"
)

// Config holds all storefront configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Store     StoreConfig     `yaml:"store"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port       string `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
}

// CatalogConfig configures the external product catalog.
type CatalogConfig struct {
	BaseURL     string `yaml:"base_url"`
	Timeout     string `yaml:"timeout"`
	BrowseLimit int    `yaml:"browse_limit"`
	DefaultShip string `yaml:"default_shipping"`
}

// StoreConfig selects and configures the key-value backend.
type StoreConfig struct {
	Backend    string `yaml:"backend"` // memory, sqlite, mysql, redis
	SQLitePath string `yaml:"sqlite_path"`
	MySQLDSN   string `yaml:"mysql_dsn"`
	RedisAddr  string `yaml:"redis_addr"`
	Namespace  string `yaml:"namespace"`
}

// AuthConfig configures session tokens.
type AuthConfig struct {
	JWTSecret  string `yaml:"jwt_secret"`
	TokenTTL   string `yaml:"token_ttl"`
	BcryptCost int    `yaml:"bcrypt_cost"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// TelemetryConfig configures tracing export.
type TelemetryConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	ServiceName  string `yaml:"service_name"`
}

const defaultJWTSecret = "A_VERY_SECURE_SECRET_KEY_REPLACE_LATER"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:       "8080",
			CORSOrigin: "http://localhost:5173",
		},
		Catalog: CatalogConfig{
			BaseURL:     "https://dummyjson.com",
			Timeout:     "10s",
			BrowseLimit: 150,
			DefaultShip: "standard",
		},
		Store: StoreConfig{
			Backend:    "sqlite",
			SQLitePath: "storefront.db",
			Namespace:  "storefront",
		},
		Auth: AuthConfig{
			JWTSecret:  defaultJWTSecret,
			TokenTTL:   "72h",
			BcryptCost: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "storefront",
		},
	}
}

// Load reads .env (if present), then the YAML file at path (if non-empty),
// then applies environment overrides.
func Load(path string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if path == "" {
		path = os.Getenv("STOREFRONT_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) applyEnvOverrides() {
	setString := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}

	setString(&c.Server.Port, "PORT")
	setString(&c.Server.CORSOrigin, "CORS_ORIGIN")
	setString(&c.Catalog.BaseURL, "CATALOG_BASE_URL")
	setString(&c.Catalog.Timeout, "CATALOG_TIMEOUT")
	setString(&c.Store.Backend, "STORE_BACKEND")
	setString(&c.Store.SQLitePath, "SQLITE_PATH")
	setString(&c.Store.MySQLDSN, "DB_DSN_PRIMARY")
	setString(&c.Store.RedisAddr, "REDIS_ADDR")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Logging.Level, "LOG_LEVEL")
	setString(&c.Logging.Format, "LOG_FORMAT")
	setString(&c.Telemetry.OTLPEndpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
}

// Validate checks that the configuration can be used to start the storefront.
func (c *Config) Validate() error {
	var errs []error

	switch c.Store.Backend {
	case "memory":
	case "sqlite":
		if c.Store.SQLitePath == "" {
			errs = append(errs, errors.New("store.sqlite_path is required for the sqlite backend"))
		}
	case "mysql":
		if c.Store.MySQLDSN == "" {
			errs = append(errs, errors.New("DB_DSN_PRIMARY is required for the mysql backend"))
		}
	case "redis":
		if c.Store.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store backend %q", c.Store.Backend))
	}

	if c.Catalog.BaseURL == "" {
		errs = append(errs, errors.New("catalog.base_url is required"))
	}
	if _, err := time.ParseDuration(c.Catalog.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("catalog.timeout: %w", err))
	}
	if _, err := time.ParseDuration(c.Auth.TokenTTL); err != nil {
		errs = append(errs, fmt.Errorf("auth.token_ttl: %w", err))
	}
	if _, err := models.ShippingCost(c.Catalog.DefaultShip); err != nil {
		errs = append(errs, fmt.Errorf("catalog.default_shipping %q must be one of %s",
			c.Catalog.DefaultShip, strings.Join(models.ShippingOptions(), ", ")))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be empty"))
	}

	return errors.Join(errs...)
}

// UsesDefaultSecret reports whether the JWT secret was never changed.
func (c *Config) UsesDefaultSecret() bool {
	return c.Auth.JWTSecret == defaultJWTSecret
}

// CatalogTimeout returns the parsed catalog timeout. Validate first.
func (c *Config) CatalogTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Catalog.Timeout)
	return d
}

// TokenTTL returns the parsed token lifetime. Validate first.
func (c *Config) TokenTTL() time.Duration {
	d, _ := time.ParseDuration(c.Auth.TokenTTL)
	return d
}
