package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config Application Configuration
type Config struct {
	App          AppConfig          `mapstructure:"app"`
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Log          LogConfig          `mapstructure:"log"`
	CORS         CORSConfig         `mapstructure:"cors"`
	Auth         AuthConfig         `mapstructure:"auth"`
	Pricing      PricingConfig      `mapstructure:"pricing"`
	Order        OrderConfig        `mapstructure:"order"`
	Notification NotificationConfig `mapstructure:"notification"`
	Worker       WorkerConfig       `mapstructure:"worker"`
}

// AppConfig Application Configuration
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env"` // development, staging, production
}

// ServerConfig Server Configuration
type ServerConfig struct {
	Port            string          `mapstructure:"port"`
	ReadTimeout     time.Duration   `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration   `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown_timeout"`
	RateLimit       RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig Rate Limiting Configuration
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Rate    float64 `mapstructure:"rate"`  // Requests per second
	Burst   int     `mapstructure:"burst"` // Burst capacity
}

// DatabaseConfig Database Configuration
type DatabaseConfig struct {
	Type            string        `mapstructure:"type"` // mysql, sqlite, memory
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SQLitePath      string        `mapstructure:"sqlite_path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	LogLevel        string        `mapstructure:"log_level"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
	Retry           RetryConfig   `mapstructure:"retry"`
}

// RetryConfig Retry configuration for optimistic concurrency control
type RetryConfig struct {
	Enabled                       bool          `mapstructure:"enabled"`
	MaxAttempts                   int           `mapstructure:"max_attempts"`
	InitialDelay                  time.Duration `mapstructure:"initial_delay"`
	MaxDelay                      time.Duration `mapstructure:"max_delay"`
	BackoffFactor                 float64       `mapstructure:"backoff_factor"`
	JitterEnabled                 bool          `mapstructure:"jitter_enabled"`
	RetryOnConcurrentModification bool          `mapstructure:"retry_on_concurrent_modification"`
	RetryOnDuplicateOrderNumber   bool          `mapstructure:"retry_on_duplicate_order_number"`
	RetryOnDeadlock               bool          `mapstructure:"retry_on_deadlock"`
	RetryOnLockTimeout            bool          `mapstructure:"retry_on_lock_timeout"`
}

// LogConfig Log Configuration
type LogConfig struct {
	Level      string `mapstructure:"level"`  // debug, info, warn, error
	Format     string `mapstructure:"format"` // json, console
	Output     string `mapstructure:"output"` // stdout, file
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
}

// CORSConfig CORS Configuration
type CORSConfig struct {
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// AuthConfig Bearer token verification
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

// PricingConfig Pricing parameters, decimals are kept as strings to avoid float drift
type PricingConfig struct {
	Currency         string `mapstructure:"currency"`
	TaxRate          string `mapstructure:"tax_rate"`
	PartnerShare     string `mapstructure:"partner_share"`
	LoyaltyPointUnit string `mapstructure:"loyalty_point_unit"`
}

// OrderConfig Order operation settings
type OrderConfig struct {
	OperationTimeout time.Duration `mapstructure:"operation_timeout"`
}

// NotificationConfig Notification delivery
type NotificationConfig struct {
	Driver        string `mapstructure:"driver"` // log, redis
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	ChannelPrefix string `mapstructure:"channel_prefix"`
}

// WorkerConfig Outbox worker settings
type WorkerConfig struct {
	Enabled      bool          `mapstructure:"enabled"` // run inside the API process
	PollInterval time.Duration `mapstructure:"poll_interval"`
	BatchSize    int           `mapstructure:"batch_size"`
	MaxRetries   int           `mapstructure:"max_retries"`
}

// Rates parsed decimal pricing parameters
type Rates struct {
	TaxRate          decimal.Decimal
	PartnerShare     decimal.Decimal
	LoyaltyPointUnit decimal.Decimal
}

// Rates Parse pricing decimals
func (p PricingConfig) Rates() (Rates, error) {
	var r Rates
	var err error
	if r.TaxRate, err = parseDecimal("pricing.tax_rate", p.TaxRate); err != nil {
		return Rates{}, err
	}
	if r.PartnerShare, err = parseDecimal("pricing.partner_share", p.PartnerShare); err != nil {
		return Rates{}, err
	}
	if r.LoyaltyPointUnit, err = parseDecimal("pricing.loyalty_point_unit", p.LoyaltyPointUnit); err != nil {
		return Rates{}, err
	}
	if r.TaxRate.IsNegative() || r.PartnerShare.IsNegative() || r.PartnerShare.GreaterThan(decimal.NewFromInt(1)) {
		return Rates{}, fmt.Errorf("pricing rates out of range: tax_rate=%s partner_share=%s", r.TaxRate, r.PartnerShare)
	}
	if r.LoyaltyPointUnit.Sign() <= 0 {
		return Rates{}, fmt.Errorf("pricing.loyalty_point_unit must be positive")
	}
	return r, nil
}

func parseDecimal(key, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

// IsDevelopment Whether it's development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction Whether it's production environment
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Validate Reject configurations the service cannot start with
func (c *Config) Validate() error {
	switch c.Database.Type {
	case "memory", "sqlite", "mysql":
	default:
		return fmt.Errorf("unsupported database.type %q (memory, sqlite, mysql)", c.Database.Type)
	}
	switch c.Notification.Driver {
	case "log", "redis":
	default:
		return fmt.Errorf("unsupported notification.driver %q (log, redis)", c.Notification.Driver)
	}
	if c.IsProduction() && c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required in production")
	}
	if c.Order.OperationTimeout <= 0 {
		return fmt.Errorf("order.operation_timeout must be positive")
	}
	if _, err := c.Pricing.Rates(); err != nil {
		return err
	}
	return nil
}

// Load Load Configuration
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Configuration file settings
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Read environment variables, e.g. FOODDASH_DATABASE_TYPE
	v.SetEnvPrefix("FOODDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read configuration file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Use default values when config file doesn't exist
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults Set default configuration
func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "fooddash")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.env", "development")

	// Server
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.rate", 100)
	v.SetDefault("server.rate_limit.burst", 200)

	// Database
	v.SetDefault("database.type", "memory")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "3306")
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "fooddash")
	v.SetDefault("database.sqlite_path", "fooddash.db")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "5m")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.auto_migrate", true)

	// Retry: conflicts are retried once (reload and reapply), then surface as 409
	v.SetDefault("database.retry.enabled", true)
	v.SetDefault("database.retry.max_attempts", 2)
	v.SetDefault("database.retry.initial_delay", "20ms")
	v.SetDefault("database.retry.max_delay", "500ms")
	v.SetDefault("database.retry.backoff_factor", 2.0)
	v.SetDefault("database.retry.jitter_enabled", true)
	v.SetDefault("database.retry.retry_on_concurrent_modification", true)
	v.SetDefault("database.retry.retry_on_duplicate_order_number", true)
	v.SetDefault("database.retry.retry_on_deadlock", true)
	v.SetDefault("database.retry.retry_on_lock_timeout", true)

	// Log
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file_path", "logs/app.log")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age", 30)
	v.SetDefault("log.compress", true)

	// CORS
	v.SetDefault("cors.allow_origins", []string{"http://localhost:3000"})
	v.SetDefault("cors.allow_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allow_headers", []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 86400)

	// Auth
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "fooddash")

	// Pricing
	v.SetDefault("pricing.currency", "NPR")
	v.SetDefault("pricing.tax_rate", "0.13")
	v.SetDefault("pricing.partner_share", "0.8")
	v.SetDefault("pricing.loyalty_point_unit", "100")

	// Order
	v.SetDefault("order.operation_timeout", "5s")

	// Notification
	v.SetDefault("notification.driver", "log")
	v.SetDefault("notification.redis_addr", "localhost:6379")
	v.SetDefault("notification.redis_db", 0)
	v.SetDefault("notification.channel_prefix", "fooddash:orders")

	// Worker
	v.SetDefault("worker.enabled", true)
	v.SetDefault("worker.poll_interval", "2s")
	v.SetDefault("worker.batch_size", 50)
	v.SetDefault("worker.max_retries", 5)
}
