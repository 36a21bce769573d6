package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "LEAGUEHUB"

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Log         LogConfig         `mapstructure:"log"`
	Tracing     TracingConfig     `mapstructure:"tracing"`
	Sentry      SentryConfig      `mapstructure:"sentry"`
	Notify      NotifyConfig      `mapstructure:"notify"`
	HTTPClient  HTTPClientConfig  `mapstructure:"http_client"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
	InviteCode  InviteCodeConfig  `mapstructure:"invite_code"`
	JoinRequest JoinRequestConfig `mapstructure:"join_request"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Mode            string        `mapstructure:"mode"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`

	CORSAllowCredentials bool          `mapstructure:"cors_allow_credentials"`
	CORSMaxAge           time.Duration `mapstructure:"cors_max_age"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
	MigrateTimeout  time.Duration `mapstructure:"migrate_timeout"`

	// SlowQueryThreshold logs statements slower than this at warn level.
	SlowQueryThreshold time.Duration `mapstructure:"slow_query_threshold"`
}

// DSN returns the database connection string.
func (c *DatabaseConfig) DSN() string {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Database, c.SSLMode,
	)
	if c.Password != "" {
		dsn += fmt.Sprintf(" password=%s", c.Password)
	}
	return dsn
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig holds bearer token validation configuration.
// Tokens are issued by the identity service; this server only verifies them.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TracingConfig holds OpenTelemetry configuration.
type TracingConfig struct {
	// Endpoint is the OTLP/HTTP collector URL. Empty disables export.
	Endpoint    string  `mapstructure:"endpoint"`
	ServiceName string  `mapstructure:"service_name"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

// SentryConfig holds error reporting configuration.
type SentryConfig struct {
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

// NotifyConfig holds the notification webhook configuration.
type NotifyConfig struct {
	// WebhookURL receives membership events as JSON. Empty disables delivery.
	WebhookURL string        `mapstructure:"webhook_url"`
	Timeout    time.Duration `mapstructure:"timeout"`

	// Circuit breaker settings
	FailureThreshold uint32        `mapstructure:"failure_threshold"`
	SuccessThreshold uint32        `mapstructure:"success_threshold"`
	OpenTimeout      time.Duration `mapstructure:"open_timeout"`
}

// HTTPClientConfig holds HTTP client configuration for connection pooling.
type HTTPClientConfig struct {
	// Connection pool settings
	MaxIdleConns        int           `mapstructure:"max_idle_conns"`
	MaxIdleConnsPerHost int           `mapstructure:"max_idle_conns_per_host"`
	MaxConnsPerHost     int           `mapstructure:"max_conns_per_host"`
	IdleConnTimeout     time.Duration `mapstructure:"idle_conn_timeout"`

	// Timeout settings
	DialTimeout         time.Duration `mapstructure:"dial_timeout"`
	TLSHandshakeTimeout time.Duration `mapstructure:"tls_handshake_timeout"`
	ResponseTimeout     time.Duration `mapstructure:"response_timeout"`

	// Keep-alive settings
	KeepAlive time.Duration `mapstructure:"keep_alive"`

	// UserAgent is sent on every outgoing request.
	UserAgent string `mapstructure:"user_agent"`
}

// RateLimitConfig holds HTTP rate limiting configuration.
type RateLimitConfig struct {
	// Enabled enables/disables rate limiting.
	Enabled bool `mapstructure:"enabled"`
	// APILimit is the per-user request limit within APIWindow.
	APILimit int `mapstructure:"api_limit"`
	// APIWindow is the per-user rate limit window.
	APIWindow time.Duration `mapstructure:"api_window"`
}

// InviteCodeConfig holds invitation code engine configuration.
type InviteCodeConfig struct {
	CodeLength          int `mapstructure:"code_length"`
	MaxGenerateAttempts int `mapstructure:"max_generate_attempts"`
	MaxRedeemAttempts   int `mapstructure:"max_redeem_attempts"`
	DefaultUsageLimit   int `mapstructure:"default_usage_limit"`
	MaxUsageLimit       int `mapstructure:"max_usage_limit"`
}

// JoinRequestConfig holds join request workflow configuration.
type JoinRequestConfig struct {
	RateLimitCount  int           `mapstructure:"rate_limit_count"`
	RateLimitWindow time.Duration `mapstructure:"rate_limit_window"`
	StaleAfter      time.Duration `mapstructure:"stale_after"`
	SweepInterval   time.Duration `mapstructure:"sweep_interval"`
}

// Load loads configuration from file and environment.
// A .env file in the working directory is applied first; real environment
// variables take precedence over it.
func Load() (*Config, error) {
	loadDotEnv(".env")

	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/leaguehub")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file not found, use defaults and env
	}

	// LEAGUEHUB_DATABASE_HOST overrides database.host
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that have no safe default.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required (set %s_AUTH_JWT_SECRET)", envPrefix)
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing.sample_ratio must be within [0, 1], got %v", c.Tracing.SampleRatio)
	}
	return nil
}

func loadDotEnv(path string) {
	envMap, err := godotenv.Read(path)
	if err != nil {
		return
	}
	for k, val := range envMap {
		if _, exists := os.LookupEnv(k); !exists {
			_ = os.Setenv(k, val)
		}
	}
}

// setDefaults sets default configuration values.
// Every key needs a default so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.cors_max_age", 12*time.Hour)

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "leaguehub")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.conn_max_idle_time", 30*time.Minute)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.migrate_timeout", 30*time.Second)
	v.SetDefault("database.slow_query_threshold", 200*time.Millisecond)

	// Redis defaults
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Auth defaults
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Tracing defaults
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.service_name", "leaguehub")
	v.SetDefault("tracing.sample_ratio", 1.0)

	// Sentry defaults
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "production")
	v.SetDefault("sentry.sample_rate", 1.0)

	// Notify defaults
	v.SetDefault("notify.webhook_url", "")
	v.SetDefault("notify.timeout", 5*time.Second)
	v.SetDefault("notify.failure_threshold", 5)
	v.SetDefault("notify.success_threshold", 2)
	v.SetDefault("notify.open_timeout", 30*time.Second)

	// HTTP client defaults
	v.SetDefault("http_client.max_idle_conns", 100)
	v.SetDefault("http_client.max_idle_conns_per_host", 10)
	v.SetDefault("http_client.max_conns_per_host", 20)
	v.SetDefault("http_client.idle_conn_timeout", 90*time.Second)
	v.SetDefault("http_client.dial_timeout", 5*time.Second)
	v.SetDefault("http_client.tls_handshake_timeout", 5*time.Second)
	v.SetDefault("http_client.response_timeout", 10*time.Second)
	v.SetDefault("http_client.keep_alive", 30*time.Second)
	v.SetDefault("http_client.user_agent", "leaguehub-server")

	// Rate limit defaults
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.api_limit", 120)
	v.SetDefault("rate_limit.api_window", time.Minute)

	// Invitation code defaults
	v.SetDefault("invite_code.code_length", 12)
	v.SetDefault("invite_code.max_generate_attempts", 5)
	v.SetDefault("invite_code.max_redeem_attempts", 3)
	v.SetDefault("invite_code.default_usage_limit", 1)
	v.SetDefault("invite_code.max_usage_limit", 1000)

	// Join request defaults
	v.SetDefault("join_request.rate_limit_count", 5)
	v.SetDefault("join_request.rate_limit_window", 24*time.Hour)
	v.SetDefault("join_request.stale_after", 30*24*time.Hour)
	v.SetDefault("join_request.sweep_interval", time.Hour)
}
