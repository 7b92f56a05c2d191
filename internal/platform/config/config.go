// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultMaxRequestSize is the default maximum request body size (1MB).
	DefaultMaxRequestSize = 1 << 20

	// DefaultNotificationMaxAttempts is the number of delivery attempts for
	// outgoing e-mail. Notifications are not retried.
	DefaultNotificationMaxAttempts = 1

	// DefaultClientRetryMultiplier is the default exponential backoff multiplier.
	DefaultClientRetryMultiplier = 2.0

	// DefaultClientRetryJitterFactor is the default jitter percentage (±25%).
	DefaultClientRetryJitterFactor = 0.25

	// DefaultClientCircuitMaxFailures is the default failures before circuit opens.
	DefaultClientCircuitMaxFailures = 5

	// DefaultClientCircuitHalfOpenLimit is the default successes to close circuit.
	DefaultClientCircuitHalfOpenLimit = 3

	// DefaultTransportMaxIdleConns is the default max idle connections.
	DefaultTransportMaxIdleConns = 100

	// DefaultTransportMaxIdleConnsPerHost is the default max idle connections per host.
	DefaultTransportMaxIdleConnsPerHost = 10

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28

	// DefaultStorageMaxOpenConns is the default SQL connection pool size.
	DefaultStorageMaxOpenConns = 10

	// DefaultStorageMaxIdleConns is the default number of idle SQL connections.
	DefaultStorageMaxIdleConns = 5
)

// envPrefix is the prefix of environment variables read by Load.
const envPrefix = "APP_"

// Config is the root configuration structure.
type Config struct {
	App          AppConfig          `koanf:"app"          validate:"required"`
	Server       ServerConfig       `koanf:"server"       validate:"required"`
	Log          LogConfig          `koanf:"log"          validate:"required"`
	Telemetry    TelemetryConfig    `koanf:"telemetry"`
	Auth         AuthConfig         `koanf:"auth"`
	Pricing      PricingConfig      `koanf:"pricing"      validate:"required"`
	Storage      StorageConfig      `koanf:"storage"      validate:"required"`
	Notification NotificationConfig `koanf:"notification" validate:"required"`
	Swagger      SwaggerConfig      `koanf:"swagger"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	RequestTimeout  time.Duration `koanf:"request_timeout"  validate:"required,min=100ms"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,hostname_port"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
	Insecure     bool    `koanf:"insecure"`
}

// AuthConfig describes the identity headers set by the API gateway in front
// of the admin endpoints.
type AuthConfig struct {
	Enabled       bool   `koanf:"enabled"`
	AdminRole     string `koanf:"admin_role"     validate:"required_if=Enabled true"`
	RolesHeader   string `koanf:"roles_header"   validate:"required_if=Enabled true"`
	SubjectHeader string `koanf:"subject_header" validate:"required_if=Enabled true"`
	EmailHeader   string `koanf:"email_header"`
}

// PricingConfig is the price table the quote engine runs against.
type PricingConfig struct {
	Currency            string              `koanf:"currency"              validate:"required,len=3"`
	TaxRate             float64             `koanf:"tax_rate"              validate:"min=0,lt=1"`
	DiscountThresholdM2 float64             `koanf:"discount_threshold_m2" validate:"gt=0"`
	Width               RangeConfig         `koanf:"width"`
	Height              RangeConfig         `koanf:"height"`
	Vinyl               MaterialPriceConfig `koanf:"vinyl"`
	Canvas              MaterialPriceConfig `koanf:"canvas"`
}

// RangeConfig is an inclusive range in centimeters.
type RangeConfig struct {
	Min float64 `koanf:"min" validate:"gt=0"`
	Max float64 `koanf:"max" validate:"gtefield=Min"`
}

// MaterialPriceConfig holds per-m² prices for one material.
type MaterialPriceConfig struct {
	Base       float64 `koanf:"base"       validate:"gt=0"`
	Discounted float64 `koanf:"discounted" validate:"gt=0,ltfield=Base"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Driver          string         `koanf:"driver"            validate:"required,oneof=sqlite postgres dynamodb"`
	DSN             string         `koanf:"dsn"               validate:"required_unless=Driver dynamodb"`
	AutoMigrate     bool           `koanf:"auto_migrate"`
	MaxOpenConns    int            `koanf:"max_open_conns"    validate:"min=1"`
	MaxIdleConns    int            `koanf:"max_idle_conns"    validate:"min=0"`
	ConnMaxLifetime time.Duration  `koanf:"conn_max_lifetime"`
	DynamoDB        DynamoDBConfig `koanf:"dynamodb"`
}

// DynamoDBConfig configures the DynamoDB backend.
type DynamoDBConfig struct {
	Region           string `koanf:"region"            validate:"required"`
	Endpoint         string `koanf:"endpoint"          validate:"omitempty,url"`
	AccessKeyID      string `koanf:"access_key_id"`
	SecretAccessKey  string `koanf:"secret_access_key"`
	PostsTable       string `koanf:"posts_table"       validate:"required"`
	SubmissionsTable string `koanf:"submissions_table" validate:"required"`
}

// NotificationConfig configures outgoing e-mail. Without an API key the
// service logs messages instead of sending them.
type NotificationConfig struct {
	APIKey  string       `koanf:"api_key"`
	BaseURL string       `koanf:"base_url" validate:"required,url"`
	From    string       `koanf:"from"     validate:"required"`
	To      []string     `koanf:"to"       validate:"required,min=1,dive,email"`
	Client  ClientConfig `koanf:"client"   validate:"required"`
}

// ClientConfig contains HTTP client settings for a downstream service.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"         validate:"required,min=100ms"`
	Retry          RetryConfig          `koanf:"retry"           validate:"required"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker" validate:"required"`
	Transport      TransportConfig      `koanf:"transport"       validate:"required"`
}

// RetryConfig contains retry settings for HTTP clients.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"     validate:"required,min=1,max=10"`
	InitialInterval time.Duration `koanf:"initial_interval" validate:"required,min=10ms"`
	MaxInterval     time.Duration `koanf:"max_interval"     validate:"required,min=100ms"`
	Multiplier      float64       `koanf:"multiplier"       validate:"required,min=1.1,max=10"`
	JitterFactor    float64       `koanf:"jitter_factor"    validate:"min=0,max=1"`
}

// CircuitBreakerConfig contains circuit breaker settings for HTTP clients.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"    validate:"required,min=1"`
	Timeout       time.Duration `koanf:"timeout"         validate:"required,min=1s"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"required,min=1"`
}

// TransportConfig contains HTTP transport pool settings.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"          validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"       validate:"required,min=1s"`
}

// SwaggerConfig toggles the interactive API docs.
type SwaggerConfig struct {
	Enabled bool `koanf:"enabled"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "printshop",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.request_timeout":  "15s",
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/printshop.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "printshop",
		"telemetry.sampling_rate": 1.0,
		"telemetry.insecure":      true,

		"auth.enabled":        false,
		"auth.admin_role":     "admin",
		"auth.roles_header":   "X-User-Roles",
		"auth.subject_header": "X-User-ID",
		"auth.email_header":   "X-User-Email",

		"pricing.currency":              "MXN",
		"pricing.tax_rate":              0.16,
		"pricing.discount_threshold_m2": 10.0,
		"pricing.width.min":             1.0,
		"pricing.width.max":             160.0,
		"pricing.height.min":            10.0,
		"pricing.height.max":            3600.0,
		"pricing.vinyl.base":            180.0,
		"pricing.vinyl.discounted":      150.0,
		"pricing.canvas.base":           80.0,
		"pricing.canvas.discounted":     65.0,

		"storage.driver":                     "sqlite",
		"storage.dsn":                        "printshop.db",
		"storage.auto_migrate":               true,
		"storage.max_open_conns":             DefaultStorageMaxOpenConns,
		"storage.max_idle_conns":             DefaultStorageMaxIdleConns,
		"storage.conn_max_lifetime":          "30m",
		"storage.dynamodb.region":            "us-east-1",
		"storage.dynamodb.endpoint":          "",
		"storage.dynamodb.access_key_id":     "",
		"storage.dynamodb.secret_access_key": "",
		"storage.dynamodb.posts_table":       "blog_posts",
		"storage.dynamodb.submissions_table": "submissions",

		"notification.api_key":  "",
		"notification.base_url": "https://api.resend.com",
		"notification.from":     "Printología <contacto@printologia.com.mx>",
		"notification.to":       []string{"contacto@printologia.com.mx"},

		"notification.client.timeout":                           "10s",
		"notification.client.retry.max_attempts":                DefaultNotificationMaxAttempts,
		"notification.client.retry.initial_interval":            "200ms",
		"notification.client.retry.max_interval":                "2s",
		"notification.client.retry.multiplier":                  DefaultClientRetryMultiplier,
		"notification.client.retry.jitter_factor":               DefaultClientRetryJitterFactor,
		"notification.client.circuit_breaker.max_failures":      DefaultClientCircuitMaxFailures,
		"notification.client.circuit_breaker.timeout":           "30s",
		"notification.client.circuit_breaker.half_open_limit":   DefaultClientCircuitHalfOpenLimit,
		"notification.client.transport.max_idle_conns":          DefaultTransportMaxIdleConns,
		"notification.client.transport.max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
		"notification.client.transport.idle_conn_timeout":       "90s",

		"swagger.enabled": false,
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (APP_ prefix, .env files included)
//  2. Profile config file (configs/{profile}.yaml)
//  3. Base config file (configs/base.yaml)
//  4. Default values
func Load(profile string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// 2. Load base config file if it exists
	err = loadFileIfExists(k, "configs/base.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	// 3. Load profile config file if it exists
	if profile != "" {
		profilePath := fmt.Sprintf("configs/%s.yaml", profile)

		err := loadFileIfExists(k, profilePath)
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	// 4. Load environment variables with APP_ prefix
	err = k.Load(env.Provider(envPrefix, ".", envKeyMapper(k.Keys())), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}

		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
	}

	return nil
}

// envKeyMapper maps APP_NOTIFICATION_API_KEY to notification.api_key by
// matching against the known keys, so underscores inside key names survive.
// Unknown variables fall back to replacing every underscore with a dot.
func envKeyMapper(known []string) func(string) string {
	index := make(map[string]string, len(known))
	for _, key := range known {
		index[strings.ReplaceAll(key, ".", "_")] = key
	}

	return func(s string) string {
		name := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		if key, ok := index[name]; ok {
			return key
		}

		return strings.ReplaceAll(name, "_", ".")
	}
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
