package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	// PostgresDriver stores data in PostgreSQL.
	PostgresDriver = "postgres"
	// MemoryDriver keeps data in process memory; it is lost on exit.
	MemoryDriver = "memory"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, storage, access
// tokens, listings and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"10s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"http"`

	// Storage selects the entity store backend
	Storage struct {
		// Driver is either "postgres" or "memory"
		Driver string `env:"STORAGE_DRIVER" env-default:"postgres" yaml:"driver"`
	} `yaml:"storage"`

	// Database contains all database connection related configurations
	Database struct {
		// Username for database authentication
		Username string `env:"DATABASE_USERNAME" env-default:"myuser" yaml:"username"`
		// Password for database authentication
		Password string `env:"DATABASE_PASSWORD" env-default:"mypassword" yaml:"password"`
		// Host is the database server hostname or IP address
		Host string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		// Port is the database server port number
		Port int `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `env:"DATABASE_NAME" env-default:"forum" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	// JWT contains access token settings
	JWT struct {
		// AccessSecret signs and verifies access tokens
		AccessSecret string `env:"JWT_ACCESS_SECRET" env-default:"change-me" yaml:"accessSecret"`
		// AccessExpiresIn is the token lifetime, e.g. "15m", "1h" or "7d"
		AccessExpiresIn string `env:"JWT_ACCESS_EXPIRES_IN" env-default:"15m" yaml:"accessExpiresIn"`
	} `yaml:"jwt"`

	// Listing bounds page sizes of post and comment listings
	Listing struct {
		// DefaultLimit is the page size used when the client sends none
		DefaultLimit int `env:"LISTING_DEFAULT_LIMIT" env-default:"10" yaml:"defaultLimit"`
		// MaxLimit is the largest page size a client may ask for
		MaxLimit int `env:"LISTING_MAX_LIMIT" env-default:"100" yaml:"maxLimit"`
	} `yaml:"listing"`

	// Tracing controls span sampling
	Tracing struct {
		// SampleRatio is the fraction of new traces recorded, from 0 to 1
		SampleRatio float64 `env:"TRACING_SAMPLE_RATIO" env-default:"1" yaml:"sampleRatio"`
	} `yaml:"tracing"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load reads variables from a .env file in the working directory, if one
// exists, then receives the path for yaml config file and returns a filled
// Config struct. Environment variables take precedence over the yaml file.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not load .env: %w", err)
	}

	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ErrNotPersistent is returned by RequirePersistentStorage for the memory driver.
var ErrNotPersistent = errors.New("storage driver does not persist data")

// RequirePersistentStorage fails unless the configured driver outlives the
// process. Commands that only write data, like migrate and seed, call it.
func (c *Config) RequirePersistentStorage() error {
	if c.Storage.Driver != PostgresDriver {
		return fmt.Errorf("%w: %q", ErrNotPersistent, c.Storage.Driver)
	}

	return nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case PostgresDriver, MemoryDriver:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Listing.DefaultLimit < 1 || c.Listing.MaxLimit < c.Listing.DefaultLimit {
		return fmt.Errorf("invalid listing limits: default %d, max %d",
			c.Listing.DefaultLimit, c.Listing.MaxLimit)
	}

	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("invalid tracing sample ratio %v", c.Tracing.SampleRatio)
	}

	return nil
}
