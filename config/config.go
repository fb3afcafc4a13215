// Package config loads the settings of the web front-end.
//
// Values are layered, later sources overriding earlier ones:
//  1. Defaults
//  2. TOML config file, when a path is given
//  3. .env file in the working directory, when present
//  4. Environment variables
//  5. CLI flags (applied by the caller before Validate)
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"TareasWeb/api"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvPort           = "PORT"
	EnvAPIURL         = "API_URL"
	EnvLogLevel       = "LOG_LEVEL"
	EnvRateLimit      = "RATE_LIMIT"
	EnvRateBurst      = "RATE_BURST"
	EnvRequestTimeout = "REQUEST_TIMEOUT"
)

// Config holds every setting of the process.
type Config struct {
	// Port the HTTP server listens on.
	Port string `toml:"port" validate:"required,numeric"`
	// APIURL is the base URL of the task service.
	APIURL string `toml:"api_url" validate:"required,url"`
	// LogLevel is a logrus level name.
	LogLevel string `toml:"log_level" validate:"required,oneof=trace debug info warn warning error fatal panic"`
	// RateLimit is the number of page requests allowed per second, RateBurst the bucket size.
	RateLimit float64 `toml:"rate_limit" validate:"gt=0"`
	RateBurst int     `toml:"rate_burst" validate:"gte=1"`
	// RequestTimeout bounds the calls made to the task service for one page.
	RequestTimeout time.Duration `toml:"request_timeout" validate:"gt=0"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		Port:           "8080",
		APIURL:         api.DefaultBaseURL,
		LogLevel:       "info",
		RateLimit:      2,
		RateBurst:      20,
		RequestTimeout: 10 * time.Second,
	}
}

// Load layers the config file at path (may be empty), the .env file and the environment over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env file: %w", err)
	}
	if err := cfg.loadFromEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFromEnv() error {
	if v, ok := os.LookupEnv(EnvPort); ok {
		c.Port = v
	}
	if v, ok := os.LookupEnv(EnvAPIURL); ok {
		c.APIURL = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvRateLimit); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvRateLimit, err)
		}
		c.RateLimit = f
	}
	if v, ok := os.LookupEnv(EnvRateBurst); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvRateBurst, err)
		}
		c.RateBurst = n
	}
	if v, ok := os.LookupEnv(EnvRequestTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvRequestTimeout, err)
		}
		c.RequestTimeout = d
	}
	return nil
}

// Validate reports the first setting out of range.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Addr is the listen address of the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
