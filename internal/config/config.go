package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/Amund211/dotaprofile/internal/constants"
	"github.com/joho/godotenv"
)

var ErrMissingRequiredValue = errors.New("missing required value")
var ErrInvalidValue = errors.New("invalid value")

type environment string

const (
	production  environment = "production"
	staging     environment = "staging"
	development environment = "development"
)

const defaultPort = "8123"

type Config struct {
	stratzAPIToken string
	steamAPIKey    string
	sentryDSN      string
	port           string
	requestTimeout time.Duration
	env            environment
}

func (c *Config) StratzAPIToken() string {
	return c.stratzAPIToken
}

func (c *Config) SteamAPIKey() string {
	return c.steamAPIKey
}

func (c *Config) SentryDSN() string {
	return c.sentryDSN
}

func (c *Config) Port() string {
	return c.port
}

// RequestTimeout bounds the time spent fetching a single profile
func (c *Config) RequestTimeout() time.Duration {
	return c.requestTimeout
}

func (c *Config) Environment() string {
	return string(c.env)
}

func (c *Config) IsProduction() bool {
	return c.env == production
}

func (c *Config) IsStaging() bool {
	return c.env == staging
}

func (c *Config) IsDevelopment() bool {
	return c.env == development
}

// Return a string representation suitable for logging etc
func (c *Config) NonSensitiveString() string {
	return fmt.Sprintf("Config{env: %s, port: %s, requestTimeout: %s, ...}", string(c.env), c.port, c.requestTimeout)
}

// LoadDotEnv adds the variables in the given files (default .env) to the environment.
//
// Variables that are already set are not overridden. Missing files are ignored.
func LoadDotEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

func ConfigFromEnv() (Config, error) {
	missingKey := func(key string) (Config, error) {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingRequiredValue, key)
	}

	var env environment
	rawEnv, ok := os.LookupEnv("DOTAPROFILE_ENVIRONMENT")
	if !ok {
		return missingKey("DOTAPROFILE_ENVIRONMENT")
	}
	switch rawEnv {
	case "production":
		env = production
	case "staging":
		env = staging
	case "development":
		env = development
	default:
		return Config{}, fmt.Errorf("%w: DOTAPROFILE_ENVIRONMENT (%s)", ErrInvalidValue, rawEnv)
	}
	if string(env) == "" {
		panic("logic error: env is empty")
	}

	stratzAPIToken := os.Getenv("STRATZ_API_TOKEN")
	steamAPIKey := os.Getenv("STEAM_API_KEY")
	sentryDSN := os.Getenv("SENTRY_DSN")

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	if parsed, err := strconv.Atoi(port); err != nil || parsed <= 0 || parsed > 65535 {
		return Config{}, fmt.Errorf("%w: PORT (%s)", ErrInvalidValue, port)
	}

	requestTimeout := constants.DEFAULT_REQUEST_TIMEOUT
	if rawTimeout := os.Getenv("REQUEST_TIMEOUT"); rawTimeout != "" {
		parsed, err := time.ParseDuration(rawTimeout)
		if err != nil || parsed <= 0 {
			return Config{}, fmt.Errorf("%w: REQUEST_TIMEOUT (%s)", ErrInvalidValue, rawTimeout)
		}
		requestTimeout = parsed
	}

	if env == production || env == staging {
		if stratzAPIToken == "" {
			return missingKey("STRATZ_API_TOKEN")
		}
		if steamAPIKey == "" {
			return missingKey("STEAM_API_KEY")
		}
		if sentryDSN == "" {
			return missingKey("SENTRY_DSN")
		}
	}

	return Config{
		stratzAPIToken: stratzAPIToken,
		steamAPIKey:    steamAPIKey,
		sentryDSN:      sentryDSN,
		port:           port,
		requestTimeout: requestTimeout,
		env:            env,
	}, nil
}
