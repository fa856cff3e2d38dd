// Package config loads afetch settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/gkatanacio/artifact-fetcher/download"
)

const envPrefix = "AFETCH"

// Config holds every tunable. Each field maps to AFETCH_<NAME>.
type Config struct {
	InstallDir        string        `envconfig:"INSTALL_DIR"`
	Binary            string        `envconfig:"BINARY" default:"appc" validate:"required"`
	TempDir           string        `envconfig:"TEMP_DIR"`
	MaxAttempts       int           `envconfig:"MAX_ATTEMPTS" default:"5" validate:"min=1,max=20"`
	NetworkRetryDelay time.Duration `envconfig:"NETWORK_RETRY_DELAY" default:"5s" validate:"gte=0"`
	BackoffStep       time.Duration `envconfig:"BACKOFF_STEP" default:"2s" validate:"gte=0"`
	MaxRedirects      int           `envconfig:"MAX_REDIRECTS" default:"10" validate:"min=1,max=50"`
	DialTimeout       time.Duration `envconfig:"DIAL_TIMEOUT" default:"30s" validate:"gte=0"`
	RateLimit         int           `envconfig:"RATE_LIMIT" default:"0" validate:"gte=0"`
	LogLevel          string        `envconfig:"LOG_LEVEL" default:"warn" validate:"oneof=debug info warn error"`
	NoColor           bool          `envconfig:"NO_COLOR" default:"false"`
}

var validate = validator.New()

// Load reads the given .env files (".env" when none are named), then the
// process environment, and validates the result. Missing .env files are
// ignored; variables already set in the environment win.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("processing environment: %w", err)
	}

	if cfg.InstallDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolving home dir: %w", err)
		}
		cfg.InstallDir = filepath.Join(home, ".afetch", "install")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// RetryPolicy builds the download retry policy.
func (c Config) RetryPolicy() download.RetryPolicy {
	return download.RetryPolicy{
		MaxAttempts:  c.MaxAttempts,
		NetworkDelay: c.NetworkRetryDelay,
		BackoffStep:  c.BackoffStep,
	}
}

// Level maps LogLevel to a slog level.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
