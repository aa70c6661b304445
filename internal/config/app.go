// Package config holds the process-level configuration of the API and the
// query CLI, read from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Storage drivers accepted in DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// App is the runtime configuration of cmd/api and cmd/query.
type App struct {
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080" validate:"required"`
	DatabaseURL string `env:"DATABASE_URL" validate:"required_if=DBDriver postgres"`
	DBDriver    string `env:"DB_DRIVER" envDefault:"postgres" validate:"oneof=postgres sqlite"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"blogful.db" validate:"required_if=DBDriver sqlite"`
	Version     string `env:"VERSION" envDefault:"dev"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json text"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s" validate:"gt=0s"`
	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS" envDefault:"20" validate:"gte=0"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST" envDefault:"40" validate:"gte=1"`

	DBBreakerEnabled bool    `env:"DB_BREAKER_ENABLED" envDefault:"true"`
	TracingEnabled   bool    `env:"TRACING_ENABLED" envDefault:"false"`
	TraceSampleRatio float64 `env:"TRACE_SAMPLE_RATIO" envDefault:"1" validate:"gte=0,lte=1"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadDotEnv loads variables from the given files (".env" when none) without
// overriding ones already set. Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// LoadApp parses and validates App from the environment.
func LoadApp() (*App, error) {
	var cfg App
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", describe(err))
	}
	return &cfg, nil
}

// describe turns validator errors into "FIELD: rule" pairs named by env key.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", envKey(fe.StructField()), fe.Tag()))
	}
	return errors.New(strings.Join(parts, "; "))
}

var envKeys = map[string]string{
	"HTTPAddr":         "HTTP_ADDR",
	"DatabaseURL":      "DATABASE_URL",
	"DBDriver":         "DB_DRIVER",
	"SQLitePath":       "SQLITE_PATH",
	"LogFormat":        "LOG_FORMAT",
	"RequestTimeout":   "REQUEST_TIMEOUT",
	"RateLimitRPS":     "RATE_LIMIT_RPS",
	"RateLimitBurst":   "RATE_LIMIT_BURST",
	"TraceSampleRatio": "TRACE_SAMPLE_RATIO",
}

func envKey(field string) string {
	if k, ok := envKeys[field]; ok {
		return k
	}
	return field
}
