// Package config reads the runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const minSecretLen = 32

type Config struct {
	DBDriver        string `env:"DB_DRIVER,default=postgres"`
	DatabaseURL     string `env:"DATABASE_URL"`
	PostgresUser    string `env:"POSTGRES_USER"`
	PostgresPass    string `env:"POSTGRES_PASSWORD"`
	PostgresDB      string `env:"POSTGRES_DB"`
	PostgresHost    string `env:"POSTGRES_HOST,default=localhost"`
	PostgresPort    string `env:"POSTGRES_PORT,default=5432"`
	PostgresSSLMode string `env:"POSTGRES_SSLMODE,default=disable"`
	AutoMigrate     bool   `env:"DB_AUTO_MIGRATE,default=false"`

	ServerPort      string        `env:"SERVER_PORT,default=8080"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT,default=5s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=5s"`
	CORSOrigins     string        `env:"CORS_ALLOWED_ORIGINS"`

	JWTSecret   string        `env:"JWT_SECRET,required"`
	JWTIssuer   string        `env:"JWT_ISSUER,default=task-tracker"`
	JWTAudience string        `env:"JWT_AUDIENCE,default=task-tracker-clients"`
	JWTExpires  time.Duration `env:"JWT_EXPIRES,default=60m"`

	LoginRatePerMinute int `env:"LOGIN_RATE_PER_MINUTE,default=5"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`
	LogFile   string `env:"LOG_FILE"`
}

// Load reads .env when present, decodes the environment and validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if len(c.JWTSecret) < minSecretLen {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretLen)
	}
	switch c.DBDriver {
	case "postgres":
		if c.DatabaseURL == "" {
			for name, v := range map[string]string{
				"POSTGRES_USER":     c.PostgresUser,
				"POSTGRES_PASSWORD": c.PostgresPass,
				"POSTGRES_DB":       c.PostgresDB,
			} {
				if v == "" {
					return fmt.Errorf("environment variable %s must be set when DATABASE_URL is empty", name)
				}
			}
		}
	case "sqlite3":
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL must name the sqlite file")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.JWTExpires <= 0 {
		return errors.New("JWT_EXPIRES must be positive")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}
	if c.LoginRatePerMinute <= 0 {
		return errors.New("LOGIN_RATE_PER_MINUTE must be positive")
	}
	return nil
}

// DSN returns DATABASE_URL or a postgres DSN built from the POSTGRES_* variables.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUser, c.PostgresPass),
		Host:     c.PostgresHost + ":" + c.PostgresPort,
		Path:     c.PostgresDB,
		RawQuery: "sslmode=" + url.QueryEscape(c.PostgresSSLMode),
	}
	return u.String()
}

func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
