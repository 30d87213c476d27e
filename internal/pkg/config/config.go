package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// CORSAllowedOrigins lists the site origins allowed to call the API with
	// credentials.
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=http://localhost:3000"`

	Auth       AuthConfig
	Admin      AdminConfig
	Mongo      MongoConfig
	Redis      RedisConfig
	RealtimeDB RealtimeDBConfig
}

type AuthConfig struct {
	JWTSecret        string        `env:"JWT_SECRET"`
	TokenTTL         time.Duration `env:"AUTH_TOKEN_TTL,          default=24h"`
	MaxLoginAttempts int           `env:"AUTH_MAX_LOGIN_ATTEMPTS, default=5"`
	LockoutWindow    time.Duration `env:"AUTH_LOCKOUT_WINDOW,     default=15m"`
}

type AdminConfig struct {
	Email        string `env:"ADMIN_EMAIL"`
	Password     string `env:"ADMIN_PASSWORD"`
	PasswordHash string `env:"ADMIN_PASSWORD_HASH"`
}

// MongoConfig leaves URI empty by default: no document store means projects
// come from static content and submissions are kept in memory.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=portfolio"`
}

// RedisConfig leaves Addr empty by default: rate limiting and token
// revocation then stay process-local.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type RealtimeDBConfig struct {
	ClientEmail string `env:"FIREBASE_CLIENT_EMAIL"`
	PrivateKey  string `env:"FIREBASE_PRIVATE_KEY"`
}

// IsDevelopment reports whether the process runs on a developer machine or
// under test. Cookies are only marked Secure outside development.
func (c *Config) IsDevelopment() bool {
	switch strings.ToLower(c.Env) {
	case "development", "dev", "local", "test":
		return true
	}
	return false
}

// Validate checks settings that cannot be defaulted.
func (c *Config) Validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" && !c.IsDevelopment() {
		errs = append(errs, errors.New("JWT_SECRET is required outside development"))
	}
	if c.Auth.JWTSecret != "" && len(c.Auth.JWTSecret) < 32 && !c.IsDevelopment() {
		errs = append(errs, errors.New("JWT_SECRET must be at least 32 characters"))
	}
	if c.Auth.MaxLoginAttempts <= 0 {
		errs = append(errs, fmt.Errorf("AUTH_MAX_LOGIN_ATTEMPTS must be positive, got %d", c.Auth.MaxLoginAttempts))
	}
	if c.Auth.LockoutWindow <= 0 {
		errs = append(errs, fmt.Errorf("AUTH_LOCKOUT_WINDOW must be positive, got %s", c.Auth.LockoutWindow))
	}
	return errors.Join(errs...)
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through lookuper and validates it.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
