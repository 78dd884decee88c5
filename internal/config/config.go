package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig          `yaml:"app"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	Logger       LoggerConfig       `yaml:"logger"`
	Auth         AuthConfig         `yaml:"auth"`
	Bootstrap    BootstrapConfig    `yaml:"bootstrap"`
	Lifecycle    LifecycleConfig    `yaml:"lifecycle"`
	Notification NotificationConfig `yaml:"notification"`
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string `yaml:"name"`
	Env                   string `yaml:"env"`
	Host                  string `yaml:"host"`
	Port                  string `yaml:"port"`
	Version               string `yaml:"version"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
}

// DatabaseConfig holds relational store connection values.
type DatabaseConfig struct {
	Driver         string `yaml:"driver"`
	DSN            string `yaml:"dsn"`
	MaxConns       int32  `yaml:"max_conns"`
	MinConns       int32  `yaml:"min_conns"`
	RunMigrations  bool   `yaml:"run_migrations"`
	ConnMaxIdleSec int32  `yaml:"conn_max_idle_seconds"`
	ConnMaxLifeSec int32  `yaml:"conn_max_life_seconds"`
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string `yaml:"level"`
}

// AuthConfig defines token signing and password hashing parameters.
type AuthConfig struct {
	JWTSecret             string `yaml:"jwt_secret"`
	Issuer                string `yaml:"issuer"`
	Audience              string `yaml:"audience"`
	AccessTokenTTLMinutes int    `yaml:"access_token_ttl_minutes"`
	BcryptCost            int    `yaml:"bcrypt_cost"`
}

// BootstrapConfig describes the seeded administrator account.
type BootstrapConfig struct {
	AdminUsername string `yaml:"admin_username"`
	AdminPassword string `yaml:"admin_password"`
}

// LifecycleConfig toggles transition guards.
type LifecycleConfig struct {
	Strict bool `yaml:"strict"`
}

// NotificationConfig controls work order notification dispatch.
type NotificationConfig struct {
	Enabled bool   `yaml:"enabled"`
	Channel string `yaml:"channel"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:                  "ticketing-api",
			Env:                   "development",
			Host:                  "0.0.0.0",
			Port:                  "8080",
			Version:               "dev",
			RequestTimeoutSeconds: 30,
		},
		Database: DatabaseConfig{
			Driver:         DriverPostgres,
			MaxConns:       10,
			MinConns:       2,
			RunMigrations:  true,
			ConnMaxIdleSec: 30,
			ConnMaxLifeSec: 300,
		},
		Redis: RedisConfig{
			Addr: "127.0.0.1:6379",
		},
		Logger: LoggerConfig{
			Level: "info",
		},
		Auth: AuthConfig{
			JWTSecret:             "dev-secret",
			Issuer:                "ticketing-api",
			Audience:              "ticketing-clients",
			AccessTokenTTLMinutes: 180,
			BcryptCost:            12,
		},
		Bootstrap: BootstrapConfig{
			AdminUsername: "admin",
			AdminPassword: "admin123",
		},
		Notification: NotificationConfig{
			Enabled: true,
			Channel: "workorders.notifications",
		},
	}
}

// Load reads configuration from CONFIG_FILE (if set) and environment variables.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv("CONFIG_FILE"))
}

// LoadFrom layers defaults, the optional YAML file at path and environment
// variables, in that order.
func LoadFrom(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnv("APP_PORT", cfg.App.Port)
	cfg.App.Version = getEnv("APP_VERSION", cfg.App.Version)
	cfg.App.RequestTimeoutSeconds = getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", cfg.App.RequestTimeoutSeconds)

	cfg.Database.Driver = strings.ToLower(getEnv("DB_DRIVER", cfg.Database.Driver))
	cfg.Database.DSN = getEnv("DATABASE_DSN", getEnv("POSTGRES_DSN", cfg.Database.DSN))
	cfg.Database.MaxConns = int32(getEnvAsInt("DB_MAX_CONNS", int(cfg.Database.MaxConns)))
	cfg.Database.MinConns = int32(getEnvAsInt("DB_MIN_CONNS", int(cfg.Database.MinConns)))
	cfg.Database.RunMigrations = getEnvAsBool("DB_RUN_MIGRATIONS", cfg.Database.RunMigrations)
	cfg.Database.ConnMaxIdleSec = int32(getEnvAsInt("DB_CONN_MAX_IDLE_SECONDS", int(cfg.Database.ConnMaxIdleSec)))
	cfg.Database.ConnMaxLifeSec = int32(getEnvAsInt("DB_CONN_MAX_LIFE_SECONDS", int(cfg.Database.ConnMaxLifeSec)))

	if raw := os.Getenv("REDIS_DB"); raw != "" {
		redisDB, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.Redis.DB = redisDB
	}
	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)

	cfg.Logger.Level = getEnv("LOG_LEVEL", cfg.Logger.Level)

	cfg.Auth.JWTSecret = getEnv("AUTH_JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.Issuer = getEnv("AUTH_JWT_ISSUER", cfg.Auth.Issuer)
	cfg.Auth.Audience = getEnv("AUTH_JWT_AUDIENCE", cfg.Auth.Audience)
	cfg.Auth.AccessTokenTTLMinutes = getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", cfg.Auth.AccessTokenTTLMinutes)
	cfg.Auth.BcryptCost = getEnvAsInt("AUTH_BCRYPT_COST", cfg.Auth.BcryptCost)

	cfg.Bootstrap.AdminUsername = getEnv("BOOTSTRAP_ADMIN_USERNAME", cfg.Bootstrap.AdminUsername)
	cfg.Bootstrap.AdminPassword = getEnv("BOOTSTRAP_ADMIN_PASSWORD", cfg.Bootstrap.AdminPassword)

	cfg.Lifecycle.Strict = getEnvAsBool("LIFECYCLE_STRICT", cfg.Lifecycle.Strict)

	cfg.Notification.Enabled = getEnvAsBool("NOTIFY_ENABLED", cfg.Notification.Enabled)
	cfg.Notification.Channel = getEnv("NOTIFY_CHANNEL", cfg.Notification.Channel)
	return nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	var errs []error
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver))
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		errs = append(errs, errors.New("AUTH_JWT_SECRET must not be empty"))
	}
	if c.Auth.Issuer == "" || c.Auth.Audience == "" {
		errs = append(errs, errors.New("AUTH_JWT_ISSUER and AUTH_JWT_AUDIENCE are required"))
	}
	if c.Auth.AccessTokenTTLMinutes <= 0 {
		errs = append(errs, errors.New("AUTH_ACCESS_TOKEN_TTL_MINUTES must be positive"))
	}
	if c.Bootstrap.AdminUsername == "" || c.Bootstrap.AdminPassword == "" {
		errs = append(errs, errors.New("bootstrap admin credentials are required"))
	}
	return errors.Join(errs...)
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// AccessTokenTTL returns the lifetime of issued access tokens.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
