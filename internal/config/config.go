package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName     string
	Environment string
	HTTP        HTTPConfig
	Store       StoreConfig
	Identity    IdentityConfig
	JWT         JWTConfig
	Context     ContextConfig
	Logger      LoggerConfig
	Migrations  MigrationsConfig
	Reminder    ReminderConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// StoreConfig selects and configures the document-store backend.
type StoreConfig struct {
	// Backend is "redis" or "bolt".
	Backend   string
	RedisURL  string
	RedisPass string
	RedisDB   int
	Namespace string
	BoltPath  string
}

type IdentityConfig struct {
	URL             string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	MaxOpenConns    int
	MaxIdleConns    int
	MaxConnLifetime time.Duration
	SSLMode         string
}

type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type MigrationsConfig struct {
	Enabled bool
	Path    string
}

type ReminderConfig struct {
	Enabled  bool
	Interval time.Duration
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the service can boot in any environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "tasksync"),
		Environment: getString("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Host:         getString("SERVER_HOST", "0.0.0.0"),
			Port:         getString("SERVER_PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		Store: StoreConfig{
			Backend:   getString("STORE_BACKEND", "redis"),
			RedisURL:  getString("REDIS_URL", "redis://localhost:6379"),
			RedisPass: os.Getenv("REDIS_PASSWORD"),
			RedisDB:   getInt("REDIS_DB", 0),
			Namespace: getString("STORE_NAMESPACE", "doc:"),
			BoltPath:  getString("BOLT_PATH", "./data/docs.db"),
		},
		Identity: IdentityConfig{
			URL:             os.Getenv("IDENTITY_DATABASE_URL"),
			Host:            getString("IDENTITY_DB_HOST", "localhost"),
			Port:            getString("IDENTITY_DB_PORT", "5432"),
			Name:            getString("IDENTITY_DB_NAME", "tasksync_identity"),
			User:            getString("IDENTITY_DB_USER", "tasksync"),
			Password:        os.Getenv("IDENTITY_DB_PASSWORD"),
			MaxOpenConns:    getInt("IDENTITY_DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getInt("IDENTITY_DB_MAX_IDLE_CONNS", 10),
			MaxConnLifetime: getDuration("IDENTITY_DB_CONN_LIFETIME", time.Hour),
			SSLMode:         getString("IDENTITY_DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			Issuer: getString("JWT_ISSUER", "tasksync"),
			TTL:    getDuration("JWT_TTL", 24*time.Hour),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 5*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
		Migrations: MigrationsConfig{
			Enabled: getBool("RUN_MIGRATIONS", true),
			Path:    getString("MIGRATIONS_PATH", "./assets/migrations"),
		},
		Reminder: ReminderConfig{
			Enabled:  getBool("REMINDER_ENABLED", true),
			Interval: getDuration("REMINDER_INTERVAL", time.Hour),
		},
	}

	if cfg.Identity.URL == "" {
		cfg.Identity.URL = buildIdentityURL(cfg)
	}

	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func buildIdentityURL(cfg *Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Identity.User,
		cfg.Identity.Password,
		cfg.Identity.Host,
		cfg.Identity.Port,
		cfg.Identity.Name,
		cfg.Identity.SSLMode,
	)
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}
