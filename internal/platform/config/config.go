// Package config loads the server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the root configuration of the server.
type Config struct {
	HTTP   HTTPConfig   `envPrefix:"HTTP_"`
	DB     DBConfig     `envPrefix:"DB_"`
	Redis  RedisConfig  `envPrefix:"REDIS_"`
	JWT    JWTConfig    `envPrefix:"JWT_"`
	Gemini GeminiConfig `envPrefix:"GEMINI_"`
	SMTP   SMTPConfig   `envPrefix:"SMTP_"`
	Log    LogConfig    `envPrefix:"LOG_"`
	Cache  CacheConfig  `envPrefix:"CACHE_"`

	// CORSOrigins lists the browser origins allowed to call the API.
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	// AdminEmail, when set, is promoted to superuser at startup.
	AdminEmail string `env:"ADMIN_EMAIL"`
}

// HTTPConfig holds listener settings.
type HTTPConfig struct {
	ListenAddr      string        `env:"LISTEN_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"60s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// RateLimit caps calls per client to the auth and scoring endpoints
	// within RateWindow. Zero disables limiting.
	RateLimit  int           `env:"RATE_LIMIT" envDefault:"20"`
	RateWindow time.Duration `env:"RATE_WINDOW" envDefault:"1m"`
}

// DBConfig selects and configures the relational store.
// Driver is either "postgres" or "sqlite"; Path is only used by sqlite.
type DBConfig struct {
	Driver         string        `env:"DRIVER" envDefault:"sqlite"`
	Host           string        `env:"HOST" envDefault:"localhost"`
	Port           string        `env:"PORT" envDefault:"5432"`
	User           string        `env:"USER"`
	Password       string        `env:"PASSWORD"`
	Name           string        `env:"NAME" envDefault:"ielts"`
	SSLMode        string        `env:"SSLMODE" envDefault:"disable"`
	Path           string        `env:"PATH" envDefault:"./ielts.db"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"60s"`
	RunMigrations  bool          `env:"RUN_MIGRATIONS" envDefault:"true"`
}

// RedisConfig configures the optional Redis connection. An empty Host disables Redis.
type RedisConfig struct {
	Host     string `env:"HOST"`
	Port     string `env:"PORT" envDefault:"6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// Addr returns host:port.
func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// JWTConfig configures access token signing.
type JWTConfig struct {
	Secret     string        `env:"SECRET"`
	Expiration time.Duration `env:"EXPIRATION" envDefault:"24h"`
}

// GeminiConfig configures the scoring provider.
type GeminiConfig struct {
	DefaultModel string        `env:"DEFAULT_MODEL" envDefault:"gemini-2.5-flash"`
	Timeout      time.Duration `env:"TIMEOUT" envDefault:"30s"`
	BaseURL      string        `env:"BASE_URL"`
}

// SMTPConfig configures the verification mailer. An empty Host disables mail delivery.
type SMTPConfig struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"`
}

// Enabled reports whether mail delivery is configured.
func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Pretty bool   `env:"PRETTY" envDefault:"false"`
}

// CacheConfig configures the Redis-backed topic cache.
type CacheConfig struct {
	TopicTTL time.Duration `env:"TOPIC_TTL" envDefault:"5m"`
}

// Load reads an optional .env file and parses the environment into a Config.
// A missing .env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	// godotenv never overrides variables that are already set.
	_ = godotenv.Load(envFiles...)

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("missing JWT_SECRET environment variable")
	}
	if c.HTTP.RateLimit > 0 && c.HTTP.RateWindow <= 0 {
		return fmt.Errorf("HTTP_RATE_WINDOW must be positive when HTTP_RATE_LIMIT is set")
	}
	if c.Gemini.Timeout <= 0 {
		return fmt.Errorf("GEMINI_TIMEOUT must be positive")
	}
	if c.HTTP.WriteTimeout <= c.Gemini.Timeout {
		return fmt.Errorf("HTTP_WRITE_TIMEOUT must exceed GEMINI_TIMEOUT")
	}
	if c.SMTP.Enabled() && c.SMTP.From == "" {
		return fmt.Errorf("missing SMTP_FROM environment variable")
	}
	return nil
}
