package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
	BackendMemory = "memory"

	// DevSessionSecret is used when SESSION_SECRET is unset in development.
	DevSessionSecret = "dev-only-session-secret-do-not-use-in-production"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	StorageBackend string `env:"STORAGE_BACKEND, default=mongo"`

	Session  SessionConfig
	Comments CommentsConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

type SessionConfig struct {
	Backend      string        `env:"SESSION_BACKEND,       default=redis"`
	Secret       string        `env:"SESSION_SECRET"`
	TTL          time.Duration `env:"SESSION_TTL,           default=30m"`
	CookieName   string        `env:"SESSION_COOKIE_NAME,   default=SESSION"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE, default=false"`
}

type CommentsConfig struct {
	AllowAnonymous bool `env:"COMMENTS_ALLOW_ANONYMOUS, default=true"`
}

type AuthConfig struct {
	RevalidateRole bool   `env:"AUTH_REVALIDATE_ROLE, default=false"`
	PasswordScheme string `env:"PASSWORD_SCHEME,      default=plain"`
	// Optional admin account created at startup when it does not exist yet.
	BootstrapAdminUsername string `env:"ADMIN_USERNAME"`
	BootstrapAdminPassword string `env:"ADMIN_PASSWORD"`
}

type CORSConfig struct {
	Origins []string `env:"CORS_ORIGINS, default=http://localhost:5173"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=country_comments"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks cross-field rules and fills the development session secret.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendMongo, BackendMemory:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	switch c.Session.Backend {
	case BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.Session.Backend)
	}
	switch c.Auth.PasswordScheme {
	case "plain", "bcrypt":
	default:
		return fmt.Errorf("unknown PASSWORD_SCHEME %q", c.Auth.PasswordScheme)
	}
	if c.Session.Secret == "" {
		if !c.IsDevelopment() {
			return errors.New("SESSION_SECRET is required outside development")
		}
		c.Session.Secret = DevSessionSecret
	}
	if (c.Auth.BootstrapAdminUsername == "") != (c.Auth.BootstrapAdminPassword == "") {
		return errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}
	return nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from l and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
