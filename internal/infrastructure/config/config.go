package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Weak built-in signing secrets. Production deployments must override both.
const (
	DefaultJWTSecret    = "clinicflow-dev-secret"
	DefaultJWTWebSecret = "clinicflow-dev-web-secret"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT   JWTConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type JWTConfig struct {
	Secret               string        `env:"JWT_SECRET,                   default=clinicflow-dev-secret"`
	WebSecret            string        `env:"JWT_WEB_SECRET,               default=clinicflow-dev-web-secret"`
	AccessTTL            time.Duration `env:"ACCESS_TOKEN_TTL,             default=24h"`
	RefreshTTL           time.Duration `env:"REFRESH_TOKEN_TTL,            default=48h"`
	StandaloneRefreshTTL time.Duration `env:"STANDALONE_REFRESH_TOKEN_TTL, default=168h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=clinicflow_auth"`
}

// RedisConfig configures the optional user cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	DB       int           `env:"REDIS_DB,       default=0"`
	CacheTTL time.Duration `env:"USER_CACHE_TTL, default=5m"`
}

// Production reports whether ENV selects production mode.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// WeakSecrets lists the signing secrets still set to their built-in default.
func (c *Config) WeakSecrets() []string {
	var weak []string
	if c.JWT.Secret == DefaultJWTSecret {
		weak = append(weak, "JWT_SECRET")
	}
	if c.JWT.WebSecret == DefaultJWTWebSecret {
		weak = append(weak, "JWT_WEB_SECRET")
	}
	return weak
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith resolves configuration through an arbitrary lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
