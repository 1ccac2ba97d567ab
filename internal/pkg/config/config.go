package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"golang.org/x/crypto/bcrypt"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET, required"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Session   SessionConfig
	Seed      SeedConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	AMQP      AMQPConfig
	Activity  ActivityConfig
}

type SessionConfig struct {
	CookieName        string        `env:"SESSION_COOKIE,      default=tawi-tawi-session"`
	TTL               time.Duration `env:"SESSION_TTL,         default=168h"`
	DelegatedTokenTTL time.Duration `env:"DELEGATED_TOKEN_TTL, default=5m"`
	BcryptCost        int           `env:"BCRYPT_COST,         default=12"`
}

// SeedConfig creates the first super admin on an empty user store. An
// empty password disables seeding.
type SeedConfig struct {
	Username string `env:"SEED_ADMIN_USERNAME, default=admin"`
	Password string `env:"SEED_ADMIN_PASSWORD"`
}

type MongoConfig struct {
	URI          string `env:"MONGO_URI,          default=mongodb://localhost:27017"`
	Database     string `env:"MONGO_DB,           default=tawitawi_portal"`
	Transactions bool   `env:"MONGO_TRANSACTIONS, default=true"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type RateLimitConfig struct {
	Enabled        bool          `env:"RATE_LIMIT_ENABLED,         default=true"`
	Capacity       int           `env:"RATE_LIMIT_CAPACITY,        default=10"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL, default=6s"`
	TTL            time.Duration `env:"RATE_LIMIT_TTL,             default=10m"`
}

// AMQPConfig enables publishing of activity entries. An empty URL disables it.
type AMQPConfig struct {
	URL   string `env:"AMQP_URL"`
	Queue string `env:"AMQP_QUEUE, default=portal.activity"`
}

type ActivityConfig struct {
	Workers int `env:"ACTIVITY_WORKERS, default=2"`
	Buffer  int `env:"ACTIVITY_BUFFER,  default=256"`
}

// IsProduction reports whether cookies must be marked Secure.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads a .env file when present, then configuration from environment
// variables using go-envconfig.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := LoadFrom(envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom processes configuration from l.
func LoadFrom(l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}
	if len(cfg.JWTSecret) < 16 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	if cfg.Session.BcryptCost < domain.MinBcryptCost || cfg.Session.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", domain.MinBcryptCost, bcrypt.MaxCost, cfg.Session.BcryptCost)
	}
	if cfg.RateLimit.RefillInterval <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_REFILL_INTERVAL must be positive, got %s", cfg.RateLimit.RefillInterval)
	}
	return &cfg, nil
}
