package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Settlement modes.
const (
	SettlementOpen    = "open"
	SettlementMetered = "metered"
)

// Server captures process level configuration.
type Server struct {
	Addr            string        `env:"REGISTRY_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Log      LogConfig      `envPrefix:"LOG_"`
	Store    StoreConfig    `envPrefix:"STORE_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	Kafka    KafkaConfig    `envPrefix:"KAFKA_"`
	JWT      JWTConfig      `envPrefix:"JWT_"`
	Registry RegistryConfig `envPrefix:"REGISTRY_"`

	// RequireAuthorityCallerForParams restricts parameter setters to the
	// configured authority instead of any caller once an authority exists.
	RequireAuthorityCallerForParams bool `env:"REQUIRE_AUTHORITY_CALLER_FOR_PARAMS" envDefault:"false"`
}

// LogConfig controls the slog handler and optional file rotation.
type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
	// File enables a rotating log file next to stdout when set.
	File       string `env:"FILE"`
	MaxSizeMB  int    `env:"MAX_SIZE_MB" envDefault:"100"`
	MaxBackups int    `env:"MAX_BACKUPS" envDefault:"3"`
	MaxAgeDays int    `env:"MAX_AGE_DAYS" envDefault:"28"`
}

// StoreConfig selects the registry persistence backend.
type StoreConfig struct {
	Backend     string `env:"BACKEND" envDefault:"memory"`
	PostgresURL string `env:"POSTGRES_URL"`
	// MigrateOnStart applies embedded migrations before serving.
	MigrateOnStart bool `env:"MIGRATE_ON_START" envDefault:"true"`
	MaxOpenConns   int  `env:"MAX_OPEN_CONNS" envDefault:"10"`
}

// RedisConfig configures the optional hash existence cache. An empty URL
// disables it.
type RedisConfig struct {
	URL          string        `env:"URL"`
	PoolSize     int           `env:"POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"3s"`
	KeyPrefix    string        `env:"KEY_PREFIX" envDefault:"registry:hash:"`
}

// KafkaConfig configures the optional audit sink. No brokers disables it.
type KafkaConfig struct {
	Brokers    []string `env:"BROKERS" envSeparator:","`
	AuditTopic string   `env:"AUDIT_TOPIC" envDefault:"registry.audit"`
	ClientID   string   `env:"CLIENT_ID" envDefault:"contribution-registry"`
	// Partitions and ReplicationFactor apply when the topic is created on start.
	Partitions        int32 `env:"AUDIT_PARTITIONS" envDefault:"3"`
	ReplicationFactor int16 `env:"AUDIT_REPLICATION_FACTOR" envDefault:"1"`
}

// JWTConfig configures bearer token validation.
type JWTConfig struct {
	SigningKey string        `env:"SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	Issuer     string        `env:"ISSUER" envDefault:"contribution-registry"`
	Audience   string        `env:"AUDIENCE" envDefault:"contribution-registry"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
}

// RegistryConfig seeds a fresh registry and the settlement ledger.
type RegistryConfig struct {
	MaxContributions    uint64 `env:"MAX_CONTRIBUTIONS" envDefault:"10000"`
	SubmissionFee       int64  `env:"SUBMISSION_FEE" envDefault:"500"`
	RewardRate          int64  `env:"REWARD_RATE" envDefault:"10"`
	ValidationThreshold int64  `env:"VALIDATION_THRESHOLD" envDefault:"3"`
	SettlementMode      string `env:"SETTLEMENT_MODE" envDefault:"open"`
	// OpeningBalance is credited to each principal on first sight in metered mode.
	OpeningBalance int64 `env:"OPENING_BALANCE" envDefault:"0"`
	AuditBuffer    int   `env:"AUDIT_BUFFER" envDefault:"0"`
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate rejects combinations the server cannot start with.
func (c Server) Validate() error {
	switch c.Store.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.Store.PostgresURL == "" {
			return fmt.Errorf("STORE_POSTGRES_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	switch c.Registry.SettlementMode {
	case SettlementOpen, SettlementMetered:
	default:
		return fmt.Errorf("unknown settlement mode %q", c.Registry.SettlementMode)
	}
	if c.JWT.SigningKey == "" {
		return fmt.Errorf("JWT_SIGNING_KEY must not be empty")
	}
	if c.Registry.OpeningBalance < 0 {
		return fmt.Errorf("REGISTRY_OPENING_BALANCE cannot be negative")
	}
	return nil
}
