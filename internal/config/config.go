package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreDynamoDB = "dynamodb"
)

type Config struct {
	Port     string
	Env      string
	LogLevel slog.Level

	Store       string
	DatabaseURL string
	SQLitePath  string
	DynamoDB    DynamoDBConfig

	JWTSecret string
	JWTExpiry time.Duration

	VaultOwner string

	RateLimitRPS   float64
	RateLimitBurst int
}

type DynamoDBConfig struct {
	Table           string
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	expiry, err := time.ParseDuration(getEnv("JWT_EXPIRY", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY: %w", err)
	}
	if expiry <= 0 {
		return nil, fmt.Errorf("invalid JWT_EXPIRY: must be positive")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "10"), 64)
	if err != nil || rps <= 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %q", getEnv("RATE_LIMIT_RPS", "10"))
	}

	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "20"))
	if err != nil || burst <= 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %q", getEnv("RATE_LIMIT_BURST", "20"))
	}

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: level,

		Store:       getEnv("VAULT_STORE", StorePostgres),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("SQLITE_PATH", "vault.db"),
		DynamoDB: DynamoDBConfig{
			Table:           getEnv("DYNAMODB_TABLE", "credential-vault"),
			Endpoint:        getEnv("DYNAMODB_ENDPOINT", ""),
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		},

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: expiry,

		VaultOwner: getEnv("VAULT_OWNER", ""),

		RateLimitRPS:   rps,
		RateLimitBurst: burst,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite, StoreDynamoDB:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s store", StorePostgres)
		}
	default:
		return fmt.Errorf("unknown VAULT_STORE %q", c.Store)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("required environment variable not set: JWT_SECRET")
	}
	if c.VaultOwner == "" {
		return fmt.Errorf("required environment variable not set: VAULT_OWNER")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
