package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Firebase FirebaseConfig
	SendGrid SendGridConfig
	Alerts   AlertConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=donor_registry"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type FirebaseConfig struct {
	ProjectID string `env:"FIREBASE_PROJECT_ID"`
	// CredentialsJSON holds the service-account key inline. When empty the
	// Admin SDK falls back to application default credentials.
	CredentialsJSON string `env:"FIREBASE_CREDENTIALS_JSON"`
	// APIKey is the Web API key used by the password sign-in endpoint.
	APIKey string `env:"FIREBASE_API_KEY"`
}

type SendGridConfig struct {
	APIKey    string `env:"SENDGRID_API_KEY"`
	FromEmail string `env:"SENDGRID_FROM_EMAIL, default=no-reply@bloodlink.example"`
	FromName  string `env:"SENDGRID_FROM_NAME,  default=BloodLink Registry"`
}

type AlertConfig struct {
	Workers int `env:"ALERT_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
