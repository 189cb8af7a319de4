package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServerPort  string `envconfig:"SERVER_PORT" default:"5000"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	Migrate     bool   `envconfig:"DB_MIGRATE" default:"true"`

	// AccessTokenSecret signs the tokens issued by GET /jwt.
	AccessTokenSecret string        `envconfig:"ACCESS_TOKEN" required:"true"`
	AccessTokenTTL    time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"1h"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	LogLevel           string   `envconfig:"LOG_LEVEL" default:"info"`

	Stripe struct {
		APIURL    string `envconfig:"API_URL" default:"https://api.stripe.com"`
		SecretKey string `envconfig:"SECRET_KEY" required:"true"`
	} `envconfig:"STRIPE"`

	Telemetry struct {
		Exporter     string `envconfig:"TRACES_EXPORTER" default:"none"`
		OTLPEndpoint string `envconfig:"EXPORTER_OTLP_ENDPOINT" default:"localhost:4317"`
		ServiceName  string `envconfig:"SERVICE_NAME" default:"mobile-resale-market"`
	} `envconfig:"OTEL"`
}

func Load() (*Config, error) {
	// Load .env file if it exists (useful for local dev)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	switch cfg.Telemetry.Exporter {
	case "none", "stdout", "otlp":
	default:
		return nil, fmt.Errorf("OTEL_TRACES_EXPORTER must be one of none, stdout, otlp; got %q", cfg.Telemetry.Exporter)
	}
	return &cfg, nil
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
