// Package config loads service configuration from the environment, with an
// optional Vault KV v2 overlay when VAULT_ADDR is set. Environment variables
// always provide the baseline; Vault values override them key by key so local
// development works with no Vault at all.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// S3Config holds object store settings. Endpoint and ForcePathStyle exist for
// MinIO and localstack setups.
type S3Config struct {
	Bucket         string
	Region         string
	Endpoint       string
	ForcePathStyle bool
}

// SummaryConfig controls the post-parse summarization step. When Enabled is
// false (no API key configured) sessions stop at the parsed lifecycle state.
type SummaryConfig struct {
	Enabled         bool
	APIKey          string
	Model           string
	Temperature     float64
	MaxOutputTokens int
}

// WSConfig holds WebSocket keepalive tuning.
type WSConfig struct {
	PingInterval time.Duration
	PongTimeout  time.Duration
}

// PipelineConfig bounds the transcript post-processing pipeline.
type PipelineConfig struct {
	MaxConcurrency int
	QueueCapacity  int
}

// Config is the full service configuration.
type Config struct {
	DatabaseURL string
	NatsURL     string
	RedisURL    string
	APIKey      string
	HTTPAddr    string

	S3       S3Config
	Summary  SummaryConfig
	WS       WSConfig
	Pipeline PipelineConfig

	OTELEndpoint string
}

// Load builds the configuration from environment variables and, when
// VAULT_ADDR is set, overlays secrets read from the KV v2 path in
// VAULT_SECRET_PATH (default "secret/data/devtrail/api").
func Load(logger *zap.Logger) (*Config, error) {
	cfg := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		NatsURL:      envOr("NATS_URL", "nats://localhost:4222"),
		RedisURL:     os.Getenv("REDIS_URL"),
		APIKey:       os.Getenv("API_KEY"),
		HTTPAddr:     envOr("HTTP_ADDR", ":8080"),
		OTELEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		S3: S3Config{
			Bucket:         envOr("S3_BUCKET", "devtrail"),
			Region:         envOr("S3_REGION", "us-east-1"),
			Endpoint:       os.Getenv("S3_ENDPOINT"),
			ForcePathStyle: envBool("S3_FORCE_PATH_STYLE", false),
		},
		Summary: SummaryConfig{
			APIKey:          os.Getenv("ANTHROPIC_API_KEY"),
			Model:           envOr("SUMMARY_MODEL", "claude-3-5-haiku-latest"),
			Temperature:     envFloat("SUMMARY_TEMPERATURE", 0.2),
			MaxOutputTokens: envInt("SUMMARY_MAX_OUTPUT_TOKENS", 1024),
		},
		WS: WSConfig{
			PingInterval: envDurationMS("WS_PING_INTERVAL_MS", 60*time.Second),
			PongTimeout:  envDurationMS("WS_PONG_TIMEOUT_MS", 10*time.Second),
		},
		Pipeline: PipelineConfig{
			MaxConcurrency: envInt("PIPELINE_MAX_CONCURRENCY", 4),
			QueueCapacity:  envInt("PIPELINE_QUEUE_CAPACITY", 256),
		},
	}

	if vaultAddr := os.Getenv("VAULT_ADDR"); vaultAddr != "" {
		if err := cfg.overlayVault(vaultAddr, logger); err != nil {
			return nil, err
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY is required")
	}

	cfg.Summary.Enabled = cfg.Summary.APIKey != ""
	return cfg, nil
}

func (c *Config) overlayVault(vaultAddr string, logger *zap.Logger) error {
	vaultToken := envOr("VAULT_TOKEN", "root")
	secretPath := envOr("VAULT_SECRET_PATH", "secret/data/devtrail/api")

	manager, err := NewSecretManager(vaultAddr, vaultToken)
	if err != nil {
		return fmt.Errorf("vault connection failed: %w", err)
	}

	secrets, err := manager.GetKV2(secretPath)
	if err != nil {
		return fmt.Errorf("failed to load secrets from Vault: %w", err)
	}

	overlay := func(key string, dst *string) {
		if v, ok := secrets[key].(string); ok && v != "" {
			*dst = v
		}
	}
	overlay("DATABASE_URL", &c.DatabaseURL)
	overlay("NATS_URL", &c.NatsURL)
	overlay("REDIS_URL", &c.RedisURL)
	overlay("API_KEY", &c.APIKey)
	overlay("S3_BUCKET", &c.S3.Bucket)
	overlay("S3_ENDPOINT", &c.S3.Endpoint)
	overlay("ANTHROPIC_API_KEY", &c.Summary.APIKey)

	logger.Info("Vault secrets overlaid", zap.String("path", secretPath))
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envDurationMS(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}
