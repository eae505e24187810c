package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process-wide configuration, sourced from the environment
// once at startup. Key material is PEM, optionally base64-wrapped.
type Config struct {
	DatabaseDSN string `env:"DOCVAULT_DATABASE_DSN"`

	BlobBackend   string `env:"DOCVAULT_BLOB_BACKEND" envDefault:"fs"`
	BlobFSRoot    string `env:"DOCVAULT_BLOB_FS_ROOT"`
	BlobGCSBucket string `env:"DOCVAULT_BLOB_GCS_BUCKET"`

	BlobTimeout   time.Duration `env:"DOCVAULT_BLOB_TIMEOUT" envDefault:"30s"`
	HashChunkSize int           `env:"DOCVAULT_HASH_CHUNK_SIZE" envDefault:"1048576"`

	SigningPrivateKeyPEM string `env:"DOCVAULT_SIGNING_PRIVATE_KEY_PEM"`
	SigningPublicKeyPEM  string `env:"DOCVAULT_SIGNING_PUBLIC_KEY_PEM"`

	RedisAddr     string `env:"DOCVAULT_REDIS_ADDR"`
	RedisPassword string `env:"DOCVAULT_REDIS_PASSWORD"`
	RedisDB       int    `env:"DOCVAULT_REDIS_DB" envDefault:"0"`
	// Report caching is opt-in; the zero default recomputes every audit.
	ReportCacheTTL time.Duration `env:"DOCVAULT_REPORT_CACHE_TTL" envDefault:"0s"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
