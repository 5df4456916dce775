// Package config handles configuration loading and validation.
//
// Configuration is an explicit structure passed to the components at call
// time, never process-wide mutable state. Values come from an optional YAML
// file overridden by environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/annrecall"
	"github.com/hupe1980/annrecall/distance"
)

// Config holds all evaluation run configuration.
type Config struct {
	// Evaluation parameters
	Metric  string  `envconfig:"ANNRECALL_METRIC" yaml:"metric"`
	K       int     `envconfig:"ANNRECALL_K" yaml:"k"`
	Epsilon float64 `envconfig:"ANNRECALL_EPSILON" yaml:"epsilon"`

	// Qdrant holds the approximate search system connection settings.
	Qdrant QdrantConfig `yaml:"qdrant"`

	// Embedding holds the embedding endpoint settings.
	Embedding EmbeddingConfig `yaml:"embedding"`

	// Log holds logging settings.
	Log LogConfig `yaml:"log"`
}

// QdrantConfig holds Qdrant connection settings.
type QdrantConfig struct {
	Host       string `envconfig:"QDRANT_HOST" yaml:"host"`
	Port       int    `envconfig:"QDRANT_PORT" yaml:"port"`
	APIKey     string `envconfig:"QDRANT_API_KEY" yaml:"api_key"`
	UseTLS     bool   `envconfig:"QDRANT_USE_TLS" yaml:"use_tls"`
	Collection string `envconfig:"QDRANT_COLLECTION" yaml:"collection"`
	VectorName string `envconfig:"QDRANT_VECTOR_NAME" yaml:"vector_name"`
}

// EmbeddingConfig holds OpenAI-compatible embedding endpoint settings.
type EmbeddingConfig struct {
	BaseURL           string  `envconfig:"ANNRECALL_EMBED_BASE_URL" yaml:"base_url"`
	APIKey            string  `envconfig:"ANNRECALL_EMBED_API_KEY" yaml:"api_key"`
	Model             string  `envconfig:"ANNRECALL_EMBED_MODEL" yaml:"model"`
	Dimensions        int     `envconfig:"ANNRECALL_EMBED_DIM" yaml:"dimensions"`
	BatchSize         int     `envconfig:"ANNRECALL_EMBED_BATCH_SIZE" yaml:"batch_size"`
	Concurrency       int     `envconfig:"ANNRECALL_EMBED_CONCURRENCY" yaml:"concurrency"`
	RequestsPerSecond float64 `envconfig:"ANNRECALL_EMBED_RPS" yaml:"requests_per_second"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `envconfig:"ANNRECALL_LOG_LEVEL" yaml:"level"`
	Format string `envconfig:"ANNRECALL_LOG_FORMAT" yaml:"format"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Metric:  "l2",
		K:       10,
		Epsilon: annrecall.DefaultEpsilon,
		Qdrant: QdrantConfig{
			Host: "localhost",
			Port: 6334,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment variable overrides, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.K <= 0 {
		return fmt.Errorf("k must be positive, got %d", c.K)
	}
	if _, err := distance.ParseMetric(c.Metric); err != nil {
		return err
	}
	return nil
}

// ParsedMetric returns the configured distance metric.
func (c *Config) ParsedMetric() (distance.Metric, error) {
	return distance.ParseMetric(c.Metric)
}
