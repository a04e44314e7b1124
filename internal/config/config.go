package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// Offset dataset configuration.
	DatasetURL             string        `envconfig:"DATASET_URL"`
	DatasetTimeout         time.Duration `envconfig:"DATASET_TIMEOUT" default:"10s"`
	DatasetRefreshInterval time.Duration `envconfig:"DATASET_REFRESH_INTERVAL" default:"0"`

	// Resolver configuration.
	LookupTimeout time.Duration `envconfig:"LOOKUP_TIMEOUT" default:"5s"`
	CacheSize     int           `envconfig:"CACHE_SIZE" default:"1000"`

	// Kafka render pipeline configuration.
	PipelineEnabled    bool          `envconfig:"PIPELINE_ENABLED" default:"false"`
	KafkaBrokers       []string      `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaSourceTopic   string        `envconfig:"KAFKA_SOURCE_TOPIC" default:"time-render-requests"`
	KafkaSinkTopic     string        `envconfig:"KAFKA_SINK_TOPIC" default:"rendered-times"`
	KafkaGroupID       string        `envconfig:"KAFKA_GROUP_ID" default:"zip-time"`
	BatchSize          int           `envconfig:"BATCH_SIZE" default:"50"`
	BatchFlushInterval time.Duration `envconfig:"BATCH_FLUSH_INTERVAL" default:"500ms"`
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if cfg.DatasetURL == "" {
		return nil, errors.New("DATASET_URL is required")
	}
	if cfg.DatasetTimeout <= 0 {
		return nil, errors.New("DATASET_TIMEOUT must be positive")
	}
	if cfg.DatasetRefreshInterval < 0 {
		return nil, errors.New("DATASET_REFRESH_INTERVAL must not be negative")
	}
	if cfg.LookupTimeout <= 0 {
		return nil, errors.New("LOOKUP_TIMEOUT must be positive")
	}
	if cfg.CacheSize <= 0 {
		return nil, errors.New("CACHE_SIZE must be positive")
	}
	if cfg.BatchSize < 1 || cfg.BatchSize > 1000 {
		return nil, fmt.Errorf("BATCH_SIZE must be between 1 and 1000, got %d", cfg.BatchSize)
	}
	if cfg.BatchFlushInterval <= 0 {
		return nil, errors.New("BATCH_FLUSH_INTERVAL must be positive")
	}

	if cfg.PipelineEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when PIPELINE_ENABLED is true")
		}
		if cfg.KafkaSourceTopic == "" {
			return nil, errors.New("KAFKA_SOURCE_TOPIC is required when PIPELINE_ENABLED is true")
		}
		if cfg.KafkaSinkTopic == "" {
			return nil, errors.New("KAFKA_SINK_TOPIC is required when PIPELINE_ENABLED is true")
		}
	}

	return &cfg, nil
}
