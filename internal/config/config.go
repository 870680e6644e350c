package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/reservoir-dashboard/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	DataSource    string
	DataSheet     string
	SourceTimeout time.Duration // zero waits indefinitely

	TopN             int
	StorageThreshold float64
	Schema           domain.Schema

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Optional sinks.
	ChartDir       string
	KafkaEnabled   bool
	KafkaBrokers   []string
	KafkaSinkTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	sourceTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("SOURCE_TIMEOUT", "0s"))
	if err != nil || sourceTimeout < 0 {
		return nil, errors.New("invalid SOURCE_TIMEOUT")
	}

	topN, err := strconv.Atoi(sharedcfg.EnvOrDefault("TOP_N", "10"))
	if err != nil || topN <= 0 {
		return nil, errors.New("invalid TOP_N: must be a positive integer")
	}

	threshold, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("STORAGE_THRESHOLD", "90"), 64)
	if err != nil {
		return nil, errors.New("invalid STORAGE_THRESHOLD")
	}

	cfg := &Config{
		DataSource:    sharedcfg.EnvOrDefault("DATA_SOURCE", "data/mock/data1.json"),
		DataSheet:     os.Getenv("DATA_SHEET"),
		SourceTimeout: sourceTimeout,

		TopN:             topN,
		StorageThreshold: threshold,
		Schema:           LoadSchema(),

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		ChartDir:       os.Getenv("CHART_DIR"),
		KafkaEnabled:   os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:   sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic: sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "reservoir-dashboard"),
	}

	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required when KAFKA_ENABLED is true")
	}

	return cfg, nil
}

// LoadSchema returns the default column bindings with FIELD_* overrides applied.
func LoadSchema() domain.Schema {
	return domain.DefaultSchema().WithOverrides(schemaOverrides())
}

// schemaOverrides reads FIELD_* variables; unset ones keep the default header.
func schemaOverrides() domain.Schema {
	return domain.Schema{
		Sequence:       os.Getenv("FIELD_SEQUENCE"),
		District:       os.Getenv("FIELD_DISTRICT"),
		ProjectType:    os.Getenv("FIELD_TYPE"),
		Taluka:         os.Getenv("FIELD_TALUKA"),
		Storage:        os.Getenv("FIELD_STORAGE"),
		StoragePercent: os.Getenv("FIELD_PERCENT"),
		Name:           os.Getenv("FIELD_NAME"),
	}
}
