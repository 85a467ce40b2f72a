// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ServerConfig holds HTTP transport settings for the serve command.
type ServerConfig struct {
	Host         string        `json:"host" yaml:"host" mapstructure:"host"`
	Port         int           `json:"port" yaml:"port" mapstructure:"port"`
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout" mapstructure:"write_timeout"`
}

// LoggingConfig selects the log level and output format.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is "json" or "text".
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// SourcesConfig configures where records come from and how the fetch
// boundary protects the pipeline from failing sources.
type SourcesConfig struct {
	// Fixtures is a YAML or JSON file of literature and trial records.
	Fixtures string `json:"fixtures" yaml:"fixtures" mapstructure:"fixtures"`

	// CorpusPath is a SQLite corpus built by "corpus import". Takes
	// precedence over Fixtures when both are set.
	CorpusPath string `json:"corpus_path" yaml:"corpus_path" mapstructure:"corpus_path"`

	// RateLimit caps fetch calls per second per source. Zero disables limiting.
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit" mapstructure:"rate_limit"`

	// CacheSize is the number of fetch results kept per source. Zero disables caching.
	CacheSize int `json:"cache_size" yaml:"cache_size" mapstructure:"cache_size"`

	// CacheTTL bounds how long a cached fetch result is reused.
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl" mapstructure:"cache_ttl"`

	// BreakerTimeout is how long an open circuit stays open before probing again.
	BreakerTimeout time.Duration `json:"breaker_timeout" yaml:"breaker_timeout" mapstructure:"breaker_timeout"`
}

// PipelineConfig holds defaults for pipeline runs.
type PipelineConfig struct {
	// MaxRecords is the default per-source record cap (default 15).
	MaxRecords int `json:"max_records" yaml:"max_records" mapstructure:"max_records"`

	// Vocabulary is an optional YAML file overriding the recognizer vocabulary.
	Vocabulary string `json:"vocabulary" yaml:"vocabulary" mapstructure:"vocabulary"`
}

// DemoConfig toggles the curated fallback tables.
type DemoConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
}

// Config groups all configuration sections.
type Config struct {
	Server   ServerConfig   `json:"server" yaml:"server" mapstructure:"server"`
	Logging  LoggingConfig  `json:"logging" yaml:"logging" mapstructure:"logging"`
	Sources  SourcesConfig  `json:"sources" yaml:"sources" mapstructure:"sources"`
	Pipeline PipelineConfig `json:"pipeline" yaml:"pipeline" mapstructure:"pipeline"`
	Demo     DemoConfig     `json:"demo" yaml:"demo" mapstructure:"demo"`
}
