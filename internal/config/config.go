// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config binds defaults, config files, and REPURPOSE_ENGINE_*
// environment variables into a types.Config.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/repurpose-engine/pkg/types"
)

// EnvPrefix is prepended to every environment override, with dots in
// keys replaced by underscores (REPURPOSE_ENGINE_SERVER_PORT).
const EnvPrefix = "REPURPOSE_ENGINE"

// SetDefaults registers default values and environment binding on v.
func SetDefaults(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("sources.fixtures", "")
	v.SetDefault("sources.corpus_path", "")
	v.SetDefault("sources.rate_limit", 0)
	v.SetDefault("sources.cache_size", 256)
	v.SetDefault("sources.cache_ttl", "10m")
	v.SetDefault("sources.breaker_timeout", "60s")

	v.SetDefault("pipeline.max_records", 15)
	v.SetDefault("pipeline.vocabulary", "")

	v.SetDefault("demo.enabled", true)
}

// Load applies defaults to v, unmarshals it, and validates the result.
// Config files must already have been read into v.
func Load(v *viper.Viper) (types.Config, error) {
	SetDefaults(v)

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "warning": true, "error": true,
}

// Validate checks ranges and enumerations.
func Validate(cfg types.Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}
	if !validLogLevels[strings.ToLower(cfg.Logging.Level)] {
		return fmt.Errorf("invalid log level: %q", cfg.Logging.Level)
	}
	if f := cfg.Logging.Format; f != "json" && f != "text" {
		return fmt.Errorf("invalid log format: %q (want json or text)", f)
	}
	if cfg.Sources.RateLimit < 0 {
		return fmt.Errorf("sources.rate_limit must not be negative: %v", cfg.Sources.RateLimit)
	}
	if cfg.Sources.CacheSize < 0 {
		return fmt.Errorf("sources.cache_size must not be negative: %d", cfg.Sources.CacheSize)
	}
	if cfg.Sources.CacheTTL < 0 || cfg.Sources.BreakerTimeout < 0 {
		return fmt.Errorf("sources durations must not be negative")
	}
	if cfg.Pipeline.MaxRecords < 0 {
		return fmt.Errorf("pipeline.max_records must not be negative: %d", cfg.Pipeline.MaxRecords)
	}
	return nil
}
