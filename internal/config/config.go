// Package config loads docfacts project configuration.
//
// Configuration Hierarchy (highest to lowest priority):
//  1. Environment variables (DOCFACTS_*)
//  2. Project config (.docfacts/config.yml)
//  3. Built-in defaults
//
// Nested keys map to env vars with underscores, e.g. DOCFACTS_EXTRACT_WORKERS.
package config

import (
	"runtime"
	"time"
)

// Config represents the complete docfacts configuration.
// It can be loaded from .docfacts/config.yml with environment variable overrides.
type Config struct {
	Paths   PathsConfig   `yaml:"paths" mapstructure:"paths"`
	Extract ExtractConfig `yaml:"extract" mapstructure:"extract"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Watch   WatchConfig   `yaml:"watch" mapstructure:"watch"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
}

// PathsConfig defines which files to scan and which to ignore.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for C# sources
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to skip
}

// ExtractConfig controls declaration extraction.
type ExtractConfig struct {
	Workers      int      `yaml:"workers" mapstructure:"workers"`             // files parsed concurrently
	Kinds        []string `yaml:"kinds" mapstructure:"kinds"`                 // declaration kinds to report; empty means all
	IncludeEmpty bool     `yaml:"include_empty" mapstructure:"include_empty"` // report declarations without facts
}

// OutputConfig selects the encoding of extraction results.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // "json" or "yaml"
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms" mapstructure:"debounce_ms"`
}

// CacheConfig bounds the in-memory result cache.
type CacheConfig struct {
	MaxEntries int `yaml:"max_entries" mapstructure:"max_entries"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Include: []string{"**/*.cs"},
			Ignore: []string{
				"bin/**",
				"obj/**",
				".git/**",
				"packages/**",
				"node_modules/**",
				"**/*.g.cs",
				"**/*.Designer.cs",
			},
		},
		Extract: ExtractConfig{
			Workers:      runtime.NumCPU(),
			Kinds:        []string{},
			IncludeEmpty: false,
		},
		Output: OutputConfig{
			Format: "json",
		},
		Watch: WatchConfig{
			DebounceMs: 500,
		},
		Cache: CacheConfig{
			MaxEntries: 10000,
		},
	}
}

// DebounceInterval returns the watch debounce as a duration.
func (c *Config) DebounceInterval() time.Duration {
	return time.Duration(c.Watch.DebounceMs) * time.Millisecond
}
