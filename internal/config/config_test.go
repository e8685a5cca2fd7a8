package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config System:
// - Default() returns valid configuration with all expected defaults
// - Load() uses defaults when no config file exists
// - Load() reads .docfacts/config.yml and .docfacts/config.yaml
// - Load() merges a partial config file with defaults
// - Environment variables override config file values and defaults
// - NewFileLoader() reads an explicit config path
// - Load() returns error for malformed YAML and invalid values
// - Validate() rejects bad patterns, workers, kinds, format, debounce and cache size
// - Validate() reports every invalid field and keeps sentinels reachable

func writeConfig(t *testing.T, root, name, content string) {
	t.Helper()
	dir := filepath.Join(root, DirName)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, []string{"**/*.cs"}, cfg.Paths.Include)
	assert.Contains(t, cfg.Paths.Ignore, "obj/**")
	assert.Equal(t, runtime.NumCPU(), cfg.Extract.Workers)
	assert.Empty(t, cfg.Extract.Kinds)
	assert.False(t, cfg.Extract.IncludeEmpty)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 500, cfg.Watch.DebounceMs)
	assert.Equal(t, 500*time.Millisecond, cfg.DebounceInterval())
	assert.Equal(t, 10000, cfg.Cache.MaxEntries)

	assert.NoError(t, Validate(cfg))
}

func TestLoadConfig_UsesDefaultsWhenNoConfigFile(t *testing.T) {
	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)

	defaults := Default()
	assert.Equal(t, defaults.Paths, cfg.Paths)
	assert.Equal(t, defaults.Extract.Workers, cfg.Extract.Workers)
	assert.Empty(t, cfg.Extract.Kinds)
	assert.Equal(t, defaults.Output, cfg.Output)
	assert.Equal(t, defaults.Watch, cfg.Watch)
	assert.Equal(t, defaults.Cache, cfg.Cache)
}

func TestLoadConfig_LoadsFromConfigYml(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", `
paths:
  include:
    - "src/**/*.cs"
  ignore:
    - "src/Generated/**"
extract:
  workers: 2
  kinds: [method, constructor]
  include_empty: true
output:
  format: yaml
watch:
  debounce_ms: 250
cache:
  max_entries: 64
`)

	cfg, err := NewLoader(tempDir).Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"src/**/*.cs"}, cfg.Paths.Include)
	assert.Equal(t, []string{"src/Generated/**"}, cfg.Paths.Ignore)
	assert.Equal(t, 2, cfg.Extract.Workers)
	assert.Equal(t, []string{"method", "constructor"}, cfg.Extract.Kinds)
	assert.True(t, cfg.Extract.IncludeEmpty)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, 250, cfg.Watch.DebounceMs)
	assert.Equal(t, 64, cfg.Cache.MaxEntries)
}

func TestLoadConfig_LoadsFromConfigYaml(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yaml", `
output:
  format: yaml
`)

	cfg, err := NewLoader(tempDir).Load()
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Output.Format)
}

func TestLoadConfig_MergesConfigWithDefaults(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", `
extract:
  workers: 3
`)

	cfg, err := NewLoader(tempDir).Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Extract.Workers)
	assert.Equal(t, Default().Paths.Include, cfg.Paths.Include)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 500, cfg.Watch.DebounceMs)
}

func TestLoadConfig_EnvironmentVariablesOverrideConfigFile(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", `
extract:
  workers: 2
output:
  format: json
watch:
  debounce_ms: 100
`)

	t.Setenv("DOCFACTS_EXTRACT_WORKERS", "6")
	t.Setenv("DOCFACTS_OUTPUT_FORMAT", "yaml")

	cfg, err := NewLoader(tempDir).Load()
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Extract.Workers)
	assert.Equal(t, "yaml", cfg.Output.Format)
	// Not overridden, comes from the file
	assert.Equal(t, 100, cfg.Watch.DebounceMs)
}

func TestLoadConfig_EnvironmentVariablesOverrideDefaults(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()
	t.Setenv("DOCFACTS_EXTRACT_INCLUDE_EMPTY", "true")
	t.Setenv("DOCFACTS_CACHE_MAX_ENTRIES", "12")

	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)

	assert.True(t, cfg.Extract.IncludeEmpty)
	assert.Equal(t, 12, cfg.Cache.MaxEntries)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestNewFileLoader_ReadsExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("watch:\n  debounce_ms: 42\n"), 0644))

	cfg, err := NewFileLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Watch.DebounceMs)
}

func TestLoadConfig_ReturnsErrorForMalformedYaml(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", `
output:
  format: "unclosed quote
  workers: not-a-number
`)

	cfg, err := NewLoader(tempDir).Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfig_ReturnsErrorForInvalidValues(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", `
output:
  format: xml
`)

	cfg, err := NewLoader(tempDir).Load()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestValidate_RejectsInvalidFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{name: "empty include", mutate: func(c *Config) { c.Paths.Include = nil }, want: ErrEmptyInclude},
		{name: "bad include glob", mutate: func(c *Config) { c.Paths.Include = []string{"src/[a-"} }, want: ErrInvalidPattern},
		{name: "bad ignore glob", mutate: func(c *Config) { c.Paths.Ignore = []string{"obj/["} }, want: ErrInvalidPattern},
		{name: "zero workers", mutate: func(c *Config) { c.Extract.Workers = 0 }, want: ErrInvalidWorkers},
		{name: "unknown kind", mutate: func(c *Config) { c.Extract.Kinds = []string{"property"} }, want: ErrUnknownKind},
		{name: "unknown format", mutate: func(c *Config) { c.Output.Format = "toml" }, want: ErrInvalidFormat},
		{name: "negative debounce", mutate: func(c *Config) { c.Watch.DebounceMs = -1 }, want: ErrInvalidDebounce},
		{name: "zero cache", mutate: func(c *Config) { c.Cache.MaxEntries = 0 }, want: ErrInvalidCacheSettings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, Validate(cfg), tt.want)
		})
	}
}

func TestValidate_AcceptsUppercaseFormat(t *testing.T) {
	cfg := Default()
	cfg.Output.Format = "YAML"
	assert.NoError(t, Validate(cfg))
}

func TestValidate_ReturnsMultipleErrorsForMultipleInvalidFields(t *testing.T) {
	cfg := &Config{
		Extract: ExtractConfig{Workers: -1, Kinds: []string{"enum"}},
		Output:  OutputConfig{Format: "csv"},
	}

	err := Validate(cfg)
	require.Error(t, err)

	errMsg := err.Error()
	assert.Contains(t, errMsg, "validation failed")
	assert.Contains(t, errMsg, "include")
	assert.Contains(t, errMsg, "workers")
	assert.Contains(t, errMsg, "enum")
	assert.Contains(t, errMsg, "csv")
	assert.Contains(t, errMsg, "debounce_ms")
	assert.Contains(t, errMsg, "max_entries")

	assert.ErrorIs(t, err, ErrInvalidWorkers)
	assert.ErrorIs(t, err, ErrInvalidCacheSettings)
}

func TestToScannerOptions(t *testing.T) {
	cfg := Default()
	cfg.Extract.Kinds = []string{"method"}
	cfg.Extract.IncludeEmpty = true

	opts := cfg.ToScannerOptions("/src/app")

	assert.Equal(t, "/src/app", opts.RootDir)
	assert.Equal(t, cfg.Paths.Include, opts.Include)
	assert.Equal(t, cfg.Paths.Ignore, opts.Ignore)
	assert.Equal(t, cfg.Extract.Workers, opts.Workers)
	assert.Equal(t, []string{"method"}, opts.Kinds)
	assert.True(t, opts.IncludeEmpty)
	assert.Equal(t, 10000, opts.CacheEntries)
}
