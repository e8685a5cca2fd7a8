package config

import (
	"github.com/mvp-joe/docfacts/internal/scanner"
)

// ToScannerOptions converts a Config to scanner.Options.
// The rootDir parameter specifies the directory to scan.
func (c *Config) ToScannerOptions(rootDir string) scanner.Options {
	return scanner.Options{
		RootDir:      rootDir,
		Include:      c.Paths.Include,
		Ignore:       c.Paths.Ignore,
		Workers:      c.Extract.Workers,
		Kinds:        c.Extract.Kinds,
		IncludeEmpty: c.Extract.IncludeEmpty,
		CacheEntries: c.Cache.MaxEntries,
	}
}
