// Package scanner runs declaration extraction over a tree of C# files.
package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/mvp-joe/docfacts/internal/docfacts"
	"github.com/mvp-joe/docfacts/internal/syntax/csharp"
	"golang.org/x/sync/errgroup"
)

// Options configures a Scanner.
type Options struct {
	RootDir      string
	Include      []string
	Ignore       []string
	Workers      int
	Kinds        []string
	IncludeEmpty bool
	CacheEntries int
}

// FileResult holds the declarations extracted from one file.
type FileResult struct {
	Path         string                 `json:"path" yaml:"path"`
	Declarations []docfacts.Declaration `json:"declarations" yaml:"declarations"`
	// ParseErrors is set when the parser recovered from syntax errors.
	ParseErrors bool `json:"parse_errors,omitempty" yaml:"parse_errors,omitempty"`
}

// Scanner discovers C# files and extracts their declarations in parallel.
type Scanner struct {
	opts      Options
	discovery *FileDiscovery
	cache     *resultCache
	progress  ProgressReporter
	mu        sync.Mutex // serializes progress callbacks
}

// New creates a scanner. A nil progress reporter disables reporting.
func New(opts Options, progress ProgressReporter) (*Scanner, error) {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.CacheEntries <= 0 {
		opts.CacheEntries = 1
	}
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}

	discovery, err := NewFileDiscovery(opts.RootDir, opts.Include, opts.Ignore)
	if err != nil {
		return nil, fmt.Errorf("failed to compile path patterns: %w", err)
	}
	cache, err := newResultCache(opts.CacheEntries)
	if err != nil {
		return nil, err
	}

	return &Scanner{
		opts:      opts,
		discovery: discovery,
		cache:     cache,
		progress:  progress,
	}, nil
}

// Close releases the result cache.
func (s *Scanner) Close() {
	s.cache.close()
}

// Discovery exposes the scanner's path matcher.
func (s *Scanner) Discovery() *FileDiscovery {
	return s.discovery
}

// Scan discovers every matching file under the root and extracts it.
func (s *Scanner) Scan(ctx context.Context) ([]FileResult, error) {
	s.report(func(p ProgressReporter) { p.OnDiscoveryStart() })
	files, err := s.discovery.DiscoverFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}
	s.report(func(p ProgressReporter) { p.OnDiscoveryComplete(len(files)) })

	return s.ScanFiles(ctx, files)
}

// ScanFiles extracts the given files with bounded parallelism. Results keep
// the order of paths. The first failure cancels the remaining work.
func (s *Scanner) ScanFiles(ctx context.Context, paths []string) ([]FileResult, error) {
	start := time.Now()
	results := make([]FileResult, len(paths))
	hitsBefore := s.cache.hits.Load()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, path := range paths {
		g.Go(func() error {
			res, err := s.ExtractFile(gctx, path)
			if err != nil {
				return err
			}
			results[i] = res
			s.report(func(p ProgressReporter) { p.OnFileProcessed(path) })
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &Stats{
		Files:     len(results),
		CacheHits: int(s.cache.hits.Load() - hitsBefore),
		Duration:  time.Since(start),
	}
	for _, r := range results {
		stats.Declarations += len(r.Declarations)
		for _, d := range r.Declarations {
			stats.Exceptions += len(d.Exceptions)
		}
		if r.ParseErrors {
			stats.ParseErrors++
		}
	}
	s.report(func(p ProgressReporter) { p.OnComplete(stats) })

	return results, nil
}

// ExtractFile reads and extracts one file, consulting the content cache.
func (s *Scanner) ExtractFile(ctx context.Context, path string) (FileResult, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	key := contentKey(source)
	if cached, ok := s.cache.get(key); ok {
		return FileResult{Path: path, Declarations: cached.declarations, ParseErrors: cached.parseErrors}, nil
	}

	decls, parseErrors, err := ExtractSource(ctx, source, s.opts.Kinds, s.opts.IncludeEmpty)
	if err != nil {
		return FileResult{}, fmt.Errorf("failed to extract %s: %w", path, err)
	}
	if parseErrors {
		slog.Warn("source has syntax errors; facts may be incomplete", "path", path)
	}
	s.cache.set(key, cachedFile{declarations: decls, parseErrors: parseErrors})

	return FileResult{Path: path, Declarations: decls, ParseErrors: parseErrors}, nil
}

func (s *Scanner) report(fn func(ProgressReporter)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.progress)
}

// ExtractSource parses one C# source text and extracts its declarations.
// kinds filters by declaration kind name; declarations with nothing beyond
// an identifier are dropped unless includeEmpty is set. The bool result
// reports whether the parser recovered from syntax errors.
func ExtractSource(ctx context.Context, source []byte, kinds []string, includeEmpty bool) ([]docfacts.Declaration, bool, error) {
	tree, err := csharp.Parse(ctx, source)
	if err != nil {
		return nil, false, err
	}

	all := docfacts.Extract(tree.Root(), kinds...)
	if includeEmpty {
		return all, tree.HasErrors(), nil
	}

	decls := make([]docfacts.Declaration, 0, len(all))
	for _, d := range all {
		if d.HasFacts() {
			decls = append(decls, d)
		}
	}
	return decls, tree.HasErrors(), nil
}

// Matches reports whether path is one of the files the scanner would discover.
func (s *Scanner) Matches(path string) bool {
	return s.discovery.Matches(path)
}
