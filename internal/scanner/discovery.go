package scanner

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
	// rootGlob matches files in the root when pattern starts with **/
	rootGlob glob.Glob
}

// FileDiscovery finds C# sources under a root using include and ignore globs.
type FileDiscovery struct {
	rootDir        string
	includePattern []compiledPattern
	ignorePatterns []compiledPattern
}

// NewFileDiscovery creates a new file discovery instance.
func NewFileDiscovery(rootDir string, includePatterns, ignorePatterns []string) (*FileDiscovery, error) {
	fd := &FileDiscovery{
		rootDir: rootDir,
	}

	var err error
	if fd.includePattern, err = compilePatterns(includePatterns); err != nil {
		return nil, err
	}
	if fd.ignorePatterns, err = compilePatterns(ignorePatterns); err != nil {
		return nil, err
	}

	return fd, nil
}

func compilePatterns(patterns []string) ([]compiledPattern, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		cp := compiledPattern{pattern: pattern, glob: g}
		// "**/*.cs" should match both "Program.cs" and "src/Program.cs"
		if simplified, ok := strings.CutPrefix(pattern, "**/"); ok {
			if rg, err := glob.Compile(simplified, '/'); err == nil {
				cp.rootGlob = rg
			}
		}
		compiled = append(compiled, cp)
	}
	return compiled, nil
}

// RootDir returns the directory discovery walks.
func (fd *FileDiscovery) RootDir() string {
	return fd.rootDir
}

// DiscoverFiles walks the directory tree and returns matching files in
// lexical order. Ignored directories are not descended into.
func (fd *FileDiscovery) DiscoverFiles() ([]string, error) {
	files := []string{}

	err := filepath.WalkDir(fd.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(fd.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if relPath != "." && fd.shouldIgnore(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if !fd.shouldIgnore(relPath) && fd.matchesAnyPattern(relPath, fd.includePattern) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// Matches reports whether path (absolute or relative to the root) would be
// returned by DiscoverFiles.
func (fd *FileDiscovery) Matches(path string) bool {
	relPath, ok := fd.relative(path)
	if !ok {
		return false
	}

	if fd.shouldIgnore(relPath) {
		return false
	}
	// Ignored parent directories exclude their contents
	for dir := pathDir(relPath); dir != ""; dir = pathDir(dir) {
		if fd.shouldIgnore(dir) {
			return false
		}
	}
	return fd.matchesAnyPattern(relPath, fd.includePattern)
}

// SkipDir reports whether the directory at path (absolute or relative to the
// root) is excluded by the ignore patterns.
func (fd *FileDiscovery) SkipDir(path string) bool {
	relPath, ok := fd.relative(path)
	if !ok {
		return true
	}
	return relPath != "." && fd.shouldIgnore(relPath)
}

func (fd *FileDiscovery) relative(path string) (string, bool) {
	relPath := path
	if filepath.IsAbs(path) {
		rel, err := filepath.Rel(fd.rootDir, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", false
		}
		relPath = rel
	}
	return filepath.ToSlash(relPath), true
}

func pathDir(relPath string) string {
	i := strings.LastIndex(relPath, "/")
	if i < 0 {
		return ""
	}
	return relPath[:i]
}

// shouldIgnore checks if a path matches any ignore pattern.
func (fd *FileDiscovery) shouldIgnore(relPath string) bool {
	// Always ignore the docfacts config directory
	if strings.HasPrefix(relPath, ".docfacts/") || relPath == ".docfacts" {
		return true
	}

	if fd.matchesAnyPattern(relPath, fd.ignorePatterns) {
		return true
	}

	// A directory "obj" should match pattern "obj/**"
	return fd.matchesAnyPattern(relPath+"/**", fd.ignorePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func (fd *FileDiscovery) matchesAnyPattern(path string, patterns []compiledPattern) bool {
	inRoot := !strings.Contains(path, "/")
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
		if inRoot && cp.rootGlob != nil && cp.rootGlob.Match(path) {
			return true
		}
	}
	return false
}
