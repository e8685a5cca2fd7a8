package watcher

import "context"

// FileWatcher monitors source files for changes with debouncing and pause/resume support.
type FileWatcher interface {
	// Start begins watching source directories, calling callback with debounced file changes.
	Start(ctx context.Context, callback func(files []string)) error

	// Stop stops the file watcher and cleans up resources.
	Stop() error

	// Pause stops firing callbacks but continues accumulating events.
	Pause()

	// Resume resumes firing callbacks. Events accumulated during pause are
	// delivered without waiting for the debounce period. Callbacks never
	// overlap.
	Resume()
}

// PathFilter decides which paths the watcher cares about.
type PathFilter interface {
	// Matches reports whether a change to the file at path should be reported.
	Matches(path string) bool

	// SkipDir reports whether the directory at path should not be watched.
	SkipDir(path string) bool
}
