package scanner

import "time"

// Stats summarizes one scan.
type Stats struct {
	Files        int
	Declarations int
	Exceptions   int
	CacheHits    int
	ParseErrors  int
	Duration     time.Duration
}

// ProgressReporter provides callbacks for reporting scan progress.
// Implementations can display progress bars, log messages, or remain silent.
// Callbacks are never invoked concurrently.
type ProgressReporter interface {
	// OnDiscoveryStart is called when file discovery begins.
	OnDiscoveryStart()

	// OnDiscoveryComplete is called when file discovery finishes.
	OnDiscoveryComplete(files int)

	// OnFileProcessed is called after each file is extracted.
	OnFileProcessed(path string)

	// OnComplete is called when a scan completes successfully.
	OnComplete(stats *Stats)
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnDiscoveryStart()       {}
func (n *NoOpProgressReporter) OnDiscoveryComplete(int) {}
func (n *NoOpProgressReporter) OnFileProcessed(string)  {}
func (n *NoOpProgressReporter) OnComplete(stats *Stats) {}
