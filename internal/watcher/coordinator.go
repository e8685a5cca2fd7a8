package watcher

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/mvp-joe/docfacts/internal/scanner"
)

// Extractor runs the initial scan and re-extracts single files.
// Implemented by scanner.Scanner.
type Extractor interface {
	Scan(ctx context.Context) ([]scanner.FileResult, error)
	ExtractFile(ctx context.Context, path string) (scanner.FileResult, error)
}

// Change is one batch of watch output.
type Change struct {
	// Initial is set for the full scan that precedes watching.
	Initial bool                 `json:"initial,omitempty" yaml:"initial,omitempty"`
	Results []scanner.FileResult `json:"results" yaml:"results"`
	Removed []string             `json:"removed,omitempty" yaml:"removed,omitempty"`
}

// WatchCoordinator routes debounced file changes to the extractor and hands
// the results to an emit function.
type WatchCoordinator struct {
	files     FileWatcher
	extractor Extractor
	emit      func(Change)
	ctx       context.Context
}

// NewWatchCoordinator creates a new watch coordinator.
func NewWatchCoordinator(files FileWatcher, extractor Extractor, emit func(Change)) *WatchCoordinator {
	return &WatchCoordinator{
		files:     files,
		extractor: extractor,
		emit:      emit,
	}
}

// Start runs a full scan, then re-extracts changed files until ctx is
// cancelled. Changes made during the initial scan are held back and
// delivered once it finishes.
func (c *WatchCoordinator) Start(ctx context.Context) error {
	c.ctx = ctx
	defer c.cleanup()

	if err := c.files.Start(ctx, c.handleFileChange); err != nil {
		return err
	}

	c.files.Pause()
	results, err := c.extractor.Scan(ctx)
	if err != nil {
		return err
	}
	c.emit(Change{Initial: true, Results: results})
	c.files.Resume()

	<-ctx.Done()
	return ctx.Err()
}

// cleanup stops the file watcher.
func (c *WatchCoordinator) cleanup() {
	if err := c.files.Stop(); err != nil {
		log.Printf("Warning: file watcher stop failed: %v", err)
	}
}

// handleFileChange re-extracts each changed file. Files that no longer
// exist, including ones deleted while the batch is processed, are reported
// as removed; a failure on one file does not hold back the others.
func (c *WatchCoordinator) handleFileChange(files []string) {
	if len(files) == 0 {
		return
	}

	log.Printf("Processing %d file change(s)...", len(files))

	change := Change{Results: []scanner.FileResult{}}
	for _, f := range files {
		result, err := c.extractor.ExtractFile(c.ctx, f)
		switch {
		case errors.Is(err, os.ErrNotExist):
			change.Removed = append(change.Removed, f)
		case err != nil:
			log.Printf("Error: extraction failed for %s: %v", f, err)
		default:
			change.Results = append(change.Results, result)
		}
	}

	if len(change.Results) == 0 && len(change.Removed) == 0 {
		return
	}
	c.emit(change)
}
