package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/mvp-joe/docfacts/internal/scanner"
	"github.com/mvp-joe/docfacts/internal/watcher"
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-extract C# files as they change",
	Long: `Watch scans the project once, then re-extracts every C# file that is
created or modified. Each batch is written to stdout as one JSON line (or one
YAML document) listing the fresh results and the removed files.

Example:
  docfacts watch src/`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	if len(args) == 1 {
		rootDir, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", args[0], err)
		}
	}

	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}

	s, err := scanner.New(cfg.ToScannerOptions(rootDir), nil)
	if err != nil {
		return fmt.Errorf("failed to create scanner: %w", err)
	}
	defer s.Close()

	fw, err := watcher.NewFileWatcher([]string{rootDir}, s.Discovery(), cfg.DebounceInterval())
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", rootDir, err)
	}

	enc, err := newEncoder(cmd.OutOrStdout(), cfg.Output.Format, true)
	if err != nil {
		return err
	}
	defer enc.Close()

	var encMu sync.Mutex
	emit := func(change watcher.Change) {
		encMu.Lock()
		defer encMu.Unlock()
		relativize(rootDir, &change)
		if err := enc.Encode(change); err != nil {
			log.Printf("Error: failed to write results: %v", err)
		}
	}

	log.Printf("Watching %s for changes (Ctrl+C to stop)...", rootDir)
	coordinator := watcher.NewWatchCoordinator(fw, s, emit)
	if err := coordinator.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// relativize rewrites the paths of change relative to root.
func relativize(root string, change *watcher.Change) {
	rel := func(p string) string {
		if r, err := filepath.Rel(root, p); err == nil {
			return filepath.ToSlash(r)
		}
		return p
	}
	for i := range change.Results {
		change.Results[i].Path = rel(change.Results[i].Path)
	}
	for i := range change.Removed {
		change.Removed[i] = rel(change.Removed[i])
	}
}
