package watcher

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 500 * time.Millisecond

// relevantOps are the events that can change extraction results. A rename
// arrives as Rename for the old name and Create for the new one.
const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// fileWatcher implements FileWatcher on top of fsnotify. Events for matching
// files collect in pending until the tree has been quiet for debounce.
type fileWatcher struct {
	fsw      *fsnotify.Watcher
	filter   PathFilter
	debounce time.Duration
	onChange func(files []string)
	cancel   context.CancelFunc
	done     chan struct{}
	quiet    chan struct{} // asks loop to flush; every delivery runs on loop
	stopOnce sync.Once

	mu      sync.Mutex // guards the fields below
	paused  bool
	pending map[string]struct{}
	timer   *time.Timer
}

// NewFileWatcher watches every directory under dirs that filter does not
// skip. A non-positive debounce means DefaultDebounce.
func NewFileWatcher(dirs []string, filter PathFilter, debounce time.Duration) (FileWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw := &fileWatcher{
		fsw:      fsw,
		filter:   filter,
		debounce: debounce,
		pending:  make(map[string]struct{}),
		done:     make(chan struct{}),
		quiet:    make(chan struct{}, 1),
	}
	for _, dir := range dirs {
		if err := fw.watchTree(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return fw, nil
}

// Start delivers debounced batches to onChange until ctx is cancelled or
// Stop is called.
func (fw *fileWatcher) Start(ctx context.Context, onChange func(files []string)) error {
	if onChange == nil {
		return nil
	}

	fw.onChange = onChange
	ctx, fw.cancel = context.WithCancel(ctx)
	go fw.loop(ctx)
	return nil
}

// Stop ends the event loop and releases the fsnotify watcher. It is safe to
// call more than once, and before Start.
func (fw *fileWatcher) Stop() error {
	var err error
	fw.stopOnce.Do(func() {
		if fw.cancel != nil {
			fw.cancel()
			<-fw.done
		} else {
			close(fw.done)
		}
		err = fw.fsw.Close()
	})
	return err
}

// Pause holds batches back; events keep collecting.
func (fw *fileWatcher) Pause() {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.paused = true
}

// Resume schedules whatever collected while paused for immediate delivery,
// then resumes normal debounced delivery. Batches are delivered one at a
// time, in order, from the event loop.
func (fw *fileWatcher) Resume() {
	fw.mu.Lock()
	flushNow := fw.paused && len(fw.pending) > 0
	fw.paused = false
	fw.mu.Unlock()

	if flushNow {
		fw.signalQuiet()
	}
}

func (fw *fileWatcher) signalQuiet() {
	select {
	case fw.quiet <- struct{}{}:
	default:
	}
}

func (fw *fileWatcher) loop(ctx context.Context) {
	defer close(fw.done)

	for {
		select {
		case <-ctx.Done():
			fw.mu.Lock()
			if fw.timer != nil {
				fw.timer.Stop()
				fw.timer = nil
			}
			fw.mu.Unlock()
			return

		case event, ok := <-fw.fsw.Events:
			if !ok {
				return
			}
			fw.record(event)

		case <-fw.quiet:
			fw.flush()

		case err, ok := <-fw.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// record starts watching new directories and queues matching files,
// restarting the quiet-period timer.
func (fw *fileWatcher) record(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !fw.filter.SkipDir(event.Name) {
			if err := fw.watchTree(event.Name); err != nil {
				log.Printf("Warning: failed to watch new directory %s: %v", event.Name, err)
			}
		}
	}

	if event.Op&relevantOps == 0 || !fw.filter.Matches(event.Name) {
		return
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.pending[event.Name] = struct{}{}
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.debounce, fw.signalQuiet)
}

// flush hands the pending batch to onChange unless paused.
func (fw *fileWatcher) flush() {
	fw.mu.Lock()
	if fw.paused || len(fw.pending) == 0 {
		fw.mu.Unlock()
		return
	}
	files := fw.takePendingLocked()
	fw.mu.Unlock()

	fw.onChange(files)
}

// takePendingLocked returns the pending files sorted and clears the set.
func (fw *fileWatcher) takePendingLocked() []string {
	files := make([]string, 0, len(fw.pending))
	for file := range fw.pending {
		files = append(files, file)
	}
	slices.Sort(files)
	clear(fw.pending)
	return files
}

// watchTree adds root and every directory below it that the filter keeps.
// Only a failure on root itself is fatal.
func (fw *fileWatcher) watchTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			log.Printf("Warning: error accessing %s: %v", path, err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && fw.filter.SkipDir(path) {
			return filepath.SkipDir
		}
		if err := fw.fsw.Add(path); err != nil {
			log.Printf("Warning: failed to watch directory %s: %v", path, err)
		}
		return nil
	})
}
