package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mvp-joe/docfacts/internal/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for FileWatcher:
// - NewFileWatcher creates watcher successfully with valid directories
// - NewFileWatcher returns error with invalid directory
// - Single file change fires callback after debounce
// - Multiple file changes are batched into one sorted, deduplicated callback
// - Rapid changes to one file coalesce into a single callback
// - Pause/Resume behavior (accumulate during pause, fire on resume)
// - Batches after Resume are delivered one at a time, oldest first
// - File deletion and rename trigger callbacks
// - Directory added triggers recursive watch; ignored directories are not watched
// - Only files accepted by the path filter trigger callbacks
// - Stop() is idempotent and safe to call concurrently
// - Context cancellation stops watcher

const testDebounce = 150 * time.Millisecond

const classSource = "class Program { }\n"

func csFilter(t *testing.T, root string) PathFilter {
	t.Helper()
	fd, err := scanner.NewFileDiscovery(root, []string{"**/*.cs"}, []string{"obj/**"})
	require.NoError(t, err)
	return fd
}

// batchRecorder collects callback batches and signals each one.
type batchRecorder struct {
	mu      sync.Mutex
	batches [][]string
	called  chan struct{}
}

func newBatchRecorder() *batchRecorder {
	return &batchRecorder{called: make(chan struct{}, 16)}
}

func (r *batchRecorder) callback(files []string) {
	r.mu.Lock()
	r.batches = append(r.batches, files)
	r.mu.Unlock()
	r.called <- struct{}{}
}

func (r *batchRecorder) wait(t *testing.T, timeout time.Duration) {
	t.Helper()
	select {
	case <-r.called:
	case <-time.After(timeout):
		t.Fatal("Callback not called after timeout")
	}
}

func (r *batchRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var files []string
	for _, b := range r.batches {
		files = append(files, b...)
	}
	return files
}

func (r *batchRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.batches)
}

func startWatcher(t *testing.T, root string) (FileWatcher, *batchRecorder) {
	t.Helper()
	watcher, err := NewFileWatcher([]string{root}, csFilter(t, root), testDebounce)
	require.NoError(t, err)
	t.Cleanup(func() { watcher.Stop() })

	rec := newBatchRecorder()
	require.NoError(t, watcher.Start(context.Background(), rec.callback))

	// Wait for watcher to initialize
	time.Sleep(100 * time.Millisecond)
	return watcher, rec
}

func writeSource(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestNewFileWatcher_Success(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()

	watcher, err := NewFileWatcher([]string{tempDir}, csFilter(t, tempDir), 0)
	require.NoError(t, err)
	require.NotNil(t, watcher)
	assert.Equal(t, DefaultDebounce, watcher.(*fileWatcher).debounce)

	require.NoError(t, watcher.Stop())
}

func TestNewFileWatcher_InvalidDirectory(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	nonexistent := filepath.Join(tempDir, "nonexistent")

	watcher, err := NewFileWatcher([]string{nonexistent}, csFilter(t, tempDir), testDebounce)
	assert.Error(t, err)
	assert.Nil(t, watcher)
}

func TestFileWatcher_SingleFileChange(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	_, rec := startWatcher(t, tempDir)

	testFile := filepath.Join(tempDir, "Program.cs")
	writeSource(t, testFile, classSource)

	rec.wait(t, 2*time.Second)
	assert.Equal(t, []string{testFile}, rec.all())
}

func TestFileWatcher_BatchesSortedAndDeduplicated(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	_, rec := startWatcher(t, tempDir)

	fileC := filepath.Join(tempDir, "C.cs")
	fileA := filepath.Join(tempDir, "A.cs")
	fileB := filepath.Join(tempDir, "B.cs")
	writeSource(t, fileC, classSource)
	writeSource(t, fileA, classSource)
	writeSource(t, fileB, classSource)
	writeSource(t, fileA, "class A { }\n")

	rec.wait(t, 2*time.Second)
	assert.Equal(t, []string{fileA, fileB, fileC}, rec.all())
}

func TestFileWatcher_Debouncing(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	_, rec := startWatcher(t, tempDir)

	testFile := filepath.Join(tempDir, "Program.cs")
	for _, v := range []string{"// v1", "// v2", "// v3"} {
		writeSource(t, testFile, classSource+v)
		time.Sleep(40 * time.Millisecond)
	}

	rec.wait(t, 2*time.Second)

	// Wait a bit more to ensure no additional callbacks
	time.Sleep(3 * testDebounce)
	assert.Equal(t, 1, rec.count(), "Should have exactly one callback due to debouncing")
}

func TestFileWatcher_PauseResume(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	watcher, rec := startWatcher(t, tempDir)

	watcher.Pause()

	pausedFile := filepath.Join(tempDir, "Paused.cs")
	writeSource(t, pausedFile, classSource)

	// Wait beyond debounce period - callback should NOT fire
	time.Sleep(4 * testDebounce)
	assert.Equal(t, 0, rec.count(), "No callbacks should fire while paused")

	// Resume - should fire callback immediately with accumulated events
	watcher.Resume()

	rec.wait(t, 500*time.Millisecond)
	assert.Contains(t, rec.all(), pausedFile)
}

func TestFileWatcher_ResumeDeliversSequentially(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()

	watcher, err := NewFileWatcher([]string{tempDir}, csFilter(t, tempDir), testDebounce)
	require.NoError(t, err)
	t.Cleanup(func() { watcher.Stop() })

	var (
		mu      sync.Mutex
		active  int
		overlap bool
		batches [][]string
	)
	release := make(chan struct{})
	delivered := make(chan struct{}, 4)
	require.NoError(t, watcher.Start(context.Background(), func(files []string) {
		mu.Lock()
		active++
		if active > 1 {
			overlap = true
		}
		batches = append(batches, files)
		first := len(batches) == 1
		mu.Unlock()

		delivered <- struct{}{}
		if first {
			<-release
		}

		mu.Lock()
		active--
		mu.Unlock()
	}))
	time.Sleep(100 * time.Millisecond)

	watcher.Pause()
	pausedFile := filepath.Join(tempDir, "Paused.cs")
	writeSource(t, pausedFile, classSource)
	time.Sleep(2 * testDebounce)

	// Resume must not run the callback on the caller's goroutine
	resumed := make(chan struct{})
	go func() {
		watcher.Resume()
		close(resumed)
	}()
	select {
	case <-resumed:
	case <-time.After(time.Second):
		t.Fatal("Resume blocked on callback")
	}

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("paused batch not delivered after Resume")
	}

	// Edit again while the first batch is still being handled
	laterFile := filepath.Join(tempDir, "Later.cs")
	writeSource(t, laterFile, classSource)
	time.Sleep(3 * testDebounce)
	close(release)

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("second batch not delivered")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, overlap, "callbacks must not overlap")
	require.Len(t, batches, 2)
	assert.Equal(t, []string{pausedFile}, batches[0])
	assert.Equal(t, []string{laterFile}, batches[1])
}

func TestFileWatcher_FileDeleted(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "Program.cs")
	writeSource(t, testFile, classSource)

	_, rec := startWatcher(t, tempDir)
	require.NoError(t, os.Remove(testFile))

	rec.wait(t, 2*time.Second)
	assert.Equal(t, []string{testFile}, rec.all())
}

func TestFileWatcher_FileRenamed(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	oldFile := filepath.Join(tempDir, "Old.cs")
	writeSource(t, oldFile, classSource)

	_, rec := startWatcher(t, tempDir)
	newFile := filepath.Join(tempDir, "New.cs")
	require.NoError(t, os.Rename(oldFile, newFile))

	rec.wait(t, 2*time.Second)
	assert.Contains(t, rec.all(), newFile)
}

func TestFileWatcher_DirectoryAdded(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	_, rec := startWatcher(t, tempDir)

	newDir := filepath.Join(tempDir, "Orders")
	require.NoError(t, os.Mkdir(newDir, 0755))

	// Wait for directory to be added to watcher
	time.Sleep(300 * time.Millisecond)

	fileInNewDir := filepath.Join(newDir, "Order.cs")
	writeSource(t, fileInNewDir, classSource)

	rec.wait(t, 2*time.Second)
	assert.Contains(t, rec.all(), fileInNewDir)
}

func TestFileWatcher_IgnoredDirectoryNotWatched(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	objDir := filepath.Join(tempDir, "obj")
	require.NoError(t, os.Mkdir(objDir, 0755))

	watcher, _ := startWatcher(t, tempDir)
	assert.NotContains(t, watcher.(*fileWatcher).fsw.WatchList(), objDir)
	assert.Contains(t, watcher.(*fileWatcher).fsw.WatchList(), tempDir)
}

func TestFileWatcher_PathFiltering(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	objDir := filepath.Join(tempDir, "obj")
	require.NoError(t, os.Mkdir(objDir, 0755))
	_, rec := startWatcher(t, tempDir)

	csFile := filepath.Join(tempDir, "Program.cs")
	txtFile := filepath.Join(tempDir, "notes.txt")
	generated := filepath.Join(objDir, "Generated.cs")
	writeSource(t, txtFile, "notes")
	writeSource(t, generated, classSource)
	writeSource(t, csFile, classSource)

	rec.wait(t, 2*time.Second)
	files := rec.all()
	assert.Contains(t, files, csFile)
	assert.NotContains(t, files, txtFile)
	assert.NotContains(t, files, generated)
}

func TestFileWatcher_StopCleanup(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()

	watcher, err := NewFileWatcher([]string{tempDir}, csFilter(t, tempDir), testDebounce)
	require.NoError(t, err)
	require.NoError(t, watcher.Start(context.Background(), func([]string) {}))
	time.Sleep(100 * time.Millisecond)

	start := time.Now()
	require.NoError(t, watcher.Stop())
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	// Calling Stop() again should be safe
	require.NoError(t, watcher.Stop())
}

func TestFileWatcher_StopWithoutStart(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()

	watcher, err := NewFileWatcher([]string{tempDir}, csFilter(t, tempDir), testDebounce)
	require.NoError(t, err)
	require.NoError(t, watcher.Stop())
}

func TestFileWatcher_ContextCancellation(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()

	watcher, err := NewFileWatcher([]string{tempDir}, csFilter(t, tempDir), testDebounce)
	require.NoError(t, err)
	defer watcher.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, watcher.Start(ctx, func([]string) {}))
	time.Sleep(100 * time.Millisecond)

	start := time.Now()
	cancel()
	<-watcher.(*fileWatcher).done
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestFileWatcher_ConcurrentStop(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()

	watcher, err := NewFileWatcher([]string{tempDir}, csFilter(t, tempDir), testDebounce)
	require.NoError(t, err)
	require.NoError(t, watcher.Start(context.Background(), func([]string) {}))
	time.Sleep(100 * time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			watcher.Stop()
		}()
	}
	wg.Wait()
}
