package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// RotateOptions bound the size of the log on disk.
type RotateOptions struct {
	// MaxBytes is the size at which the live file is rotated.
	MaxBytes int64
	// Keep is how many rotated generations survive (file.1 .. file.Keep).
	Keep int
	// SyncEach fsyncs after every write so 'postsearch logs -f' sees
	// records as soon as they are logged.
	SyncEach bool
}

// RotatingFile is the io.Writer behind the JSON handler. Writes are
// serialized; a write that would cross MaxBytes rotates first.
type RotatingFile struct {
	path string
	opts RotateOptions

	mu   sync.Mutex
	f    *os.File
	size int64
}

// OpenRotating appends to path, creating its directory if needed.
func OpenRotating(path string, opts RotateOptions) (*RotatingFile, error) {
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = 10 << 20
	}
	if opts.Keep <= 0 {
		opts.Keep = 5
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	rf := &RotatingFile{path: path, opts: opts}
	f, size, err := openAppend(path)
	if err != nil {
		return nil, err
	}
	rf.f, rf.size = f, size
	return rf, nil
}

func (rf *RotatingFile) Write(p []byte) (int, error) {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	if rf.f == nil {
		return 0, os.ErrClosed
	}
	if rf.size > 0 && rf.size+int64(len(p)) > rf.opts.MaxBytes {
		// Logging must not stop because rotation did; the live file keeps
		// growing until the next attempt succeeds.
		if err := rf.rotate(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "postsearch: log rotation: %v\n", err)
		}
	}

	n, err := rf.f.Write(p)
	rf.size += int64(n)
	if err == nil && rf.opts.SyncEach {
		_ = rf.f.Sync()
	}
	return n, err
}

// Close flushes and closes the file. Later writes fail with os.ErrClosed.
func (rf *RotatingFile) Close() error {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	if rf.f == nil {
		return nil
	}
	_ = rf.f.Sync()
	err := rf.f.Close()
	rf.f = nil
	return err
}

// rotate renames the live file to path.1 while it is still open, shifting
// older generations up, then swaps in a fresh file.
func (rf *RotatingFile) rotate() error {
	_ = os.Remove(rf.generation(rf.opts.Keep))
	for n := rf.opts.Keep - 1; n >= 1; n-- {
		if err := os.Rename(rf.generation(n), rf.generation(n+1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	if err := os.Rename(rf.path, rf.generation(1)); err != nil {
		return err
	}

	f, _, err := openAppend(rf.path)
	if err != nil {
		return err
	}
	_ = rf.f.Close()
	rf.f, rf.size = f, 0
	return nil
}

func (rf *RotatingFile) generation(n int) string {
	return fmt.Sprintf("%s.%d", rf.path, n)
}

func openAppend(path string) (*os.File, int64, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, 0, fmt.Errorf("open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, fmt.Errorf("stat log file: %w", err)
	}
	return f, info.Size(), nil
}
