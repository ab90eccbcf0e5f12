// Package sessionlog implements the optional session logs spec.md §6
// names: timestamped append-only text files, size-rotated at 10 MiB and
// age-pruned. Grounded on the teacher's internal/activitylog (New(enabled,
// path, ...)/Close()/append-one-line-per-event shape), generalized from
// JSON-lines hook events to plain timestamped text lines, and on the
// teacher's use of github.com/gofrs/flock to guard a shared file against
// concurrent writers from more than one process.
package sessionlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

const (
	maxSizeBytes = 10 * 1024 * 1024 // spec.md §6: size-rotated at 10 MiB
	maxAge       = 14 * 24 * time.Hour
)

// Logger appends timestamped lines to a rotating log file, guarded by an
// advisory lock so multiple rat processes sharing one user data directory
// don't interleave writes mid-line.
type Logger struct {
	dir     string
	path    string
	lock    *flock.Flock
	enabled bool
}

// Open prepares a logger rooted at dir (normally config.Dir()). enabled
// lets callers compile the logger in unconditionally and no-op it via
// config rather than branching at every call site.
func Open(dir string, enabled bool) (*Logger, error) {
	if !enabled {
		return &Logger{enabled: false}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("sessionlog: %w", err)
	}
	l := &Logger{
		dir:     dir,
		path:    filepath.Join(dir, "session.log"),
		lock:    flock.New(filepath.Join(dir, "session.log.lock")),
		enabled: true,
	}
	if err := pruneOld(dir); err != nil {
		return nil, err
	}
	return l, nil
}

// Append writes one timestamped line, rotating first if the file has
// grown past maxSizeBytes.
func (l *Logger) Append(line string) error {
	if !l.enabled {
		return nil
	}
	locked, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("sessionlog: lock: %w", err)
	}
	if !locked {
		return nil // another rat process is mid-rotation; drop rather than block the event loop
	}
	defer l.lock.Unlock()

	if err := l.rotateIfNeeded(); err != nil {
		return err
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("sessionlog: %w", err)
	}
	defer f.Close()
	_, err = fmt.Fprintf(f, "%s %s\n", time.Now().UTC().Format(time.RFC3339), line)
	return err
}

func (l *Logger) rotateIfNeeded() error {
	info, err := os.Stat(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Size() < maxSizeBytes {
		return nil
	}
	rotated := filepath.Join(l.dir, fmt.Sprintf("session-%s.log", time.Now().UTC().Format("20060102T150405")))
	return os.Rename(l.path, rotated)
}

// pruneOld removes rotated session-*.log files older than maxAge.
func pruneOld(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	cutoff := time.Now().Add(-maxAge)
	for _, e := range entries {
		if e.IsDir() || !matchesRotatedName(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(dir, e.Name()))
		}
	}
	return nil
}

func matchesRotatedName(name string) bool {
	return strings.HasPrefix(name, "session-") && strings.HasSuffix(name, ".log")
}

// Close releases the logger's lock handle. Safe to call on a disabled
// logger.
func (l *Logger) Close() error {
	if !l.enabled || l.lock == nil {
		return nil
	}
	return l.lock.Close()
}
