package sessionlog

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Summary is the YAML sidecar a Logger writes once per session, when
// internal/app.Run calls WriteSummary after the event loop returns
// (grounded on the teacher's buildSessionSummary/activitylog intent, called
// directly rather than through a hook-driven log or the event bus).
type Summary struct {
	StartedAt   time.Time `yaml:"started_at"`
	EndedAt     time.Time `yaml:"ended_at"`
	FilesTouched []string `yaml:"files_touched"`
	TerminalsOpened int   `yaml:"terminals_opened"`
}

// WriteSummary marshals s to dir/summary-<timestamp>.yaml. It is best-effort:
// a disabled logger silently skips the write, matching Append's contract.
func (l *Logger) WriteSummary(s Summary) error {
	if !l.enabled {
		return nil
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	path := filepath.Join(l.dir, "summary-"+s.EndedAt.UTC().Format("20060102T150405")+".yaml")
	return os.WriteFile(path, data, 0o644)
}
