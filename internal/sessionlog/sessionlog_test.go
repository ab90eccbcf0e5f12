package sessionlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestAppendWritesTimestampedLine(t *testing.T) {
	dir := t.TempDir()
	l, err := Open(dir, true)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer l.Close()

	if err := l.Append("terminal opened id=1"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "session.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "terminal opened id=1") {
		t.Fatalf("log contents = %q, missing expected line", data)
	}
}

func TestAppendDisabledIsNoop(t *testing.T) {
	dir := t.TempDir()
	l, err := Open(dir, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := l.Append("should not be written"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "session.log")); !os.IsNotExist(err) {
		t.Fatal("expected no log file for a disabled logger")
	}
}

func TestRotateIfNeededRenamesOversizedLog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.log")
	big := make([]byte, maxSizeBytes+1)
	if err := os.WriteFile(path, big, 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := Open(dir, true)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer l.Close()

	if err := l.Append("fresh line"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var sawRotated bool
	for _, e := range entries {
		if matchesRotatedName(e.Name()) {
			sawRotated = true
		}
	}
	if !sawRotated {
		t.Fatal("expected the oversized log to be rotated aside")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fresh log: %v", err)
	}
	if !strings.Contains(string(data), "fresh line") {
		t.Fatal("expected the new file to contain the line appended after rotation")
	}
}

func TestWriteSummaryMarshalsYAML(t *testing.T) {
	dir := t.TempDir()
	l, err := Open(dir, true)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer l.Close()

	s := Summary{
		StartedAt:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndedAt:         time.Date(2026, 1, 1, 1, 0, 0, 0, time.UTC),
		FilesTouched:    []string{"main.go"},
		TerminalsOpened: 2,
	}
	if err := l.WriteSummary(s); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var found bool
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "summary-") {
			found = true
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(data), "main.go") {
				t.Fatalf("summary contents = %q, missing files_touched entry", data)
			}
		}
	}
	if !found {
		t.Fatal("expected a summary-*.yaml file to be written")
	}
}
