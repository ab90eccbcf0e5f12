package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"rat/internal/editor"
)

func TestLoadFromValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")

	body := `# runtime tunables
scrollback_lines = 5000
completion_debounce_ms = 150
split_ratio = 0.4
default_keymap = vim

theme = solarized
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.ScrollbackLines != 5000 {
		t.Errorf("ScrollbackLines = %d, want 5000", cfg.ScrollbackLines)
	}
	if cfg.CompletionDebounce != 150*time.Millisecond {
		t.Errorf("CompletionDebounce = %v, want 150ms", cfg.CompletionDebounce)
	}
	if cfg.SplitRatio != 0.4 {
		t.Errorf("SplitRatio = %v, want 0.4", cfg.SplitRatio)
	}
	if cfg.DefaultKeymap != editor.KeymapVim {
		t.Errorf("DefaultKeymap = %v, want KeymapVim", cfg.DefaultKeymap)
	}
	if cfg.Extra["theme"] != "solarized" {
		t.Errorf("Extra[theme] = %q, want %q", cfg.Extra["theme"], "solarized")
	}
}

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.ScrollbackLines != 10000 {
		t.Errorf("ScrollbackLines = %d, want default 10000", cfg.ScrollbackLines)
	}
	if cfg.DefaultKeymap != editor.KeymapDefault {
		t.Errorf("DefaultKeymap = %v, want KeymapDefault", cfg.DefaultKeymap)
	}
}

func TestLoadFromRejectsMalformedLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	if err := os.WriteFile(path, []byte("not-a-key-value-line\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected an error for a malformed line")
	}
}

func TestLoadFromRejectsInvalidKeymap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	if err := os.WriteFile(path, []byte("default_keymap = nethack\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected an error for an unknown keymap name")
	}
}

func TestLoadFromSkipsBlankLinesAndComments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	body := "\n# a comment\n\n  # indented comment\nsplit_ratio = 0.75\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.SplitRatio != 0.75 {
		t.Errorf("SplitRatio = %v, want 0.75", cfg.SplitRatio)
	}
}
