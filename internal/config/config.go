// Package config loads the core's persisted runtime tunables: a flat
// "key = value" file with "#" comments (spec.md §6 "Persisted state
// layout"), not the teacher's per-user YAML bridges document. The
// Load/LoadFrom split and "missing file is not an error" behavior are
// grounded on the teacher's internal/config/config.go.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"rat/internal/editor"
)

// Config holds the runtime tunables the file defines (spec.md §10.2):
// scrollback capacity, completion debounce/timeout, split ratio, default
// keymap. They are parsed and validated here; no other package reads them.
// Anything else in the file (theme/extension settings) is out of scope and
// preserved verbatim in Extra for a surrounding collaborator to interpret;
// internal/app.Run reads Extra["shell_cmd"].
type Config struct {
	ScrollbackLines    int
	CompletionDebounce time.Duration
	CompletionTimeout  time.Duration
	SplitRatio         float64
	DefaultKeymap      editor.Keymap

	Extra map[string]string
}

// defaults mirrors the zero-config behavior a fresh install should see.
func defaults() *Config {
	return &Config{
		ScrollbackLines:    10000,
		CompletionDebounce: 300 * time.Millisecond,
		CompletionTimeout:  2 * time.Second,
		SplitRatio:         0.5,
		DefaultKeymap:      editor.KeymapDefault,
		Extra:              map[string]string{},
	}
}

// Dir returns the rat configuration directory (~/.config/rat, or
// $XDG_CONFIG_HOME/rat when set).
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rat")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".rat")
	}
	return filepath.Join(home, ".config", "rat")
}

// Load reads the config from Dir()/config. A missing file is not an error;
// it returns the built-in defaults (teacher: Load/LoadFrom's "absence is
// valid" contract).
func Load() (*Config, error) {
	return LoadFrom(filepath.Join(Dir(), "config"))
}

// LoadFrom parses the key=value file at path.
func LoadFrom(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults(), nil
		}
		return nil, err
	}
	defer f.Close()

	cfg := defaults()
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		key, val, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, fmt.Errorf("config: %s:%d: expected key = value, got %q", path, line, raw)
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		if err := cfg.apply(key, val); err != nil {
			return nil, fmt.Errorf("config: %s:%d: %w", path, line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) apply(key, val string) error {
	switch key {
	case "scrollback_lines":
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("scrollback_lines: %w", err)
		}
		c.ScrollbackLines = n
	case "completion_debounce_ms":
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("completion_debounce_ms: %w", err)
		}
		c.CompletionDebounce = time.Duration(n) * time.Millisecond
	case "completion_timeout_ms":
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("completion_timeout_ms: %w", err)
		}
		c.CompletionTimeout = time.Duration(n) * time.Millisecond
	case "split_ratio":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("split_ratio: %w", err)
		}
		c.SplitRatio = f
	case "default_keymap":
		km, err := parseKeymap(val)
		if err != nil {
			return err
		}
		c.DefaultKeymap = km
	default:
		c.Extra[key] = val
	}
	return nil
}

func parseKeymap(val string) (editor.Keymap, error) {
	switch strings.ToLower(val) {
	case "vim":
		return editor.KeymapVim, nil
	case "emacs":
		return editor.KeymapEmacs, nil
	case "default":
		return editor.KeymapDefault, nil
	default:
		return 0, fmt.Errorf("default_keymap: unknown keymap %q", val)
	}
}
