package pty

import (
	"strings"
	"testing"
	"time"
)

func TestSpawnEchoesOutput(t *testing.T) {
	h, err := Spawn("/bin/sh", []string{"-c", "echo hello-pty"}, 24, 80)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer h.Close()

	pump := NewPump(h)
	var got strings.Builder
	timeout := time.After(5 * time.Second)
loop:
	for {
		select {
		case c, ok := <-pump.Output():
			if !ok {
				break loop
			}
			got.Write(c.Data)
		case <-pump.Done():
			break loop
		case <-timeout:
			t.Fatal("timed out waiting for child output")
		}
	}
	if !strings.Contains(got.String(), "hello-pty") {
		t.Fatalf("output = %q, want to contain hello-pty", got.String())
	}
}

func TestResizeUpdatesSize(t *testing.T) {
	h, err := Spawn("/bin/sh", []string{"-c", "sleep 1"}, 24, 80)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer h.Close()

	if err := h.Resize(40, 100); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	rows, cols := h.Size()
	if rows != 40 || cols != 100 {
		t.Fatalf("Size() = %d,%d want 40,100", rows, cols)
	}
}

func TestIsIdleBeforeFirstOutput(t *testing.T) {
	h, err := Spawn("/bin/sh", []string{"-c", "sleep 1"}, 24, 80)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer h.Close()

	if h.IsIdle(time.Millisecond) {
		t.Fatal("IsIdle should be false before any output has been read")
	}
}
