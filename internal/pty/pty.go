// Package pty owns the pseudo-terminal lifecycle for a hosted child process:
// spawning the shell under a PTY, reading its output, forwarding resizes,
// and reporting exit. Grounded on _examples/dcosson-h2's
// internal/virtualterminal/vt.go (StartPTY/PipeOutput/Resize/IsIdle), wired
// to the same github.com/creack/pty dependency the teacher uses.
package pty

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/creack/pty"

	"rat/internal/errs"
)

// Host owns one child process running under a PTY.
type Host struct {
	ptm *os.File
	cmd *exec.Cmd

	mu         sync.Mutex
	lastOutput time.Time
	rows, cols int
}

// Spawn starts command under a new PTY sized rows x cols. The command runs
// with its controlling terminal set to the PTY slave.
func Spawn(command string, args []string, rows, cols int) (*Host, error) {
	cmd := exec.Command(command, args...)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	ptm, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return nil, &errs.PtyError{Kind: errs.PtySpawn, Err: err}
	}
	return &Host{ptm: ptm, cmd: cmd, rows: rows, cols: cols}, nil
}

// Read reads one chunk of child output. Errors (including io.EOF on child
// exit) are wrapped as errs.PtyError{Kind: PtyIO} for the caller to
// translate into a PtyExit event.
func (h *Host) Read(buf []byte) (int, error) {
	n, err := h.ptm.Read(buf)
	if n > 0 {
		h.mu.Lock()
		h.lastOutput = time.Now()
		h.mu.Unlock()
	}
	if err != nil {
		return n, &errs.PtyError{Kind: errs.PtyIO, Err: err}
	}
	return n, nil
}

// Write sends bytes to the child's stdin (the PTY master).
func (h *Host) Write(p []byte) (int, error) {
	n, err := h.ptm.Write(p)
	if err != nil {
		return n, &errs.PtyError{Kind: errs.PtyIO, Err: err}
	}
	return n, nil
}

// Resize updates the PTY window size, which delivers SIGWINCH to the child.
func (h *Host) Resize(rows, cols int) error {
	h.mu.Lock()
	h.rows, h.cols = rows, cols
	h.mu.Unlock()
	if err := pty.Setsize(h.ptm, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)}); err != nil {
		return &errs.PtyError{Kind: errs.PtyIO, Err: err}
	}
	return nil
}

// Size returns the last size set via Spawn or Resize.
func (h *Host) Size() (rows, cols int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rows, h.cols
}

// Signal sends a signal to the child process group, used for interrupt
// (Ctrl-C passthrough) delivery.
func (h *Host) Signal(sig os.Signal) error {
	if h.cmd.Process == nil {
		return nil
	}
	return h.cmd.Process.Signal(sig)
}

// Wait blocks until the child exits and returns its exit status. It
// classifies the outcome as errs.PtyError{Kind: PtyChildExited, Code: n}
// when the child ran and exited non-zero; a clean exit (code 0) returns nil.
func (h *Host) Wait() error {
	err := h.cmd.Wait()
	if err == nil {
		return nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return &errs.PtyError{Kind: errs.PtyChildExited, Err: err, Code: exitErr.ExitCode()}
	}
	return &errs.PtyError{Kind: errs.PtyIO, Err: err}
}

// Close releases the PTY master file descriptor.
func (h *Host) Close() error {
	return h.ptm.Close()
}

// IsIdle reports whether the child has produced output and then none for
// more than threshold; before the first output it reports false.
func (h *Host) IsIdle(threshold time.Duration) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.lastOutput.IsZero() && time.Since(h.lastOutput) > threshold
}

// String renders a compact description for logs and debug overlays.
func (h *Host) String() string {
	rows, cols := h.Size()
	return fmt.Sprintf("pty(pid=%d size=%dx%d)", h.cmd.Process.Pid, cols, rows)
}
