package app

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/shlex"
	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"rat/internal/config"
	"rat/internal/editor"
	"rat/internal/errs"
	"rat/internal/eventloop"
	"rat/internal/multiplexer"
	"rat/internal/pty"
	"rat/internal/render"
	"rat/internal/sessionlog"
	"rat/internal/vterm"
)

// Run launches the full split-pane application against the real terminal
// on stdin/stdout, grounded on the teacher's Client.Run: detect size, spawn
// the shell under a PTY, enter raw mode, wire background reader goroutines,
// then drive the event loop until Quit. If path is non-empty the editor
// opens it and takes focus. The returned error is only non-nil for a fatal
// initialization failure (spec.md §7 AppError::FatalInit); a clean quit
// returns nil.
func Run(path string) error {
	fd := int(os.Stdin.Fd())
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return &errs.FatalInit{Reason: "get terminal size (is this a terminal?)", Err: err}
	}

	cfg, err := config.Load()
	if err != nil {
		return &errs.FatalInit{Reason: "load config", Err: err}
	}

	shellCmd := cfg.Extra["shell_cmd"]
	if shellCmd == "" {
		shellCmd = os.Getenv("SHELL")
	}
	if shellCmd == "" {
		shellCmd = "/bin/sh"
	}
	argv, err := shlex.Split(shellCmd)
	if err != nil || len(argv) == 0 {
		return &errs.FatalInit{Reason: fmt.Sprintf("parse shell_cmd %q", shellCmd), Err: err}
	}

	host, err := pty.Spawn(argv[0], argv[1:], rows, cols)
	if err != nil {
		return &errs.FatalInit{Reason: "spawn shell", Err: err}
	}

	restore, err := term.MakeRaw(fd)
	if err != nil {
		return &errs.FatalInit{Reason: "enter raw mode", Err: err}
	}
	defer term.Restore(fd, restore)

	term0 := vterm.New(cols, rows)
	term0.Attach(host)

	mux := multiplexer.New(term0)
	ed := editor.New()
	ed.Height = rows

	out := render.New(os.Stdout, termenv.NewOutput(os.Stdout).ColorProfile())
	a := New(mux, ed, out)
	a.Resize(cols, rows)
	a.Loop = eventloop.New(mux, ed, nil)
	a.Loop.Bus = a.Bus
	a.Loop.Cols, a.Loop.Rows = cols, rows
	a.Loop.LayoutCfg = a.Cfg
	a.Loop.NewTerminal = func() (*vterm.Terminal, *pty.Pump) {
		return spawnPaneTerminal(argv, a.Loop.Cols, a.Loop.Rows)
	}
	loop := a.Loop

	// ed.Bus is set by New above, so OpenBuffer here publishes FileOpened
	// for the rat <path> launch path (spec.md §6 event bus).
	openedEditor := path != ""
	if openedEditor {
		buf, err := editor.OpenFile(path, languageFor(path))
		if err != nil {
			return &errs.FatalInit{Reason: "open " + path, Err: err}
		}
		ed.Buffers = ed.Buffers[:0] // drop the empty scratch buffer New() seeded
		ed.OpenBuffer(buf)
		a.Loop.Focus = eventloop.FocusEditor
	}

	sessionID := uuid.New().String()
	termID := loop.AttachTerminal(term0, pty.NewPump(host))

	logger, err := sessionlog.Open(config.Dir(), true)
	if err == nil {
		defer logger.Close()
		_ = logger.Append(fmt.Sprintf("session=%s started term=%d shell=%s", sessionID, termID, shellCmd))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)
	stop := make(chan struct{})
	go watchResize(sigCh, fd, loop, stop)

	go readInput(os.Stdin, loop, stop)

	a.StartupGrid()
	loop.SetDirtyCheck(func() []string { return dirtyBufferNames(ed) })
	started := time.Now()
	loop.Run(stop, a)

	if logger != nil {
		_ = logger.WriteSummary(sessionlog.Summary{
			StartedAt:       started,
			EndedAt:         time.Now(),
			TerminalsOpened: 1,
		})
	}
	return nil
}

// spawnPaneTerminal starts a new shell under its own PTY for a multiplexer
// Split/NewTab, sized to the pane it will fill. A spawn failure returns a
// terminal carrying only a diagnostic line and a nil pump rather than an
// error, since the caller (eventloop.Loop.dispatchMultiplexerKey) has no
// channel back to the user beyond the pane's own screen.
func spawnPaneTerminal(argv []string, cols, rows int) (*vterm.Terminal, *pty.Pump) {
	term := vterm.New(cols, rows)
	host, err := pty.Spawn(argv[0], argv[1:], rows, cols)
	if err != nil {
		term.FeedBytes([]byte(fmt.Sprintf("rat: spawn %s: %v\r\n", argv[0], err)))
		return term, nil
	}
	term.Attach(host)
	return term, pty.NewPump(host)
}

func dirtyBufferNames(ed *editor.Editor) []string {
	var names []string
	for _, b := range ed.Buffers {
		if b.Dirty {
			name := b.Path
			if name == "" {
				name = "[untitled]"
			}
			names = append(names, name)
		}
	}
	return names
}

func languageFor(path string) string {
	switch {
	case strings.HasSuffix(path, ".go"):
		return "go"
	case strings.HasSuffix(path, ".rs"):
		return "rust"
	case strings.HasSuffix(path, ".py"):
		return "python"
	default:
		return ""
	}
}

func watchResize(sigCh chan os.Signal, fd int, loop *eventloop.Loop, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-sigCh:
			cols, rows, err := term.GetSize(fd)
			if err != nil {
				continue
			}
			loop.PostResize(eventloop.ResizeEvent{Cols: cols, Rows: rows})
		}
	}
}

func readInput(r *os.File, loop *eventloop.Loop, stop <-chan struct{}) {
	var dec eventloop.Decoder
	buf := make([]byte, 4096)
	for {
		select {
		case <-stop:
			return
		default:
		}
		n, err := r.Read(buf)
		if err != nil {
			return
		}
		for _, ev := range dec.Feed(buf[:n]) {
			loop.PostInput(ev)
		}
	}
}
