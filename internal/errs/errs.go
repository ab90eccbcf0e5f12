// Package errs defines the typed error kinds shared across rat's core
// packages. Each kind is a distinct Go type rather than a formatted string,
// so callers can discriminate with errors.Is/errors.As instead of matching
// on message text.
package errs

import "fmt"

// GridKind enumerates Grid error kinds.
type GridKind int

const (
	GridOutOfBounds GridKind = iota
	GridInvalidResize
)

func (k GridKind) String() string {
	switch k {
	case GridOutOfBounds:
		return "out of bounds"
	case GridInvalidResize:
		return "invalid resize"
	default:
		return "unknown grid error"
	}
}

// GridError reports a Grid invariant violation.
type GridError struct {
	Kind GridKind
	Op   string
	Row  int
	Col  int
}

func (e *GridError) Error() string {
	return fmt.Sprintf("grid: %s: %s (row=%d col=%d)", e.Op, e.Kind, e.Row, e.Col)
}

// PtyKind enumerates PTY error kinds.
type PtyKind int

const (
	PtySpawn PtyKind = iota
	PtyIO
	PtyChildExited
)

// PtyError reports a PTY host failure.
type PtyError struct {
	Kind PtyKind
	Err  error
	Code int
}

func (e *PtyError) Error() string {
	switch e.Kind {
	case PtySpawn:
		return fmt.Sprintf("pty: spawn failed: %v", e.Err)
	case PtyIO:
		return fmt.Sprintf("pty: io error: %v", e.Err)
	case PtyChildExited:
		return fmt.Sprintf("pty: child exited (code %d)", e.Code)
	default:
		return fmt.Sprintf("pty: error: %v", e.Err)
	}
}

func (e *PtyError) Unwrap() error { return e.Err }

// ParseError signals the ANSI parser needs more bytes before it can
// interpret a sequence. It is always recoverable — the caller retains the
// partial state and feeds more bytes on the next read.
type ParseError struct {
	Truncated bool
}

func (e *ParseError) Error() string { return "parse: truncated escape sequence" }

// BufferKind enumerates EditorBuffer error kinds.
type BufferKind int

const (
	BufferIO BufferKind = iota
	BufferEncoding
)

// BufferError reports an EditorBuffer failure (typically on save/load).
type BufferError struct {
	Kind BufferKind
	Path string
	Err  error
}

func (e *BufferError) Error() string {
	switch e.Kind {
	case BufferEncoding:
		return fmt.Sprintf("buffer: %s: invalid encoding: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("buffer: %s: io error: %v", e.Path, e.Err)
	}
}

func (e *BufferError) Unwrap() error { return e.Err }

// LspKind enumerates LSP transport error kinds.
type LspKind int

const (
	LspSpawn LspKind = iota
	LspFraming
	LspProtocol
	LspTimeout
	LspServerGone
)

func (k LspKind) String() string {
	switch k {
	case LspSpawn:
		return "spawn"
	case LspFraming:
		return "framing"
	case LspProtocol:
		return "protocol"
	case LspTimeout:
		return "timeout"
	case LspServerGone:
		return "server gone"
	default:
		return "unknown"
	}
}

// LspError reports a language-server transport failure. Per spec.md §7,
// LspError never propagates as a user-fatal error — the completion engine
// downgrades to keyword-only completion on any LspError.
type LspError struct {
	Kind LspKind
	Err  error
}

func (e *LspError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("lsp: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("lsp: %s", e.Kind)
}

func (e *LspError) Unwrap() error { return e.Err }

// CompletionKind enumerates completion engine error kinds.
type CompletionKind int

const (
	CompletionInvalidated CompletionKind = iota
	CompletionNoProvider
)

// CompletionError reports why a completion request produced no displayable
// result.
type CompletionError struct {
	Kind CompletionKind
}

func (e *CompletionError) Error() string {
	switch e.Kind {
	case CompletionInvalidated:
		return "completion: result invalidated"
	case CompletionNoProvider:
		return "completion: no provider available"
	default:
		return "completion: error"
	}
}

// FatalInit reports an unrecoverable initialization failure: the app could
// not acquire the terminal or could not draw a first frame. It is the only
// error kind allowed to abort the process (spec.md §7).
type FatalInit struct {
	Reason string
	Err    error
}

func (e *FatalInit) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fatal init: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("fatal init: %s", e.Reason)
}

func (e *FatalInit) Unwrap() error { return e.Err }
