// Package lsp implements the language-server transport (spec.md §4.9 "LSP
// Transport (C11)"): framed JSON-RPC over a child process's stdio, request
// correlation, lifecycle management, and failure handling that never lets
// a server's misbehavior propagate as a fatal error (spec.md §7).
//
// No JSON-RPC or LSP client library appears anywhere in the example pack;
// this package is stdlib-only (encoding/json, bufio, os/exec) by design.
package lsp

// ServerSpec names the executable and arguments used to start a language
// server for a given language, grounded on majorcontext-moat's
// internal/langserver registry (there a discovery table for MCP servers;
// here the same Name/Command/Args shape for LSP stdio servers instead).
type ServerSpec struct {
	Language string
	Command  string
	Args     []string
}

var registry = map[string]ServerSpec{
	"go":     {Language: "go", Command: "gopls", Args: []string{"serve"}},
	"rust":   {Language: "rust", Command: "rust-analyzer"},
	"python": {Language: "python", Command: "pylsp"},
}

// Lookup returns the ServerSpec registered for language, if any.
func Lookup(language string) (ServerSpec, bool) {
	spec, ok := registry[language]
	return spec, ok
}
