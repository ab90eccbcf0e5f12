package lsp

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	"rat/internal/errs"
)

const (
	initializeTimeout = 5 * time.Second
	completionTimeout = 2 * time.Second
	killGrace         = 2 * time.Second
)

// pendingCall is a correlation-table slot: a request id waiting for its
// matching response (spec.md §4.9 "a correlation table maps id -> pending
// result slot").
type pendingCall struct {
	result chan response
}

// Client manages one language server child process's stdio transport.
// Grounded on dcosson-h2's bridge/exec.go subprocess-with-timeout shape,
// generalized to a long-lived process with a persistent read loop instead
// of a one-shot command.
type Client struct {
	Language string

	cmd    *exec.Cmd
	stdin  io.Writer
	reader *bufio.Reader

	mu       sync.Mutex
	nextID   int64
	pending  map[int64]pendingCall
	dead     bool
	deadErr  error
	ready    bool
}

// Start spawns the language server registered for language and performs
// the initialize/initialized handshake (spec.md §4.9 "Lifecycle per
// server"). It returns errs.LspError{Kind: LspSpawn} if no server is
// registered or the process cannot start.
func Start(language, workspaceRoot string) (*Client, error) {
	spec, ok := Lookup(language)
	if !ok {
		return nil, &errs.LspError{Kind: errs.LspSpawn, Err: fmt.Errorf("no language server registered for %q", language)}
	}
	cmd := exec.Command(spec.Command, spec.Args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, &errs.LspError{Kind: errs.LspSpawn, Err: err}
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &errs.LspError{Kind: errs.LspSpawn, Err: err}
	}
	if err := cmd.Start(); err != nil {
		return nil, &errs.LspError{Kind: errs.LspSpawn, Err: err}
	}

	c := newClient(language, stdin, stdout)
	c.cmd = cmd

	go func() {
		err := cmd.Wait()
		c.markDead(&errs.LspError{Kind: errs.LspServerGone, Err: err})
	}()

	return c.handshake(workspaceRoot)
}

// newClient wires a Client around an already-open stdio pair without
// spawning a process, so the correlation/timeout/cancellation logic can be
// exercised against an in-memory fake server in tests.
func newClient(language string, stdin io.Writer, stdout io.Reader) *Client {
	c := &Client{
		Language: language,
		stdin:    stdin,
		reader:   bufio.NewReader(stdout),
		pending:  make(map[int64]pendingCall),
	}
	go c.readLoop()
	return c
}

func (c *Client) handshake(workspaceRoot string) (*Client, error) {
	if _, err := c.call("initialize", map[string]interface{}{
		"processId":    nil,
		"rootUri":      "file://" + workspaceRoot,
		"capabilities": clientCapabilities(),
	}, initializeTimeout); err != nil {
		return nil, err
	}
	c.notify("initialized", map[string]interface{}{})
	c.mu.Lock()
	c.ready = true
	c.mu.Unlock()
	return c, nil
}

// Ready reports whether the initialize handshake completed.
func (c *Client) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready && !c.dead
}

// Complete issues textDocument/completion for the given file/position and
// returns the server's items, or an LspError on timeout/transport failure
// (spec.md §4.8 "LSP provider").
func (c *Client) Complete(uri string, line, character int) ([]CompletionItem, error) {
	raw, err := c.call("textDocument/completion", map[string]interface{}{
		"textDocument": map[string]string{"uri": uri},
		"position":     map[string]int{"line": line, "character": character},
	}, completionTimeout)
	if err != nil {
		return nil, err
	}
	var result completionResult
	if err := json.Unmarshal(raw.Result, &result); err != nil {
		var list []CompletionItem
		if err2 := json.Unmarshal(raw.Result, &list); err2 == nil {
			return list, nil
		}
		return nil, &errs.LspError{Kind: errs.LspProtocol, Err: err}
	}
	return result.Items, nil
}

// DidChange notifies the server of the buffer's full new text.
func (c *Client) DidChange(uri string, version int, text string) {
	c.notify("textDocument/didChange", map[string]interface{}{
		"textDocument":   map[string]interface{}{"uri": uri, "version": version},
		"contentChanges": []map[string]string{{"text": text}},
	})
}

// Shutdown performs the request-shutdown/notify-exit sequence and
// force-kills the child after the grace period (spec.md §4.9).
func (c *Client) Shutdown() {
	done := make(chan struct{})
	go func() {
		c.call("shutdown", nil, initializeTimeout)
		c.notify("exit", nil)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(killGrace):
	}
	c.mu.Lock()
	dead := c.dead
	c.mu.Unlock()
	if !dead && c.cmd != nil && c.cmd.Process != nil {
		c.cmd.Process.Kill()
	}
}

// cancel sends $/cancelRequest for id and drops its correlation slot; a
// response that arrives afterward is dropped by readLoop since the slot
// is gone (spec.md §4.9 "Cancellation").
func (c *Client) cancel(id int64) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
	c.notify("$/cancelRequest", map[string]int64{"id": id})
}

func (c *Client) markDead(err error) {
	c.mu.Lock()
	if c.dead {
		c.mu.Unlock()
		return
	}
	c.dead = true
	c.deadErr = err
	pending := c.pending
	c.pending = make(map[int64]pendingCall)
	c.mu.Unlock()
	for _, p := range pending {
		close(p.result)
	}
}

func (c *Client) readLoop() {
	for {
		raw, err := readFrame(c.reader)
		if err != nil {
			var fe *frameError
			if errors.As(err, &fe) {
				// malformed or missing Content-Length header: reset and
				// keep reading per spec.md §4.9, never fatal.
				continue
			}
			c.markDead(&errs.LspError{Kind: errs.LspServerGone, Err: err})
			return
		}
		var resp response
		if err := json.Unmarshal(raw, &resp); err != nil {
			// malformed frame: reset and continue per spec.md §4.9, never fatal.
			continue
		}
		if resp.ID == nil {
			continue // server notification; nothing subscribes to these yet
		}
		c.mu.Lock()
		p, ok := c.pending[*resp.ID]
		if ok {
			delete(c.pending, *resp.ID)
		}
		c.mu.Unlock()
		if ok {
			p.result <- resp
		}
	}
}

func (c *Client) call(method string, params interface{}, timeout time.Duration) (response, error) {
	c.mu.Lock()
	if c.dead {
		err := c.deadErr
		c.mu.Unlock()
		if err == nil {
			err = &errs.LspError{Kind: errs.LspServerGone}
		}
		return response{}, err
	}
	id := c.nextID
	c.nextID++
	slot := pendingCall{result: make(chan response, 1)}
	c.pending[id] = slot
	c.mu.Unlock()

	body, err := json.Marshal(request{JSONRPC: "2.0", ID: &id, Method: method, Params: params})
	if err != nil {
		return response{}, &errs.LspError{Kind: errs.LspProtocol, Err: err}
	}
	if err := writeFrame(c.stdin, body); err != nil {
		return response{}, &errs.LspError{Kind: errs.LspFraming, Err: err}
	}

	select {
	case resp, ok := <-slot.result:
		if !ok {
			return response{}, &errs.LspError{Kind: errs.LspServerGone}
		}
		if resp.Error != nil {
			return response{}, &errs.LspError{Kind: errs.LspProtocol, Err: fmt.Errorf("%s", resp.Error.Message)}
		}
		return resp, nil
	case <-time.After(timeout):
		c.cancel(id)
		return response{}, &errs.LspError{Kind: errs.LspTimeout}
	}
}

func (c *Client) notify(method string, params interface{}) {
	c.mu.Lock()
	dead := c.dead
	c.mu.Unlock()
	if dead {
		return
	}
	body, err := json.Marshal(request{JSONRPC: "2.0", Method: method, Params: params})
	if err != nil {
		return
	}
	writeFrame(c.stdin, body)
}
