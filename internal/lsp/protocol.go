package lsp

import "encoding/json"

// request is an outgoing JSON-RPC 2.0 request or notification. Notifications
// omit ID (spec.md §4.9 "Notifications have no id and no response").
type request struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      *int64      `json:"id,omitempty"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// response is an incoming JSON-RPC 2.0 response or server-initiated
// request/notification. All three share enough shape that one struct
// decodes any of them; Method is empty for a pure response.
type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *int64          `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// InitializeResult is the minimal subset of the LSP initialize response
// the completion engine needs: whether the server advertises completion
// support at all.
type InitializeResult struct {
	Capabilities struct {
		CompletionProvider *struct {
			TriggerCharacters []string `json:"triggerCharacters"`
		} `json:"completionProvider"`
	} `json:"capabilities"`
}

// CompletionItem is the subset of LSP CompletionItem fields the engine
// displays; InsertText falls back to Label when the server omits it.
type CompletionItem struct {
	Label      string `json:"label"`
	InsertText string `json:"insertText"`
}

type completionResult struct {
	Items []CompletionItem `json:"items"`
}

// clientCapabilities is sent in the initialize request. It is
// intentionally minimal: this transport only exercises completion.
func clientCapabilities() map[string]interface{} {
	return map[string]interface{}{
		"textDocument": map[string]interface{}{
			"completion": map[string]interface{}{
				"completionItem": map[string]interface{}{
					"snippetSupport": false,
				},
			},
		},
	}
}
