package completion

import (
	"strings"

	"rat/internal/lsp"
)

// LSPProvider adapts a running lsp.Client into a completion Provider
// (spec.md §4.8 "LSP provider"). URI and line/character are supplied by
// the caller per request since the provider itself is stateless.
type LSPProvider struct {
	Client     *lsp.Client
	URI        string
	Line, Char int
	Version    int
}

// Complete implements Provider. It is a no-op success (zero items, no
// error) when the client isn't ready, so the keyword provider remains the
// sole contributor without the engine treating this as a failure.
func (p LSPProvider) Complete(req Request) ([]Item, error) {
	if p.Client == nil || !p.Client.Ready() {
		return nil, nil
	}
	p.Client.DidChange(p.URI, p.Version, req.BufferText)
	lspItems, err := p.Client.Complete(p.URI, p.Line, p.Char)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(lspItems))
	for _, it := range lspItems {
		label := it.InsertText
		if label == "" {
			label = it.Label
		}
		if !strings.HasPrefix(strings.ToLower(label), strings.ToLower(req.Prefix)) {
			continue
		}
		items = append(items, Item{Label: label, Source: SourceLSP})
	}
	return items, nil
}
