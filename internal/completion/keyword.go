// Package completion implements the inline completion engine (spec.md
// §4.8 "Completion Engine (C10)"): debounced trigger, concurrent
// LSP/keyword providers, result merging, and ghost-text display state.
package completion

import (
	"regexp"
	"sort"
	"strings"
)

// reservedWords is a minimal per-language keyword list. Extending the set
// of recognized languages means adding an entry here; an unknown language
// falls back to no reserved words (identifiers-only completion still
// works).
var reservedWords = map[string][]string{
	"go": {
		"break", "case", "chan", "const", "continue", "default", "defer",
		"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
		"interface", "map", "package", "range", "return", "select",
		"struct", "switch", "type", "var",
	},
	"rust": {
		"as", "break", "const", "continue", "crate", "else", "enum",
		"extern", "false", "fn", "for", "if", "impl", "in", "let", "loop",
		"match", "mod", "move", "mut", "pub", "ref", "return", "self",
		"Self", "static", "struct", "super", "trait", "true", "type",
		"unsafe", "use", "where", "while",
	},
	"python": {
		"and", "as", "assert", "async", "await", "break", "class",
		"continue", "def", "del", "elif", "else", "except", "finally",
		"for", "from", "global", "if", "import", "in", "is", "lambda",
		"nonlocal", "not", "or", "pass", "raise", "return", "try",
		"while", "with", "yield",
	},
}

var wordRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// KeywordProvider ranks completions harvested from the buffer text plus a
// per-language reserved-word list, by frequency then fuzzy score against
// the prefix (spec.md §4.8 "Keyword provider").
type KeywordProvider struct{}

// Complete implements Provider.
func (KeywordProvider) Complete(req Request) ([]Item, error) {
	freq := make(map[string]int)
	for _, w := range wordRe.FindAllString(req.BufferText, -1) {
		freq[w]++
	}
	for _, kw := range reservedWords[req.Language] {
		if _, ok := freq[kw]; !ok {
			freq[kw] = 0
		}
	}
	type scored struct {
		label string
		freq  int
		score int
	}
	var cands []scored
	for w, f := range freq {
		if w == req.Prefix || !strings.HasPrefix(strings.ToLower(w), strings.ToLower(req.Prefix)) {
			continue
		}
		cands = append(cands, scored{label: w, freq: f, score: fuzzyScore(req.Prefix, w)})
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].freq != cands[j].freq {
			return cands[i].freq > cands[j].freq
		}
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		return cands[i].label < cands[j].label
	})
	items := make([]Item, 0, len(cands))
	for _, c := range cands {
		items = append(items, Item{Label: c.label, Source: SourceKeyword})
	}
	return items, nil
}

// fuzzyScore rewards longer common prefixes; req.Prefix is already
// guaranteed to be a prefix match by the caller, so this only breaks ties
// by how much of the candidate the prefix covers.
func fuzzyScore(prefix, candidate string) int {
	if len(candidate) == 0 {
		return 0
	}
	return len(prefix) * 1000 / len(candidate)
}
