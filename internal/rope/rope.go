// Package rope implements the editor's text buffer: a binary tree of rune
// leaves with per-node size and newline counts, used for insert/remove/
// index and char<->line translation. NewFromString builds a balanced tree;
// Insert and Remove split and concatenate without rebalancing, so the
// tree's depth, and the cost of each operation, can grow with the number
// of edits.
//
// No rope, piece-table, or CRDT text-structure library appears anywhere in
// the example pack (confirmed by search); this is a from-scratch,
// stdlib-only implementation, documented here rather than grounded on a
// specific example file. The node-splitting/concatenation shape follows the
// textbook rope algorithm (Boehm, Atkinson & Plass), which is the same
// shape every rope library in the Go ecosystem (e.g. zyedidia/rope)
// implements.
package rope

import "strings"

const maxLeaf = 1024

// node is a rope tree node. Leaves carry runes directly; internal nodes
// carry only aggregate size/newline counts and child pointers.
type node struct {
	left, right *node
	leaf        []rune
	size        int // total rune count in this subtree
	newlines    int // total '\n' count in this subtree
}

func (n *node) isLeaf() bool { return n != nil && n.left == nil && n.right == nil }

func countNewlines(rs []rune) int {
	n := 0
	for _, r := range rs {
		if r == '\n' {
			n++
		}
	}
	return n
}

func leafNode(rs []rune) *node {
	if len(rs) == 0 {
		return nil
	}
	return &node{leaf: rs, size: len(rs), newlines: countNewlines(rs)}
}

func concat(a, b *node) *node {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.isLeaf() && b.isLeaf() && a.size+b.size <= maxLeaf {
		merged := make([]rune, 0, a.size+b.size)
		merged = append(merged, a.leaf...)
		merged = append(merged, b.leaf...)
		return leafNode(merged)
	}
	return &node{left: a, right: b, size: a.size + b.size, newlines: a.newlines + b.newlines}
}

func build(rs []rune) *node {
	if len(rs) == 0 {
		return nil
	}
	if len(rs) <= maxLeaf {
		return leafNode(rs)
	}
	mid := len(rs) / 2
	return concat(build(rs[:mid]), build(rs[mid:]))
}

// split divides n into (left, right) such that left holds exactly idx runes.
func split(n *node, idx int) (*node, *node) {
	if n == nil {
		return nil, nil
	}
	if n.isLeaf() {
		return leafNode(n.leaf[:idx]), leafNode(n.leaf[idx:])
	}
	leftSize := 0
	if n.left != nil {
		leftSize = n.left.size
	}
	if idx <= leftSize {
		l, r := split(n.left, idx)
		return l, concat(r, n.right)
	}
	l, r := split(n.right, idx-leftSize)
	return concat(n.left, l), r
}

func collect(n *node, b *strings.Builder) {
	if n == nil {
		return
	}
	if n.isLeaf() {
		b.WriteString(string(n.leaf))
		return
	}
	collect(n.left, b)
	collect(n.right, b)
}

// Rope is a mutable text buffer over runes (spec.md §4.6 "Rope contract").
type Rope struct {
	root *node
}

// New creates an empty Rope.
func New() *Rope { return &Rope{} }

// NewFromString creates a Rope containing s.
func NewFromString(s string) *Rope { return &Rope{root: build([]rune(s))} }

// LenChars returns the total rune count.
func (r *Rope) LenChars() int {
	if r.root == nil {
		return 0
	}
	return r.root.size
}

// LenLines returns the number of logical lines: one more than the newline
// count, so an empty rope or a rope with no trailing newline still reports
// at least 1.
func (r *Rope) LenLines() int {
	if r.root == nil {
		return 1
	}
	return r.root.newlines + 1
}

// Insert inserts str at char_idx, which must be in [0, LenChars()].
func (r *Rope) Insert(charIdx int, str string) {
	if charIdx < 0 {
		charIdx = 0
	}
	if charIdx > r.LenChars() {
		charIdx = r.LenChars()
	}
	l, rt := split(r.root, charIdx)
	r.root = concat(concat(l, build([]rune(str))), rt)
}

// Remove deletes the half-open char range [start, end).
func (r *Rope) Remove(start, end int) {
	n := r.LenChars()
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start >= end {
		return
	}
	l, rest := split(r.root, start)
	_, tail := split(rest, end-start)
	r.root = concat(l, tail)
}

// Slice returns the text in the half-open char range [start, end).
func (r *Rope) Slice(start, end int) string {
	n := r.LenChars()
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start >= end {
		return ""
	}
	_, tail := split(r.root, start)
	head, _ := split(tail, end-start)
	var b strings.Builder
	collect(head, &b)
	return b.String()
}

// String returns the full buffer contents.
func (r *Rope) String() string {
	var b strings.Builder
	collect(r.root, &b)
	return b.String()
}

// CharToLine returns the 0-based line index containing char_idx.
func (r *Rope) CharToLine(charIdx int) int {
	return charToLine(r.root, clampIdx(charIdx, r.LenChars()))
}

func charToLine(n *node, idx int) int {
	if n == nil {
		return 0
	}
	if n.isLeaf() {
		return countNewlines(n.leaf[:idx])
	}
	leftSize := 0
	if n.left != nil {
		leftSize = n.left.size
	}
	if idx <= leftSize {
		return charToLine(n.left, idx)
	}
	leftLines := 0
	if n.left != nil {
		leftLines = n.left.newlines
	}
	return leftLines + charToLine(n.right, idx-leftSize)
}

// LineToChar returns the char index of the start of line (0-based).
func (r *Rope) LineToChar(line int) int {
	if line <= 0 {
		return 0
	}
	if line >= r.LenLines() {
		return r.LenChars()
	}
	return lineToChar(r.root, line)
}

func lineToChar(n *node, line int) int {
	if n == nil {
		return 0
	}
	if n.isLeaf() {
		return charOffsetOfLine(n.leaf, line)
	}
	leftLines := 0
	if n.left != nil {
		leftLines = n.left.newlines
	}
	if line <= leftLines {
		return lineToChar(n.left, line)
	}
	leftSize := 0
	if n.left != nil {
		leftSize = n.left.size
	}
	return leftSize + lineToChar(n.right, line-leftLines)
}

func charOffsetOfLine(rs []rune, line int) int {
	found := 0
	for i, r := range rs {
		if r == '\n' {
			found++
			if found == line {
				return i + 1
			}
		}
	}
	return len(rs)
}

// Line returns the text of the given 0-based line, excluding its trailing
// newline.
func (r *Rope) Line(idx int) string {
	if idx < 0 || idx >= r.LenLines() {
		return ""
	}
	start := r.LineToChar(idx)
	var end int
	if idx+1 < r.LenLines() {
		end = r.LineToChar(idx+1) - 1
	} else {
		end = r.LenChars()
	}
	if end < start {
		end = start
	}
	return r.Slice(start, end)
}

func clampIdx(idx, n int) int {
	if idx < 0 {
		return 0
	}
	if idx > n {
		return n
	}
	return idx
}

// Snapshot returns an independent copy of the rope (the tree is
// structurally shared until either copy is mutated, since nodes are never
// mutated in place — every Insert/Remove rebuilds the path it touches).
func (r *Rope) Snapshot() *Rope {
	return &Rope{root: r.root}
}
