package completion

import "rat/internal/errs"

// State is the per-buffer CompletionState of spec.md §3: at most one
// in-flight request, and a displayed ghost that is always a live
// substring of the buffer at the cursor.
type State struct {
	BufferID       uint64
	TriggerPos     int
	Prefix         string
	RequestID      uint64
	HasResult      bool
	Result         Result
	DisplayedGhost string
}

// Arm captures a new trigger point, superseding any previous in-flight
// request for this buffer (spec.md §3 invariant: "at most one active
// in-flight request per editor buffer").
func (s *State) Arm(bufferID uint64, triggerPos int, prefix string) {
	s.BufferID = bufferID
	s.TriggerPos = triggerPos
	s.Prefix = prefix
	s.HasResult = false
	s.DisplayedGhost = ""
}

// Accept validates an arriving result against the still-current trigger
// point and buffer text, applying §4.8 "Invalidation": discard if the
// cursor has moved beyond the trigger prefix boundary, or the buffer
// content at the trigger position no longer matches the captured prefix.
func (s *State) Accept(res Result, cursorPos int, currentPrefixAt func(pos int) string) error {
	if res.BufferID != s.BufferID {
		return &errs.CompletionError{Kind: errs.CompletionInvalidated}
	}
	if cursorPos < s.TriggerPos || cursorPos > s.TriggerPos+len([]rune(s.Prefix))+1 {
		return &errs.CompletionError{Kind: errs.CompletionInvalidated}
	}
	if currentPrefixAt(s.TriggerPos) != s.Prefix {
		return &errs.CompletionError{Kind: errs.CompletionInvalidated}
	}
	s.Result = res
	s.HasResult = true
	s.DisplayedGhost = res.Ghost
	return nil
}

// Clear discards any displayed ghost and result, e.g. on acceptance or on
// a motion that breaks the completion context.
func (s *State) Clear() {
	s.HasResult = false
	s.DisplayedGhost = ""
	s.Result = Result{}
}
