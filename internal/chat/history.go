// Package chat owns the conversational state: the turn history, the
// uploaded-file records, and the session that routes user input to the
// remote API. Both mutable structures are owned by the Session and
// touched only from the single shell thread.
package chat

import "gemchat/internal/gemini"

// History is the append-only conversation transcript. It does not
// enforce role alternation; callers compose turns correctly.
type History struct {
	turns []gemini.Content
}

// NewHistory returns an empty transcript.
func NewHistory() *History {
	return &History{}
}

// Append adds a turn in call order.
func (h *History) Append(turn gemini.Content) {
	h.turns = append(h.turns, turn)
}

// Snapshot returns a copy of the turns, used verbatim as the
// generateContent payload.
func (h *History) Snapshot() []gemini.Content {
	out := make([]gemini.Content, len(h.turns))
	copy(out, h.turns)
	return out
}

// Clear discards all turns. Uploaded-file records are a separate
// lifecycle and are never touched here.
func (h *History) Clear() {
	h.turns = nil
}

// Len returns the number of turns.
func (h *History) Len() int {
	return len(h.turns)
}
