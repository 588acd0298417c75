package chat

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"gemchat/internal/gemini"
)

func TestHistory_AppendSnapshotClear(t *testing.T) {
	h := NewHistory()
	if h.Len() != 0 {
		t.Fatalf("Expected empty history, got %d turns", h.Len())
	}

	h.Append(gemini.Content{Role: "user", Parts: []gemini.Part{gemini.TextPart("hello")}})
	h.Append(gemini.Content{Role: "model", Parts: []gemini.Part{gemini.TextPart("hi")}})

	want := []gemini.Content{
		{Role: "user", Parts: []gemini.Part{{Text: "hello"}}},
		{Role: "model", Parts: []gemini.Part{{Text: "hi"}}},
	}
	if diff := cmp.Diff(want, h.Snapshot()); diff != "" {
		t.Errorf("Snapshot mismatch (-want +got):\n%s", diff)
	}

	// Snapshot is a copy; mutating it must not touch the store.
	snap := h.Snapshot()
	snap[0] = gemini.Content{Role: "model"}
	if h.Snapshot()[0].Role != "user" {
		t.Error("Snapshot mutation leaked into the store")
	}

	h.Clear()
	if h.Len() != 0 {
		t.Errorf("Expected empty history after Clear, got %d turns", h.Len())
	}
}

func TestHistory_NoAlternationEnforcement(t *testing.T) {
	h := NewHistory()
	h.Append(gemini.Content{Role: "user"})
	h.Append(gemini.Content{Role: "user"})
	if h.Len() != 2 {
		t.Errorf("Expected both turns appended in call order, got %d", h.Len())
	}
}
