package repl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestHistory_AddAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	h := NewHistory(path, 0)
	for _, e := range []HistoryEntry{
		{"f 1", modeParse},
		{"mode json", modeCtrl},
		{"g 2", modeParse},
	} {
		if _, err := h.Add(e.Line, e.Mode); err != nil {
			t.Fatalf("Add(%q) failed: %v", e.Line, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if want := "P:f 1\nC:mode json\nP:g 2\n"; string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}

	loaded := NewHistory(path, 0)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", loaded.Len())
	}

	e, err := loaded.Entry(1)
	if err != nil || e != (HistoryEntry{"mode json", modeCtrl}) {
		t.Errorf("Entry(1) = %+v, %v", e, err)
	}
}

func TestHistory_Dedup(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "history"), 0)

	for _, line := range []string{"a", "b", "b", "  ", "a"} {
		if _, err := h.Add(line, modeParse); err != nil {
			t.Fatal(err)
		}
	}

	got := h.Entries()
	if len(got) != 2 || got[0].Line != "b" || got[1].Line != "a" {
		t.Errorf("entries = %+v, want [b a]", got)
	}

	if _, err := h.Add("a", modeCtrl); err != nil {
		t.Fatal(err)
	}

	if h.Len() != 3 {
		t.Errorf("same line in another mode must be kept, Len() = %d", h.Len())
	}
}

func TestHistory_Size(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	if err := os.WriteFile(path, []byte("P:1\nP:2\nP:3\nlegacy\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path, 3)
	if err := h.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}

	if e, _ := h.Entry(2); e != (HistoryEntry{"legacy", modeParse}) {
		t.Errorf("unprefixed line = %+v", e)
	}

	if _, err := h.Add("4", modeParse); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if want := "P:3\nP:legacy\nP:4\n"; string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}
}

func TestHistory_LoadMissing(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "missing"), 0)
	if err := h.Load(); err != nil {
		t.Errorf("Load of a missing file failed: %v", err)
	}

	if _, err := h.Entry(0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Entry(0) error = %v, want ErrOutOfBounds", err)
	}
}
