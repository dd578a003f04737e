package repl

import (
	"bufio"
	"os"
	"strings"
	"sync"
)

// DefaultHistorySize bounds the number of entries kept in the history file.
const DefaultHistorySize = 1000

// HistoryEntry is a single submitted line and the mode it was entered in.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

// History is the persistent line history of the REPL.
//
// Each entry is stored on its own line prefixed with P: for parsed commands
// or C: for control commands. Submitting a line that is already in the
// history moves it to the end.
type History struct {
	path    string
	size    int
	entries []HistoryEntry
	mu      sync.RWMutex
}

// NewHistory returns a History backed by the file at path that keeps at most
// size entries. A size less than 1 selects [DefaultHistorySize].
func NewHistory(path string, size int) *History {
	if size < 1 {
		size = DefaultHistorySize
	}

	return &History{path: path, size: size}
}

func (m inputMode) prefix() string {
	if m == modeCtrl {
		return "C:"
	}

	return "P:"
}

// Load replaces the in-memory entries with those in the history file. A
// missing file is not an error.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}
	defer file.Close()

	h.entries = nil

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		entry := HistoryEntry{Line: line, Mode: modeParse}

		if s, ok := strings.CutPrefix(line, modeCtrl.prefix()); ok {
			entry = HistoryEntry{Line: s, Mode: modeCtrl}
		} else if s, ok := strings.CutPrefix(line, modeParse.prefix()); ok {
			entry.Line = s
		}

		h.entries = append(h.entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	if h.trim() {
		_, err = h.rewriteFile()
	}

	return err
}

// Add appends line to the history in the given mode and persists it.
func (h *History) Add(line string, mode inputMode) (int, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1] == (HistoryEntry{line, mode}) {
		return 0, nil
	}

	rewrite := false

	for i, e := range h.entries {
		if e.Line == line && e.Mode == mode {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			rewrite = true

			break
		}
	}

	h.entries = append(h.entries, HistoryEntry{Line: line, Mode: mode})

	if h.trim() || rewrite {
		return h.rewriteFile()
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	return file.WriteString(mode.prefix() + line + "\n")
}

// Entry returns the entry at index i, where 0 is the oldest.
func (h *History) Entry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of history entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns a copy of all history entries, oldest first.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := make([]HistoryEntry, len(h.entries))
	copy(result, h.entries)

	return result
}

// trim drops the oldest entries beyond the size bound and reports whether
// any were dropped. Must be called with h.mu held.
func (h *History) trim() bool {
	if over := len(h.entries) - h.size; over > 0 {
		h.entries = append(h.entries[:0], h.entries[over:]...)

		return true
	}

	return false
}

// rewriteFile replaces the history file with the current entries.
// Must be called with h.mu held.
func (h *History) rewriteFile() (int, error) {
	var b strings.Builder

	for _, e := range h.entries {
		b.WriteString(e.Mode.prefix())
		b.WriteString(e.Line)
		b.WriteByte('\n')
	}

	if err := os.WriteFile(h.path, []byte(b.String()), 0o600); err != nil {
		return 0, err
	}

	return b.Len(), nil
}
