package repl

import (
	"slices"
	"testing"

	"github.com/sahilm/fuzzy"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"after_space", "set fo", 6, "fo", 4, 6},
		{"after_paren", "(into_pe", 8, "into_pe", 1, 8},
		{"after_pipe", "ls |gr", 6, "gr", 4, 6},
		{"reference", "f $va", 5, "$va", 2, 5},
		{"after_dot", "$x.ke", 5, "ke", 3, 5},
		{"hyphenated", "if-th", 5, "if-th", 0, 5},
		{"empty_at_boundary", "f ", 2, "", 2, 2},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"cursor_past_end", "ab", 9, "ab", 0, 2},
		{"inside_brackets", "[a b]", 4, "b", 3, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func matchStrings(ms fuzzy.Matches) []string {
	var out []string
	for _, m := range ms {
		out = append(out, m.Str)
	}

	return out
}

func TestComputeMatches_Parse(t *testing.T) {
	m := newTestModel(t)

	m.input.SetValue("into_pe")
	m.input.SetCursor(7)

	matches, _, start, end := m.computeMatches()
	if !slices.Contains(matchStrings(matches), "into_percent") {
		t.Errorf("matches = %v, want into_percent", matchStrings(matches))
	}

	if start != 0 || end != 7 {
		t.Errorf("bounds = (%d, %d), want (0, 7)", start, end)
	}

	m.input.SetValue("f ")
	m.input.SetCursor(2)

	if matches, _, _, _ := m.computeMatches(); len(matches) != 0 {
		t.Errorf("empty word matched %v", matchStrings(matches))
	}
}

func TestComputeMatches_Learned(t *testing.T) {
	m := newTestModel(t)

	if _, err := m.render("set $total (sum 1 2)"); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	for _, want := range []string{"set", "$total", "sum"} {
		if _, ok := m.names[want]; !ok {
			t.Errorf("name %q was not learned", want)
		}
	}

	m.input.SetValue("(f $to")
	m.input.SetCursor(6)

	matches, _, _, _ := m.computeMatches()
	if got := matchStrings(matches); len(got) == 0 || got[0] != "$total" {
		t.Errorf("matches = %v, want $total first", got)
	}
}

func TestComputeMatches_Ctrl(t *testing.T) {
	m := newTestModel(t)
	m, _ = m.switchToMode(modeCtrl)

	m.input.SetValue("sym")
	m.input.SetCursor(3)

	if got := matchStrings(must3(m.computeMatches())); !slices.Equal(got, []string{"symbols"}) {
		t.Errorf("matches = %v, want [symbols]", got)
	}

	m.input.SetValue("mode ya")
	m.input.SetCursor(7)

	if got := matchStrings(must3(m.computeMatches())); !slices.Equal(got, []string{"yaml"}) {
		t.Errorf("matches = %v, want [yaml]", got)
	}

	m.input.SetValue("help ya")
	m.input.SetCursor(7)

	if got := must3(m.computeMatches()); len(got) != 0 {
		t.Errorf("help takes no arguments, matched %v", matchStrings(got))
	}
}

func must3(ms fuzzy.Matches, _ []string, _, _ int) fuzzy.Matches { return ms }

func TestRenderCandidateBar(t *testing.T) {
	matches := fuzzy.Find("in", []string{"inf", "infinity", "into_percent", "into_radians"})

	if got := renderCandidateBar(nil, 0, false, 80); got != "" {
		t.Errorf("no matches rendered %q", got)
	}

	full := renderCandidateBar(matches, -1, false, 200)
	for _, m := range matches {
		if !containsPlain(full, m.Str) {
			t.Errorf("bar %q is missing %q", full, m.Str)
		}
	}

	narrow := renderCandidateBar(matches, -1, false, 12)
	if !containsPlain(narrow, "...") {
		t.Errorf("narrow bar %q was not ellipsized", narrow)
	}
}
