package repl

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/impral/lang/parser"
	"github.com/ardnew/impral/lang/token"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "mode", "symbols", "edit", "clear", "quit"}

// builtinNames are the words every session can complete: the command names
// the parser synthesizes and the reserved constants.
var builtinNames = func() []string {
	names := parser.SyntheticNames()
	names = append(names, slices.Sorted(maps.Keys(token.Constants))...)

	return names
}()

// isWordBoundary reports whether r separates completion words. Words are
// barewords and references, so '$' belongs to a word.
func isWordBoundary(r rune) bool {
	return r != '$' && !token.IsBarewordContinue(r)
}

// wordBounds returns the word at cursor and its byte boundaries within
// input. The word is empty when the cursor sits between two boundaries.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// learn records the barewords and variable references of toks so that later
// input can complete them.
func (m *model) learn(toks []token.Token) {
	for _, tok := range token.Flatten(nil, toks...) {
		if name, ok := tok.CommandName(); ok && token.IsBareword(name) {
			m.names[name] = struct{}{}
		}

		if tok.Kind == token.LiteralToken && tok.Literal.Kind() == token.KindRefVar {
			m.names[tok.Literal.String()] = struct{}{}
		}
	}
}

// candidateNames returns every completion candidate for parse mode.
func (m model) candidateNames() []string {
	names := slices.Clone(builtinNames)
	for name := range m.names {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	slices.Sort(names)

	return names
}

// computeMatches returns the fuzzy matches for the word at the cursor,
// ranked best first, along with the candidates and word boundaries. An empty
// word has no matches.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())
	if word == "" {
		return nil, nil, wordStart, wordEnd
	}

	if m.mode == modeCtrl {
		if strings.TrimSpace(input[:wordStart]) != "" {
			if first, _, _ := strings.Cut(strings.TrimSpace(input), " "); first == "mode" {
				candidates = formatNames()
			}
		} else {
			candidates = ctrlCommands
		}
	} else {
		candidates = m.candidateNames()
	}

	if len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), candidates, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to
// fit within width.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if i > 0 && used+entryWidth+ellipsisWidth > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
