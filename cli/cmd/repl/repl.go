// Package repl implements an interactive prompt that parses each submitted
// line and prints the result in a selectable output format.
package repl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/impral/lang"
	"github.com/ardnew/impral/lang/token"
	"github.com/ardnew/impral/log"
)

// editDoneMsg is sent when the external editor produced a parseable line.
type editDoneMsg struct{ line string }

// editCancelledMsg is sent when the user cleared the editor content.
type editCancelledMsg struct{}

// editErrorMsg is sent when the edit process fails for a reason other than a
// parse error.
type editErrorMsg struct{ err error }

const (
	parsePrompt = "➜ "
	ctrlPrompt  = " :"
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help           Print this help
  mode [FORMAT]  Show or set the output format (` + strings.Join(formatNames(), ", ") + `)
  symbols        List the symbols of the language
  edit           Edit the pending command in $VISUAL or $EDITOR
  clear          Clear screen
  quit           Exit REPL

Usage:
  Type a command to parse it and print the result
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Esc to toggle between parse and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeParse inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle         = suggestionStyle.Bold(true)
	selectedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

func formatCommand(input string) string {
	return promptStyle.Render(parsePrompt) + inputStyle.Render(input)
}

func formatCtrlCommand(input string) string {
	return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
}

func formatNames() []string { return slices.Collect(lang.Formats()) }

// config holds the settings of a REPL session.
type config struct {
	historySize int
	format      lang.Format
	parseOpts   []lang.Option
	logger      log.Logger
	programOpts []tea.ProgramOption
}

// Option configures a REPL session.
type Option func(*config)

// WithHistorySize bounds the number of saved history entries.
func WithHistorySize(n int) Option {
	return func(c *config) { c.historySize = n }
}

// WithFormat selects the initial output format.
func WithFormat(f lang.Format) Option {
	return func(c *config) { c.format = f }
}

// WithParseOptions sets the options passed to [lang.Parse] for every line.
func WithParseOptions(opts ...lang.Option) Option {
	return func(c *config) { c.parseOpts = opts }
}

// WithLogger sets the logger for trace output.
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithProgramOptions passes options through to the bubbletea program.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(c *config) { c.programOpts = append(c.programOpts, opts...) }
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	format       lang.Format
	parseOpts    []lang.Option
	logger       log.Logger
	history      *History
	historyIdx   int
	names        map[string]struct{} // words learned from parsed input
	matches      fuzzy.Matches       // current fuzzy match results
	candidates   []string            // backing candidate list
	wordStart    int                 // byte offset of current word start
	wordEnd      int                 // byte offset of current word end
	suggIdx      int                 // selected candidate index
	tabActive    bool                // whether user is tab-cycling
	preTabText   string              // input text before tab-cycling began
	preTabCursor int                 // cursor position before tab-cycling began
	width        int                 // terminal width for ellipsization
	quitting     bool
	mode         inputMode
	parseText    string
	parseCursor  int
	ctrlText     string
	ctrlCursor   int
}

// Run starts an interactive session that keeps its history in historyPath.
func Run(ctx context.Context, historyPath string, opts ...Option) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	cfg := config{historySize: DefaultHistorySize}
	for _, opt := range opts {
		opt(&cfg)
	}

	cfg.logger.TraceContext(ctx, "repl start",
		slog.String("history", historyPath),
		slog.Int("history_size", cfg.historySize),
		slog.String("format", cfg.format.String()),
	)

	history := NewHistory(historyPath, cfg.historySize)
	if err := history.Load(); err != nil {
		log.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	cfg.logger.TraceContext(ctx, "repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	m := newModel(ctx, cfg, history)

	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithContext(ctx)}, cfg.programOpts...)...)
	_, err = p.Run()

	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}

	return err
}

const defaultWidth = 80

func newModel(ctx context.Context, cfg config, history *History) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(parsePrompt)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		format:     cfg.format,
		parseOpts:  cfg.parseOpts,
		logger:     cfg.logger,
		history:    history,
		historyIdx: history.Len(),
		names:      make(map[string]struct{}),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeParse,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(parsePrompt) - 2

		return m, nil

	case editDoneMsg:
		if m.mode != modeParse {
			m, _ = m.switchToMode(modeParse)
		}

		m.input.SetValue(msg.line)
		m.input.SetCursor(len(msg.line))
		refreshMatches(&m, false)

		return m, nil

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("edit cancelled"))

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	return b.String()
}

// statusLine returns the line shown under the prompt: the history position,
// a usage hint, completion candidates, or a description of the symbol
// before the cursor.
func (m model) statusLine() string {
	input := m.input.Value()

	switch {
	case m.historyIdx < m.history.Len():
		pos := lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx + 1))

		return hintStyle.Render(fmt.Sprintf("%s/%d", pos, m.history.Len()))

	case strings.TrimSpace(input) == "":
		if m.mode == modeParse {
			return hintStyle.Render("Type a command or press Esc for commands [" + m.format.String() + "]")
		}

		return hintStyle.Render("Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)")

	case len(m.matches) > 0:
		return renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width)

	case m.mode == modeParse:
		return hintStyle.Render(symbolHint(input, m.input.Position()))
	}

	return ""
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}

		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(+1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyStep(-1, false), nil

	case tea.KeyDown:
		return m.historyStep(+1, false), nil

	case tea.KeyShiftUp:
		return m.historyStep(-1, true), nil

	case tea.KeyShiftDown:
		return m.historyStep(+1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		return m.toggleMode()

	case tea.KeyRunes, tea.KeySpace:
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the completion selection by step, starting tab-cycling if it
// is not already active. A single candidate is accepted immediately.
func (m model) cycle(step int) model {
	if len(m.matches) == 0 {
		return m
	}

	if len(m.matches) == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + len(m.matches)) % len(m.matches)
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word in the input with
// replacement and moves the cursor past it.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input. With
// autoConfirm set, a word that already equals its only candidate is accepted
// so the candidate bar disappears.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	if m.mode == modeParse {
		m.parseText, m.parseCursor = "", 0
	} else {
		m.ctrlText, m.ctrlCursor = "", 0
	}

	m.input.SetValue("")
	m.tabActive = false
	refreshMatches(&m, false)

	if _, err := m.history.Add(input, m.mode); err != nil {
		m.logger.TraceContext(m.ctxFunc(), "repl history write failed", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		return m.executeCommand(input)
	}

	echo := tea.Println(formatCommand(input))

	out, err := m.render(input)
	if err != nil {
		return m, tea.Sequence(echo, tea.Println(errorStyle.Render(err.Error())))
	}

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(out)))
}

// render parses input and formats the result in the current output format.
func (m *model) render(input string) (string, error) {
	ctx := m.ctxFunc()

	res, err := lang.Parse(ctx, input, m.parseOpts...)

	m.logger.TraceContext(ctx, "repl parse",
		slog.String("input", input),
		slog.Bool("success", err == nil),
	)

	if err != nil {
		return "", err
	}

	m.learn(res.Tokens)

	var buf bytes.Buffer
	if err := res.Format(ctx, &buf, m.format, 2); err != nil {
		return "", err
	}

	return strings.TrimRight(buf.String(), "\n"), nil
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	echo := tea.Println(formatCtrlCommand(input))
	cmd, args := parts[0], parts[1:]

	m.logger.TraceContext(m.ctxFunc(), "repl exec command",
		slog.String("command", cmd),
		slog.Any("args", args),
	)

	switch cmd {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage()))

	case "m", "mode":
		return m.setMode(echo, args)

	case "s", "symbols":
		return m, tea.Sequence(echo, tea.Println(listSymbols()))

	case "c", "clear":
		return m, tea.ClearScreen

	case "e", "edit":
		return m, tea.Sequence(echo, m.edit())

	default:
		err := fmt.Errorf("%w: %s (try help)", ErrUnknownCommand, cmd)

		return m, tea.Sequence(echo, tea.Println(errorStyle.Render(err.Error())))
	}
}

func (m model) setMode(echo tea.Cmd, args []string) (model, tea.Cmd) {
	if len(args) == 0 {
		msg := "output format: " + m.format.String() + " (" + strings.Join(formatNames(), ", ") + ")"

		return m, tea.Sequence(echo, tea.Println(hintStyle.Render(msg)))
	}

	f, err := lang.ParseFormat(args[0])
	if err != nil {
		return m, tea.Sequence(echo, tea.Println(errorStyle.Render(err.Error())))
	}

	m.format = f

	return m, tea.Sequence(echo, tea.Println(hintStyle.Render("output format: "+f.String())))
}

// edit opens the pending parse-mode line in an external editor.
func (m model) edit() tea.Cmd {
	cmd := &editLineCommand{
		line:    m.parseText,
		opts:    m.parseOpts,
		ctxFunc: m.ctxFunc,
		logger:  m.logger,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		switch {
		case errors.Is(err, ErrEditDeclined):
			return editCancelledMsg{}
		case err != nil:
			return editErrorMsg{err: err}
		case cmd.edited == "":
			return editCancelledMsg{}
		}

		return editDoneMsg{line: cmd.edited}
	})
}

// historyStep moves through history by step. With sameMode set, entries
// from the other mode are skipped; otherwise the mode follows the entry.
func (m model) historyStep(step int, sameMode bool) model {
	for i := m.historyIdx + step; i >= 0 && i < m.history.Len(); i += step {
		entry, err := m.history.Entry(i)
		if err != nil || (sameMode && entry.Mode != m.mode) {
			continue
		}

		if entry.Mode != m.mode {
			m, _ = m.switchToMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		refreshMatches(&m, false)

		return m
	}

	if step > 0 {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m
}

func (m model) toggleMode() (model, tea.Cmd) {
	if m.mode == modeParse {
		return m.switchToMode(modeCtrl)
	}

	return m.switchToMode(modeParse)
}

// switchToMode switches to mode, saving and restoring the pending input of
// each mode.
func (m model) switchToMode(mode inputMode) (model, tea.Cmd) {
	if m.mode == modeParse {
		m.parseText, m.parseCursor = m.input.Value(), m.input.Position()
	} else {
		m.ctrlText, m.ctrlCursor = m.input.Value(), m.input.Position()
	}

	m.mode = mode

	if mode == modeParse {
		m.input.Prompt = promptStyle.Render(parsePrompt)
		m.input.SetValue(m.parseText)
		m.input.SetCursor(m.parseCursor)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	refreshMatches(&m, false)

	return m, nil
}

// listSymbols renders every symbol with its name and role.
func listSymbols() string {
	var b strings.Builder

	for s := range token.Symbols() {
		fmt.Fprintf(&b, "  %-3s %-16s", s.String(), s.Name())

		if role := lang.SymbolRole(s); role != "" {
			b.WriteString(hintStyle.Render(role))
		}

		b.WriteByte('\n')
	}

	return b.String()
}
